package auth

import (
	"context"
	"sync"
	"time"

	"github.com/viteshop/backend/pkg/auth"
	"github.com/viteshop/backend/pkg/email"
	"github.com/viteshop/backend/pkg/errorlog"
)

// memStorage is an in-memory UserStorage with the same observable
// semantics as the Mongo implementation: unique emails, conditional
// reset-token consumption, single-write address replacement.
type memStorage struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newMemStorage() *memStorage {
	return &memStorage{users: make(map[string]*auth.User)}
}

func cloneUser(u *auth.User) *auth.User {
	c := *u
	c.Addresses = append([]auth.Address(nil), u.Addresses...)
	if u.PrimaryAddressID != nil {
		id := *u.PrimaryAddressID
		c.PrimaryAddressID = &id
	}
	return &c
}

func (s *memStorage) CreateUser(ctx context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return auth.ErrEmailAlreadyExists
		}
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *memStorage) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (s *memStorage) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *memStorage) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.LastLoginAt = &at
	return nil
}

func (s *memStorage) SetResetToken(ctx context.Context, id, digest string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.ResetTokenDigest = &digest
	u.ResetTokenExpiry = &expiry
	return nil
}

func (s *memStorage) FindByResetDigest(ctx context.Context, digest string, now time.Time) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ResetTokenDigest != nil && *u.ResetTokenDigest == digest &&
			u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now) {
			return cloneUser(u), nil
		}
	}
	return nil, auth.ErrResetTokenInvalid
}

func (s *memStorage) ConsumeResetToken(ctx context.Context, digest string, now time.Time, newHash []byte) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ResetTokenDigest != nil && *u.ResetTokenDigest == digest &&
			u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now) {
			u.PasswordHash = newHash
			u.ResetTokenDigest = nil
			u.ResetTokenExpiry = nil
			return cloneUser(u), nil
		}
	}
	return nil, auth.ErrResetTokenInvalid
}

func (s *memStorage) UpdateProfile(ctx context.Context, id string, update auth.ProfileUpdate) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.ProfileImage != nil {
		u.ProfileImage = update.ProfileImage
	}
	return cloneUser(u), nil
}

func (s *memStorage) ReplaceAddresses(ctx context.Context, id string, addresses []auth.Address, primaryID *string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	u.Addresses = append([]auth.Address(nil), addresses...)
	u.PrimaryAddressID = primaryID
	return cloneUser(u), nil
}

// fakeMailer records outbound emails and can be told to fail.
type fakeMailer struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
	err  error
}

func (f *fakeMailer) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, params)
	return nil
}

func (f *fakeMailer) lastSent() (email.SendEmailParams, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return email.SendEmailParams{}, false
	}
	return f.sent[len(f.sent)-1], true
}

func (f *fakeMailer) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// memErrorStore collects error-log entries.
type memErrorStore struct {
	mu      sync.Mutex
	entries []errorlog.Entry
}

func (s *memErrorStore) SaveEntry(ctx context.Context, entry errorlog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memErrorStore) all() []errorlog.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]errorlog.Entry(nil), s.entries...)
}
