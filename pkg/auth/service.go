package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/viteshop/backend/pkg/logger"
	"github.com/viteshop/backend/pkg/sanitizer"
	"github.com/viteshop/backend/pkg/validator"
)

// Password policy constants, matching the public signup form.
const (
	MinPasswordLength = 6
	MinPhoneLength    = 10
)

// DefaultResetTokenTTL bounds the exposure window of a reset link.
const DefaultResetTokenTTL = time.Hour

// Service orchestrates signup, signin, the password-reset lifecycle, and
// identity-guarded profile mutation on top of a UserStorage.
type Service struct {
	storage    UserStorage
	bcryptCost int
	resetTTL   time.Duration
	logger     *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithBcryptCost sets the bcrypt work factor.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// WithResetTokenTTL sets the reset-token lifetime.
func WithResetTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.resetTTL = ttl
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates the auth service.
func NewService(storage UserStorage, opts ...Option) *Service {
	s := &Service{
		storage:    storage,
		bcryptCost: bcrypt.DefaultCost,
		resetTTL:   DefaultResetTokenTTL,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignupParams are the validated inputs of account creation.
type SignupParams struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
}

// Signup validates the input, creates the account, and returns the new
// user. Validation runs before any write; a duplicate email fails with
// ErrEmailAlreadyExists whether detected by the pre-check or by the unique
// index during insert.
func (s *Service) Signup(ctx context.Context, params SignupParams) (*User, error) {
	email := sanitizer.NormalizeEmail(params.Email)
	phone := sanitizer.NormalizePhone(params.Phone)
	name := sanitizer.NormalizeWhitespace(params.Name)

	if err := validator.Apply(
		validator.Required("name", name),
		validator.Required("email", params.Email),
		validator.Required("password", params.Password),
		validator.Required("confirmPassword", params.ConfirmPassword),
		validator.Required("phone", params.Phone),
		validator.ValidEmail("email", email),
		validator.Equal("confirmPassword", params.Password, params.ConfirmPassword, "passwords do not match"),
		validator.MinLen("password", params.Password, MinPasswordLength),
		validator.MinLen("phone", phone, MinPhoneLength),
	); err != nil {
		return nil, err
	}

	// Pre-check for a friendlier error; the unique index is the backstop
	// that serializes concurrent signups with the same email.
	if _, err := s.storage.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Phone:        phone,
		CreatedAt:    time.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user signed up",
		logger.UserID(user.ID),
		logger.Component("auth"),
	)

	return user, nil
}

// Signin verifies credentials and records the login time. Unknown email and
// wrong password are indistinguishable: both fail with
// ErrInvalidCredentials.
func (s *Service) Signin(ctx context.Context, email, password string) (*User, error) {
	email = sanitizer.NormalizeEmail(email)

	if err := validator.Apply(
		validator.Required("email", email),
		validator.Required("password", password),
	); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.storage.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Login bookkeeping must not block the signin itself.
		s.logger.Warn("failed to record last login",
			logger.UserID(user.ID),
			logger.Error(err),
			logger.Component("auth"),
		)
	} else {
		user.LastLoginAt = &now
	}

	return user, nil
}
