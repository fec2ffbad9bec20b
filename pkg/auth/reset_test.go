package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestServiceForgotPassword(t *testing.T) {
	t.Parallel()

	t.Run("stores digest and expiry, returns raw token", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage)

		var storedDigest string
		var storedExpiry time.Time

		storage.On("GetUserByEmail", mock.Anything, "a@x.com").
			Return(&User{ID: "u1", Email: "a@x.com"}, nil)
		storage.On("SetResetToken", mock.Anything, "u1", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
			Run(func(args mock.Arguments) {
				storedDigest = args.String(2)
				storedExpiry = args.Get(3).(time.Time)
			}).
			Return(nil)

		req, err := svc.ForgotPassword(context.Background(), "A@X.com ")
		require.NoError(t, err)

		assert.Equal(t, "a@x.com", req.Email)
		assert.Len(t, req.RawToken, 64)

		// Storage only ever sees the digest, not the raw token.
		sum := sha256.Sum256([]byte(req.RawToken))
		assert.Equal(t, hex.EncodeToString(sum[:]), storedDigest)
		assert.NotEqual(t, req.RawToken, storedDigest)

		assert.Equal(t, req.ExpiresAt, storedExpiry)
		assert.WithinDuration(t, time.Now().Add(DefaultResetTokenTTL), req.ExpiresAt, time.Minute)
	})

	t.Run("two requests produce distinct tokens", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage)

		storage.On("GetUserByEmail", mock.Anything, "a@x.com").
			Return(&User{ID: "u1", Email: "a@x.com"}, nil)
		storage.On("SetResetToken", mock.Anything, "u1", mock.Anything, mock.Anything).Return(nil)

		first, err := svc.ForgotPassword(context.Background(), "a@x.com")
		require.NoError(t, err)
		second, err := svc.ForgotPassword(context.Background(), "a@x.com")
		require.NoError(t, err)

		assert.NotEqual(t, first.RawToken, second.RawToken)
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage)

		storage.On("GetUserByEmail", mock.Anything, "missing@x.com").Return(nil, ErrUserNotFound)

		_, err := svc.ForgotPassword(context.Background(), "missing@x.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
		storage.AssertNotCalled(t, "SetResetToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("custom ttl", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage, WithResetTokenTTL(15*time.Minute))

		storage.On("GetUserByEmail", mock.Anything, "a@x.com").
			Return(&User{ID: "u1", Email: "a@x.com"}, nil)
		storage.On("SetResetToken", mock.Anything, "u1", mock.Anything, mock.Anything).Return(nil)

		req, err := svc.ForgotPassword(context.Background(), "a@x.com")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(15*time.Minute), req.ExpiresAt, time.Minute)
	})
}

func TestServiceResetPassword(t *testing.T) {
	t.Parallel()

	t.Run("consumes token with digest and new hash", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage, WithBcryptCost(bcrypt.MinCost))

		raw := "deadbeef"
		sum := sha256.Sum256([]byte(raw))
		digest := hex.EncodeToString(sum[:])

		var newHash []byte
		storage.On("ConsumeResetToken", mock.Anything, digest, mock.AnythingOfType("time.Time"), mock.AnythingOfType("[]uint8")).
			Run(func(args mock.Arguments) {
				newHash = args.Get(3).([]byte)
			}).
			Return(&User{ID: "u1", Email: "a@x.com"}, nil)

		user, err := svc.ResetPassword(context.Background(), raw, "newpass1", "newpass1")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.NoError(t, bcrypt.CompareHashAndPassword(newHash, []byte("newpass1")))
	})

	t.Run("invalid or expired token", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage, WithBcryptCost(bcrypt.MinCost))

		storage.On("ConsumeResetToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, ErrResetTokenInvalid)

		_, err := svc.ResetPassword(context.Background(), "stale-token", "newpass1", "newpass1")
		assert.ErrorIs(t, err, ErrResetTokenInvalid)
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage)

		_, err := svc.ResetPassword(context.Background(), "", "newpass1", "newpass1")
		assert.ErrorIs(t, err, ErrResetTokenInvalid)
		storage.AssertNotCalled(t, "ConsumeResetToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("validation happens before the consume", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			name     string
			password string
			confirm  string
		}{
			{"mismatch", "newpass1", "newpass2"},
			{"too short", "abc", "abc"},
			{"empty", "", ""},
		}

		for _, tc := range cases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				storage := &MockUserStorage{}
				svc := NewService(storage)

				_, err := svc.ResetPassword(context.Background(), "some-token", tc.password, tc.confirm)
				require.Error(t, err)
				storage.AssertNotCalled(t, "ConsumeResetToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})
}

func TestServiceVerifyResetToken(t *testing.T) {
	t.Parallel()

	t.Run("usable token", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage)

		raw := "live-token"
		sum := sha256.Sum256([]byte(raw))
		digest := hex.EncodeToString(sum[:])

		storage.On("FindByResetDigest", mock.Anything, digest, mock.AnythingOfType("time.Time")).
			Return(&User{ID: "u1"}, nil)

		require.NoError(t, svc.VerifyResetToken(context.Background(), raw))

		// Peeking must not consume the token.
		storage.AssertNotCalled(t, "ConsumeResetToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("dead token", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage)

		storage.On("FindByResetDigest", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, ErrResetTokenInvalid)

		assert.ErrorIs(t, svc.VerifyResetToken(context.Background(), "stale"), ErrResetTokenInvalid)
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage)

		assert.ErrorIs(t, svc.VerifyResetToken(context.Background(), ""), ErrResetTokenInvalid)
		storage.AssertNotCalled(t, "FindByResetDigest", mock.Anything, mock.Anything, mock.Anything)
	})
}
