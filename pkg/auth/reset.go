package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/viteshop/backend/pkg/logger"
	"github.com/viteshop/backend/pkg/sanitizer"
	"github.com/viteshop/backend/pkg/validator"
)

// resetTokenBytes is the entropy of a raw reset token. The hex encoding
// makes the URL-safe value 64 characters long.
const resetTokenBytes = 32

// ResetRequest carries the raw single-use token back to the caller so it
// can be embedded in the emailed reset URL. Only the digest is persisted;
// a database compromise cannot yield usable reset links.
type ResetRequest struct {
	Email     string
	RawToken  string
	ExpiresAt time.Time
}

// ForgotPassword generates a reset token for the account with the given
// email. Returns ErrUserNotFound for unknown emails; the HTTP layer masks
// that with a generic success message to avoid account enumeration.
func (s *Service) ForgotPassword(ctx context.Context, email string) (*ResetRequest, error) {
	email = sanitizer.NormalizeEmail(email)

	if err := validator.Apply(
		validator.Required("email", email),
	); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	raw, err := generateResetToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiresAt := time.Now().Add(s.resetTTL)
	if err := s.storage.SetResetToken(ctx, user.ID, digestResetToken(raw), expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store reset token: %w", err)
	}

	s.logger.Info("password reset requested",
		logger.UserID(user.ID),
		logger.Component("auth"),
	)

	return &ResetRequest{
		Email:     user.Email,
		RawToken:  raw,
		ExpiresAt: expiresAt,
	}, nil
}

// ResetPassword consumes a raw reset token and sets the new password. The
// digest match, expiry check, password swap, and token clearing happen as a
// single conditional update in storage, so at most one of two concurrent
// resets with the same token can succeed.
func (s *Service) ResetPassword(ctx context.Context, rawToken, password, confirmPassword string) (*User, error) {
	if err := validator.Apply(
		validator.Required("password", password),
		validator.Required("confirmPassword", confirmPassword),
		validator.Equal("confirmPassword", password, confirmPassword, "passwords do not match"),
		validator.MinLen("password", password, MinPasswordLength),
	); err != nil {
		return nil, err
	}

	if rawToken == "" {
		return nil, ErrResetTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.storage.ConsumeResetToken(ctx, digestResetToken(rawToken), time.Now(), hash)
	if err != nil {
		if errors.Is(err, ErrResetTokenInvalid) {
			return nil, ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("failed to consume reset token: %w", err)
	}

	s.logger.Info("password reset completed",
		logger.UserID(user.ID),
		logger.Component("auth"),
	)

	return user, nil
}

// VerifyResetToken reports whether a raw token is currently usable, without
// consuming it. Lets the client short-circuit showing a reset form for a
// dead link.
func (s *Service) VerifyResetToken(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return ErrResetTokenInvalid
	}

	_, err := s.storage.FindByResetDigest(ctx, digestResetToken(rawToken), time.Now())
	if err != nil {
		if errors.Is(err, ErrResetTokenInvalid) || errors.Is(err, ErrUserNotFound) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("failed to verify reset token: %w", err)
	}
	return nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// digestResetToken computes the deterministic one-way digest persisted in
// place of the raw token.
func digestResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
