package auth

import (
	"context"
	"time"
)

// ProfileUpdate carries a partial profile mutation. Nil fields are left
// unchanged.
type ProfileUpdate struct {
	Name         *string
	Phone        *string
	ProfileImage *string
}

// UserStorage is the credential-store contract the auth services depend on.
// Implementations must enforce email uniqueness (case handled by the domain
// layer, which only ever writes lowercase) and apply each call as a single
// atomic document operation.
type UserStorage interface {
	// CreateUser inserts a new user. Returns ErrEmailAlreadyExists when the
	// email is taken; a concurrent duplicate signup must lose here, not win.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByEmail returns ErrUserNotFound when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID returns ErrUserNotFound when the ID is unknown.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// UpdateLastLogin records a successful signin.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	// SetResetToken stores the reset-token digest and expiry, replacing any
	// previous pending token.
	SetResetToken(ctx context.Context, id string, digest string, expiry time.Time) error

	// FindByResetDigest returns the user whose stored digest matches and
	// whose expiry is after now, or ErrResetTokenInvalid.
	FindByResetDigest(ctx context.Context, digest string, now time.Time) (*User, error)

	// ConsumeResetToken atomically sets the new password hash and clears the
	// digest/expiry, conditional on the digest still matching and the expiry
	// still being in the future. Exactly one of two concurrent calls with
	// the same digest can succeed. Returns ErrResetTokenInvalid otherwise.
	ConsumeResetToken(ctx context.Context, digest string, now time.Time, newHash []byte) (*User, error)

	// UpdateProfile applies a partial profile update and returns the updated
	// user.
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error)

	// ReplaceAddresses overwrites the address list and primary address
	// reference in one document write.
	ReplaceAddresses(ctx context.Context, id string, addresses []Address, primaryID *string) (*User, error)
}
