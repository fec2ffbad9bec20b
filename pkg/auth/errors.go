package auth

import "errors"

// General authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Reset-token errors
var (
	// ErrResetTokenInvalid covers both unknown and expired tokens; the two
	// cases are deliberately indistinguishable to the caller.
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
)

// Address errors
var (
	ErrAddressNotFound = errors.New("address not found")
)
