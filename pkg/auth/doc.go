// Package auth implements the account core: signup, signin, the
// password-reset token lifecycle, and identity-guarded profile and address
// mutation.
//
// The package owns the User document and all of its state transitions.
// Passwords are bcrypt-hashed; reset tokens are 32 random bytes whose
// SHA-256 digest is the only thing persisted, with a one-hour expiry.
// Session tokens are a separate concern handled by pkg/jwt; this package
// never sees them.
//
// Storage is abstracted behind UserStorage so the service can be tested
// against mocks while production runs on MongoDB (storage/mongodb). The
// contract pushes the concurrency-sensitive operations — duplicate-email
// serialization and reset-token consume-and-clear — down to the store,
// where they map onto unique indexes and conditional updates.
package auth
