package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/viteshop/backend/pkg/validator"
)

func validSignup() SignupParams {
	return SignupParams{
		Name:            "Alice",
		Email:           "a@x.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Phone:           "1234567890",
	}
}

func TestServiceSignup(t *testing.T) {
	t.Parallel()

	t.Run("creates user with hashed password", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage, WithBcryptCost(bcrypt.MinCost))

		storage.On("GetUserByEmail", mock.Anything, "a@x.com").Return(nil, ErrUserNotFound)
		storage.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *User) bool {
			return u.Email == "a@x.com" &&
				u.Name == "Alice" &&
				u.Phone == "1234567890" &&
				u.ID != "" &&
				string(u.PasswordHash) != "secret1"
		})).Return(nil)

		user, err := svc.Signup(context.Background(), validSignup())
		require.NoError(t, err)

		// The stored value is a verifiable hash, never the plaintext.
		assert.NotEqual(t, "secret1", string(user.PasswordHash))
		assert.NoError(t, bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("secret1")))

		storage.AssertExpectations(t)
	})

	t.Run("lowercases the email", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage, WithBcryptCost(bcrypt.MinCost))

		storage.On("GetUserByEmail", mock.Anything, "a@x.com").Return(nil, ErrUserNotFound)
		storage.On("CreateUser", mock.Anything, mock.Anything).Return(nil)

		params := validSignup()
		params.Email = "A@X.com"

		user, err := svc.Signup(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", user.Email)
	})

	t.Run("duplicate email from pre-check", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage)

		storage.On("GetUserByEmail", mock.Anything, "a@x.com").Return(&User{ID: "u1"}, nil)

		_, err := svc.Signup(context.Background(), validSignup())
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
		storage.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email from insert race", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage, WithBcryptCost(bcrypt.MinCost))

		// Pre-check misses, but a concurrent signup wins the insert.
		storage.On("GetUserByEmail", mock.Anything, "a@x.com").Return(nil, ErrUserNotFound)
		storage.On("CreateUser", mock.Anything, mock.Anything).Return(ErrEmailAlreadyExists)

		_, err := svc.Signup(context.Background(), validSignup())
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("validation failures happen before any storage call", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			name   string
			mutate func(*SignupParams)
			field  string
		}{
			{"missing name", func(p *SignupParams) { p.Name = "" }, "name"},
			{"missing email", func(p *SignupParams) { p.Email = "" }, "email"},
			{"missing password", func(p *SignupParams) { p.Password = "" }, "password"},
			{"missing phone", func(p *SignupParams) { p.Phone = "" }, "phone"},
			{"password mismatch", func(p *SignupParams) { p.ConfirmPassword = "other1" }, "confirmPassword"},
			{"short password", func(p *SignupParams) { p.Password = "abc"; p.ConfirmPassword = "abc" }, "password"},
			{"short phone", func(p *SignupParams) { p.Phone = "12345" }, "phone"},
			{"invalid email", func(p *SignupParams) { p.Email = "not-an-email" }, "email"},
		}

		for _, tc := range cases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				storage := &MockUserStorage{}
				svc := NewService(storage)

				params := validSignup()
				tc.mutate(&params)

				_, err := svc.Signup(context.Background(), params)
				require.Error(t, err)

				var verrs validator.ValidationErrors
				require.ErrorAs(t, err, &verrs)
				assert.True(t, verrs.Has(tc.field), "expected error on field %q, got %v", tc.field, verrs)

				storage.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
				storage.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestServiceSignin(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("valid credentials update last login", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage)

		storage.On("GetUserByEmail", mock.Anything, "a@x.com").
			Return(&User{ID: "u1", Email: "a@x.com", PasswordHash: hash}, nil)
		storage.On("UpdateLastLogin", mock.Anything, "u1", mock.AnythingOfType("time.Time")).Return(nil)

		user, err := svc.Signin(context.Background(), "A@X.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		require.NotNil(t, user.LastLoginAt)
		assert.WithinDuration(t, time.Now(), *user.LastLoginAt, time.Minute)

		storage.AssertExpectations(t)
	})

	t.Run("unknown email and wrong password return the same error", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage)

		storage.On("GetUserByEmail", mock.Anything, "missing@x.com").Return(nil, ErrUserNotFound)
		storage.On("GetUserByEmail", mock.Anything, "a@x.com").
			Return(&User{ID: "u1", Email: "a@x.com", PasswordHash: hash}, nil)

		_, errUnknown := svc.Signin(context.Background(), "missing@x.com", "secret1")
		_, errWrongPw := svc.Signin(context.Background(), "a@x.com", "wrong-password")

		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	})

	t.Run("last-login bookkeeping failure does not fail signin", func(t *testing.T) {
		t.Parallel()

		storage := &MockUserStorage{}
		svc := NewService(storage)

		storage.On("GetUserByEmail", mock.Anything, "a@x.com").
			Return(&User{ID: "u1", Email: "a@x.com", PasswordHash: hash}, nil)
		storage.On("UpdateLastLogin", mock.Anything, "u1", mock.AnythingOfType("time.Time")).
			Return(assert.AnError)

		user, err := svc.Signin(context.Background(), "a@x.com", "secret1")
		require.NoError(t, err)
		assert.Nil(t, user.LastLoginAt)
	})
}

func TestUserPublic(t *testing.T) {
	t.Parallel()

	user := &User{
		ID:           "u1",
		Email:        "a@x.com",
		Name:         "Alice",
		PasswordHash: []byte("$2a$10$hash"),
		Phone:        "1234567890",
	}

	public := user.Public()
	require.NotNil(t, public)
	assert.Equal(t, "u1", public.ID)
	assert.Equal(t, "a@x.com", public.Email)
	assert.Equal(t, "Alice", public.Name)

	// The projection is what goes over the wire; the hash must not be in it.
	encoded, err := json.Marshal(public)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "hash")
	assert.NotContains(t, string(encoded), "$2a$")
}
