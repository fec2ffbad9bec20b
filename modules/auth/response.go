package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/viteshop/backend/pkg/auth"
	"github.com/viteshop/backend/pkg/binder"
	"github.com/viteshop/backend/pkg/jwt"
	"github.com/viteshop/backend/pkg/logger"
	"github.com/viteshop/backend/pkg/validator"
)

// response is the envelope every endpoint answers with.
type response struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	User    *auth.PublicProfile `json:"user,omitempty"`
	Token   string              `json:"token,omitempty"`
}

func (m *Module) respond(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		m.log.Error("failed to encode response", logger.Error(err))
	}
}

// respondError maps a domain error onto the response envelope. Unrecognized
// errors become an opaque 500 and are handed to the error-log side channel
// with the request context; the error detail never reaches the client.
func (m *Module) respondError(w http.ResponseWriter, r *http.Request, err error, errType, email string) {
	status, message := classify(err)

	if status >= http.StatusInternalServerError {
		m.log.Error("request failed",
			logger.Error(err),
			logger.Endpoint(r.URL.Path),
			logger.Component("auth-module"),
		)
		if m.recorder != nil {
			userID, _ := jwt.GetUserID(r.Context())
			m.recorder.RecordHTTP(r, errType, err, status, userID, email)
		}
	}

	m.respond(w, status, response{Success: false, Message: message})
}

func classify(err error) (int, string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return http.StatusBadRequest, verrs[0].Message
	}

	switch {
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		return http.StatusBadRequest, "Email already registered"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, auth.ErrResetTokenInvalid):
		return http.StatusBadRequest, "Invalid or expired reset token"
	case errors.Is(err, auth.ErrAddressNotFound):
		return http.StatusNotFound, "Address not found"
	case errors.Is(err, auth.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, binder.ErrInvalidJSON),
		errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrUnsupportedMediaType),
		errors.Is(err, binder.ErrInvalidPath):
		return http.StatusBadRequest, "Invalid request payload"
	}

	return http.StatusInternalServerError, "Something went wrong. Please try again later."
}
