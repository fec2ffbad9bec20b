package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/viteshop/backend/pkg/auth"
	"github.com/viteshop/backend/pkg/email"
	"github.com/viteshop/backend/pkg/logger"
	"github.com/viteshop/backend/pkg/validator"
)

// forgotPasswordGenericMessage is returned for unknown emails so the
// endpoint cannot be used to probe which addresses have accounts.
const forgotPasswordGenericMessage = "If this email exists, a password reset link has been sent"

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (m *Module) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := bindJSON(r, &req); err != nil {
		m.respondError(w, r, err, "ForgotPasswordError", "")
		return
	}

	reset, err := m.service.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			m.respond(w, http.StatusOK, response{
				Success: true,
				Message: forgotPasswordGenericMessage,
			})
			return
		}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			m.respond(w, http.StatusBadRequest, response{
				Success: false,
				Message: "Email is required",
			})
			return
		}
		m.respondError(w, r, err, "ForgotPasswordError", req.Email)
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", m.cfg.FrontendURL, reset.RawToken)
	if err := m.mailer.SendEmail(r.Context(), email.ResetRequestEmail(reset.Email, resetURL)); err != nil {
		m.log.Error("failed to send reset email",
			logger.Error(err),
			logger.Email(reset.Email),
			logger.Component("auth-module"),
		)
		if m.recorder != nil {
			m.recorder.RecordHTTP(r, "ForgotPasswordError", err, http.StatusInternalServerError, "", reset.Email)
		}
		m.respond(w, http.StatusInternalServerError, response{
			Success: false,
			Message: "Failed to send email. Please try again later.",
		})
		return
	}

	m.respond(w, http.StatusOK, response{
		Success: true,
		Message: "Password reset link has been sent to your email",
	})
}

type resetPasswordRequest struct {
	Token           string `json:"-" path:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (m *Module) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := bindJSON(r, &req); err != nil {
		m.respondError(w, r, err, "ResetPasswordError", "")
		return
	}
	if err := bindPath(r, &req); err != nil {
		m.respondError(w, r, err, "ResetPasswordError", "")
		return
	}

	user, err := m.service.ResetPassword(r.Context(), req.Token, req.Password, req.ConfirmPassword)
	if err != nil {
		m.respondError(w, r, err, "ResetPasswordError", "")
		return
	}

	// The password change is already durable; the confirmation email is
	// best-effort and must not turn the success into a failure.
	signinURL := fmt.Sprintf("%s/signin", m.cfg.FrontendURL)
	if err := m.mailer.SendEmail(r.Context(), email.ResetSuccessEmail(user.Email, user.Name, signinURL)); err != nil {
		m.log.Warn("failed to send reset confirmation email",
			logger.Error(err),
			logger.Email(user.Email),
			logger.Component("auth-module"),
		)
	}

	m.respond(w, http.StatusOK, response{
		Success: true,
		Message: "Password has been reset successfully. You can now sign in.",
	})
}

type verifyResetTokenRequest struct {
	Token string `path:"token"`
}

func (m *Module) handleVerifyResetToken(w http.ResponseWriter, r *http.Request) {
	var req verifyResetTokenRequest
	if err := bindPath(r, &req); err != nil {
		m.respondError(w, r, err, "VerifyResetTokenError", "")
		return
	}

	if err := m.service.VerifyResetToken(r.Context(), req.Token); err != nil {
		m.respondError(w, r, err, "VerifyResetTokenError", "")
		return
	}

	m.respond(w, http.StatusOK, response{
		Success: true,
		Message: "Token is valid",
	})
}
