package auth

import (
	"net/http"

	"github.com/viteshop/backend/pkg/auth"
	"github.com/viteshop/backend/pkg/cookie"
	"github.com/viteshop/backend/pkg/jwt"
	"github.com/viteshop/backend/pkg/logger"
)

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone"`
}

func (m *Module) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := bindJSON(r, &req); err != nil {
		m.respondError(w, r, err, "SignupError", "")
		return
	}

	user, err := m.service.Signup(r.Context(), auth.SignupParams{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Phone:           req.Phone,
	})
	if err != nil {
		m.respondError(w, r, err, "SignupError", req.Email)
		return
	}

	token, err := m.issueSession(w, user.ID)
	if err != nil {
		m.respondError(w, r, err, "SignupError", user.Email)
		return
	}

	m.respond(w, http.StatusCreated, response{
		Success: true,
		Message: "Account created successfully!",
		User:    user.Public(),
		Token:   token,
	})
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (m *Module) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := bindJSON(r, &req); err != nil {
		m.respondError(w, r, err, "SigninError", "")
		return
	}

	user, err := m.service.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		m.respondError(w, r, err, "SigninError", req.Email)
		return
	}

	token, err := m.issueSession(w, user.ID)
	if err != nil {
		m.respondError(w, r, err, "SigninError", user.Email)
		return
	}

	m.respond(w, http.StatusOK, response{
		Success: true,
		Message: "Logged in successfully!",
		User:    user.Public(),
		Token:   token,
	})
}

// handleLogout clears the session cookie. Issued tokens stay valid until
// they expire; there is no server-side revocation list.
func (m *Module) handleLogout(w http.ResponseWriter, r *http.Request) {
	m.cookies.Delete(w, SessionCookieName)
	m.respond(w, http.StatusOK, response{
		Success: true,
		Message: "Logged out successfully",
	})
}

func (m *Module) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := jwt.GetUserID(r.Context())
	if !ok {
		m.respondError(w, r, auth.ErrUnauthorized, "ProfileError", "")
		return
	}

	user, err := m.service.GetProfile(r.Context(), userID)
	if err != nil {
		m.respondError(w, r, err, "ProfileError", "")
		return
	}

	m.respond(w, http.StatusOK, response{
		Success: true,
		User:    user.Public(),
	})
}

// issueSession mints a session token and mirrors it into the session
// cookie, so browser clients and API clients can both carry it.
func (m *Module) issueSession(w http.ResponseWriter, userID string) (string, error) {
	token, err := m.tokens.Issue(userID)
	if err != nil {
		m.log.Error("failed to issue session token",
			logger.Error(err),
			logger.UserID(userID),
		)
		return "", err
	}

	m.cookies.Set(w, SessionCookieName, token,
		cookie.WithMaxAge(int(m.tokens.TTL().Seconds())),
	)

	return token, nil
}
