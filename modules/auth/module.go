package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/viteshop/backend/pkg/auth"
	"github.com/viteshop/backend/pkg/cookie"
	"github.com/viteshop/backend/pkg/email"
	"github.com/viteshop/backend/pkg/errorlog"
	"github.com/viteshop/backend/pkg/jwt"
	"github.com/viteshop/backend/pkg/logger"
)

// SessionCookieName is the cookie carrying the session token. Clients may
// send the token either in this cookie or as a bearer header.
const SessionCookieName = "authToken"

// Config holds the module's environment-driven settings.
type Config struct {
	FrontendURL   string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	SecureCookies bool   `env:"SECURE_COOKIES" envDefault:"false"`
}

// Module is the HTTP surface of account management: signup, signin, the
// password-reset flow, and identity-guarded profile mutation.
type Module struct {
	cfg      Config
	service  *auth.Service
	tokens   *jwt.Service
	cookies  *cookie.Manager
	mailer   email.EmailSender
	recorder *errorlog.Recorder
	log      *slog.Logger
}

// Option configures the Module.
type Option func(*Module)

// WithLogger sets the module logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.log = l
		}
	}
}

// WithErrorRecorder wires the error-log side channel. Without it, server
// errors are only logged.
func WithErrorRecorder(r *errorlog.Recorder) Option {
	return func(m *Module) {
		m.recorder = r
	}
}

// New assembles the auth module from its collaborators.
func New(
	cfg Config,
	service *auth.Service,
	tokens *jwt.Service,
	cookies *cookie.Manager,
	mailer email.EmailSender,
	opts ...Option,
) *Module {
	m := &Module{
		cfg:     cfg,
		service: service,
		tokens:  tokens,
		cookies: cookies,
		mailer:  mailer,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handle returns the module's router, meant to be mounted at /auth.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/signup", m.handleSignup)
	r.Post("/signin", m.handleSignin)
	r.Post("/logout", m.handleLogout)
	r.Post("/forgot-password", m.handleForgotPassword)
	r.Post("/reset-password/{token}", m.handleResetPassword)
	r.Get("/verify-reset-token/{token}", m.handleVerifyResetToken)

	r.Group(func(g chi.Router) {
		g.Use(m.RequireAuth())
		g.Get("/me", m.handleMe)
		g.Post("/update-profile/{userId}", m.handleUpdateProfile)
		g.Post("/add-address/{userId}", m.handleAddAddress)
		g.Post("/update-address/{userId}/{addressId}", m.handleUpdateAddress)
		g.Post("/delete-address/{userId}/{addressId}", m.handleDeleteAddress)
		g.Post("/set-primary-address/{userId}/{addressId}", m.handleSetPrimaryAddress)
	})

	return r
}

// RequireAuth verifies the session token from the bearer header or the
// session cookie and injects the acting user ID into the request context.
// Other modules mount this to resolve the caller's identity.
func (m *Module) RequireAuth() func(next http.Handler) http.Handler {
	return jwt.MiddlewareWithConfig(jwt.MiddlewareConfig{
		Service:   m.tokens,
		Extractor: jwt.HeaderOrCookieExtractor(SessionCookieName),
		OnError: func(w http.ResponseWriter, r *http.Request, err error) {
			m.respond(w, http.StatusUnauthorized, response{
				Success: false,
				Message: "Authentication required",
			})
		},
	})
}

// guardIdentity enforces that the authenticated user is the one named in
// the path. Returns the user ID, or responds 401 and reports false.
func (m *Module) guardIdentity(w http.ResponseWriter, r *http.Request, pathUserID string) bool {
	userID, ok := jwt.GetUserID(r.Context())
	if !ok || userID != pathUserID {
		m.respond(w, http.StatusUnauthorized, response{
			Success: false,
			Message: "You are not allowed to modify this account",
		})
		return false
	}
	return true
}
