package jwt

import (
	"net/http"
	"strings"
)

// TokenExtractorFunc extracts a token from an HTTP request.
type TokenExtractorFunc func(r *http.Request) (string, error)

// ErrorResponderFunc writes the unauthorized response. Lets the mounting
// module keep its own response format (JSON for the API surface).
type ErrorResponderFunc func(w http.ResponseWriter, r *http.Request, err error)

// MiddlewareConfig configures request-gating behavior.
type MiddlewareConfig struct {
	Service   *Service
	Extractor TokenExtractorFunc
	OnError   ErrorResponderFunc
}

// Middleware verifies the session token on every request and injects the
// resolved user ID into the context. This is the capability other modules
// (orders, bookmarks, ratings) mount to resolve the acting identity.
func Middleware(service *Service) func(next http.Handler) http.Handler {
	return MiddlewareWithConfig(MiddlewareConfig{Service: service})
}

// MiddlewareWithConfig verifies tokens with a custom extractor and error
// responder. Defaults: bearer-header extraction and a plain-text 401.
func MiddlewareWithConfig(config MiddlewareConfig) func(next http.Handler) http.Handler {
	if config.Extractor == nil {
		config.Extractor = BearerTokenExtractor
	}
	if config.OnError == nil {
		config.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := config.Extractor(r)
			if err != nil {
				config.OnError(w, r, err)
				return
			}

			userID, err := config.Service.Verify(tokenString)
			if err != nil {
				config.OnError(w, r, err)
				return
			}

			ctx := SetToken(r.Context(), tokenString)
			ctx = SetUserID(ctx, userID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerTokenExtractor extracts tokens from "Authorization: Bearer <token>"
// headers per RFC 6750.
func BearerTokenExtractor(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", ErrInvalidToken
	}

	return parts[1], nil
}

// CookieTokenExtractor extracts tokens from the named cookie.
func CookieTokenExtractor(cookieName string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		cookie, err := r.Cookie(cookieName)
		if err != nil || cookie.Value == "" {
			return "", ErrNoToken
		}
		return cookie.Value, nil
	}
}

// HeaderOrCookieExtractor tries the Authorization header first and falls
// back to the named cookie, so either transport satisfies authorization.
// The bearer header wins when both are present.
func HeaderOrCookieExtractor(cookieName string) TokenExtractorFunc {
	fromCookie := CookieTokenExtractor(cookieName)
	return func(r *http.Request) (string, error) {
		if token, err := BearerTokenExtractor(r); err == nil {
			return token, nil
		}
		return fromCookie(r)
	}
}
