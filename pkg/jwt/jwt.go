package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// JWT header constants required by RFC 7519.
const (
	HeaderType      = "JWT"
	HeaderAlgorithm = "HS256"
)

// DefaultSessionTTL is how long an issued session token stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Header represents the JWT header as defined in RFC 7515.
type Header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// SessionClaims is the payload of a session token: a self-contained
// assertion of who the requester is and until when. Nothing is persisted
// server-side; signature plus expiry are the whole authorization story.
type SessionClaims struct {
	Subject   string `json:"sub"` // user ID
	IssuedAt  int64  `json:"iat"` // Unix timestamp
	ExpiresAt int64  `json:"exp"` // Unix timestamp
}

// Valid checks the temporal claims against the current time. Zero values
// are treated as unset per RFC 7519.
func (c SessionClaims) Valid() error {
	now := time.Now().Unix()

	if c.ExpiresAt > 0 && now > c.ExpiresAt {
		return ErrExpiredToken
	}
	if c.IssuedAt > 0 && c.IssuedAt > now+60 {
		// Small clock-skew allowance; a token "issued in the future"
		// beyond that is forged or misconfigured.
		return ErrInvalidToken
	}

	return nil
}

// Service issues and verifies session tokens signed with HMAC-SHA256. The
// signing key is configuration-supplied and held in memory only.
type Service struct {
	signingKey []byte
	ttl        time.Duration
}

// Option configures the Service.
type Option func(*Service)

// WithTTL overrides the session token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// New creates a token service. The key should be at least 32 bytes for
// adequate HMAC-SHA256 strength; an empty key is refused so a missing
// JWT_SECRET can never silently fall back to an insecure default.
func New(signingKey string, opts ...Option) (*Service, error) {
	if signingKey == "" {
		return nil, ErrMissingSigningKey
	}

	s := &Service{
		signingKey: []byte(signingKey),
		ttl:        DefaultSessionTTL,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// TTL reports the configured session token lifetime.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue creates a signed session token for the given user ID, expiring TTL
// from now.
func (s *Service) Issue(userID string) (string, error) {
	if userID == "" {
		return "", ErrMissingClaims
	}

	now := time.Now()
	return s.Generate(SessionClaims{
		Subject:   userID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	})
}

// Verify validates a session token and returns the embedded user ID.
// Expired tokens fail with ErrExpiredToken, everything else with
// ErrInvalidToken or ErrInvalidSignature.
func (s *Service) Verify(tokenString string) (string, error) {
	var claims SessionClaims
	if err := s.Parse(tokenString, &claims); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Generate creates a signed JWT for any JSON-serializable claims structure.
func (s *Service) Generate(claims any) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}

	headerJSON, err := json.Marshal(Header{Type: HeaderType, Algorithm: HeaderAlgorithm})
	if err != nil {
		return "", fmt.Errorf("failed to marshal header: %w", err)
	}

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}

	payload := base64URLEncode(headerJSON) + "." + base64URLEncode(claimsJSON)

	return payload + "." + s.sign(payload), nil
}

// Parse verifies a token's signature and algorithm, unmarshals its claims,
// and runs temporal validation when the claims type implements Valid().
func (s *Service) Parse(tokenString string, claims any) error {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return ErrInvalidToken
	}

	// Constant-time signature comparison before touching the payload.
	payload := parts[0] + "." + parts[1]
	expected := s.sign(payload)
	if subtle.ConstantTimeCompare([]byte(parts[2]), []byte(expected)) != 1 {
		return ErrInvalidSignature
	}

	headerJSON, err := base64URLDecode(parts[0])
	if err != nil {
		return ErrInvalidToken
	}

	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return ErrInvalidToken
	}

	// Pin the algorithm to prevent confusion attacks.
	if header.Algorithm != HeaderAlgorithm {
		return ErrUnexpectedSigningMethod
	}

	claimsJSON, err := base64URLDecode(parts[1])
	if err != nil {
		return ErrInvalidToken
	}

	if err := json.Unmarshal(claimsJSON, claims); err != nil {
		return fmt.Errorf("failed to unmarshal claims: %w", err)
	}

	if validator, ok := claims.(interface{ Valid() error }); ok {
		if err := validator.Valid(); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) sign(payload string) string {
	h := hmac.New(sha256.New, s.signingKey)
	h.Write([]byte(payload))
	return base64URLEncode(h.Sum(nil))
}

func base64URLEncode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func base64URLDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
