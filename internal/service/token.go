package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/msomdec/shelfnotes/internal/domain"
)

// TokenConfig is the signing configuration resolved at startup.
type TokenConfig struct {
	Secret    string
	Algorithm string
	TTL       time.Duration
}

// AccessToken is a signed bearer token together with its expiry.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService issues and verifies HMAC-signed JWT access tokens whose
// subject is a username.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService validates cfg and creates a TokenService. Only the HMAC
// family (HS256, HS384, HS512) is supported.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}
	if cfg.Secret == "" {
		return nil, errors.New("signing secret is empty")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", cfg.TTL)
	}
	return &TokenService{
		secret: []byte(cfg.Secret),
		method: method,
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

// WithClock returns a copy of the service that reads the current time from
// now when issuing and verifying.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	c := *s
	c.now = now
	return &c
}

// DefaultTTL returns the configured token lifetime.
func (s *TokenService) DefaultTTL() time.Duration {
	return s.ttl
}

// Issue signs a token for subject that expires ttl from now. A non-positive
// ttl uses the configured default.
func (s *TokenService) Issue(subject string, ttl time.Duration) (AccessToken, error) {
	if subject == "" {
		return AccessToken{}, fmt.Errorf("%w: token subject is required", domain.ErrInvalidInput)
	}
	if ttl <= 0 {
		ttl = s.ttl
	}

	now := s.now()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign token: %w", err)
	}
	return AccessToken{Token: signed, ExpiresAt: exp}, nil
}

// Verify checks the signature, algorithm and expiry of token and returns its
// subject. Every rejection is reported as domain.ErrUnauthorized.
func (s *TokenService) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrUnauthorized
	}
	return claims.Subject, nil
}
