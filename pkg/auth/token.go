package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoCredential means no bearer token was presented at all.
	ErrNoCredential = errors.New("no credential presented")
	// ErrInvalidCredential covers malformed, expired and tampered tokens.
	ErrInvalidCredential = errors.New("invalid credential")
)

// Identity is the verified caller extracted from a token.
type Identity struct {
	Email string
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies access tokens with a process-wide
// HMAC secret. Verification is pure: no storage access.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the email claim, expiring after the
// configured lifetime.
func (s *TokenService) Issue(email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature and expiry and returns the caller identity.
// An empty token is ErrNoCredential; anything else that fails to
// validate is ErrInvalidCredential.
func (s *TokenService) Verify(raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, ErrNoCredential
	}

	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	if c.Email == "" {
		return Identity{}, fmt.Errorf("%w: missing email claim", ErrInvalidCredential)
	}

	return Identity{Email: c.Email}, nil
}
