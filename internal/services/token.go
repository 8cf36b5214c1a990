package services

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/travelbuddy-app/travelbuddy-backend/internal/config"
)

// ErrInvalidToken is returned for tokens that fail verification.
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer mints and checks bearer tokens for authenticated emails.
// Two schemes exist behind this interface so the legacy format can be
// swapped out without touching call sites.
type TokenIssuer interface {
	Issue(email string) (string, error)
	Verify(token string) (string, error)
}

// NewTokenIssuer picks the issuer for the configured scheme. Anything
// other than "jwt" falls back to the compatible mock scheme.
func NewTokenIssuer(cfg *config.Config) TokenIssuer {
	if cfg.TokenScheme == "jwt" {
		return &JWTTokenIssuer{
			secret: []byte(cfg.SecretKey),
			expiry: time.Duration(cfg.JWTExpiryDays) * 24 * time.Hour,
		}
	}
	return &MockTokenIssuer{}
}

const mockTokenPrefix = "mock-jwt-token-"

// MockTokenIssuer reproduces the original demo tokens: a constant prefix
// concatenated with the email. The token carries no verifiable claims and
// never expires. Known weakness, kept as the default for compatibility.
type MockTokenIssuer struct{}

func (i *MockTokenIssuer) Issue(email string) (string, error) {
	return mockTokenPrefix + email, nil
}

func (i *MockTokenIssuer) Verify(token string) (string, error) {
	if !strings.HasPrefix(token, mockTokenPrefix) {
		return "", ErrInvalidToken
	}
	email := strings.TrimPrefix(token, mockTokenPrefix)
	if email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}

// JWTTokenIssuer mints signed HS256 tokens with the email as subject.
type JWTTokenIssuer struct {
	secret []byte
	expiry time.Duration
}

func (i *JWTTokenIssuer) Issue(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(i.expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *JWTTokenIssuer) Verify(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.New("token expired")
		}
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}
