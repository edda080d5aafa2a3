package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenRejected covers every verification failure. Callers must not
	// distinguish causes towards clients.
	ErrTokenRejected = errors.New("token rejected")
	// ErrTokenExpired is wrapped together with ErrTokenRejected when exp has passed.
	ErrTokenExpired = errors.New("token expired")
)

// Claims carries sub, role, iat and exp. No other registered claims are set.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Service interface {
	// GenerateToken issues a token with the configured TTL.
	GenerateToken(subject, role string) (string, error)
	IssueToken(subject, role string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// TokenConfig is shared read-only by all token operations.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}
