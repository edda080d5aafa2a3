package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type jwtService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
	parser    *jwt.Parser
}

type Option func(*jwtService)

// WithClock replaces time.Now for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *jwtService) {
		s.now = now
	}
}

func NewJWTService(cfg TokenConfig, opts ...Option) Service {
	s := &jwtService{
		secretKey: []byte(cfg.Secret),
		ttl:       cfg.TTL,
		now:       time.Now,
		// Expiry is checked by hand below: exp equal to now stays valid,
		// and iat/nbf are not looked at.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
			jwt.WithStrictDecoding(),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *jwtService) GenerateToken(subject, role string) (string, error) {
	return s.IssueToken(subject, role, s.ttl)
}

func (s *jwtService) IssueToken(subject, role string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenRejected, err)
	}
	if !token.Valid {
		return nil, ErrTokenRejected
	}

	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp", ErrTokenRejected)
	}
	if claims.ExpiresAt.Time.Before(s.now()) {
		return nil, fmt.Errorf("%w: %w", ErrTokenRejected, ErrTokenExpired)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub", ErrTokenRejected)
	}

	return claims, nil
}

// IsExpired reports whether err came from an expired token.
func IsExpired(err error) bool {
	return errors.Is(err, ErrTokenExpired)
}
