package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mantas/appointments/internal/auth"
	"github.com/mantas/appointments/internal/metrics"
	"github.com/mantas/appointments/internal/password"
	"github.com/rs/zerolog"
)

// Service registers users and exchanges credentials for tokens.
type Service struct {
	repo    Repository
	hasher  password.Hasher
	tokens  auth.Service
	metrics *metrics.Auth
	now     func() time.Time

	// dummyHash is verified against when the username is unknown so both
	// login failures cost one bcrypt comparison.
	dummyHash string
}

type ServiceOption func(*Service)

func WithMetrics(m *metrics.Auth) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

func NewService(repo Repository, hasher password.Hasher, tokens auth.Service, opts ...ServiceOption) (*Service, error) {
	s := &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	s.dummyHash = dummy
	return s, nil
}

// RoleFor turns a role input such as "provider" into "ROLE_PROVIDER".
func RoleFor(input string) string {
	return rolePrefix + strings.ToUpper(input)
}

func (s *Service) Register(ctx context.Context, username, plaintext, roleInput string) error {
	log := zerolog.Ctx(ctx)

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		s.metrics.RecordRegistration("duplicate")
		return ErrDuplicateUser
	} else if !errors.Is(err, ErrNotFound) {
		s.metrics.RecordRegistration("error")
		return err
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		s.metrics.RecordRegistration("error")
		return err
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         RoleFor(roleInput),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			s.metrics.RecordRegistration("duplicate")
		} else {
			s.metrics.RecordRegistration("error")
		}
		return err
	}

	s.metrics.RecordRegistration("success")
	log.Info().Str("user_id", u.ID).Str("role", u.Role).Msg("user registered")
	return nil
}

func (s *Service) Login(ctx context.Context, username, plaintext string) (string, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, ErrNotFound):
		s.hasher.Verify(plaintext, s.dummyHash)
		s.metrics.RecordLogin("invalid_credentials")
		return "", ErrInvalidCredentials
	case err != nil:
		s.metrics.RecordLogin("error")
		return "", err
	}

	if !s.hasher.Verify(plaintext, u.PasswordHash) {
		s.metrics.RecordLogin("invalid_credentials")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(u.Username, u.Role)
	if err != nil {
		s.metrics.RecordLogin("error")
		return "", err
	}

	s.metrics.RecordLogin("success")
	zerolog.Ctx(ctx).Debug().Str("user_id", u.ID).Msg("token issued")
	return token, nil
}
