package offering

import (
	"context"

	"github.com/rs/zerolog"
)

// Patch holds optional updates; nil fields keep their stored value.
type Patch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *Category
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]OfferedService, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uint64) (*OfferedService, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in OfferedService) (*OfferedService, error) {
	in.ID = 0
	if err := s.repo.Create(ctx, &in); err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Uint64("service_id", in.ID).Str("category", string(in.Category)).Msg("service created")
	return &in, nil
}

func (s *Service) Update(ctx context.Context, id uint64, p Patch) (*OfferedService, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		existing.Name = *p.Name
	}
	if p.Description != nil {
		existing.Description = *p.Description
	}
	if p.Price != nil {
		existing.Price = *p.Price
	}
	if p.Category != nil {
		existing.Category = *p.Category
	}

	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Uint64("service_id", id).Msg("service deleted")
	return nil
}
