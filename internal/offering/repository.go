package offering

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) List(ctx context.Context) ([]OfferedService, error) {
	var out []OfferedService
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return out, nil
}

func (r *GormRepository) Get(ctx context.Context, id uint64) (*OfferedService, error) {
	var s OfferedService
	err := r.db.WithContext(ctx).Take(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get service %d: %w", id, err)
	}
	return &s, nil
}

func (r *GormRepository) Create(ctx context.Context, s *OfferedService) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

func (r *GormRepository) Save(ctx context.Context, s *OfferedService) error {
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return fmt.Errorf("save service %d: %w", s.ID, err)
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&OfferedService{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete service %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
