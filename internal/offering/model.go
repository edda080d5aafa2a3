package offering

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("service not found")

type Category string

const (
	CategoryHaircare Category = "HAIRCARE"
	CategoryNails    Category = "NAILS"
	CategorySkincare Category = "SKINCARE"
	CategoryMassage  Category = "MASSAGE"
	CategoryDiet     Category = "DIET"
	CategoryFitness  Category = "FITNESS"
	CategoryOther    Category = "OTHER"
)

var Categories = []Category{
	CategoryHaircare, CategoryNails, CategorySkincare, CategoryMassage,
	CategoryDiet, CategoryFitness, CategoryOther,
}

// OfferedService is a priced listing a provider offers.
type OfferedService struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	Price       float64   `gorm:"type:numeric(12,2);not null" json:"price"`
	Category    Category  `gorm:"type:varchar(32);not null" json:"category"`
	CreatedAt   time.Time `json:"created"`
	UpdatedAt   time.Time `json:"updated"`
}

func (OfferedService) TableName() string { return "offered_services" }

type Repository interface {
	List(ctx context.Context) ([]OfferedService, error)
	Get(ctx context.Context, id uint64) (*OfferedService, error)
	Create(ctx context.Context, s *OfferedService) error
	Save(ctx context.Context, s *OfferedService) error
	Delete(ctx context.Context, id uint64) error
}
