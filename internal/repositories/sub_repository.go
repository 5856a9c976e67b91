package repositories

import (
	"context"

	"github.com/dobarx/hivemind/backend/internal/models"
	"gorm.io/gorm"
)

// SubRepository defines the interface for sub lookups
type SubRepository interface {
	GetSubByID(ctx context.Context, id string) (*models.Sub, error)
}

type subRepository struct {
	db *gorm.DB
}

func NewSubRepository(db *gorm.DB) SubRepository {
	return &subRepository{db: db}
}

func (r *subRepository) GetSubByID(ctx context.Context, id string) (*models.Sub, error) {
	var sub models.Sub
	if err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}
