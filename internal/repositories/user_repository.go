package repositories

import (
	"context"

	"github.com/dobarx/hivemind/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user lookups
type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
