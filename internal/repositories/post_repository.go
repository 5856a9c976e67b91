package repositories

import (
	"context"

	"github.com/dobarx/hivemind/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post lookups
type PostRepository interface {
	GetPostByID(ctx context.Context, id string) (*models.SubPost, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) GetPostByID(ctx context.Context, id string) (*models.SubPost, error) {
	var post models.SubPost
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}
