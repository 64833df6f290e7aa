package repositories

import (
	"context"

	"postboard/app/models"
)

// Include selects the relations loaded alongside a post.
type Include struct {
	Comments bool
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string, inc Include) (*models.Post, error)
	List(ctx context.Context, inc Include) ([]*models.Post, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
}
