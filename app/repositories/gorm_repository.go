package repositories

import (
	"context"
	"errors"

	"postboard/app/models"

	"gorm.io/gorm"
)

// GormPostRepository implements PostRepository on a relational database.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create inserts a new post without its comments.
func (r *GormPostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit("Comments").Create(post).Error
}

// GetByID retrieves a post by ID, optionally with its comments.
func (r *GormPostRepository) GetByID(ctx context.Context, id string, inc Include) (*models.Post, error) {
	var post models.Post
	err := withComments(r.db.WithContext(ctx), inc).
		Where("id = ?", id).
		Take(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves every post in creation order, optionally with comments.
func (r *GormPostRepository) List(ctx context.Context, inc Include) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := withComments(r.db.WithContext(ctx), inc).
		Order("created_at, id").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func withComments(db *gorm.DB, inc Include) *gorm.DB {
	if !inc.Comments {
		return db
	}
	return db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at, id")
	})
}

// GormCommentRepository implements CommentRepository on a relational database.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create inserts a comment after confirming its post exists in the same
// transaction. SQLite does not enforce foreign keys unless asked to.
func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Post{}).Where("id = ?", comment.PostID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return tx.Create(comment).Error
	})
}

