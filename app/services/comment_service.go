package services

import (
	"context"
	"errors"
	"fmt"

	"postboard/app/models"
	"postboard/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// AddComment validates the input and stores a comment on postID. Callers are
// expected to have resolved the post already; if the store still reports the
// post missing, a PostNotFoundError is returned and nothing is written.
func (s *CommentService) AddComment(ctx context.Context, postID string, in models.CreateCommentInput) (*models.Comment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  postID,
		Content: in.Content,
	}
	err := s.commentRepo.Create(ctx, comment)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &models.PostNotFoundError{PostID: postID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}
