package services

import (
	"context"
	"errors"
	"fmt"

	"postboard/app/models"
	"postboard/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost validates the input and stores a new post. The returned post has
// an empty comment collection.
func (s *PostService) CreatePost(ctx context.Context, in models.CreatePostInput) (*models.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	post.Comments = []*models.Comment{}

	return post, nil
}

// GetPost retrieves a post by ID with its comments
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, repositories.Include{Comments: true})
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &models.PostNotFoundError{PostID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post %s: %w", id, err)
	}
	return post, nil
}

// Exists returns nil when the post is stored and a PostNotFoundError when it
// is not. Comments are not loaded.
func (s *PostService) Exists(ctx context.Context, id string) error {
	_, err := s.postRepo.GetByID(ctx, id, repositories.Include{})
	if errors.Is(err, repositories.ErrNotFound) {
		return &models.PostNotFoundError{PostID: id}
	}
	if err != nil {
		return fmt.Errorf("failed to look up post %s: %w", id, err)
	}
	return nil
}

// ListPosts retrieves every post with its comments, in creation order
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx, repositories.Include{Comments: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}
