package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stamp assigns the identity and timestamps a new post receives from the store.
// Fields that are already set are left alone.
func (p *Post) Stamp(now time.Time) error {
	if p.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		p.ID = id.String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	return nil
}

// BeforeCreate is the gorm hook that stamps the post before insertion.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	return p.Stamp(time.Now().UTC())
}

// AddComment adds a comment to the post
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	comment.PostID = p.ID
	p.Comments = append(p.Comments, comment)
	return nil
}

// CommentCount returns the number of comments attached to the post.
func (p *Post) CommentCount() int {
	return len(p.Comments)
}
