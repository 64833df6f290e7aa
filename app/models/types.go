package models

import "time"

// Post represents a blog post with comments.
type Post struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title     string     `json:"title" gorm:"type:varchar(200);not null"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Comments  []*Comment `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// Comment represents a comment on a blog post.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Content   string    `json:"content" gorm:"type:varchar(1000);not null"`
	PostID    string    `json:"postId" gorm:"type:varchar(36);not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreatePostInput is the body accepted when creating a post.
type CreatePostInput struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required,min=1,max=10000"`
}

// CreateCommentInput is the body accepted when adding a comment.
type CreateCommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
