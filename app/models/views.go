package models

import "time"

// PostSummary is the list view of a post.
type PostSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PostDetail is the single-post view, including nested comments.
type PostDetail struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Comments  []CommentView `json:"comments"`
}

// CommentView is the public projection of a comment nested in a post.
type CommentView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreatedComment is returned from comment creation only; it carries the
// parent post id, which nested comments do not.
type CreatedComment struct {
	CommentView
	PostID string `json:"postId"`
}

// NewPostSummary projects a post for listing.
func NewPostSummary(p *Post) PostSummary {
	return PostSummary{
		ID:           p.ID,
		Title:        p.Title,
		CommentCount: p.CommentCount(),
		CreatedAt:    p.CreatedAt,
	}
}

// NewPostSummaries projects posts for listing, keeping their order.
// The result is never nil.
func NewPostSummaries(posts []*Post) []PostSummary {
	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostSummary(p))
	}
	return out
}

// NewPostDetail projects a post and its comments. Comments is never nil so
// that an empty collection encodes as [].
func NewPostDetail(p *Post) PostDetail {
	comments := make([]CommentView, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, NewCommentView(c))
	}
	return PostDetail{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Comments:  comments,
	}
}

// NewCommentView projects a comment nested in a post.
func NewCommentView(c *Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

// NewCreatedComment projects a freshly created comment with its post id.
func NewCreatedComment(c *Comment) CreatedComment {
	return CreatedComment{
		CommentView: NewCommentView(c),
		PostID:      c.PostID,
	}
}
