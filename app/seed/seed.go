// Package seed fills an empty store with sample posts and comments.
package seed

import (
	"context"
	"fmt"

	"postboard/app/models"
	"postboard/app/services"

	"github.com/rs/zerolog"
)

type samplePost struct {
	Title    string
	Content  string
	Comments []string
}

var samplePosts = []samplePost{
	{
		Title:   "My First Seeded Post",
		Content: "This is the content of my first seeded blog post. It's great!",
		Comments: []string{
			"Awesome post! Loved it.",
			"Very insightful, thanks for sharing.",
		},
	},
	{
		Title:    "Another Seeded Post",
		Content:  "This is the second seeded post, equally amazing.",
		Comments: []string{"Great read!"},
	},
}

// Run inserts the sample posts through the services when the store holds no
// posts yet. It returns the number of posts created, which is zero when the
// store was already populated.
func Run(ctx context.Context, posts *services.PostService, comments *services.CommentService, log zerolog.Logger) (int, error) {
	existing, err := posts.ListPosts(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Info().Int("posts", len(existing)).Msg("store already has posts, skipping seed")
		return 0, nil
	}

	log.Info().Msg("start seeding")
	for _, sample := range samplePosts {
		post, err := posts.CreatePost(ctx, models.CreatePostInput{Title: sample.Title, Content: sample.Content})
		if err != nil {
			return 0, fmt.Errorf("failed to seed post %q: %w", sample.Title, err)
		}
		log.Info().Str("post_id", post.ID).Msg("created post")

		for _, content := range sample.Comments {
			if _, err := comments.AddComment(ctx, post.ID, models.CreateCommentInput{Content: content}); err != nil {
				return 0, fmt.Errorf("failed to seed comment on %s: %w", post.ID, err)
			}
		}
	}
	log.Info().Msg("seeding finished")

	return len(samplePosts), nil
}
