package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"postboard/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentController(t *testing.T) {
	store, router := setupTestControllers()
	post := createPost(t, router, "Test Post", "Test Content")

	t.Run("create comment", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/posts/"+post.ID+"/comments", `{"content": "This is a test comment"}`)
		assert.Equal(t, http.StatusCreated, w.Code)

		var comment models.CreatedComment
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))
		assert.NotEmpty(t, comment.ID)
		assert.Equal(t, post.ID, comment.PostID)
		assert.Equal(t, "This is a test comment", comment.Content)
		assert.False(t, comment.CreatedAt.IsZero())
	})

	t.Run("comment appears on post", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/posts/"+post.ID, "")
		require.Equal(t, http.StatusOK, w.Code)

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		comments := raw["comments"].([]interface{})
		require.Len(t, comments, 1)
		nested := comments[0].(map[string]interface{})
		assert.Equal(t, "This is a test comment", nested["content"])
		assert.NotContains(t, nested, "postId")
	})

	t.Run("unknown post", func(t *testing.T) {
		before := store.CommentCount()
		w := doRequest(router, http.MethodPost, "/posts/nonexistent/comments", `{"content": "orphan"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error": "Post with ID nonexistent not found"}`, w.Body.String())
		assert.Equal(t, before, store.CommentCount())
	})

	t.Run("invalid content", func(t *testing.T) {
		before := store.CommentCount()
		for _, body := range []string{
			`{"content": ""}`,
			`{}`,
			`{"content": "` + strings.Repeat("x", 1001) + `"}`,
			`not json`,
			`{"content": "ok"} extra`,
		} {
			w := doRequest(router, http.MethodPost, "/posts/"+post.ID+"/comments", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
		}
		assert.Equal(t, before, store.CommentCount())
	})

	t.Run("trailing whitespace is accepted", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/posts/"+post.ID+"/comments", "{\"content\": \"spaced\"}\n\n")
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("validation is checked before the post", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/posts/nonexistent/comments", `{"content": ""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("comment count in list", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/posts/"+post.ID+"/comments", `{"content": "second"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doRequest(router, http.MethodGet, "/posts", "")
		var summaries []models.PostSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
		require.Len(t, summaries, 1)
		assert.Equal(t, 3, summaries[0].CommentCount)
	})
}
