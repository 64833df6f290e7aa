package repositories

import (
	"testing"

	"postboard/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "post:abc", string(postKey("abc")))
	assert.Equal(t, "comment:abc:def", string(commentKey("abc", "def")))
	assert.Equal(t, "comment:abc:", string(commentPrefix("abc")))

	// A post's comment prefix must not match comments of a post whose id
	// merely starts with the same characters.
	assert.NotContains(t, string(commentKey("abcd", "x")), string(commentPrefix("abc")))
}

func TestMarshalEntity(t *testing.T) {
	t.Run("post round trip drops comments", func(t *testing.T) {
		post := &models.Post{
			ID:       "p1",
			Title:    "Test Post",
			Content:  "Test Content",
			Comments: []*models.Comment{{ID: "c1"}},
		}

		data, err := marshalEntity(post)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "c1")

		var decoded models.Post
		require.NoError(t, unmarshalEntity(data, &decoded))
		assert.Equal(t, post.ID, decoded.ID)
		assert.Equal(t, post.Title, decoded.Title)
		assert.Nil(t, decoded.Comments)
	})

	t.Run("invalid data", func(t *testing.T) {
		var post models.Post
		err := unmarshalEntity([]byte("{not json"), &post)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal entity")
	})
}
