package repositories

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBadgerStore(t *testing.T) *Store {
	store, err := Open(Options{Driver: DriverBadger, BadgerPath: InMemory, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func setupSQLiteStore(t *testing.T) *Store {
	dsn := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(Options{Driver: DriverSQLite, DSN: dsn, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func forEachStore(t *testing.T, fn func(t *testing.T, store *Store)) {
	stores := map[string]func(*testing.T) *Store{
		"badger": setupBadgerStore,
		"sqlite": setupSQLiteStore,
	}
	for name, setup := range stores {
		t.Run(name, func(t *testing.T) {
			fn(t, setup(t))
		})
	}
}

func TestPostRepository(t *testing.T) {
	ctx := context.Background()

	forEachStore(t, func(t *testing.T, store *Store) {
		t.Run("create and get post", func(t *testing.T) {
			post := &models.Post{Title: "Test Post", Content: "This is a test post content"}

			require.NoError(t, store.Posts.Create(ctx, post))
			assert.NotEmpty(t, post.ID)
			assert.False(t, post.CreatedAt.IsZero())
			assert.False(t, post.UpdatedAt.IsZero())

			retrieved, err := store.Posts.GetByID(ctx, post.ID, Include{Comments: true})
			require.NoError(t, err)
			assert.Equal(t, post.ID, retrieved.ID)
			assert.Equal(t, post.Title, retrieved.Title)
			assert.Equal(t, post.Content, retrieved.Content)
			assert.Empty(t, retrieved.Comments)
		})

		t.Run("get unknown post", func(t *testing.T) {
			_, err := store.Posts.GetByID(ctx, "nonexistent", Include{Comments: true})
			assert.ErrorIs(t, err, ErrNotFound)
		})

		t.Run("get post with comments in creation order", func(t *testing.T) {
			post := &models.Post{Title: "Post with Comments", Content: "This post has comments"}
			require.NoError(t, store.Posts.Create(ctx, post))

			for i := 0; i < 5; i++ {
				comment := &models.Comment{PostID: post.ID, Content: fmt.Sprintf("comment %d", i)}
				require.NoError(t, store.Comments.Create(ctx, comment))
			}

			retrieved, err := store.Posts.GetByID(ctx, post.ID, Include{Comments: true})
			require.NoError(t, err)
			require.Len(t, retrieved.Comments, 5)
			for i, c := range retrieved.Comments {
				assert.Equal(t, fmt.Sprintf("comment %d", i), c.Content)
				assert.Equal(t, post.ID, c.PostID)
			}

			without, err := store.Posts.GetByID(ctx, post.ID, Include{})
			require.NoError(t, err)
			assert.Empty(t, without.Comments)
		})
	})
}

func TestPostRepositoryList(t *testing.T) {
	ctx := context.Background()

	forEachStore(t, func(t *testing.T, store *Store) {
		posts, err := store.Posts.List(ctx, Include{Comments: true})
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)

		var ids []string
		for i := 0; i < 12; i++ {
			post := &models.Post{Title: fmt.Sprintf("Post %d", i), Content: "Content"}
			require.NoError(t, store.Posts.Create(ctx, post))
			ids = append(ids, post.ID)
		}
		for i := 0; i < 3; i++ {
			require.NoError(t, store.Comments.Create(ctx, &models.Comment{PostID: ids[1], Content: "c"}))
		}

		posts, err = store.Posts.List(ctx, Include{Comments: true})
		require.NoError(t, err)
		require.Len(t, posts, 12)
		for i, p := range posts {
			assert.Equal(t, ids[i], p.ID, "posts listed in creation order")
		}
		assert.Len(t, posts[0].Comments, 0)
		assert.Len(t, posts[1].Comments, 3)

		again, err := store.Posts.List(ctx, Include{Comments: true})
		require.NoError(t, err)
		assert.Equal(t, len(posts), len(again))
		for i := range posts {
			assert.Equal(t, posts[i].ID, again[i].ID)
			assert.Equal(t, len(posts[i].Comments), len(again[i].Comments))
		}
	})
}

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()

	forEachStore(t, func(t *testing.T, store *Store) {
		t.Run("create comment for unknown post", func(t *testing.T) {
			comment := &models.Comment{PostID: "nonexistent", Content: "orphan"}
			err := store.Comments.Create(ctx, comment)
			assert.ErrorIs(t, err, ErrNotFound)

			posts, err := store.Posts.List(ctx, Include{Comments: true})
			require.NoError(t, err)
			for _, p := range posts {
				assert.Empty(t, p.Comments)
			}
		})
	})
}

// SQLite serialises writers with a file lock, so only badger is exercised
// with concurrent writers.
func TestConcurrentComments(t *testing.T) {
	store := setupBadgerStore(t)
	ctx := context.Background()

	post := &models.Post{Title: "Busy", Content: "Many comments"}
	require.NoError(t, store.Posts.Create(ctx, post))

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- store.Comments.Create(ctx, &models.Comment{PostID: post.ID, Content: fmt.Sprintf("c%d", i)})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	retrieved, err := store.Posts.GetByID(ctx, post.ID, Include{Comments: true})
	require.NoError(t, err)
	assert.Len(t, retrieved.Comments, 10)
}

func TestCanceledContext(t *testing.T) {
	store := setupBadgerStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Posts.Create(ctx, &models.Post{Title: "T", Content: "C"})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = store.Posts.List(ctx, Include{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBadgerLayout(t *testing.T) {
	store := setupBadgerStore(t)
	ctx := context.Background()

	post := &models.Post{Title: "Layout", Content: "Keys"}
	require.NoError(t, store.Posts.Create(ctx, post))
	comment := &models.Comment{PostID: post.ID, Content: "nested"}
	require.NoError(t, store.Comments.Create(ctx, comment))

	err := store.badger.View(func(txn *badger.Txn) error {
		if _, err := txn.Get(postKey(post.ID)); err != nil {
			return err
		}
		_, err := txn.Get(commentKey(post.ID, comment.ID))
		return err
	})
	assert.NoError(t, err)
}
