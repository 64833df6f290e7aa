package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create stamps and stores a new post. Comments on the post are not stored.
func (r *BadgerPostRepository) Create(ctx context.Context, post *models.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := post.Stamp(time.Now().UTC()); err != nil {
		return err
	}

	data, err := marshalEntity(post)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(postKey(post.ID), data)
	})
}

// GetByID retrieves a post by ID, optionally with its comments.
func (r *BadgerPostRepository) GetByID(ctx context.Context, id string, inc Include) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		if err := getPost(txn, id, &post); err != nil {
			return err
		}
		if !inc.Comments {
			return nil
		}
		comments, err := listComments(txn, id)
		if err != nil {
			return err
		}
		post.Comments = comments
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves every post in creation order, optionally with comments.
func (r *BadgerPostRepository) List(ctx context.Context, inc Include) ([]*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	posts := []*models.Post{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			posts = append(posts, &post)
		}

		if !inc.Comments {
			return nil
		}
		for _, post := range posts {
			comments, err := listComments(txn, post.ID)
			if err != nil {
				return err
			}
			post.Comments = comments
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func getPost(txn *badger.Txn, id string, post *models.Post) error {
	item, err := txn.Get(postKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, post)
	})
}
