package mock

import (
	"context"
	"sync"
	"time"

	"postboard/app/models"
	"postboard/app/repositories"
)

// Store is an in-memory stand-in for a persistence adapter.
type Store struct {
	mutex    sync.RWMutex
	posts    []*models.Post
	comments map[string][]*models.Comment
	err      error
}

type PostRepository struct{ s *Store }

type CommentRepository struct{ s *Store }

func NewStore() *Store {
	return &Store{comments: make(map[string][]*models.Comment)}
}

func (s *Store) Posts() *PostRepository {
	return &PostRepository{s: s}
}

func (s *Store) Comments() *CommentRepository {
	return &CommentRepository{s: s}
}

func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.posts = nil
	s.comments = make(map[string][]*models.Comment)
}

// PostCount reports how many posts have been stored.
func (s *Store) PostCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.posts)
}

// CommentCount reports how many comments have been stored across all posts.
func (s *Store) CommentCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	n := 0
	for _, c := range s.comments {
		n += len(c)
	}
	return n
}

// PostRepository implementation
func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if m.s.err != nil {
		return m.s.err
	}

	if err := post.Stamp(time.Now().UTC()); err != nil {
		return err
	}
	stored := *post
	stored.Comments = nil
	m.s.posts = append(m.s.posts, &stored)
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id string, inc repositories.Include) (*models.Post, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if m.s.err != nil {
		return nil, m.s.err
	}

	for _, p := range m.s.posts {
		if p.ID == id {
			return m.s.load(p, inc), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *PostRepository) List(ctx context.Context, inc repositories.Include) ([]*models.Post, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if m.s.err != nil {
		return nil, m.s.err
	}

	posts := make([]*models.Post, 0, len(m.s.posts))
	for _, p := range m.s.posts {
		posts = append(posts, m.s.load(p, inc))
	}
	return posts, nil
}

// load returns a copy of the stored post so callers cannot mutate the store.
func (s *Store) load(p *models.Post, inc repositories.Include) *models.Post {
	post := *p
	post.Comments = nil
	if inc.Comments {
		post.Comments = []*models.Comment{}
		for _, c := range s.comments[p.ID] {
			comment := *c
			_ = post.AddComment(&comment)
		}
	}
	return &post
}

// CommentRepository implementation
func (m *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if m.s.err != nil {
		return m.s.err
	}

	found := false
	for _, p := range m.s.posts {
		if p.ID == comment.PostID {
			found = true
			break
		}
	}
	if !found {
		return repositories.ErrNotFound
	}

	if err := comment.Stamp(time.Now().UTC()); err != nil {
		return err
	}
	stored := *comment
	m.s.comments[comment.PostID] = append(m.s.comments[comment.PostID], &stored)
	return nil
}

// SetErr makes subsequent calls fail with err (nil restores normal behaviour).
func (s *Store) SetErr(err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.err = err
}
