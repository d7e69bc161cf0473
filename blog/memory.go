package blog

import (
	"context"
	"fmt"
	"sync"

	"github.com/drblury/bloglist/ident"
)

// MemoryStore is a Store implementation powered by a slice, to be used for
// tests and throwaway instances.
type MemoryStore struct {
	sync.Mutex
	posts []Post
}

// NewMemoryStore returns a store holding seed, in order. Seed posts without
// an identifier are given one.
func NewMemoryStore(seed ...Post) *MemoryStore {
	s := &MemoryStore{posts: make([]Post, 0, len(seed))}
	for _, p := range seed {
		if p.ID == "" {
			p.ID = ident.New()
		}
		s.posts = append(s.posts, p)
	}
	return s
}

func (s *MemoryStore) List(ctx context.Context) ([]Post, error) {
	s.Lock()
	defer s.Unlock()
	posts := make([]Post, len(s.posts))
	copy(posts, s.posts)
	return posts, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Post, error) {
	if !ident.Valid(id) {
		return Post{}, fmt.Errorf("%.40q: %w", id, ErrInvalidID)
	}
	s.Lock()
	defer s.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.posts[i], nil
	}
	return Post{}, fmt.Errorf("%.40q: %w", id, ErrNotFound)
}

func (s *MemoryStore) Create(ctx context.Context, p Post) (Post, error) {
	p.ID = ident.New()
	s.Lock()
	s.posts = append(s.posts, p)
	s.Unlock()
	return p, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if !ident.Valid(id) {
		return fmt.Errorf("%.40q: %w", id, ErrInvalidID)
	}
	s.Lock()
	defer s.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.posts = append(s.posts[:i], s.posts[i+1:]...)
	}
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Clear drops every post.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.Lock()
	s.posts = s.posts[:0]
	s.Unlock()
	return nil
}

func (s *MemoryStore) indexOf(id string) int {
	for i, p := range s.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
