package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryPostStore is a development-only in-memory implementation.
type InMemoryPostStore struct {
	mu     sync.RWMutex
	posts  map[int64]Post
	nextID int64
}

func NewInMemoryPostStore() *InMemoryPostStore {
	return &InMemoryPostStore{posts: make(map[int64]Post)}
}

func (s *InMemoryPostStore) Create(_ context.Context, p Post) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	p.ID = s.nextID
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = nil
	p.DeletedAt = nil
	s.posts[p.ID] = p
	return p, nil
}

func (s *InMemoryPostStore) Get(_ context.Context, id int64) (Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok || p.DeletedAt != nil {
		return Post{}, ErrNotFound
	}
	return p, nil
}

func (s *InMemoryPostStore) List(_ context.Context, limit, offset int) ([]Post, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit, offset = clampPage(limit, offset)

	live := make([]Post, 0, len(s.posts))
	for _, p := range s.posts {
		if p.DeletedAt == nil {
			live = append(live, p)
		}
	}
	sort.Slice(live, func(i, j int) bool {
		if !live[i].CreatedAt.Equal(live[j].CreatedAt) {
			return live[i].CreatedAt.After(live[j].CreatedAt)
		}
		return live[i].ID > live[j].ID
	})

	total := len(live)
	if offset >= total {
		return []Post{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return live[offset:end], total, nil
}

func (s *InMemoryPostStore) Update(_ context.Context, id, authorID int64, u PostUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok || p.AuthorID != authorID || p.DeletedAt != nil {
		return ErrNotFoundOrForbidden
	}
	p.Title = u.Title
	p.Content = u.Content
	p.Priority = u.Priority
	now := time.Now().UTC()
	p.UpdatedAt = &now
	s.posts[id] = p
	return nil
}

func (s *InMemoryPostStore) SoftDelete(_ context.Context, id, authorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok || p.AuthorID != authorID || p.DeletedAt != nil {
		return ErrNotFoundOrForbidden
	}
	now := time.Now().UTC()
	p.DeletedAt = &now
	s.posts[id] = p
	return nil
}
