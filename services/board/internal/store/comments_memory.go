package store

import (
	"context"
	"sync"
	"time"

	"github.com/example/board-platform/services/board/internal/thread"
)

// InMemoryCommentStore is a development-only in-memory implementation.
type InMemoryCommentStore struct {
	mu       sync.RWMutex
	comments map[int64]Comment
	order    []int64 // insertion order
	nextID   int64
	now      func() time.Time
}

func NewInMemoryCommentStore() *InMemoryCommentStore {
	return &InMemoryCommentStore{
		comments: make(map[int64]Comment),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *InMemoryCommentStore) Create(_ context.Context, c Comment) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	c.ID = s.nextID
	c.CreatedAt = s.now()
	c.Status = thread.StatusActive
	c.UpdatedAt = nil
	c.DeletedAt = nil
	s.comments[c.ID] = c
	s.order = append(s.order, c.ID)
	return c, nil
}

func (s *InMemoryCommentStore) Get(_ context.Context, id int64) (Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return Comment{}, ErrNotFound
	}
	return c, nil
}

func (s *InMemoryCommentStore) ListByPost(_ context.Context, postID int64) ([]Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Comment{}
	for _, id := range s.order {
		if c := s.comments[id]; c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *InMemoryCommentStore) UpdateContent(_ context.Context, id, authorID int64, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok || !ownedBy(c, authorID) || c.DeletedAt != nil {
		return ErrNotFoundOrForbidden
	}
	c.Content = content
	now := s.now()
	c.UpdatedAt = &now
	s.comments[id] = c
	return nil
}

func (s *InMemoryCommentStore) SoftDelete(_ context.Context, id, authorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok || !ownedBy(c, authorID) || c.DeletedAt != nil {
		return ErrNotFoundOrForbidden
	}
	s.markDeleted(c)
	return nil
}

func (s *InMemoryCommentStore) ModerateDelete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return ErrNotFound
	}
	if c.DeletedAt == nil {
		s.markDeleted(c)
	}
	return nil
}

func (s *InMemoryCommentStore) markDeleted(c Comment) {
	now := s.now()
	c.DeletedAt = &now
	c.Status = thread.StatusDeleted
	s.comments[c.ID] = c
}

func ownedBy(c Comment, authorID int64) bool {
	return c.AuthorID != nil && *c.AuthorID == authorID
}
