package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/example/board-platform/services/board/internal/store"
)

// Broadcaster is satisfied by *nats.Conn.
type Broadcaster interface {
	Publish(subj string, data []byte) error
}

// CachedCommentStore reads post snapshots through a SnapshotCache. Every
// successful write drops the affected snapshot, so the next read sees the
// store again.
//
// A read that overlaps a write never fills the cache: each write bumps a
// generation, and a snapshot is stored only when the generation observed
// before loading it is still current.
type CachedCommentStore struct {
	store.CommentStore
	cache    SnapshotCache
	bus      Broadcaster
	log      *zap.Logger
	requests *prometheus.CounterVec

	// mu orders fills (read lock) against bump-and-invalidate (write lock).
	mu  sync.RWMutex
	gen atomic.Uint64
}

// NewCachedCommentStore wraps inner. bus and reg may be nil.
func NewCachedCommentStore(inner store.CommentStore, c SnapshotCache, bus Broadcaster, reg prometheus.Registerer, log *zap.Logger) *CachedCommentStore {
	if log == nil {
		log = zap.NewNop()
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "board_comment_cache_requests_total",
		Help: "Snapshot cache lookups by result (hit, miss, stale).",
	}, []string{"result"})
	if reg != nil {
		reg.MustRegister(requests)
	}
	return &CachedCommentStore{
		CommentStore: inner,
		cache:        c,
		bus:          bus,
		log:          log,
		requests:     requests,
	}
}

func (s *CachedCommentStore) ListByPost(ctx context.Context, postID int64) ([]store.Comment, error) {
	if cs, ok := s.cache.Get(ctx, postID); ok {
		s.requests.WithLabelValues("hit").Inc()
		return cs, nil
	}
	s.requests.WithLabelValues("miss").Inc()
	return s.load(ctx, postID)
}

// ListByPostFresh bypasses the cache lookup and reads the store. Mutation
// responses use it so a writer always sees its own change.
func (s *CachedCommentStore) ListByPostFresh(ctx context.Context, postID int64) ([]store.Comment, error) {
	return s.load(ctx, postID)
}

func (s *CachedCommentStore) load(ctx context.Context, postID int64) ([]store.Comment, error) {
	seen := s.gen.Load()
	cs, err := s.CommentStore.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.gen.Load() != seen {
		s.requests.WithLabelValues("stale").Inc()
		return cs, nil
	}
	s.cache.Set(ctx, postID, cs)
	return cs, nil
}

func (s *CachedCommentStore) Create(ctx context.Context, c store.Comment) (store.Comment, error) {
	created, err := s.CommentStore.Create(ctx, c)
	if err != nil {
		return created, err
	}
	s.invalidate(ctx, created.PostID)
	return created, nil
}

func (s *CachedCommentStore) UpdateContent(ctx context.Context, id, authorID int64, content string) error {
	if err := s.CommentStore.UpdateContent(ctx, id, authorID, content); err != nil {
		return err
	}
	s.invalidateFor(ctx, id)
	return nil
}

func (s *CachedCommentStore) SoftDelete(ctx context.Context, id, authorID int64) error {
	if err := s.CommentStore.SoftDelete(ctx, id, authorID); err != nil {
		return err
	}
	s.invalidateFor(ctx, id)
	return nil
}

func (s *CachedCommentStore) ModerateDelete(ctx context.Context, id int64) error {
	if err := s.CommentStore.ModerateDelete(ctx, id); err != nil {
		return err
	}
	s.invalidateFor(ctx, id)
	return nil
}

// invalidateFor resolves the post of a comment before dropping its snapshot.
func (s *CachedCommentStore) invalidateFor(ctx context.Context, commentID int64) {
	c, err := s.CommentStore.Get(ctx, commentID)
	if err != nil {
		s.log.Warn("cache invalidation lookup failed", zap.Int64("comment_id", commentID), zap.Error(err))
		return
	}
	s.invalidate(ctx, c.PostID)
}

func (s *CachedCommentStore) invalidate(ctx context.Context, postID int64) {
	s.mu.Lock()
	s.gen.Add(1)
	s.cache.Invalidate(ctx, postID)
	s.mu.Unlock()

	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(InvalidateSubject, []byte(key(postID))); err != nil {
		s.log.Warn("cache invalidation broadcast failed", zap.Int64("post_id", postID), zap.Error(err))
	}
}
