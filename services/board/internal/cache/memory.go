package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/board-platform/services/board/internal/store"
)

type memoryItem struct {
	val       []store.Comment
	expiresAt time.Time
}

// MemoryCache is an in-memory SnapshotCache with per-entry expiry and
// optional NATS invalidation.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryCache creates a MemoryCache and subscribes to subj when nc is non-nil.
func NewMemoryCache(ttl time.Duration, nc *nats.Conn, subj string, log *zap.Logger) *MemoryCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &MemoryCache{
		items: make(map[string]memoryItem),
		ttl:   ttl,
		now:   time.Now,
	}
	if nc != nil && subj != "" {
		if _, err := nc.Subscribe(subj, func(m *nats.Msg) {
			c.evict(string(m.Data))
		}); err != nil {
			log.Warn("cache invalidation subscription failed", zap.String("subject", subj), zap.Error(err))
		}
	}
	return c
}

func (c *MemoryCache) Get(_ context.Context, postID int64) ([]store.Comment, bool) {
	k := key(postID)
	c.mu.RLock()
	it, ok := c.items[k]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(it.expiresAt) {
		c.mu.Lock()
		if cur, ok2 := c.items[k]; ok2 && c.now().After(cur.expiresAt) {
			delete(c.items, k)
		}
		c.mu.Unlock()
		return nil, false
	}
	return clone(it.val), true
}

func (c *MemoryCache) Set(_ context.Context, postID int64, cs []store.Comment) {
	c.mu.Lock()
	c.items[key(postID)] = memoryItem{val: clone(cs), expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *MemoryCache) Invalidate(_ context.Context, postID int64) {
	c.evict(key(postID))
}

// evict drops one key, or everything for an empty key or ALL.
func (c *MemoryCache) evict(k string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if k == "" || strings.EqualFold(k, "ALL") {
		c.items = make(map[string]memoryItem)
		return
	}
	delete(c.items, k)
}
