// Package cache keeps per-post comment snapshots close to the handlers.
//
// Backends: Redis when REDIS_DSN is set, otherwise an in-process TTL map.
// Replicas running the in-process map stay coherent through a NATS
// invalidation subject carrying the post id (or ALL).
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/board-platform/services/board/internal/store"
)

// InvalidateSubject carries snapshot invalidations between replicas.
const InvalidateSubject = "board.cache.comments.invalidate"

// SnapshotCache stores the full comment collection of a post.
// Implementations must be safe for concurrent use.
type SnapshotCache interface {
	Get(ctx context.Context, postID int64) ([]store.Comment, bool)
	Set(ctx context.Context, postID int64, cs []store.Comment)
	Invalidate(ctx context.Context, postID int64)
}

// New picks Redis when redisDSN is set and the in-process cache otherwise.
// nc may be nil, in which case the in-process cache is not shared.
func New(redisDSN string, ttl time.Duration, nc *nats.Conn, log *zap.Logger) SnapshotCache {
	if redisDSN != "" {
		return NewRedisCache(redisDSN, ttl, log)
	}
	return NewMemoryCache(ttl, nc, InvalidateSubject, log)
}

func key(postID int64) string {
	return strconv.FormatInt(postID, 10)
}

func clone(cs []store.Comment) []store.Comment {
	out := make([]store.Comment, len(cs))
	copy(out, cs)
	return out
}
