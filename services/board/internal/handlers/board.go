package handlers

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/example/board-platform/internal/platform/events"
	"github.com/example/board-platform/internal/platform/httpserver"
	"github.com/example/board-platform/services/board/internal/store"
	"github.com/example/board-platform/services/board/internal/thread"
)

// Board holds the dependencies shared by the board HTTP handlers.
type Board struct {
	Posts    store.PostStore
	Comments store.CommentStore
	Threads  *thread.Builder
	Events   *events.Publisher
	// Writes throttles mutations when set.
	Writes *httpserver.RateLimiter
	Log    *zap.Logger
}

func (b *Board) logger() *zap.Logger {
	if b.Log == nil {
		return zap.NewNop()
	}
	return b.Log
}

func (b *Board) publish(subject, name string, viewerID int64, props map[string]any) {
	b.Events.Publish(subject, name, strconv.FormatInt(viewerID, 10), props)
}
