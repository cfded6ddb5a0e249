package store

import (
	"context"
	"errors"
	"time"

	"github.com/ecodeclub/ekit/slice"

	"github.com/example/board-platform/services/board/internal/thread"
)

// Sentinel errors
var (
	ErrNotFound            = errors.New("not found")
	ErrNotFoundOrForbidden = errors.New("not found or not owned by user")
)

// Comment represents a single comment row.
type Comment struct {
	ID        int64         `json:"id"`
	PostID    int64         `json:"post_id"`
	AuthorID  *int64        `json:"author_id,omitempty"`
	ParentID  *int64        `json:"parent_id,omitempty"`
	Content   string        `json:"content"`
	Status    thread.Status `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
	DeletedAt *time.Time    `json:"deleted_at,omitempty"`
}

func (c Comment) ToThread() thread.Comment {
	return thread.Comment{
		ID:        c.ID,
		ParentID:  c.ParentID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		DeletedAt: c.DeletedAt,
		Status:    c.Status,
	}
}

// ToThread maps a post's comment rows onto the threading model.
func ToThread(cs []Comment) []thread.Comment {
	return slice.Map(cs, func(_ int, c Comment) thread.Comment { return c.ToThread() })
}

// CommentStore defines the contract for comment persistence.
//
// ListByPost returns the whole collection of a post, soft-deleted rows
// included, in insertion order. It is the snapshot the thread package
// rebuilds the discussion from.
type CommentStore interface {
	Create(ctx context.Context, c Comment) (Comment, error)
	Get(ctx context.Context, id int64) (Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]Comment, error)
	UpdateContent(ctx context.Context, id, authorID int64, content string) error
	SoftDelete(ctx context.Context, id, authorID int64) error
	// ModerateDelete soft-deletes regardless of authorship. Repeating it on a
	// deleted comment succeeds and keeps the first deletion time.
	ModerateDelete(ctx context.Context, id int64) error
}
