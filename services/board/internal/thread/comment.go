// Package thread rebuilds a render-ready discussion from the flat comment
// collection of a post.
//
// Everything in this package is pure: it never mutates its input, performs no
// I/O and never fails. Malformed linkage (dangling parents, cycles) degrades
// to root treatment and is only reported through logs and metrics.
package thread

import "time"

// PlaceholderContent replaces the content of a soft-deleted comment that is
// kept in the sequence because replies still hang below it.
const PlaceholderContent = "this comment was deleted"

type Comment struct {
	ID        int64      `json:"id"`
	ParentID  *int64     `json:"parent_id,omitempty"`
	AuthorID  *int64     `json:"author_id,omitempty"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"` // zero when unknown
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	Status    Status     `json:"status"`
}

// SoftDeleted reports whether the comment is flagged deleted but still
// present in the collection.
func (c Comment) SoftDeleted() bool {
	return c.DeletedAt != nil || c.Status == StatusDeleted
}

func (c Comment) isRoot(idx Index) bool {
	return c.ParentID == nil || !idx.Has(*c.ParentID)
}

// Entry is one row of the render sequence.
type Entry struct {
	Comment     Comment `json:"comment"`
	IsReply     bool    `json:"is_reply"`
	Placeholder bool    `json:"placeholder"`
}

// DisplayContent is the text the view should show for the entry.
func (e Entry) DisplayContent() string {
	if e.Placeholder {
		return PlaceholderContent
	}
	return e.Comment.Content
}
