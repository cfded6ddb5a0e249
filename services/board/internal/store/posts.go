package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Priority of a post. Clients send either the name or the numeric level.
type Priority int16

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

var ErrUnknownPriority = errors.New("unknown priority")

var priorityNames = [...]string{"low", "normal", "high", "urgent"}

func (p Priority) String() string {
	if p < PriorityLow || p > PriorityUrgent {
		return "normal"
	}
	return priorityNames[p]
}

func ParsePriority(raw string) (Priority, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return PriorityNormal, nil
	}
	for i, name := range priorityNames {
		if raw == name || raw == strconv.Itoa(i) {
			return Priority(i), nil
		}
	}
	return PriorityNormal, fmt.Errorf("%w: %q", ErrUnknownPriority, raw)
}

func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = PriorityNormal
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		unq, err := strconv.Unquote(raw)
		if err != nil {
			return err
		}
		raw = unq
	}
	v, err := ParsePriority(raw)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Post is a board entry that comments hang off.
type Post struct {
	ID        int64      `json:"id"`
	AuthorID  int64      `json:"author_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Priority  Priority   `json:"priority"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// PostUpdate carries the editable fields of a post.
type PostUpdate struct {
	Title    string
	Content  string
	Priority Priority
}

// PostStore defines the contract for post persistence. Soft-deleted posts
// are invisible to Get and List.
type PostStore interface {
	Create(ctx context.Context, p Post) (Post, error)
	Get(ctx context.Context, id int64) (Post, error)
	// List returns one page, newest first, and the total number of live posts.
	List(ctx context.Context, limit, offset int) ([]Post, int, error)
	Update(ctx context.Context, id, authorID int64, u PostUpdate) error
	SoftDelete(ctx context.Context, id, authorID int64) error
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
