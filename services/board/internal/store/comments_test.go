package store

import (
	"context"
	"errors"
	"testing"

	"github.com/example/board-platform/services/board/internal/thread"
)

func ptr(v int64) *int64 { return &v }

func TestInMemoryCommentStore_Create(t *testing.T) {
	s := NewInMemoryCommentStore()
	ctx := context.Background()

	c, err := s.Create(ctx, Comment{PostID: 1, AuthorID: ptr(7), Content: "hello"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == 0 {
		t.Fatal("expected non-zero id")
	}
	if c.Content != "hello" {
		t.Fatalf("expected content 'hello', got %q", c.Content)
	}
	if c.Status != thread.StatusActive {
		t.Fatalf("expected active status, got %v", c.Status)
	}
	if c.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
}

func TestInMemoryCommentStore_ListByPost_KeepsInsertionOrder(t *testing.T) {
	s := NewInMemoryCommentStore()
	ctx := context.Background()

	a, _ := s.Create(ctx, Comment{PostID: 1, Content: "a"})
	_, _ = s.Create(ctx, Comment{PostID: 2, Content: "other post"})
	b, _ := s.Create(ctx, Comment{PostID: 1, ParentID: ptr(a.ID), Content: "b"})
	c, _ := s.Create(ctx, Comment{PostID: 1, Content: "c"})

	got, err := s.ListByPost(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(got))
	}
	for i, want := range []int64{a.ID, b.ID, c.ID} {
		if got[i].ID != want {
			t.Fatalf("position %d: expected id %d, got %d", i, want, got[i].ID)
		}
	}

	empty, err := s.ListByPost(ctx, 99)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestInMemoryCommentStore_UpdateContent_AuthorOnly(t *testing.T) {
	s := NewInMemoryCommentStore()
	ctx := context.Background()

	c, _ := s.Create(ctx, Comment{PostID: 1, AuthorID: ptr(1), Content: "original"})

	// Non-author cannot edit
	if err := s.UpdateContent(ctx, c.ID, 2, "hacked"); err != ErrNotFoundOrForbidden {
		t.Fatalf("expected ErrNotFoundOrForbidden for non-author, got %v", err)
	}

	if err := s.UpdateContent(ctx, c.ID, 1, "updated"); err != nil {
		t.Fatalf("author update: %v", err)
	}
	got, _ := s.Get(ctx, c.ID)
	if got.Content != "updated" {
		t.Fatalf("expected content 'updated', got %q", got.Content)
	}
	if got.UpdatedAt == nil {
		t.Fatal("expected updated_at to be set")
	}
}

func TestInMemoryCommentStore_AnonymousCommentIsNotOwned(t *testing.T) {
	s := NewInMemoryCommentStore()
	ctx := context.Background()

	c, _ := s.Create(ctx, Comment{PostID: 1, Content: "anon"})
	if err := s.UpdateContent(ctx, c.ID, 0, "claimed"); err != ErrNotFoundOrForbidden {
		t.Fatalf("expected ErrNotFoundOrForbidden, got %v", err)
	}
}

func TestInMemoryCommentStore_SoftDelete(t *testing.T) {
	s := NewInMemoryCommentStore()
	ctx := context.Background()

	c, _ := s.Create(ctx, Comment{PostID: 1, AuthorID: ptr(1), Content: "will delete"})

	if err := s.SoftDelete(ctx, c.ID, 2); err != ErrNotFoundOrForbidden {
		t.Fatalf("expected ErrNotFoundOrForbidden for non-author, got %v", err)
	}
	if err := s.SoftDelete(ctx, c.ID, 1); err != nil {
		t.Fatalf("author delete: %v", err)
	}

	// The row stays in the collection, marked deleted.
	got, err := s.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != thread.StatusDeleted || got.DeletedAt == nil {
		t.Fatalf("expected soft-deleted comment, got %+v", got)
	}
	if got.Content != "will delete" {
		t.Fatalf("expected content to be retained, got %q", got.Content)
	}

	// Deleting twice is not allowed, nor is editing a deleted comment.
	if err := s.SoftDelete(ctx, c.ID, 1); err != ErrNotFoundOrForbidden {
		t.Fatalf("expected ErrNotFoundOrForbidden on second delete, got %v", err)
	}
	if err := s.UpdateContent(ctx, c.ID, 1, "revive"); err != ErrNotFoundOrForbidden {
		t.Fatalf("expected ErrNotFoundOrForbidden on edit after delete, got %v", err)
	}
}

func TestInMemoryCommentStore_ModerateDelete(t *testing.T) {
	s := NewInMemoryCommentStore()
	ctx := context.Background()

	c, _ := s.Create(ctx, Comment{PostID: 1, AuthorID: ptr(1), Content: "spam"})
	if err := s.ModerateDelete(ctx, c.ID); err != nil {
		t.Fatalf("moderate: %v", err)
	}
	first, _ := s.Get(ctx, c.ID)
	if err := s.ModerateDelete(ctx, c.ID); err != nil {
		t.Fatalf("expected repeated moderation to succeed, got %v", err)
	}
	again, _ := s.Get(ctx, c.ID)
	if !again.DeletedAt.Equal(*first.DeletedAt) {
		t.Fatalf("expected deletion time to stay %v, got %v", first.DeletedAt, again.DeletedAt)
	}
	if err := s.ModerateDelete(ctx, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestInMemoryCommentStore_GetMissing(t *testing.T) {
	s := NewInMemoryCommentStore()
	if _, err := s.Get(context.Background(), 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestToThread(t *testing.T) {
	s := NewInMemoryCommentStore()
	ctx := context.Background()

	root, _ := s.Create(ctx, Comment{PostID: 1, AuthorID: ptr(1), Content: "root"})
	reply, _ := s.Create(ctx, Comment{PostID: 1, AuthorID: ptr(2), ParentID: ptr(root.ID), Content: "reply"})
	_ = s.SoftDelete(ctx, root.ID, 1)

	rows, _ := s.ListByPost(ctx, 1)
	got := ToThread(rows)
	if len(got) != 2 {
		t.Fatalf("expected 2 thread comments, got %d", len(got))
	}
	if !got[0].SoftDeleted() {
		t.Fatal("expected root to carry the deleted marker")
	}
	if got[1].ParentID == nil || *got[1].ParentID != root.ID {
		t.Fatalf("expected reply parent %d, got %v", root.ID, got[1].ParentID)
	}
	if got[1].ID != reply.ID || *got[1].AuthorID != 2 {
		t.Fatalf("unexpected mapping: %+v", got[1])
	}
}

// Compile-time interface checks.
var (
	_ CommentStore = (*InMemoryCommentStore)(nil)
	_ CommentStore = (*PostgresCommentStore)(nil)
	_ PostStore    = (*InMemoryPostStore)(nil)
	_ PostStore    = (*PostgresPostStore)(nil)
)
