package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/board-platform/internal/platform/api"
	"github.com/example/board-platform/internal/platform/auth"
	"github.com/example/board-platform/internal/platform/events"
	"github.com/example/board-platform/internal/platform/httpserver"
	"github.com/example/board-platform/services/board/internal/store"
	"github.com/example/board-platform/services/board/internal/thread"
)

type createCommentRequest struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

// commentView is one rendered row of a thread.
type commentView struct {
	ID        int64     `json:"id"`
	ParentID  *int64    `json:"parent_id"`
	AuthorID  *int64    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	IsReply   bool      `json:"is_reply"`
	Deleted   bool      `json:"deleted"`
	CanModify bool      `json:"can_modify"`
	CanReply  bool      `json:"can_reply"`
	Editing   bool      `json:"editing"`
	Replying  bool      `json:"replying"`
}

type threadResponse struct {
	PostID   int64         `json:"post_id"`
	ETag     string        `json:"etag"`
	Comments []commentView `json:"comments"`
}

func toCommentView(v thread.View) commentView {
	return commentView{
		ID:        v.Comment.ID,
		ParentID:  v.Comment.ParentID,
		AuthorID:  v.Comment.AuthorID,
		Content:   v.DisplayContent(),
		CreatedAt: v.Comment.CreatedAt,
		IsReply:   v.IsReply,
		Deleted:   v.Placeholder,
		CanModify: v.CanModify,
		CanReply:  v.CanReply,
		Editing:   v.Editing,
		Replying:  v.Replying,
	}
}

// viewState reads ?mode=&target= into a thread.ViewState.
func viewState(r *http.Request) (thread.ViewState, error) {
	q := r.URL.Query()
	mode, err := thread.ParseMode(q.Get("mode"))
	if err != nil {
		return thread.Idle(), err
	}
	if mode == thread.ModeIdle {
		return thread.Idle(), nil
	}
	target, err := strconv.ParseInt(strings.TrimSpace(q.Get("target")), 10, 64)
	if err != nil {
		return thread.Idle(), errors.New("target is required for " + string(mode))
	}
	if mode == thread.ModeEditing {
		return thread.Editing(target), nil
	}
	return thread.Replying(target), nil
}

func optionalViewer(ctx context.Context) *int64 {
	if id, ok := auth.ViewerID(ctx); ok {
		return &id
	}
	return nil
}

// freshLister is implemented by comment stores that serve ListByPost from a
// cache.
type freshLister interface {
	ListByPostFresh(ctx context.Context, postID int64) ([]store.Comment, error)
}

// snapshot loads the post's collection and renders it for the viewer. fresh
// skips any snapshot cache in front of the store.
func (b *Board) snapshot(ctx context.Context, postID int64, viewer *int64, state thread.ViewState, fresh bool) (threadResponse, error) {
	list := b.Comments.ListByPost
	if fl, ok := b.Comments.(freshLister); ok && fresh {
		list = fl.ListByPostFresh
	}
	rows, err := list(ctx, postID)
	if err != nil {
		return threadResponse{}, err
	}
	views := thread.Decorate(b.Threads.Build(store.ToThread(rows)), viewer, state)

	out := threadResponse{PostID: postID, Comments: make([]commentView, len(views))}
	for i, v := range views {
		out.Comments[i] = toCommentView(v)
	}
	out.ETag, err = etagOf(out.Comments)
	if err != nil {
		return threadResponse{}, err
	}
	return out, nil
}

// writeSnapshot answers a mutation with the post's collection as stored now.
func (b *Board) writeSnapshot(w http.ResponseWriter, r *http.Request, status int, postID int64, viewer *int64) {
	rid := httpserver.RequestIDFromContext(r.Context())
	resp, err := b.snapshot(r.Context(), postID, viewer, thread.Idle(), true)
	if err != nil {
		httpserver.Logger(r.Context(), b.logger()).Error("thread snapshot failed", zap.Int64("post_id", postID), zap.Error(err))
		api.Internal(w, rid)
		return
	}
	w.Header().Set("ETag", resp.ETag)
	api.WriteJSON(w, status, resp)
}

// GetThread handles GET /v1/posts/{post_id}/comments
func (b *Board) GetThread(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())
	postID, ok := pathID(w, r, rid, "post_id")
	if !ok {
		return
	}
	state, err := viewState(r)
	if err != nil {
		api.BadRequest(w, "INVALID_VIEW_STATE", err.Error(), rid, nil)
		return
	}
	if _, err := b.Posts.Get(r.Context(), postID); err != nil {
		b.writeStoreError(w, r, err, "post not found")
		return
	}

	resp, err := b.snapshot(r.Context(), postID, optionalViewer(r.Context()), state, false)
	if err != nil {
		httpserver.Logger(r.Context(), b.logger()).Error("thread snapshot failed", zap.Int64("post_id", postID), zap.Error(err))
		api.Internal(w, rid)
		return
	}

	w.Header().Set("Vary", "Authorization")
	if etagMatches(r.Header.Get("If-None-Match"), resp.ETag) {
		api.NotModified(w, resp.ETag)
		return
	}
	w.Header().Set("ETag", resp.ETag)
	api.WriteJSON(w, http.StatusOK, resp)
}

// CreateComment handles POST /v1/posts/{post_id}/comments
func (b *Board) CreateComment(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())
	viewerID, ok := auth.ViewerID(r.Context())
	if !ok {
		api.Unauthorized(w, "UNAUTHORIZED", "authentication required", rid)
		return
	}
	postID, ok := pathID(w, r, rid, "post_id")
	if !ok {
		return
	}

	var req createCommentRequest
	if !decodeJSON(w, r, rid, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		api.BadRequest(w, "EMPTY_CONTENT", "content must not be empty", rid, nil)
		return
	}

	if _, err := b.Posts.Get(r.Context(), postID); err != nil {
		b.writeStoreError(w, r, err, "post not found")
		return
	}
	if req.ParentID != nil {
		parent, err := b.Comments.Get(r.Context(), *req.ParentID)
		if errors.Is(err, store.ErrNotFound) || (err == nil && parent.PostID != postID) {
			api.BadRequest(w, "INVALID_PARENT", "parent comment does not belong to this post", rid, nil)
			return
		}
		if err != nil {
			b.writeStoreError(w, r, err, "")
			return
		}
	}

	created, err := b.Comments.Create(r.Context(), store.Comment{
		PostID:   postID,
		AuthorID: &viewerID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		b.writeStoreError(w, r, err, "")
		return
	}

	b.publish(events.SubjectCommentCreated, "comment_created", viewerID, map[string]any{
		"post_id":    postID,
		"comment_id": created.ID,
		"parent_id":  req.ParentID,
	})
	b.writeSnapshot(w, r, http.StatusCreated, postID, &viewerID)
}

// UpdateComment handles PUT /v1/comments/{comment_id}
func (b *Board) UpdateComment(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())
	viewerID, ok := auth.ViewerID(r.Context())
	if !ok {
		api.Unauthorized(w, "UNAUTHORIZED", "authentication required", rid)
		return
	}
	commentID, ok := pathID(w, r, rid, "comment_id")
	if !ok {
		return
	}

	var req updateCommentRequest
	if !decodeJSON(w, r, rid, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		api.BadRequest(w, "EMPTY_CONTENT", "content must not be empty", rid, nil)
		return
	}

	if err := b.Comments.UpdateContent(r.Context(), commentID, viewerID, req.Content); err != nil {
		b.writeStoreError(w, r, err, "")
		return
	}
	b.afterCommentWrite(w, r, commentID, viewerID, events.SubjectCommentUpdated, "comment_updated")
}

// DeleteComment handles DELETE /v1/comments/{comment_id}
func (b *Board) DeleteComment(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())
	viewerID, ok := auth.ViewerID(r.Context())
	if !ok {
		api.Unauthorized(w, "UNAUTHORIZED", "authentication required", rid)
		return
	}
	commentID, ok := pathID(w, r, rid, "comment_id")
	if !ok {
		return
	}

	if err := b.Comments.SoftDelete(r.Context(), commentID, viewerID); err != nil {
		b.writeStoreError(w, r, err, "")
		return
	}
	b.afterCommentWrite(w, r, commentID, viewerID, events.SubjectCommentDeleted, "comment_deleted")
}

// ModerateComment handles DELETE /v1/admin/comments/{comment_id}
func (b *Board) ModerateComment(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())
	commentID, ok := pathID(w, r, rid, "comment_id")
	if !ok {
		return
	}

	if err := b.Comments.ModerateDelete(r.Context(), commentID); err != nil {
		b.writeStoreError(w, r, err, "comment not found")
		return
	}
	viewerID, _ := auth.ViewerID(r.Context())
	httpserver.Logger(r.Context(), b.logger()).Info("comment moderated",
		zap.Int64("comment_id", commentID), zap.Int64("moderator_id", viewerID))
	b.afterCommentWrite(w, r, commentID, viewerID, events.SubjectCommentDeleted, "comment_moderated")
}

// afterCommentWrite publishes the event and answers with the fresh snapshot
// of the comment's post.
func (b *Board) afterCommentWrite(w http.ResponseWriter, r *http.Request, commentID, viewerID int64, subject, name string) {
	c, err := b.Comments.Get(r.Context(), commentID)
	if err != nil {
		b.writeStoreError(w, r, err, "comment not found")
		return
	}
	b.publish(subject, name, viewerID, map[string]any{
		"post_id":    c.PostID,
		"comment_id": commentID,
	})
	b.writeSnapshot(w, r, http.StatusOK, c.PostID, &viewerID)
}

// writeStoreError maps store sentinels onto API errors.
func (b *Board) writeStoreError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	rid := httpserver.RequestIDFromContext(r.Context())
	switch {
	case errors.Is(err, store.ErrNotFoundOrForbidden):
		api.Forbidden(w, "FORBIDDEN", "not found or not the author", rid)
	case errors.Is(err, store.ErrNotFound):
		if notFoundMsg == "" {
			notFoundMsg = "not found"
		}
		api.NotFound(w, "NOT_FOUND", notFoundMsg, rid)
	default:
		httpserver.Logger(r.Context(), b.logger()).Error("store call failed", zap.Error(err))
		api.Internal(w, rid)
	}
}
