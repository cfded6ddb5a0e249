package handlers

import (
	"net/http"
	"strings"

	"github.com/example/board-platform/internal/platform/api"
	"github.com/example/board-platform/internal/platform/auth"
	"github.com/example/board-platform/internal/platform/events"
	"github.com/example/board-platform/internal/platform/httpserver"
	"github.com/example/board-platform/services/board/internal/store"
)

type postRequest struct {
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Priority store.Priority `json:"priority"`
}

type postListResponse struct {
	Posts  []store.Post `json:"posts"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

func (req *postRequest) validate(w http.ResponseWriter, rid string) bool {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		api.BadRequest(w, "EMPTY_TITLE", "title must not be empty", rid, nil)
		return false
	}
	if len(req.Title) > 200 {
		api.BadRequest(w, "TITLE_TOO_LONG", "title must be at most 200 bytes", rid, nil)
		return false
	}
	if strings.TrimSpace(req.Content) == "" {
		api.BadRequest(w, "EMPTY_CONTENT", "content must not be empty", rid, nil)
		return false
	}
	return true
}

// decodePost reads a post body. A missing priority means normal.
func decodePost(w http.ResponseWriter, r *http.Request, rid string) (postRequest, bool) {
	req := postRequest{Priority: store.PriorityNormal}
	if !decodeJSON(w, r, rid, &req) {
		return req, false
	}
	return req, req.validate(w, rid)
}

// ListPosts handles GET /v1/posts
func (b *Board) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	posts, total, err := b.Posts.List(r.Context(), limit, offset)
	if err != nil {
		b.writeStoreError(w, r, err, "")
		return
	}
	api.WriteJSON(w, http.StatusOK, postListResponse{Posts: posts, Total: total, Limit: limit, Offset: offset})
}

// GetPost handles GET /v1/posts/{post_id}
func (b *Board) GetPost(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())
	postID, ok := pathID(w, r, rid, "post_id")
	if !ok {
		return
	}
	p, err := b.Posts.Get(r.Context(), postID)
	if err != nil {
		b.writeStoreError(w, r, err, "post not found")
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}

// CreatePost handles POST /v1/posts
func (b *Board) CreatePost(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())
	viewerID, ok := auth.ViewerID(r.Context())
	if !ok {
		api.Unauthorized(w, "UNAUTHORIZED", "authentication required", rid)
		return
	}
	req, ok := decodePost(w, r, rid)
	if !ok {
		return
	}

	created, err := b.Posts.Create(r.Context(), store.Post{
		AuthorID: viewerID,
		Title:    req.Title,
		Content:  req.Content,
		Priority: req.Priority,
	})
	if err != nil {
		b.writeStoreError(w, r, err, "")
		return
	}
	b.publish(events.SubjectPostCreated, "post_created", viewerID, map[string]any{"post_id": created.ID})
	api.WriteJSON(w, http.StatusCreated, created)
}

// UpdatePost handles PUT /v1/posts/{post_id}
func (b *Board) UpdatePost(w http.ResponseWriter, r *http.Request) {
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
	req, ok := decodePost(w, r, rid)
	if !ok {
		return
	}

	err := b.Posts.Update(r.Context(), postID, viewerID, store.PostUpdate{
		Title:    req.Title,
		Content:  req.Content,
		Priority: req.Priority,
	})
	if err != nil {
		b.writeStoreError(w, r, err, "")
		return
	}
	updated, err := b.Posts.Get(r.Context(), postID)
	if err != nil {
		b.writeStoreError(w, r, err, "post not found")
		return
	}
	b.publish(events.SubjectPostUpdated, "post_updated", viewerID, map[string]any{"post_id": postID})
	api.WriteJSON(w, http.StatusOK, updated)
}

// DeletePost handles DELETE /v1/posts/{post_id}
func (b *Board) DeletePost(w http.ResponseWriter, r *http.Request) {
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
	if err := b.Posts.SoftDelete(r.Context(), postID, viewerID); err != nil {
		b.writeStoreError(w, r, err, "")
		return
	}
	b.publish(events.SubjectPostDeleted, "post_deleted", viewerID, map[string]any{"post_id": postID})
	w.WriteHeader(http.StatusNoContent)
}
