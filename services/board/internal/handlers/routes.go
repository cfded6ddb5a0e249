package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/board-platform/internal/platform/auth"
	"github.com/example/board-platform/internal/platform/httpserver"
)

// WriterKey charges writes to the authenticated user, else to the client IP.
func WriterKey(r *http.Request) string {
	if id, ok := auth.ViewerID(r.Context()); ok {
		return "user:" + strconv.FormatInt(id, 10)
	}
	return "ip:" + httpserver.ClientIP(r)
}

// Routes registers the board API. Reads are public and personalised when a
// valid token is present; writes need a user; moderation needs a moderating role.
func (b *Board) Routes(r chi.Router, verifier auth.JWTVerifier) {
	r.Group(func(r chi.Router) {
		r.Use(auth.OptionalUser(verifier))
		r.Get("/v1/posts", b.ListPosts)
		r.Get("/v1/posts/{post_id}", b.GetPost)
		r.Get("/v1/posts/{post_id}/comments", b.GetThread)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(verifier))
		if b.Writes != nil {
			r.Use(b.Writes.Middleware)
		}
		r.Post("/v1/posts", b.CreatePost)
		r.Put("/v1/posts/{post_id}", b.UpdatePost)
		r.Delete("/v1/posts/{post_id}", b.DeletePost)
		r.Post("/v1/posts/{post_id}/comments", b.CreateComment)
		r.Put("/v1/comments/{comment_id}", b.UpdateComment)
		r.Delete("/v1/comments/{comment_id}", b.DeleteComment)

		r.With(auth.RequireAdmin).Delete("/v1/admin/comments/{comment_id}", b.ModerateComment)
	})
}
