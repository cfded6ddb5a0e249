package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/board-platform/services/board/internal/store"
)

func TestCreatePost(t *testing.T) {
	b := newBoard()

	req := setupReq(http.MethodPost, "/v1/posts", `{"title":" Hello ","content":"body","priority":"high"}`, nil, "3")
	rr := httptest.NewRecorder()
	b.CreatePost(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var p store.Post
	if err := json.NewDecoder(rr.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Title != "Hello" || p.AuthorID != 3 || p.Priority != store.PriorityHigh {
		t.Fatalf("unexpected post: %+v", p)
	}
}

func TestCreatePost_DefaultsToNormalPriority(t *testing.T) {
	b := newBoard()

	req := setupReq(http.MethodPost, "/v1/posts", `{"title":"t","content":"c"}`, nil, "3")
	rr := httptest.NewRecorder()
	b.CreatePost(rr, req)

	var p store.Post
	_ = json.NewDecoder(rr.Body).Decode(&p)
	if p.Priority != store.PriorityNormal {
		t.Fatalf("expected normal priority, got %v", p.Priority)
	}
}

func TestCreatePost_Validation(t *testing.T) {
	b := newBoard()
	for _, body := range []string{
		`{"title":"","content":"c"}`,
		`{"title":"t","content":""}`,
		`{"title":"t","content":"c","priority":"whenever"}`,
		`not json`,
	} {
		req := setupReq(http.MethodPost, "/v1/posts", body, nil, "3")
		rr := httptest.NewRecorder()
		b.CreatePost(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rr.Code)
		}
	}

	req := setupReq(http.MethodPost, "/v1/posts", `{"title":"t","content":"c"}`, nil, "")
	rr := httptest.NewRecorder()
	b.CreatePost(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestListPosts(t *testing.T) {
	b := newBoard()
	for i := 0; i < 3; i++ {
		_ = seedPost(t, b, 1)
	}

	req := setupReq(http.MethodGet, "/v1/posts?limit=2&offset=1", "", nil, "")
	rr := httptest.NewRecorder()
	b.ListPosts(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp postListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 3 || len(resp.Posts) != 2 || resp.Limit != 2 || resp.Offset != 1 {
		t.Fatalf("unexpected page: %+v", resp)
	}
}

func TestUpdateAndDeletePost(t *testing.T) {
	b := newBoard()
	p := seedPost(t, b, 1)
	params := map[string]string{"post_id": "1"}

	req := setupReq(http.MethodPut, "/v1/posts/1", `{"title":"x","content":"y"}`, params, "2")
	rr := httptest.NewRecorder()
	b.UpdatePost(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-author, got %d", rr.Code)
	}

	req = setupReq(http.MethodPut, "/v1/posts/1", `{"title":"x","content":"y","priority":0}`, params, "1")
	rr = httptest.NewRecorder()
	b.UpdatePost(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var updated store.Post
	_ = json.NewDecoder(rr.Body).Decode(&updated)
	if updated.ID != p.ID || updated.Title != "x" || updated.Priority != store.PriorityLow {
		t.Fatalf("unexpected post: %+v", updated)
	}

	req = setupReq(http.MethodDelete, "/v1/posts/1", "", params, "1")
	rr = httptest.NewRecorder()
	b.DeletePost(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}

	req = setupReq(http.MethodGet, "/v1/posts/1", "", params, "")
	rr = httptest.NewRecorder()
	b.GetPost(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rr.Code)
	}
}
