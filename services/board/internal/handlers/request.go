package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/board-platform/internal/platform/api"
)

const maxRequestBodyBytes = 1 << 20 // 1 MiB

// decodeJSON reads up to maxRequestBodyBytes from r.Body and decodes JSON into dst.
// On failure it writes a 400 response and returns false.
func decodeJSON[T any](w http.ResponseWriter, r *http.Request, rid string, dst *T) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(dst); err != nil {
		api.BadRequest(w, "INVALID_JSON", "Invalid JSON", rid, nil)
		return false
	}
	return true
}

// pathID parses a positive integer URL parameter. On failure it writes a 400
// response and returns false.
func pathID(w http.ResponseWriter, r *http.Request, rid, name string) (int64, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		api.BadRequest(w, "INVALID_ID", name+" must be a positive integer", rid, nil)
		return 0, false
	}
	return id, true
}

// pageParams reads limit and offset, falling back to 20 and 0.
func pageParams(r *http.Request) (limit, offset int) {
	limit = 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}
