package auth

import (
	"context"
	"net/http"
	"strings"
)

// IsModerator reports whether the role injected by RequireUser may moderate
// board content.
func IsModerator(ctx context.Context) bool {
	role, _ := RoleFromContext(ctx)
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin", "moderator":
		return true
	default:
		return false
	}
}

// RequireAdmin allows request only if RequireUser already injected a
// moderating role (admin or moderator) into context.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsModerator(r.Context()) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
