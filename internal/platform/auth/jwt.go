package auth

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
)

type ctxKeyUserID struct{}
type ctxKeyRole struct{}

var errMissingToken = errors.New("missing bearer token")

func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyUserID{}).(string)
	return v, ok
}

// WithUserID injects user_id into context. Useful for testing.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID{}, uid)
}

// WithRole injects role into context. Useful for testing.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ctxKeyRole{}, role)
}

func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyRole{}).(string)
	return v, ok
}

type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type JWTVerifier struct {
	Secret []byte
}

func (v JWTVerifier) Parse(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return v.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ViewerID returns the authenticated user id as the integer the board uses
// for authorship. Non-numeric subjects are treated as anonymous.
func ViewerID(ctx context.Context) (int64, bool) {
	uid, ok := UserIDFromContext(ctx)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(uid), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func bearerClaims(verifier JWTVerifier, r *http.Request) (*Claims, error) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if authz == "" {
		return nil, errMissingToken
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, errMissingToken
	}
	claims, err := verifier.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

func withClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUserID{}, claims.Subject)
	if strings.TrimSpace(claims.Role) != "" {
		ctx = context.WithValue(ctx, ctxKeyRole{}, claims.Role)
	}
	return ctx
}

// RequireUser middleware validates Bearer token and injects user_id into context.
func RequireUser(verifier JWTVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := bearerClaims(verifier, r)
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// OptionalUser injects user_id when a valid Bearer token is present and lets
// anonymous or invalid requests through unchanged.
func OptionalUser(verifier JWTVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, err := bearerClaims(verifier, r); err == nil {
				r = r.WithContext(withClaims(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}
