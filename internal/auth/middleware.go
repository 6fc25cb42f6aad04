package auth

import (
	"context"
	"net/http"
)

type contextKey string

const roleKey contextKey = "role"

// RoleHeader carries the caller's already-authenticated role. Session
// mechanics live in front of this service; only the role value crosses the
// boundary.
const RoleHeader = "X-User-Role"

func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := ParseRole(r.Header.Get(RoleHeader))
			ctx := context.WithValue(r.Context(), roleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleFromContext returns the caller's role, defaulting to RoleGuest when the
// middleware did not run.
func RoleFromContext(ctx context.Context) Role {
	if role, ok := ctx.Value(roleKey).(Role); ok {
		return role
	}
	return RoleGuest
}
