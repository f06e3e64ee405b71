package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const userContextKey contextKey = "user"

// UserHeader carries the caller's participant name
const UserHeader = "User"

// Identity stores the caller's claimed name from the User header in the
// request context. The name is not verified; Message Exchange rejects
// senders that never joined.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), userContextKey, r.Header.Get(UserHeader))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUser returns the caller's name from the request context, or "" if absent
func GetUser(ctx context.Context) string {
	user, _ := ctx.Value(userContextKey).(string)
	return user
}
