// Package api implements the journal REST API using chi.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/sharjeelz/famories/internal/session"
)

type ctxKey int

const sessionKey ctxKey = 0

// SessionMiddleware resolves the "Authorization: Bearer <token>" header
// to an unlocked session and stores it on the request context. Requests
// without a valid session are rejected.
func SessionMiddleware(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			sess, err := mgr.Get(strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
		})
	}
}

// sessionFrom returns the session stored by SessionMiddleware.
func sessionFrom(r *http.Request) *session.Session {
	s, _ := r.Context().Value(sessionKey).(*session.Session)
	return s
}
