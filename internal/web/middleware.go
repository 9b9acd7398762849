package web

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/npezzotti/forum/internal/database"
	"github.com/npezzotti/forum/internal/session"
)

type contextKey string

const currentUserKey contextKey = "current-user"

func withUser(ctx context.Context, user database.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// currentUser returns the authenticated user for the request, if any.
func currentUser(r *http.Request) (database.User, bool) {
	user, ok := r.Context().Value(currentUserKey).(database.User)

	return user, ok
}

func (s *ForumApp) errorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}

				var panicError error
				switch e := err.(type) {
				case error:
					panicError = e
				default:
					panicError = fmt.Errorf("%v", e)
				}
				s.log.Printf("panic: %v", panicError)
				w.Header().Set("Connection", "close")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// loadSession resolves the session cookie to a user. Requests without a
// valid session continue anonymously.
func (s *ForumApp) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId, err := s.sessions.UserId(r)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				s.log.Printf("failed to extract user id from token: %v", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.db.GetUserById(r.Context(), userId)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				s.serverError(w, fmt.Errorf("get session user: %w", err))
				return
			}

			s.sessions.Logout(w)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

func (s *ForumApp) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := currentUser(r); !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}
