package web

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const forbiddenMessage = "You are not allowed here!!"

func (s *ForumApp) serverError(w http.ResponseWriter, err error) {
	s.log.Println("internal error:", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *ForumApp) notFound(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

func (s *ForumApp) forbidden(w http.ResponseWriter) {
	http.Error(w, forbiddenMessage, http.StatusForbidden)
}

// lookupError writes a 404 for missing records and a 500 otherwise.
func (s *ForumApp) lookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		s.notFound(w)
		return
	}

	s.serverError(w, err)
}

// pathId parses the {id} route parameter. It writes a 404 and returns false
// when the parameter is not an integer.
func (s *ForumApp) pathId(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.notFound(w)
		return 0, false
	}

	return id, true
}
