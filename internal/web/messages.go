package web

import (
	"net/http"

	"github.com/npezzotti/forum/internal/database"
	"github.com/npezzotti/forum/internal/stats"
)

// ownedMessage loads the message named by the path and checks that the
// current user wrote it.
func (s *ForumApp) ownedMessage(w http.ResponseWriter, r *http.Request) (database.Message, bool) {
	user, _ := currentUser(r)
	id, ok := s.pathId(w, r)
	if !ok {
		return database.Message{}, false
	}

	msg, err := s.db.GetMessageById(r.Context(), id)
	if err != nil {
		s.lookupError(w, err)
		return database.Message{}, false
	}

	if msg.User.Id != user.Id {
		s.forbidden(w)
		return database.Message{}, false
	}

	return msg, true
}

func (s *ForumApp) deleteMessagePage(w http.ResponseWriter, r *http.Request) {
	msg, ok := s.ownedMessage(w, r)
	if !ok {
		return
	}

	s.render(w, r, http.StatusOK, "delete.html.tmpl", templateData{
		Object: truncate(msg.Body, 50),
	})
}

func (s *ForumApp) deleteMessage(w http.ResponseWriter, r *http.Request) {
	msg, ok := s.ownedMessage(w, r)
	if !ok {
		return
	}

	if err := s.db.DeleteMessage(r.Context(), msg.Id); err != nil {
		s.lookupError(w, err)
		return
	}
	s.stats.Incr(stats.MessagesDeleted)

	http.Redirect(w, r, "/", http.StatusFound)
}
