package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/npezzotti/forum/internal/database"
	"github.com/npezzotti/forum/internal/stats"
)

const homeTopicLimit = 5

func (s *ForumApp) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query().Get("q")

	rooms, err := s.db.ListRooms(ctx, q)
	if err != nil {
		s.serverError(w, err)
		return
	}

	topics, err := s.db.ListTopics(ctx, "", homeTopicLimit)
	if err != nil {
		s.serverError(w, err)
		return
	}

	total, err := s.db.CountRooms(ctx)
	if err != nil {
		s.serverError(w, err)
		return
	}

	messages, err := s.db.ListMessagesByTopicName(ctx, q)
	if err != nil {
		s.serverError(w, err)
		return
	}

	s.render(w, r, http.StatusOK, "home.html.tmpl", templateData{
		Query:      q,
		Rooms:      rooms,
		RoomCount:  len(rooms),
		Topics:     topics,
		TotalRooms: total,
		Messages:   messages,
	})
}

func (s *ForumApp) room(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathId(w, r)
	if !ok {
		return
	}

	room, err := s.db.GetRoomById(r.Context(), id)
	if err != nil {
		s.lookupError(w, err)
		return
	}

	messages, err := s.db.ListRoomMessages(r.Context(), room.Id)
	if err != nil {
		s.serverError(w, err)
		return
	}

	participants, err := s.db.ListParticipants(r.Context(), room.Id)
	if err != nil {
		s.serverError(w, err)
		return
	}

	s.render(w, r, http.StatusOK, "room.html.tmpl", templateData{
		Room:         &room,
		Messages:     messages,
		Participants: participants[room.Id],
	})
}

func (s *ForumApp) postMessage(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)
	id, ok := s.pathId(w, r)
	if !ok {
		return
	}

	room, err := s.db.GetRoomById(r.Context(), id)
	if err != nil {
		s.lookupError(w, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if _, err := s.db.CreateMessage(r.Context(), database.CreateMessageParams{
		UserId: user.Id,
		RoomId: room.Id,
		Body:   r.PostForm.Get("body"),
	}); err != nil {
		s.serverError(w, err)
		return
	}
	s.stats.Incr(stats.MessagesPosted)

	http.Redirect(w, r, roomURL(room.Id), http.StatusFound)
}

func (s *ForumApp) createRoomPage(w http.ResponseWriter, r *http.Request) {
	topics, err := s.db.ListTopics(r.Context(), "", 0)
	if err != nil {
		s.serverError(w, err)
		return
	}

	s.render(w, r, http.StatusOK, "room_form.html.tmpl", templateData{
		Page:   "create",
		Topics: topics,
	})
}

func (s *ForumApp) createRoom(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	topic, _, err := s.db.GetOrCreateTopic(r.Context(), strings.TrimSpace(r.PostForm.Get("topic")))
	if err != nil {
		s.serverError(w, err)
		return
	}

	room, err := s.db.CreateRoom(r.Context(), database.CreateRoomParams{
		HostId:      user.Id,
		TopicId:     topic.Id,
		Name:        r.PostForm.Get("name"),
		Description: r.PostForm.Get("description"),
	})
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.stats.Incr(stats.RoomsCreated)
	s.log.Printf("user %d created room %d", user.Id, room.Id)

	http.Redirect(w, r, "/", http.StatusFound)
}

// ownedRoom loads the room named by the path and checks that the current
// user hosts it. It writes the error response and returns false otherwise.
func (s *ForumApp) ownedRoom(w http.ResponseWriter, r *http.Request) (database.Room, bool) {
	user, _ := currentUser(r)
	id, ok := s.pathId(w, r)
	if !ok {
		return database.Room{}, false
	}

	room, err := s.db.GetRoomById(r.Context(), id)
	if err != nil {
		s.lookupError(w, err)
		return database.Room{}, false
	}

	if !room.IsHost(user.Id) {
		s.forbidden(w)
		return database.Room{}, false
	}

	return room, true
}

func (s *ForumApp) updateRoomPage(w http.ResponseWriter, r *http.Request) {
	room, ok := s.ownedRoom(w, r)
	if !ok {
		return
	}

	topics, err := s.db.ListTopics(r.Context(), "", 0)
	if err != nil {
		s.serverError(w, err)
		return
	}

	form := url.Values{
		"name":        {room.Name},
		"description": {room.Description},
	}
	if room.Topic != nil {
		form.Set("topic", room.Topic.Name)
	}

	s.render(w, r, http.StatusOK, "room_form.html.tmpl", templateData{
		Page:   "update",
		Room:   &room,
		Topics: topics,
		Form:   form,
	})
}

func (s *ForumApp) updateRoom(w http.ResponseWriter, r *http.Request) {
	room, ok := s.ownedRoom(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	topic, _, err := s.db.GetOrCreateTopic(r.Context(), strings.TrimSpace(r.PostForm.Get("topic")))
	if err != nil {
		s.serverError(w, err)
		return
	}

	if _, err := s.db.UpdateRoom(r.Context(), database.UpdateRoomParams{
		RoomId:      room.Id,
		TopicId:     topic.Id,
		Name:        r.PostForm.Get("name"),
		Description: r.PostForm.Get("description"),
	}); err != nil {
		s.lookupError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *ForumApp) deleteRoomPage(w http.ResponseWriter, r *http.Request) {
	room, ok := s.ownedRoom(w, r)
	if !ok {
		return
	}

	s.render(w, r, http.StatusOK, "delete.html.tmpl", templateData{
		Object: room.Name,
	})
}

func (s *ForumApp) deleteRoom(w http.ResponseWriter, r *http.Request) {
	room, ok := s.ownedRoom(w, r)
	if !ok {
		return
	}

	if err := s.db.DeleteRoom(r.Context(), room.Id); err != nil {
		s.lookupError(w, err)
		return
	}
	s.stats.Incr(stats.RoomsDeleted)

	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *ForumApp) topics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	topics, err := s.db.ListTopics(r.Context(), q, 0)
	if err != nil {
		s.serverError(w, err)
		return
	}

	total, err := s.db.CountRooms(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}

	s.render(w, r, http.StatusOK, "topics.html.tmpl", templateData{
		Query:      q,
		Topics:     topics,
		TotalRooms: total,
	})
}

func (s *ForumApp) activity(w http.ResponseWriter, r *http.Request) {
	messages, err := s.db.ListMessages(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}

	s.render(w, r, http.StatusOK, "activity.html.tmpl", templateData{
		Messages: messages,
	})
}

func roomURL(id int) string {
	return "/room/" + strconv.Itoa(id)
}
