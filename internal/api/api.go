package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/handlers"
	"github.com/npezzotti/forum/internal/database"
	"github.com/npezzotti/forum/internal/types"
)

var routes = []string{
	"GET /api",
	"GET /api/rooms",
	"GET /api/rooms/:id",
}

// RoomsApi serves the read-only JSON view of rooms.
type RoomsApi struct {
	log            *log.Logger
	db             database.RoomRepository
	allowedOrigins []string
}

func NewRoomsApi(logger *log.Logger, db database.RoomRepository, allowedOrigins []string) *RoomsApi {
	return &RoomsApi{
		log:            logger,
		db:             db,
		allowedOrigins: allowedOrigins,
	}
}

// Routes returns the API handler, to be mounted at /api.
func (a *RoomsApi) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		errResp := NewNotFoundError()
		a.writeJson(w, errResp.StatusCode, errResp)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		errResp := NewMethodNotAllowedError()
		a.writeJson(w, errResp.StatusCode, errResp)
	})

	r.Get("/", a.getRoutes)
	r.Get("/rooms", a.getRooms)
	r.Get("/rooms/{id}", a.getRoom)

	return handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(a.allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
	)(r)
}

func (a *RoomsApi) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Printf("json encode: %v", err)
	}
}

func (a *RoomsApi) getRoutes(w http.ResponseWriter, _ *http.Request) {
	a.writeJson(w, http.StatusOK, routes)
}

func (a *RoomsApi) getRooms(w http.ResponseWriter, r *http.Request) {
	dbRooms, err := a.db.ListRooms(r.Context(), "")
	if err != nil {
		a.log.Println("list rooms:", err)
		errResp := NewInternalServerError(err)
		a.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	roomIds := make([]int, 0, len(dbRooms))
	for _, room := range dbRooms {
		roomIds = append(roomIds, room.Id)
	}

	participants, err := a.db.ListParticipants(r.Context(), roomIds...)
	if err != nil {
		a.log.Println("list participants:", err)
		errResp := NewInternalServerError(err)
		a.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	rooms := make([]types.Room, 0, len(dbRooms))
	for _, room := range dbRooms {
		room.Participants = participants[room.Id]
		rooms = append(rooms, types.NewRoom(room))
	}

	a.writeJson(w, http.StatusOK, rooms)
}

func (a *RoomsApi) getRoom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		errResp := NewNotFoundError()
		a.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	room, err := a.db.GetRoomById(r.Context(), id)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewNotFoundError()
		} else {
			a.log.Println("get room:", err)
			errResp = NewInternalServerError(err)
		}
		a.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	participants, err := a.db.ListParticipants(r.Context(), room.Id)
	if err != nil {
		a.log.Println("list participants:", err)
		errResp := NewInternalServerError(err)
		a.writeJson(w, errResp.StatusCode, errResp)
		return
	}
	room.Participants = participants[room.Id]

	a.writeJson(w, http.StatusOK, types.NewRoom(room))
}
