package web

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/npezzotti/forum/internal/database"
	"github.com/npezzotti/forum/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testRoom(host *database.User) database.Room {
	return database.Room{
		Id:          1,
		Name:        "Let's learn Go",
		Description: "Goroutines and channels",
		Host:        host,
		Topic:       &database.Topic{Id: 3, Name: "Go"},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func TestHome(t *testing.T) {
	app := newTestApp(t)
	orphan := testRoom(nil)
	orphan.Topic = nil
	app.repo.On("ListRooms", mock.Anything, "go").Return([]database.Room{testRoom(&alice), orphan}, nil).Once()
	app.repo.On("ListTopics", mock.Anything, "", homeTopicLimit).Return([]database.Topic{{Id: 3, Name: "Go", RoomCount: 1}}, nil).Once()
	app.repo.On("CountRooms", mock.Anything).Return(7, nil).Once()
	app.repo.On("ListMessagesByTopicName", mock.Anything, "go").Return([]database.Message{
		{Id: 1, Body: "hello", User: alice, Room: testRoom(&alice), CreatedAt: time.Now()},
	}, nil).Once()

	rr := app.serve(httptest.NewRequest(http.MethodGet, "/?q=go", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "2 rooms available")
	assert.Contains(t, body, "deleted user")
	assert.Contains(t, body, "@alice")
	assert.Contains(t, body, "<span>7</span>")
	assert.NotContains(t, body, "/message/1/delete", "anonymous visitors should not see delete links")
	app.repo.AssertExpectations(t)
}

func TestHome_RepositoryError(t *testing.T) {
	app := newTestApp(t)
	app.repo.On("ListRooms", mock.Anything, "").Return([]database.Room(nil), sql.ErrConnDone).Once()

	rr := app.serve(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRoomView(t *testing.T) {
	t.Run("renders room with participants", func(t *testing.T) {
		app := newTestApp(t)
		room := testRoom(&alice)
		app.repo.On("GetRoomById", mock.Anything, 1).Return(room, nil).Once()
		app.repo.On("ListRoomMessages", mock.Anything, 1).Return([]database.Message{
			{Id: 4, Body: "first!", User: bob, Room: room, CreatedAt: time.Now()},
		}, nil).Once()
		app.repo.On("ListParticipants", mock.Anything, []int{1}).Return(map[int][]database.User{1: {bob}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/room/1", nil)
		app.login(t, req, alice)
		rr := app.serve(req)

		assert.Equal(t, http.StatusOK, rr.Code)
		body := rr.Body.String()
		assert.Contains(t, body, "first!")
		assert.Contains(t, body, "(1 Joined)")
		assert.Contains(t, body, "/room/1/edit", "host should see edit link")
		assert.NotContains(t, body, "/message/4/delete", "only the author may delete a message")
		app.repo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		app := newTestApp(t)
		app.repo.On("GetRoomById", mock.Anything, 42).Return(database.Room{}, sql.ErrNoRows).Once()

		rr := app.serve(httptest.NewRequest(http.MethodGet, "/room/42", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		app.repo.AssertExpectations(t)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		app := newTestApp(t)

		rr := app.serve(httptest.NewRequest(http.MethodGet, "/room/abc", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		app.repo.AssertNotCalled(t, "GetRoomById", mock.Anything, mock.Anything)
	})
}

func TestPostMessage(t *testing.T) {
	t.Run("creates message and joins room", func(t *testing.T) {
		app := newTestApp(t)
		room := testRoom(&alice)
		params := database.CreateMessageParams{UserId: bob.Id, RoomId: room.Id, Body: "hello there"}
		app.repo.On("GetRoomById", mock.Anything, 1).Return(room, nil).Once()
		app.repo.On("CreateMessage", mock.Anything, params).Return(database.Message{Id: 9, Body: params.Body}, nil).Once()

		req := formRequest(http.MethodPost, "/room/1", "body=hello+there")
		app.login(t, req, bob)
		rr := app.serve(req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/room/1", rr.Header().Get("Location"))
		assert.EqualValues(t, 1, app.stats.Value(stats.MessagesPosted))
		app.repo.AssertExpectations(t)
	})

	t.Run("unknown room", func(t *testing.T) {
		app := newTestApp(t)
		app.repo.On("GetRoomById", mock.Anything, 5).Return(database.Room{}, sql.ErrNoRows).Once()

		req := formRequest(http.MethodPost, "/room/5", "body=hi")
		app.login(t, req, bob)
		rr := app.serve(req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		app.repo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
	})

	t.Run("anonymous user is redirected", func(t *testing.T) {
		app := newTestApp(t)

		rr := app.serve(formRequest(http.MethodPost, "/room/1", "body=hi"))

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
		app.repo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
	})
}

func TestCreateRoom(t *testing.T) {
	t.Run("form lists topics", func(t *testing.T) {
		app := newTestApp(t)
		app.repo.On("ListTopics", mock.Anything, "", 0).Return([]database.Topic{{Id: 3, Name: "Go"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/room/create", nil)
		app.login(t, req, alice)
		rr := app.serve(req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `<option value="Go">`)
		app.repo.AssertExpectations(t)
	})

	t.Run("creates topic on demand", func(t *testing.T) {
		app := newTestApp(t)
		app.repo.On("GetOrCreateTopic", mock.Anything, "Rust").Return(database.Topic{Id: 8, Name: "Rust"}, true, nil).Once()
		app.repo.On("CreateRoom", mock.Anything, database.CreateRoomParams{
			HostId:      alice.Id,
			TopicId:     8,
			Name:        "Borrowing",
			Description: "lifetimes",
		}).Return(database.Room{Id: 11}, nil).Once()

		req := formRequest(http.MethodPost, "/room/create", "topic=+Rust+&name=Borrowing&description=lifetimes")
		app.login(t, req, alice)
		rr := app.serve(req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))
		assert.EqualValues(t, 1, app.stats.Value(stats.RoomsCreated))
		app.repo.AssertExpectations(t)
	})
}

func TestUpdateRoom(t *testing.T) {
	t.Run("host updates room", func(t *testing.T) {
		app := newTestApp(t)
		app.repo.On("GetRoomById", mock.Anything, 1).Return(testRoom(&alice), nil).Once()
		app.repo.On("GetOrCreateTopic", mock.Anything, "Go").Return(database.Topic{Id: 3, Name: "Go"}, false, nil).Once()
		app.repo.On("UpdateRoom", mock.Anything, database.UpdateRoomParams{
			RoomId:      1,
			TopicId:     3,
			Name:        "Go generics",
			Description: "type parameters",
		}).Return(database.Room{Id: 1}, nil).Once()

		req := formRequest(http.MethodPost, "/room/1/edit", "topic=Go&name=Go+generics&description=type+parameters")
		app.login(t, req, alice)
		rr := app.serve(req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))
		app.repo.AssertExpectations(t)
	})

	t.Run("form is prefilled", func(t *testing.T) {
		app := newTestApp(t)
		app.repo.On("GetRoomById", mock.Anything, 1).Return(testRoom(&alice), nil).Once()
		app.repo.On("ListTopics", mock.Anything, "", 0).Return([]database.Topic{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/room/1/edit", nil)
		app.login(t, req, alice)
		rr := app.serve(req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `value="Go"`)
		assert.Contains(t, rr.Body.String(), "Goroutines and channels")
	})

	t.Run("non-host is forbidden", func(t *testing.T) {
		app := newTestApp(t)
		app.repo.On("GetRoomById", mock.Anything, 1).Return(testRoom(&alice), nil).Once()

		req := formRequest(http.MethodPost, "/room/1/edit", "topic=Go&name=hijacked")
		app.login(t, req, bob)
		rr := app.serve(req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), forbiddenMessage)
		app.repo.AssertNotCalled(t, "GetOrCreateTopic", mock.Anything, mock.Anything)
		app.repo.AssertNotCalled(t, "UpdateRoom", mock.Anything, mock.Anything)
	})
}

func TestDeleteRoom(t *testing.T) {
	tcases := []struct {
		name         string
		host         *database.User
		expectedCode int
	}{
		{
			name:         "host deletes room",
			host:         &alice,
			expectedCode: http.StatusFound,
		},
		{
			name:         "non-host is forbidden",
			host:         &bob,
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "room without host is forbidden",
			host:         nil,
			expectedCode: http.StatusForbidden,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t)
			app.repo.On("GetRoomById", mock.Anything, 1).Return(testRoom(tc.host), nil).Once()
			if tc.expectedCode == http.StatusFound {
				app.repo.On("DeleteRoom", mock.Anything, 1).Return(nil).Once()
			}

			req := formRequest(http.MethodPost, "/room/1/delete", "")
			app.login(t, req, alice)
			rr := app.serve(req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedCode == http.StatusFound {
				assert.Equal(t, "/", rr.Header().Get("Location"))
				assert.EqualValues(t, 1, app.stats.Value(stats.RoomsDeleted))
			} else {
				app.repo.AssertNotCalled(t, "DeleteRoom", mock.Anything, mock.Anything)
			}
			app.repo.AssertExpectations(t)
		})
	}
}

func TestDeleteRoomPage(t *testing.T) {
	app := newTestApp(t)
	app.repo.On("GetRoomById", mock.Anything, 1).Return(testRoom(&alice), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/room/1/delete", nil)
	app.login(t, req, alice)
	rr := app.serve(req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Are you sure you want to delete")
	app.repo.AssertNotCalled(t, "DeleteRoom", mock.Anything, mock.Anything)
}

func TestTopicsPage(t *testing.T) {
	app := newTestApp(t)
	app.repo.On("ListTopics", mock.Anything, "py", 0).Return([]database.Topic{{Id: 1, Name: "Python", RoomCount: 2}}, nil).Once()
	app.repo.On("CountRooms", mock.Anything).Return(4, nil).Once()

	rr := app.serve(httptest.NewRequest(http.MethodGet, "/topics?q=py", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Python")
	app.repo.AssertExpectations(t)
}

func TestActivityPage(t *testing.T) {
	app := newTestApp(t)
	room := testRoom(&alice)
	app.repo.On("ListMessages", mock.Anything).Return([]database.Message{
		{Id: 2, Body: "see you there", User: alice, Room: room, CreatedAt: time.Now()},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/activity", nil)
	app.login(t, req, alice)
	rr := app.serve(req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "see you there")
	assert.Contains(t, rr.Body.String(), "/message/2/delete")
	app.repo.AssertExpectations(t)
}
