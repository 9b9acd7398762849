package web

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/npezzotti/forum/internal/database"
	"github.com/npezzotti/forum/internal/session"
	"github.com/npezzotti/forum/internal/stats"
)

const (
	loginErrorMessage    = "Username or password does not exist"
	registerErrorMessage = "An error occurred during registration"
	profileErrorMessage  = "An error occurred while updating your profile"
)

func (s *ForumApp) loginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	s.render(w, r, http.StatusOK, "login_register.html.tmpl", templateData{Page: "login"})
}

func (s *ForumApp) login(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.PostForm.Get("email")))
	loginFailed := func() {
		s.render(w, r, http.StatusUnauthorized, "login_register.html.tmpl", templateData{
			Page:  "login",
			Error: loginErrorMessage,
			Form:  url.Values{"email": {email}},
		})
	}

	user, err := s.db.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			loginFailed()
			return
		}

		s.serverError(w, err)
		return
	}

	if !session.VerifyPassword(user.PasswordHash, r.PostForm.Get("password")) {
		loginFailed()
		return
	}

	if err := s.sessions.Login(w, user.Id); err != nil {
		s.serverError(w, fmt.Errorf("login: %w", err))
		return
	}
	s.stats.Incr(stats.Logins)

	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *ForumApp) logout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Logout(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *ForumApp) registerPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login_register.html.tmpl", templateData{Page: "register"})
}

func (s *ForumApp) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := newRegisterForm(r.PostForm)
	registerFailed := func() {
		s.render(w, r, http.StatusUnprocessableEntity, "login_register.html.tmpl", templateData{
			Page:  "register",
			Error: registerErrorMessage,
			Form:  form.values(),
		})
	}

	if err := form.validate(); err != nil {
		registerFailed()
		return
	}

	hash, err := session.HashPassword(form.Password1)
	if err != nil {
		s.serverError(w, fmt.Errorf("hash password: %w", err))
		return
	}

	user, err := s.db.CreateUser(r.Context(), database.CreateUserParams{
		Username:     form.Username,
		Name:         form.Name,
		EmailAddress: form.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			registerFailed()
			return
		}

		s.serverError(w, err)
		return
	}
	s.stats.Incr(stats.Registrations)

	if err := s.sessions.Login(w, user.Id); err != nil {
		s.serverError(w, fmt.Errorf("login: %w", err))
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *ForumApp) profile(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathId(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	user, err := s.db.GetUserById(ctx, id)
	if err != nil {
		s.lookupError(w, err)
		return
	}

	rooms, err := s.db.ListRoomsByHost(ctx, user.Id)
	if err != nil {
		s.serverError(w, err)
		return
	}

	messages, err := s.db.ListUserMessages(ctx, user.Id)
	if err != nil {
		s.serverError(w, err)
		return
	}

	topics, err := s.db.ListTopics(ctx, "", 0)
	if err != nil {
		s.serverError(w, err)
		return
	}

	total, err := s.db.CountRooms(ctx)
	if err != nil {
		s.serverError(w, err)
		return
	}

	s.render(w, r, http.StatusOK, "profile.html.tmpl", templateData{
		Profile:    &user,
		Rooms:      rooms,
		Messages:   messages,
		Topics:     topics,
		TotalRooms: total,
	})
}

func (s *ForumApp) updateProfilePage(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)

	s.render(w, r, http.StatusOK, "update_user.html.tmpl", templateData{
		Form: url.Values{
			"name":     {user.Name},
			"username": {user.Username},
			"email":    {user.EmailAddress},
			"bio":      {user.Bio},
		},
	})
}

func (s *ForumApp) updateProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize+multipartMaxMemory)
	if err := r.ParseMultipartForm(multipartMaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := newProfileForm(r.PostForm)
	updateFailed := func() {
		s.render(w, r, http.StatusUnprocessableEntity, "update_user.html.tmpl", templateData{
			Error: profileErrorMessage,
			Form:  form.values(),
		})
	}

	if err := form.validate(); err != nil {
		updateFailed()
		return
	}

	avatar := user.Avatar
	file, header, err := r.FormFile("avatar")
	switch {
	case err == nil:
		defer file.Close()
		avatar, err = s.saveAvatar(file, header)
		if err != nil {
			if errors.Is(err, errUnsupportedAvatar) || errors.Is(err, errAvatarTooLarge) {
				updateFailed()
				return
			}

			s.serverError(w, err)
			return
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if _, err := s.db.UpdateUser(r.Context(), database.UpdateUserParams{
		UserId:       user.Id,
		Username:     form.Username,
		Name:         form.Name,
		EmailAddress: form.Email,
		Bio:          form.Bio,
		Avatar:       avatar,
	}); err != nil {
		if avatar != user.Avatar {
			s.removeAvatar(avatar)
		}
		if errors.Is(err, database.ErrDuplicateEmail) {
			updateFailed()
			return
		}

		s.lookupError(w, err)
		return
	}

	http.Redirect(w, r, "/profile/"+strconv.Itoa(user.Id), http.StatusFound)
}
