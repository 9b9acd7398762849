package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/npezzotti/forum/internal/database"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type templateData struct {
	CurrentUser  *database.User
	Query        string
	Error        string
	Form         url.Values
	Page         string
	Rooms        []database.Room
	RoomCount    int
	TotalRooms   int
	Topics       []database.Topic
	Messages     []database.Message
	Room         *database.Room
	Participants []database.User
	Profile      *database.User
	Object       string
}

var templateFuncs = template.FuncMap{
	"avatarURL": avatarURL,
	"truncate":  truncate,
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006 15:04")
	},
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n]) + "..."
}

func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(templateFS, "templates/pages/*.html.tmpl")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := path.Base(page)
		ts, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS,
			"templates/base.html.tmpl",
			"templates/partials/*.html.tmpl",
			page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}

		cache[name] = ts
	}

	return cache, nil
}

// render executes the page into a buffer first so that template errors
// never produce a partially written response.
func (s *ForumApp) render(w http.ResponseWriter, r *http.Request, status int, page string, data templateData) {
	ts, ok := s.templates[page]
	if !ok {
		s.serverError(w, fmt.Errorf("template %q does not exist", page))
		return
	}

	if user, ok := currentUser(r); ok {
		data.CurrentUser = &user
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		s.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
