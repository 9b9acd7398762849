package web

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/npezzotti/forum/internal/api"
	"github.com/npezzotti/forum/internal/config"
	"github.com/npezzotti/forum/internal/database"
	"github.com/npezzotti/forum/internal/session"
	"github.com/npezzotti/forum/internal/stats"
)

type ForumApp struct {
	log       *log.Logger
	db        database.ForumRepository
	sessions  session.Manager
	stats     *stats.StatsUpdater
	templates map[string]*template.Template
	mediaDir  string
	srv       *http.Server
}

func NewForumApp(logger *log.Logger, db database.ForumRepository, sessions session.Manager, su *stats.StatsUpdater, cfg *config.Config) (*ForumApp, error) {
	tc, err := newTemplateCache()
	if err != nil {
		return nil, fmt.Errorf("template cache: %w", err)
	}

	s := &ForumApp{
		log:       logger,
		db:        db,
		sessions:  sessions,
		stats:     su,
		templates: tc,
		mediaDir:  cfg.MediaDir,
	}

	staticFiles, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static files: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.errorHandler)

	r.Get("/healthz", s.healthCheck)
	r.Method(http.MethodGet, "/debug/vars", su.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFiles))))
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaDir))))
	r.Mount("/api", api.NewRoomsApi(logger, db, cfg.AllowedOrigins).Routes())

	r.Group(func(r chi.Router) {
		r.Use(s.loadSession)

		r.Get("/", s.home)
		r.Get("/topics", s.topics)
		r.Get("/activity", s.activity)
		r.Get("/room/{id}", s.room)
		r.Get("/profile/{id}", s.profile)

		r.Get("/login", s.loginPage)
		r.Post("/login", s.login)
		r.Get("/register", s.registerPage)
		r.Post("/register", s.register)
		r.Get("/logout", s.logout)
		r.Post("/logout", s.logout)

		r.Group(func(r chi.Router) {
			r.Use(s.requireLogin)

			r.Post("/room/{id}", s.postMessage)
			r.Get("/room/create", s.createRoomPage)
			r.Post("/room/create", s.createRoom)
			r.Get("/room/{id}/edit", s.updateRoomPage)
			r.Post("/room/{id}/edit", s.updateRoom)
			r.Get("/room/{id}/delete", s.deleteRoomPage)
			r.Post("/room/{id}/delete", s.deleteRoom)
			r.Get("/message/{id}/delete", s.deleteMessagePage)
			r.Post("/message/{id}/delete", s.deleteMessage)
			r.Get("/profile/edit", s.updateProfilePage)
			r.Post("/profile/edit", s.updateProfile)
		})
	})

	s.srv = &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: handlers.CombinedLoggingHandler(logger.Writer(), r),
	}

	return s, nil
}

func (s *ForumApp) Start() error {
	s.log.Printf("starting server on %s\n", s.srv.Addr)
	return s.srv.ListenAndServe()
}

func (s *ForumApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

func (s *ForumApp) healthCheck(w http.ResponseWriter, _ *http.Request) {
	if err := s.db.Ping(); err != nil {
		s.log.Println("health check:", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
