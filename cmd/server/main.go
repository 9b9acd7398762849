package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/npezzotti/forum/internal/config"
	"github.com/npezzotti/forum/internal/database"
	"github.com/npezzotti/forum/internal/session"
	"github.com/npezzotti/forum/internal/stats"
	"github.com/npezzotti/forum/internal/web"
)

const defaultSigningKey = "wT0phFUusHZIrDhL9bUKPUhwaxKhpi/SaI6PtgB+MgU="

type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, strings.Split(value, ",")...)
	return nil
}

var (
	addr           string
	dsn            string
	signingKey     string
	mediaDir       string
	allowedOrigins stringSliceFlag
)

// envOr returns the value of the environment variable key, or def if unset.
func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func main() {
	logger := log.New(os.Stderr, "[forum] ", log.LstdFlags)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Fatal("load .env:", err)
	}

	flag.StringVar(&addr, "addr", envOr("FORUM_ADDR", "localhost:8000"), "server address")
	flag.StringVar(&dsn, "dsn", envOr("FORUM_DSN", "host=localhost user=postgres password=postgres dbname=postgres sslmode=disable"), "database connection string")
	flag.StringVar(&signingKey, "signing-key", envOr("FORUM_SIGNING_KEY", defaultSigningKey), "base64 encoded signing key")
	flag.StringVar(&mediaDir, "media-dir", envOr("FORUM_MEDIA_DIR", "./media"), "directory for uploaded avatars")
	flag.Var(&allowedOrigins, "allowed-origins", "comma-separated list of allowed origins for CORS")
	flag.Parse()

	if len(allowedOrigins) == 0 {
		if origins := os.Getenv("FORUM_ALLOWED_ORIGINS"); origins != "" {
			allowedOrigins.Set(origins)
		}
	}

	cfg, err := config.NewConfig(addr, dsn, signingKey, allowedOrigins, mediaDir)
	if err != nil {
		logger.Fatal("config:", err)
	}

	dbConn, err := database.NewPgForumRepository(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("db open:", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Fatal("db close:", err)
		}
	}()

	if err := dbConn.Migrate(); err != nil {
		logger.Fatal("db migrate:", err)
	}

	statsUpdater := stats.NewStatsUpdater()
	sessions := session.NewJwtManager(cfg.SigningKey, session.DefaultExpiration)

	srv, err := web.NewForumApp(logger, dbConn, sessions, statsUpdater, cfg)
	if err != nil {
		logger.Fatal("new forum app:", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Printf("received signal: %s\n", sig)
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Println("server:", err)
		}
	}

	shutDownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("HTTP server shutdown:", err)
	}

	logger.Println("shutdown complete")
}
