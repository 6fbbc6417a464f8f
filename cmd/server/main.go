package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/echoplay/echoplay/internal/api"
	"github.com/echoplay/echoplay/internal/config"
	"github.com/echoplay/echoplay/internal/ingest"
	"github.com/echoplay/echoplay/internal/repository"
	memoryrepo "github.com/echoplay/echoplay/internal/repository/memory"
	"github.com/echoplay/echoplay/internal/repository/psql"
	"github.com/echoplay/echoplay/internal/service"
	"github.com/echoplay/echoplay/internal/storage"
	fsstorage "github.com/echoplay/echoplay/internal/storage/fs"
	"github.com/echoplay/echoplay/internal/urls"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// Asset storage
	store, err := fsstorage.New(fsstorage.Config{BaseDir: cfg.DataDir})
	if err != nil {
		slog.Error("Failed to initialize asset storage", "err", err)
		os.Exit(1)
	}

	// Catalog repository
	ctx := context.Background()
	var repo repository.Repository
	if cfg.UsePostgres() {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("Failed to connect to database", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := psql.Migrate(ctx, pool); err != nil {
			slog.Error("Failed to apply schema", "err", err)
			os.Exit(1)
		}
		repo = psql.NewWithPool(pool)
	} else {
		slog.Warn("DATABASE_URL not set, using in-memory catalog")
		repo = memoryrepo.New()
	}

	// Services
	pipeline := ingest.New(store, logger)
	userService := service.NewUserService(repo, pipeline, store, logger)
	songService := service.NewSongService(repo, pipeline, store, logger)
	playlistService := service.NewPlaylistService(repo, logger)
	packageService := service.NewPackageService(pipeline, store, logger)

	builder := urls.NewBuilder(cfg.BaseURL)

	// Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Mount("/users", api.NewUserHandler(userService, playlistService, builder).Routes())
	r.Mount("/songs", api.NewSongHandler(songService, builder).Routes())
	r.Mount("/playlists", api.NewPlaylistHandler(playlistService, builder).Routes())
	r.Mount("/packages", api.NewPackageHandler(packageService, builder).Routes())

	// Static serving of ingested assets
	serveDir(r, urls.CoversPath, filepath.Join(cfg.DataDir, storage.DirCovers))
	serveDir(r, urls.ImagesPath, filepath.Join(cfg.DataDir, storage.DirImages))
	serveDir(r, urls.MusicPath, filepath.Join(cfg.DataDir, storage.DirMusic))
	serveDir(r, urls.PackagesPath, filepath.Join(cfg.DataDir, storage.DirPackages))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("Server listening", "addr", srv.Addr, "base_url", cfg.BaseURL, "data_dir", cfg.DataDir)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	slog.Info("Server exiting")
}

// serveDir mounts a directory for static file serving under prefix.
func serveDir(r chi.Router, prefix, dir string) {
	fs := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(dir)))
	r.Get(prefix+"/*", func(w http.ResponseWriter, req *http.Request) {
		fs.ServeHTTP(w, req)
	})
}
