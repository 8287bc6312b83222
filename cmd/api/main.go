package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/artlet/artlet-api/internal/config"
	"github.com/artlet/artlet-api/internal/domain/artwork"
	"github.com/artlet/artlet-api/internal/domain/editor"
	"github.com/artlet/artlet-api/internal/domain/group"
	"github.com/artlet/artlet-api/internal/domain/tag"
	"github.com/artlet/artlet-api/internal/middleware"
	"github.com/artlet/artlet-api/internal/pkg/database"
	"github.com/artlet/artlet-api/internal/pkg/imaging"
	"github.com/artlet/artlet-api/internal/pkg/jwt"
	"github.com/artlet/artlet-api/internal/pkg/logger"
	"github.com/artlet/artlet-api/internal/pkg/palette"
	pkgresponse "github.com/artlet/artlet-api/internal/pkg/response"
	"github.com/artlet/artlet-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Artlet API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	store := newStorage(cfg)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	// ---------- Repositories ----------
	artworkRepo := artwork.NewRepository(db)
	tagRepo := tag.NewRepository(db)
	groupRepo := group.NewRepository(db)

	// ---------- Services ----------
	tagCatalog := tag.NewCatalog(tagRepo, redis, cfg.CatalogCacheTTL)
	tagReconciler := tag.NewReconciler(tagCatalog, tagRepo)
	groupService := group.NewService(groupRepo, redis, cfg.CatalogCacheTTL)

	processor := imaging.NewProcessor(imaging.Config{
		MaxDimension: cfg.MaxImageDimension,
		ThumbWidth:   cfg.ThumbnailWidth,
	})
	extractor := palette.NewExtractor(cfg.PaletteSize)

	artworkService := artwork.NewService(
		artworkRepo,
		store,
		processor,
		extractor,
		tagReconciler,
		groupService,
		tagRepo,
		groupService,
	)

	editorManager := editor.NewManager(artworkService, artworkService, tagRepo, editor.DefaultStatusTTL)

	// ---------- Handlers ----------
	artworkHandler := artwork.NewHandler(artworkService)
	editorHandler := editor.NewHandler(editorManager)
	tagHandler := tag.NewHandler(tagCatalog)
	groupHandler := group.NewHandler(groupService)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/artworks", artworkHandler.Routes(authMiddleware))
		r.Mount("/artworks/{id}/groups", groupHandler.ArtworkRoutes(authMiddleware))
		r.Mount("/editor/sessions", editorHandler.Routes(authMiddleware))
		r.Mount("/tags", tagHandler.Routes(authMiddleware))
		r.Mount("/groups", groupHandler.Routes(authMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// newStorage picks S3/MinIO when a bucket is configured and falls back
// to local disk for development
func newStorage(cfg *config.Config) storage.Storage {
	if cfg.S3Bucket != "" {
		s3Store, err := storage.NewS3Storage(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 storage")
		}
		return s3Store
	}

	localStore, err := storage.NewLocalStorage(cfg.LocalStoragePath, cfg.LocalStorageURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create local storage")
	}
	log.Warn().Str("path", cfg.LocalStoragePath).Msg("No S3 bucket configured, storing images on local disk")
	return localStore
}
