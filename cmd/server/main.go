// Command server runs the PetCrushes HTTP API.
//
// It loads configuration from the environment (optionally via .env), opens the
// SQLite database, wires tracing and all application services, and serves the
// API with graceful shutdown.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/petcrushes/petcrushes-backend/docs"
	"github.com/petcrushes/petcrushes-backend/internal/config"
	httpapi "github.com/petcrushes/petcrushes-backend/internal/http"
	"github.com/petcrushes/petcrushes-backend/internal/media"
	"github.com/petcrushes/petcrushes-backend/internal/observability"
	"github.com/petcrushes/petcrushes-backend/internal/repo"
	"github.com/petcrushes/petcrushes-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// @title        PetCrushes API
// @version      1.0
// @description  Social matching and adoption marketplace for pets: profiles, likes, matches, chat, and adoption listings.
//
// @contact.name  PetCrushes
//
// @BasePath  /api
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
// @description Bearer token issued by /auth/verify-otp. Format: "Bearer {token}".
func main() {
	// .env is optional; real deployments use the process environment.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	gin.SetMode(cfg.GinMode)

	// Tokens survive process restarts only with a configured secret; an
	// ephemeral one keeps dev setups working without configuration.
	if cfg.Auth.JWTSecret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			log.Fatal().Err(err).Msg("generate ephemeral jwt secret")
		}
		cfg.Auth.JWTSecret = hex.EncodeToString(buf)
		log.Warn().Msg("JWT_SECRET not set; using an ephemeral secret, tokens will not survive restarts")
	}

	ctx := context.Background()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("setup opentelemetry")
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(c); err != nil {
			log.Error().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			log.Fatal().Err(err).Msg("enable gorm tracing")
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate schema")
	}

	uploader, err := media.NewCloudinaryUploader(cfg.Media.CloudinaryURL)
	if err != nil {
		log.Fatal().Err(err).Msg("configure cloudinary")
	}
	if uploader == nil {
		log.Warn().Msg("CLOUDINARY_URL not set; media uploads disabled")
	}

	r := gin.New()
	collab := httpapi.Collaborators{}
	if uploader != nil {
		collab.Uploader = uploader
	}
	httpapi.RegisterRoutes(r, db, cfg, collab)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("base_path", cfg.APIBasePath).
			Str("version", version).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("bye")
}
