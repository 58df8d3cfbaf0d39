package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gourdmobile/backend/internal/repositories"
	"github.com/gourdmobile/backend/internal/router"
	"github.com/gourdmobile/backend/internal/services"
	"github.com/gourdmobile/backend/pkg/config"
	"github.com/gourdmobile/backend/pkg/firebase"
	"github.com/gourdmobile/backend/pkg/logger"
	"github.com/gourdmobile/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	if cfg.UsesDefaultJWTSecret() {
		log.Warn("JWT_SECRET not set, signing tokens with the development default")
	}

	// Initialize database connections
	db, err := config.InitDB(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize databases", "error", err)
	}
	defer db.CloseDB()

	if err := router.Migrate(db.Postgres); err != nil {
		log.Fatal("Failed to migrate PostgreSQL schema", "error", err)
	}

	var tokenStore repositories.TokenStore = repositories.NoopTokenStore{}
	if db.Redis != nil {
		tokenStore = repositories.NewRedisTokenStore(db.Redis)
	}

	deps := router.Deps{
		Repos:  router.NewRepositories(db.Postgres, db.Mongo.Database(cfg.MongoDatabase)),
		Tokens: services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, tokenStore),
		Log:    log,
	}

	// Initialize Firebase; google login and uploads stay disabled without it
	ctx := context.Background()
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseStorageBucket)
		if err != nil {
			log.Fatal("Failed to initialize Firebase", "error", err)
		}
		deps.Verifier = firebaseApp.AuthClient
		if firebaseApp.Bucket != nil {
			deps.Media = services.NewFirebaseMediaStore(firebaseApp.Bucket, firebaseApp.BucketName)
		}
	} else {
		log.Warn("FIREBASE_CREDENTIALS_PATH not set, google login and uploads disabled")
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	config.SetupMiddleware(e, log)
	router.SetupRoutes(e, cfg.APIPrefix, deps)

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}
	log.Info("Server exited")
}
