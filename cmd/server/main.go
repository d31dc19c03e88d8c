package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "stockroom/docs" // swagger docs

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"stockroom/internal/auth"
	"stockroom/internal/cache"
	"stockroom/internal/config"
	"stockroom/internal/db"
	"stockroom/internal/handler"
	"stockroom/internal/model"
	"stockroom/internal/repository"
	"stockroom/internal/router"
	"stockroom/internal/service"
	"stockroom/pkg/logging"
)

// @title Stockroom API
// @version 1.0
// @description Session-authenticated inventory CRUD API.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	logging.Setup()
	cfg := config.Load()

	if cfg.SessionSecret == "" {
		slog.Error("SESSION_SECRET must be set")
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		slog.Error("database init", "error", err)
		os.Exit(1)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Item{},
		&model.Session{},
	); err != nil {
		slog.Error("auto-migrate", "error", err)
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)

	// Initialize session machinery
	signer := auth.NewSigner(cfg.SessionSecret)
	sessions := auth.NewSessionManager(sessionRepo, cacheClient, signer)

	// Expired sessions are already invisible to resolve; this just trims rows.
	if err := sessionRepo.PurgeExpired(context.Background(), time.Now()); err != nil {
		slog.Warn("purge expired sessions", "error", err)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, sessions)
	itemService := service.NewItemService(itemRepo, userRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	userHandler := handler.NewUserHandler(authService)
	itemHandler := handler.NewItemHandler(itemService, sessions)

	// Register routes
	router.Register(e, sessions, authHandler, userHandler, itemHandler)

	addr := ":" + cfg.ServerPort
	slog.Info("starting server", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		slog.Error("server start", "error", err)
		os.Exit(1)
	}
}
