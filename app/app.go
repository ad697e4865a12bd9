package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edu-platform-api/config"
	"edu-platform-api/handler"
	"edu-platform-api/logger"
	"edu-platform-api/repository"
	"edu-platform-api/router"
	"edu-platform-api/service"
	"edu-platform-api/session"
)

// App holds the wired service graph. Tests build one with their own config
// instead of going through Run.
type App struct {
	Config config.Config
	Repo   *repository.UserRepository
	Auth   *service.AuthService
	Users  *service.UserService
	Router http.Handler
}

// New wires all layers together: repository -> services -> handlers -> router.
func New(cfg config.Config) (*App, error) {
	authService, err := service.NewAuthService(cfg.JWT)
	if err != nil {
		return nil, err
	}

	cookieCodec, err := session.NewCodec(cfg.Cookie)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository()
	userService := service.NewUserService(userRepo, authService)

	userHandler := handler.NewUserHandler(userService, authService, cookieCodec)
	authMW := handler.NewAuthMiddleware(authService, cookieCodec)

	return &App{
		Config: cfg,
		Repo:   userRepo,
		Auth:   authService,
		Users:  userService,
		Router: router.NewRouter(userHandler, authMW),
	}, nil
}

// Run loads configuration, wires the app and serves until a shutdown signal.
func Run() {
	logger.Init()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	logger.Log.Info("Configuration loaded successfully")

	a, err := New(cfg)
	if err != nil {
		logger.Log.Fatalf("Error wiring application: %v", err)
	}

	port := cfg.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
