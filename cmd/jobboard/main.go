package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobboard-dev/jobboard/db"
	"github.com/jobboard-dev/jobboard/internal/auth"
	"github.com/jobboard-dev/jobboard/internal/config"
	"github.com/jobboard-dev/jobboard/internal/logger"
	"github.com/jobboard-dev/jobboard/internal/middleware"
	"github.com/jobboard-dev/jobboard/internal/repositories"
	"github.com/jobboard-dev/jobboard/internal/repositories/memory"
	"github.com/jobboard-dev/jobboard/internal/router"
	"github.com/jobboard-dev/jobboard/internal/services"
	"github.com/jobboard-dev/jobboard/internal/validator"
	"github.com/jobboard-dev/jobboard/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	logger.Init(cfg.App.Env)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", "error", err)
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	statusPolicy, err := workflow.ParsePolicy(cfg.Policies.Status)
	if err != nil {
		logger.Fatal("invalid status policy", "error", err)
	}

	deletePolicy, err := services.ParseDeletePolicy(cfg.Policies.JobDelete)
	if err != nil {
		logger.Fatal("invalid job delete policy", "error", err)
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.TokenTTL())
	if err != nil {
		logger.Fatal("failed to initialise tokens", "error", err)
	}

	store, closeStore := openStore(cfg)
	defer closeStore()

	validate := validator.New()
	jobService := services.NewJobService(store.Jobs, validate, deletePolicy)

	r := router.NewRouter(router.Deps{
		Identity:       services.NewIdentityService(store.Users, tokens, validate),
		Jobs:           jobService,
		Applications:   services.NewApplicationService(store.Applications, jobService, workflow.NewEngine(statusPolicy), validate),
		Pinger:         store.Pinger,
		AllowedOrigins: cfg.Origins(),
		AuthLimiter:    middleware.NewClientLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server started",
		"port", cfg.App.Port,
		"driver", cfg.Database.Driver,
		"status_policy", statusPolicy,
		"job_delete_policy", deletePolicy,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	if err := serve(server, quit); err != nil {
		logger.Error("server failed", "error", err)
		closeStore()
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// serve runs server until it fails or quit fires, then shuts it down gracefully.
func serve(server *http.Server, quit <-chan os.Signal) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}

func openStore(cfg config.Config) (*repositories.Store, func()) {
	if cfg.Database.Driver == "memory" {
		logger.Warn("using in-memory store, data is lost on restart")
		return memory.NewStore(), func() {}
	}

	conn, err := db.Connect(cfg.Database.Driver, cfg.Database.URL, cfg.IsDevelopment())
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	if err := db.Migrate(conn); err != nil {
		_ = db.Close(conn)
		logger.Fatal("failed to migrate database", "error", err)
	}

	return repositories.NewGormStore(conn), func() {
		if err := db.Close(conn); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}
}
