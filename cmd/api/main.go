package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/hospitalar/visitas-api/internal/cache"
	"github.com/hospitalar/visitas-api/internal/config"
	"github.com/hospitalar/visitas-api/internal/handler"
	authHandler "github.com/hospitalar/visitas-api/internal/handler/auth"
	dashboardHandler "github.com/hospitalar/visitas-api/internal/handler/dashboard"
	patientHandler "github.com/hospitalar/visitas-api/internal/handler/patient"
	userHandler "github.com/hospitalar/visitas-api/internal/handler/user"
	visitHandler "github.com/hospitalar/visitas-api/internal/handler/visit"
	"github.com/hospitalar/visitas-api/internal/middleware"
	"github.com/hospitalar/visitas-api/internal/repository/postgres"
	"github.com/hospitalar/visitas-api/internal/router"
	authService "github.com/hospitalar/visitas-api/internal/service/auth"
	dashboardService "github.com/hospitalar/visitas-api/internal/service/dashboard"
	patientService "github.com/hospitalar/visitas-api/internal/service/patient"
	userService "github.com/hospitalar/visitas-api/internal/service/user"
	visitService "github.com/hospitalar/visitas-api/internal/service/visit"
	"github.com/hospitalar/visitas-api/pkg/logger"
	"github.com/hospitalar/visitas-api/pkg/metrics"
	"github.com/hospitalar/visitas-api/pkg/security"
	"github.com/hospitalar/visitas-api/pkg/session"
)

const bcryptCost = 12

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     !cfg.Env.Production(),
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := middleware.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	// Repositories
	patientRepo := postgres.NewPatientRepository(db)
	visitRepo := postgres.NewVisitRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Shared infrastructure
	hasher := security.NewBcryptHasher(bcryptCost)
	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL)
	cacheStore := cache.New(cfg.Session.CacheTTL)
	m := metrics.NewMetrics("visitas")

	// Services
	patientSvc := patientService.NewService(patientRepo, cacheStore)
	visitSvc := visitService.NewService(visitRepo, patientRepo, cacheStore)
	userSvc := userService.NewService(userRepo, hasher, appLogger)
	authSvc := authService.NewService(userRepo, hasher, sessions)
	dashboardSvc := dashboardService.NewService(patientRepo, visitRepo, cacheStore)

	// Bootstrap the default admin account (idempotent)
	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userSvc.EnsureDefaultAdmin(bootstrapCtx,
		cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap admin account")
	}
	cancelBootstrap()

	// Handlers
	sessionMw := middleware.NewSessionMiddleware(authSvc)
	authH := authHandler.NewHandler(authSvc, m, int(sessions.TTL().Seconds()), cfg.Env.Production())
	patientH := patientHandler.NewHandler(patientSvc, m)
	visitH := visitHandler.NewHandler(visitSvc, m)
	userH := userHandler.NewHandler(userSvc)
	dashH := dashboardHandler.NewHandler(dashboardSvc)
	healthH := handler.NewHealthHandler(db)
	pagesH := handler.NewPageHandler()

	r := router.NewRouter(sessionMw, authH, patientH, visitH, userH, dashH, healthH, pagesH, m, router.Config{
		RateLimit: middleware.RateLimiterConfig{
			RPS:   cfg.RateLimit.RequestsPerSecond,
			Burst: cfg.RateLimit.Burst,
		},
		CORS:    middleware.DefaultCORSConfig(),
		Timeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
