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
	"github.com/mantas/appointments/config"
	"github.com/mantas/appointments/internal/auth"
	"github.com/mantas/appointments/internal/authz"
	"github.com/mantas/appointments/internal/infrastructure/database"
	"github.com/mantas/appointments/internal/logger"
	"github.com/mantas/appointments/internal/metrics"
	"github.com/mantas/appointments/internal/offering"
	"github.com/mantas/appointments/internal/password"
	"github.com/mantas/appointments/internal/server"
	"github.com/mantas/appointments/internal/users"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// 0. Load Config
	env := os.Getenv("APP_ENV")
	log := logger.New(logger.Config{}, "appointments")
	cfg, err := config.Load(env)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	log = logger.New(cfg.Log, "appointments")
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Storage
	db, err := database.Open(cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := database.Migrate(ctx, db, cfg.DB.Driver, &users.User{}, &offering.OfferedService{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to access sql.DB")
	}
	defer sqlDB.Close()

	// 2. Services
	authMetrics := metrics.NewAuth(prometheus.DefaultRegisterer)
	jwtService := auth.NewJWTService(auth.TokenConfig{Secret: cfg.JWT.Secret, TTL: cfg.JWT.TTL()})
	userService, err := users.NewService(
		users.NewGormRepository(db),
		password.NewBcryptHasher(cfg.Password.BcryptCost),
		jwtService,
		users.WithMetrics(authMetrics),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init user service")
	}

	// 3. Routes
	router := server.NewRouter(server.Deps{
		Log:       log,
		Tokens:    jwtService,
		Users:     userService,
		Offerings: offering.NewService(offering.NewGormRepository(db)),
		Policy:    authz.DefaultPolicy(),
		Metrics:   authMetrics,
		Gatherer:  prometheus.DefaultGatherer,
		DB:        sqlDB,
	})

	// 4. Run
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", env).Str("db", cfg.DB.Driver).Msg("starting appointments server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to run server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
