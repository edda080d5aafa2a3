package server

import (
	"github.com/gin-gonic/gin"
	"github.com/mantas/appointments/internal/appointments"
	"github.com/mantas/appointments/internal/auth"
	"github.com/mantas/appointments/internal/authz"
	"github.com/mantas/appointments/internal/health"
	"github.com/mantas/appointments/internal/metrics"
	"github.com/mantas/appointments/internal/middleware"
	"github.com/mantas/appointments/internal/offering"
	"github.com/mantas/appointments/internal/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Deps struct {
	Log       zerolog.Logger
	Tokens    auth.Service
	Users     users.Authenticator
	Offerings *offering.Service
	Policy    *authz.Policy
	Metrics   *metrics.Auth
	Gatherer  prometheus.Gatherer
	// DB is optional; when set /health pings it.
	DB health.Pinger
}

func NewRouter(d Deps) *gin.Engine {
	if d.Policy == nil {
		d.Policy = authz.DefaultPolicy()
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(d.Log),
		middleware.RequestLogger(),
		middleware.Recovery(),
		middleware.AuthMiddleware(d.Tokens, d.Metrics),
		middleware.RoleGate(d.Policy, d.Metrics),
	)

	// Public
	healthHandler := health.NewHealthHandler()
	if d.DB != nil {
		healthHandler.WithDatabase(d.DB)
	}
	r.GET("/health", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api/v1")
	users.NewHandler(d.Users).RegisterRoutes(api)
	offering.NewHandler(d.Offerings).RegisterRoutes(api)
	appointments.NewHandler().RegisterRoutes(api)

	return r
}
