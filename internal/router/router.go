package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hospitalar/visitas-api/internal/handler"
	authHandler "github.com/hospitalar/visitas-api/internal/handler/auth"
	dashboardHandler "github.com/hospitalar/visitas-api/internal/handler/dashboard"
	patientHandler "github.com/hospitalar/visitas-api/internal/handler/patient"
	userHandler "github.com/hospitalar/visitas-api/internal/handler/user"
	visitHandler "github.com/hospitalar/visitas-api/internal/handler/visit"
	"github.com/hospitalar/visitas-api/internal/middleware"
	"github.com/hospitalar/visitas-api/pkg/metrics"
)

type Config struct {
	RateLimit middleware.RateLimiterConfig
	CORS      middleware.CORSConfig
	Timeout   time.Duration
}

type Router struct {
	engine   *gin.Engine
	sessions *middleware.SessionMiddleware
	authH    *authHandler.Handler
	patientH *patientHandler.Handler
	visitH   *visitHandler.Handler
	userH    *userHandler.Handler
	dashH    *dashboardHandler.Handler
	healthH  *handler.HealthHandler
	pagesH   *handler.PageHandler
	limiter  *middleware.RateLimiter
	metrics  *metrics.Metrics
}

func NewRouter(
	sessions *middleware.SessionMiddleware,
	authH *authHandler.Handler,
	patientH *patientHandler.Handler,
	visitH *visitHandler.Handler,
	userH *userHandler.Handler,
	dashH *dashboardHandler.Handler,
	healthH *handler.HealthHandler,
	pagesH *handler.PageHandler,
	m *metrics.Metrics,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:   engine,
		sessions: sessions,
		authH:    authH,
		patientH: patientH,
		visitH:   visitH,
		userH:    userH,
		dashH:    dashH,
		healthH:  healthH,
		pagesH:   pagesH,
		limiter:  middleware.NewRateLimiter(config.RateLimit),
		metrics:  m,
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
	)
	engine.Use(middleware.CORS(config.CORS))

	return r
}

func (r *Router) Setup() {
	r.setupHealthCheck()
	r.setupPages()
	r.setupAPI()
}

func (r *Router) setupHealthCheck() {
	health := r.engine.Group("/health")
	{
		health.GET("/live", r.healthH.LivenessCheck)
		health.GET("/ready", r.healthH.ReadinessCheck)
	}
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupPages wires the two page routes behind the session guard. The guard
// decides redirects purely from cookie validity and the requested path.
func (r *Router) setupPages() {
	pages := r.engine.Group("", r.sessions.Guard())
	{
		pages.GET("/", r.pagesH.LoginPage)
		pages.GET("/dashboard", r.pagesH.DashboardPage)
		pages.GET("/dashboard/*page", r.pagesH.DashboardPage)
	}
}

func (r *Router) setupAPI() {
	api := r.engine.Group("/api/v1")

	// Public routes
	r.authH.RegisterRoutes(api, r.limiter.RateLimit())

	// Protected routes
	protected := api.Group("", r.sessions.RequireSession())
	{
		r.patientH.RegisterRoutes(protected)
		r.visitH.RegisterRoutes(protected)
		r.userH.RegisterRoutes(protected)
		r.dashH.RegisterRoutes(protected)
		protected.GET("/auth/session", r.authH.Session)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.ErrorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
