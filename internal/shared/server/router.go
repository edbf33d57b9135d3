package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unirise-backend/internal/export"
	"unirise-backend/internal/majors"
	"unirise-backend/internal/services/health"
	"unirise-backend/internal/shared/config"
	"unirise-backend/internal/shared/metrics"
	"unirise-backend/internal/shared/server/middleware"
	"unirise-backend/internal/shared/server/respond"
	"unirise-backend/internal/usage"
)

// ServiceName identifies the API in traces.
const ServiceName = "unirise-api"

// Handlers groups the route owners mounted under /api.
type Handlers struct {
	Majors *majors.Handler
	Export *export.Handler
	Usage  *usage.Handler
	Health *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, h Handlers) *gin.Engine {
	if !cfg.IsDevLike() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Tracing(ServiceName),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	healthSvc := h.Health
	if healthSvc == nil {
		healthSvc = health.NewService("UniRise")
	}
	r.GET("/", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Welcome())
	})
	r.GET("/healthz", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	if h.Majors != nil {
		h.Majors.RegisterRoutes(api)
	}
	if h.Export != nil {
		h.Export.RegisterRoutes(api)
	}
	if h.Usage != nil {
		h.Usage.RegisterRoutes(api)
	}
	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
