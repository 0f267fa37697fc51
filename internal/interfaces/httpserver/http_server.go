package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"visioneer-server/internal/config"
	"visioneer-server/internal/domain/user"
	"visioneer-server/internal/infrastructure"
	"visioneer-server/internal/infrastructure/ratelimit"
	middleware "visioneer-server/internal/interfaces/httpserver/middlewares"
	v1 "visioneer-server/internal/interfaces/httpserver/routes/v1"

	_ "visioneer-server/docs/swagger"
)

type HTTPServer struct {
	engine      *gin.Engine
	infra       *infrastructure.Infrastructure
	v1Route     *v1.V1Route
	userService *user.Service
	limiter     ratelimit.Limiter
	config      *config.Config
}

func NewHttpServer(
	v1Route *v1.V1Route,
	infra *infrastructure.Infrastructure,
	userService *user.Service,
	limiter ratelimit.Limiter,
	cfg *config.Config,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	server := HTTPServer{
		gin.New(),
		infra,
		v1Route,
		userService,
		limiter,
		cfg,
	}
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(infra.Logger))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware())

	// Root health check (for orchestrator probes)
	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server.engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.EnableSwagger {
		server.bindSwagger()
	}
	return &server
}

func (s *HTTPServer) bindSwagger() {
	s.engine.GET("/api/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (httpServer *HTTPServer) Run() error {
	// Public routes (no auth required)
	root := httpServer.engine.Group("/")
	httpServer.v1Route.RegisterPublicRouter(root)

	// Protected routes: authentication plus the API-wide rate limit.
	// Generation endpoints stack their own tighter limit on top.
	protected := httpServer.engine.Group("/")
	protected.Use(
		middleware.AuthMiddleware(httpServer.infra.Validator, httpServer.userService, httpServer.infra.Logger),
		middleware.RateLimitMiddleware(httpServer.limiter, "api", httpServer.config.APIRateLimit, httpServer.config.APIRateWindow),
	)
	httpServer.v1Route.RegisterRouter(protected)

	if err := httpServer.engine.Run(fmt.Sprintf(":%d", httpServer.config.HTTPPort)); err != nil {
		return err
	}
	return nil
}
