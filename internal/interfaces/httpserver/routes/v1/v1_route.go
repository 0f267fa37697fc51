package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"visioneer-server/internal/config"
	"visioneer-server/internal/interfaces/httpserver/routes/v1/moodboards"
	"visioneer-server/internal/interfaces/httpserver/routes/v1/projects"
	"visioneer-server/internal/interfaces/httpserver/routes/v1/sessions"
	"visioneer-server/internal/interfaces/httpserver/routes/v1/usage"
)

type V1Route struct {
	moodboard *moodboards.MoodboardRoute
	project   *projects.ProjectRoute
	usage     *usage.UsageRoute
	session   *sessions.SessionRoute
}

func NewV1Route(
	moodboard *moodboards.MoodboardRoute,
	project *projects.ProjectRoute,
	usage *usage.UsageRoute,
	session *sessions.SessionRoute,
) *V1Route {
	return &V1Route{
		moodboard,
		project,
		usage,
		session,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")

	v1Route.moodboard.RegisterRoutes(v1Router)
	v1Route.project.RegisterRoutes(v1Router)
	v1Route.usage.RegisterRoutes(v1Router)
	v1Route.session.RegisterRoutes(v1Router)
}

// RegisterPublicRouter registers endpoints that do not require authentication
func (v1Route *V1Route) RegisterPublicRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Router.GET("/healthz", GetHealthz)
	v1Router.GET("/readyz", GetReadyz)
}

// GetVersion godoc
// @Summary Get API build version
// @Description Returns the current build version of the API server and environment reload timestamp.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string "Version information including version number and environment reload timestamp"
// @Router /v1/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":         config.Version,
		"env_reloaded_at": config.GetEnvReloadedAt().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// GetHealthz godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API server. Used by orchestrators and monitoring systems.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string "Health status OK"
// @Router /v1/healthz [get]
func GetHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetReadyz godoc
// @Summary Readiness check endpoint
// @Description Returns the readiness status of the API server. Indicates if the service is ready to accept traffic.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string "Readiness status ready"
// @Router /v1/readyz [get]
func GetReadyz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
