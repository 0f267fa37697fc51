package moodboards

import (
	"github.com/gin-gonic/gin"

	"visioneer-server/internal/config"
	"visioneer-server/internal/infrastructure/ratelimit"
	"visioneer-server/internal/interfaces/httpserver/handlers/moodboardhandler"
	middleware "visioneer-server/internal/interfaces/httpserver/middlewares"
	"visioneer-server/internal/interfaces/httpserver/requests"
	"visioneer-server/internal/interfaces/httpserver/requests/moodboardreq"
	"visioneer-server/internal/interfaces/httpserver/responses"
	"visioneer-server/internal/utils/platformerrors"
)

type MoodboardRoute struct {
	handler *moodboardhandler.MoodboardHandler
	limiter ratelimit.Limiter
	cfg     *config.Config
}

func NewMoodboardRoute(handler *moodboardhandler.MoodboardHandler, limiter ratelimit.Limiter, cfg *config.Config) *MoodboardRoute {
	return &MoodboardRoute{
		handler: handler,
		limiter: limiter,
		cfg:     cfg,
	}
}

// RegisterRoutes registers moodboard routes. Generation endpoints get
// their own, tighter rate limit since each call fans out to the image
// providers.
func (r *MoodboardRoute) RegisterRoutes(rg *gin.RouterGroup) {
	generateLimit := middleware.RateLimitMiddleware(r.limiter, "generate", r.cfg.GenerateRateLimit, r.cfg.GenerateRateWindow)

	boards := rg.Group("/moodboards")
	boards.POST("", generateLimit, r.generateMoodboard)
	boards.GET("", r.listMoodboards)
	boards.GET("/:moodboard_id", r.getMoodboard)
	boards.POST("/:moodboard_id/refine", generateLimit, r.refineMoodboard)
	boards.DELETE("/:moodboard_id", r.deleteMoodboard)
}

// generateMoodboard godoc
// @Summary Generate moodboard
// @Description Generate a moodboard from a story: concept, image prompts and a batch of generated images
// @Tags Moodboards API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body moodboardreq.GenerateMoodboardRequest true "Generate moodboard request"
// @Success 201 {object} moodboardres.MoodboardResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 429 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/moodboards [post]
func (r *MoodboardRoute) generateMoodboard(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middleware.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "mb-generate-001")
		return
	}

	var req moodboardreq.GenerateMoodboardRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "mb-generate-002")
		return
	}

	response, err := r.handler.GenerateMoodboard(ctx, principal.UserID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to generate moodboard")
		return
	}

	reqCtx.JSON(201, response)
}

// listMoodboards godoc
// @Summary List moodboards
// @Description List moodboards for the authenticated user, optionally filtered by project
// @Tags Moodboards API
// @Security BearerAuth
// @Produce json
// @Param project_id query string false "Only boards attached to this project"
// @Param limit query int false "Maximum number of boards to return"
// @Param after query string false "Return boards after the given numeric ID"
// @Param order query string false "Sort order (asc or desc)"
// @Success 200 {object} moodboardres.MoodboardListResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/moodboards [get]
func (r *MoodboardRoute) listMoodboards(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middleware.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "mb-list-001")
		return
	}

	pagination, err := requests.GetCursorPaginationFromQuery(reqCtx, nil)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}

	var projectID *string
	if raw := reqCtx.Query("project_id"); raw != "" {
		projectID = &raw
	}

	response, err := r.handler.ListMoodboards(ctx, principal.UserID, projectID, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list moodboards")
		return
	}

	reqCtx.JSON(200, response)
}

// getMoodboard godoc
// @Summary Get moodboard
// @Description Get a single moodboard by ID
// @Tags Moodboards API
// @Security BearerAuth
// @Produce json
// @Param moodboard_id path string true "Moodboard ID"
// @Success 200 {object} moodboardres.MoodboardResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/moodboards/{moodboard_id} [get]
func (r *MoodboardRoute) getMoodboard(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middleware.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "mb-get-001")
		return
	}

	moodboardID := reqCtx.Param("moodboard_id")

	response, err := r.handler.GetMoodboard(ctx, principal.UserID, moodboardID)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get moodboard")
		return
	}

	reqCtx.JSON(200, response)
}

// refineMoodboard godoc
// @Summary Refine moodboard
// @Description Regenerate a board's concept and images from user feedback
// @Tags Moodboards API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param moodboard_id path string true "Moodboard ID"
// @Param request body moodboardreq.RefineMoodboardRequest true "Refine request"
// @Success 200 {object} moodboardres.MoodboardResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 429 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/moodboards/{moodboard_id}/refine [post]
func (r *MoodboardRoute) refineMoodboard(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middleware.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "mb-refine-001")
		return
	}

	moodboardID := reqCtx.Param("moodboard_id")

	var req moodboardreq.RefineMoodboardRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "mb-refine-002")
		return
	}

	response, err := r.handler.RefineMoodboard(ctx, principal.UserID, moodboardID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to refine moodboard")
		return
	}

	reqCtx.JSON(200, response)
}

// deleteMoodboard godoc
// @Summary Delete moodboard
// @Description Soft-delete a moodboard
// @Tags Moodboards API
// @Security BearerAuth
// @Produce json
// @Param moodboard_id path string true "Moodboard ID"
// @Success 200 {object} moodboardres.MoodboardDeletedResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/moodboards/{moodboard_id} [delete]
func (r *MoodboardRoute) deleteMoodboard(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middleware.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "mb-delete-001")
		return
	}

	moodboardID := reqCtx.Param("moodboard_id")

	response, err := r.handler.DeleteMoodboard(ctx, principal.UserID, moodboardID)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to delete moodboard")
		return
	}

	reqCtx.JSON(200, response)
}
