package usage

import (
	"github.com/gin-gonic/gin"

	"visioneer-server/internal/interfaces/httpserver/handlers/usagehandler"
	middleware "visioneer-server/internal/interfaces/httpserver/middlewares"
	"visioneer-server/internal/interfaces/httpserver/requests"
	"visioneer-server/internal/interfaces/httpserver/responses"
	"visioneer-server/internal/utils/platformerrors"
)

type UsageRoute struct {
	handler *usagehandler.UsageHandler
}

func NewUsageRoute(handler *usagehandler.UsageHandler) *UsageRoute {
	return &UsageRoute{
		handler: handler,
	}
}

// RegisterRoutes registers usage ledger routes
func (r *UsageRoute) RegisterRoutes(rg *gin.RouterGroup) {
	usage := rg.Group("/usage")
	usage.GET("", r.listUsage)
	usage.GET("/summary", r.summarizeUsage)
}

// listUsage godoc
// @Summary List usage records
// @Description List the authenticated user's usage ledger entries, newest first
// @Tags Usage API
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum number of records to return"
// @Param offset query int false "Number of records to skip"
// @Success 200 {object} usageres.UsageListResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/usage [get]
func (r *UsageRoute) listUsage(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middleware.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "usage-list-001")
		return
	}

	pagination, err := requests.GetCursorPaginationFromQuery(reqCtx, nil)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}

	response, err := r.handler.ListUsage(ctx, principal.UserID, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list usage")
		return
	}

	reqCtx.JSON(200, response)
}

// summarizeUsage godoc
// @Summary Summarize usage
// @Description Aggregate the authenticated user's ledger by service kind
// @Tags Usage API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} usageres.UsageSummaryResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/usage/summary [get]
func (r *UsageRoute) summarizeUsage(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middleware.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "usage-summary-001")
		return
	}

	response, err := r.handler.SummarizeUsage(ctx, principal.UserID)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to summarize usage")
		return
	}

	reqCtx.JSON(200, response)
}
