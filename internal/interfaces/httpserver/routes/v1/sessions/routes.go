package sessions

import (
	"github.com/gin-gonic/gin"

	"visioneer-server/internal/interfaces/httpserver/handlers/sessionhandler"
	middleware "visioneer-server/internal/interfaces/httpserver/middlewares"
	"visioneer-server/internal/interfaces/httpserver/requests/sessionreq"
	"visioneer-server/internal/interfaces/httpserver/responses"
	"visioneer-server/internal/utils/platformerrors"
)

type SessionRoute struct {
	handler *sessionhandler.SessionHandler
}

func NewSessionRoute(handler *sessionhandler.SessionHandler) *SessionRoute {
	return &SessionRoute{
		handler: handler,
	}
}

// RegisterRoutes registers image edit session routes
func (r *SessionRoute) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/edit-sessions")
	sessions.POST("", r.startSession)
	sessions.GET("/:session_id", r.getSession)
	sessions.POST("/:session_id/messages", r.sendMessage)
	sessions.DELETE("/:session_id", r.endSession)
}

// startSession godoc
// @Summary Start edit session
// @Description Open a conversational edit session over an image
// @Tags Edit Sessions API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body sessionreq.StartSessionRequest true "Start session request"
// @Success 201 {object} sessionres.SessionResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/edit-sessions [post]
func (r *SessionRoute) startSession(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middleware.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "sess-start-001")
		return
	}

	var req sessionreq.StartSessionRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "sess-start-002")
		return
	}

	response, err := r.handler.StartSession(ctx, principal.UserID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to start edit session")
		return
	}

	reqCtx.JSON(201, response)
}

// getSession godoc
// @Summary Get edit session
// @Description Get an edit session with its instruction history
// @Tags Edit Sessions API
// @Security BearerAuth
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} sessionres.SessionResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/edit-sessions/{session_id} [get]
func (r *SessionRoute) getSession(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middleware.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "sess-get-001")
		return
	}

	sessionID := reqCtx.Param("session_id")

	response, err := r.handler.GetSession(ctx, principal.UserID, sessionID)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get edit session")
		return
	}

	reqCtx.JSON(200, response)
}

// sendMessage godoc
// @Summary Send edit instruction
// @Description Apply one edit instruction to the session image and append it to the history
// @Tags Edit Sessions API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param request body sessionreq.SessionMessageRequest true "Edit instruction"
// @Success 200 {object} sessionres.SessionResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/edit-sessions/{session_id}/messages [post]
func (r *SessionRoute) sendMessage(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middleware.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "sess-message-001")
		return
	}

	sessionID := reqCtx.Param("session_id")

	var req sessionreq.SessionMessageRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "sess-message-002")
		return
	}

	response, err := r.handler.SendMessage(ctx, principal.UserID, sessionID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to apply edit instruction")
		return
	}

	reqCtx.JSON(200, response)
}

// endSession godoc
// @Summary End edit session
// @Description Close an edit session and discard its state
// @Tags Edit Sessions API
// @Security BearerAuth
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} sessionres.SessionEndedResponse
// @Failure 401 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/edit-sessions/{session_id} [delete]
func (r *SessionRoute) endSession(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middleware.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "sess-end-001")
		return
	}

	sessionID := reqCtx.Param("session_id")

	response, err := r.handler.EndSession(ctx, principal.UserID, sessionID)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to end edit session")
		return
	}

	reqCtx.JSON(200, response)
}
