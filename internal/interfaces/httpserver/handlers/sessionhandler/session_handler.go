package sessionhandler

import (
	"context"
	"strings"

	"visioneer-server/internal/domain/editsession"
	"visioneer-server/internal/interfaces/httpserver/requests/sessionreq"
	"visioneer-server/internal/interfaces/httpserver/responses/sessionres"
	"visioneer-server/internal/utils/platformerrors"
)

type SessionHandler struct {
	sessionService *editsession.Service
}

func NewSessionHandler(sessionService *editsession.Service) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// StartSession opens an edit session over an image
func (h *SessionHandler) StartSession(
	ctx context.Context,
	userID uint,
	req sessionreq.StartSessionRequest,
) (*sessionres.SessionResponse, error) {
	session, err := h.sessionService.Start(ctx, userID, strings.TrimSpace(req.ImageURL))
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to start edit session")
	}

	return sessionres.NewSessionResponse(session), nil
}

// SendMessage applies one edit instruction to the session image
func (h *SessionHandler) SendMessage(
	ctx context.Context,
	userID uint,
	sessionID string,
	req sessionreq.SessionMessageRequest,
) (*sessionres.SessionResponse, error) {
	session, err := h.sessionService.SendMessage(ctx, sessionID, userID, strings.TrimSpace(req.Instruction))
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to apply edit instruction")
	}

	return sessionres.NewSessionResponse(session), nil
}

// GetSession retrieves a session with its history
func (h *SessionHandler) GetSession(
	ctx context.Context,
	userID uint,
	sessionID string,
) (*sessionres.SessionResponse, error) {
	session, err := h.sessionService.Get(ctx, sessionID, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get edit session")
	}

	return sessionres.NewSessionResponse(session), nil
}

// EndSession closes a session and discards its state
func (h *SessionHandler) EndSession(
	ctx context.Context,
	userID uint,
	sessionID string,
) (*sessionres.SessionEndedResponse, error) {
	if err := h.sessionService.End(ctx, sessionID, userID); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to end edit session")
	}

	return sessionres.NewSessionEndedResponse(sessionID), nil
}
