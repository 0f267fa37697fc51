package sessionres

import (
	"visioneer-server/internal/domain/editsession"
)

// TurnResponse is one instruction/result pair in a session history
type TurnResponse struct {
	Instruction string `json:"instruction"`
	ImageURL    string `json:"image_url"`
	CreatedAt   int64  `json:"created_at"`
}

// SessionResponse represents a live edit session
type SessionResponse struct {
	ID        string         `json:"id"`
	Object    string         `json:"object"`
	ImageURL  string         `json:"image_url"`
	History   []TurnResponse `json:"history"`
	CreatedAt int64          `json:"created_at"`
	UpdatedAt int64          `json:"updated_at"`
}

// SessionEndedResponse represents the end confirmation response
type SessionEndedResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// NewSessionResponse creates a response from a domain session
func NewSessionResponse(session *editsession.Session) *SessionResponse {
	history := make([]TurnResponse, len(session.History))
	for i, turn := range session.History {
		history[i] = TurnResponse{
			Instruction: turn.Instruction,
			ImageURL:    turn.ImageURL,
			CreatedAt:   turn.CreatedAt.Unix(),
		}
	}

	return &SessionResponse{
		ID:        session.PublicID,
		Object:    "edit_session",
		ImageURL:  session.ImageURL,
		History:   history,
		CreatedAt: session.CreatedAt.Unix(),
		UpdatedAt: session.UpdatedAt.Unix(),
	}
}

// NewSessionEndedResponse creates an end confirmation response
func NewSessionEndedResponse(publicID string) *SessionEndedResponse {
	return &SessionEndedResponse{
		ID:      publicID,
		Object:  "edit_session",
		Deleted: true,
	}
}
