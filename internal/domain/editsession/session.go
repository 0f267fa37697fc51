// Package editsession provides conversational image editing: a session
// holds the current image and the instruction history applied to it.
package editsession

import (
	"context"
	"time"
)

// Turn is one instruction/result pair in a session's history.
type Turn struct {
	Instruction string    `json:"instruction"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// Session is a live editing conversation over a single image.
type Session struct {
	PublicID  string    `json:"id"`
	UserID    uint      `json:"-"`
	ImageURL  string    `json:"image_url"`
	History   []Turn    `json:"history"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store keeps live sessions. Implementations decide retention; the
// service never assumes a session survives between calls.
type Store interface {
	Put(ctx context.Context, session *Session) error
	Get(ctx context.Context, publicID string) (*Session, bool)
	Delete(ctx context.Context, publicID string)
}
