// Package project groups moodboards under a user-owned project.
package project

import (
	"context"
	"time"

	"visioneer-server/internal/domain/query"
)

// Project represents a user's project that groups moodboards.
type Project struct {
	ID          uint       `json:"-"`
	PublicID    string     `json:"id"`
	UserID      uint       `json:"-"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DeletedAt   *time.Time `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Repository defines storage operations for projects.
type Repository interface {
	Create(ctx context.Context, project *Project) error
	GetByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) (*Project, error)
	ListByUserID(ctx context.Context, userID uint, pagination *query.Pagination) ([]*Project, int64, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, publicID string) error
}

// NewProject creates a new project with the given parameters.
func NewProject(publicID string, userID uint, title, description string) *Project {
	now := time.Now()

	return &Project{
		PublicID:    publicID,
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
