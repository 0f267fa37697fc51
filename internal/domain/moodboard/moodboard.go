// Package moodboard hosts the core moodboard domain: the record types,
// the repository contract and the generation service.
package moodboard

import (
	"context"
	"time"

	"visioneer-server/internal/domain/query"
)

// Style is the visual style a moodboard is generated in.
type Style string

const (
	StyleCinematic Style = "cinematic"
	StyleArtistic  Style = "artistic"
	StyleRealistic Style = "realistic"
	StyleDarkMoody Style = "dark_moody"
	StyleVintage   Style = "vintage"
	StyleModern    Style = "modern"
	StyleNoir      Style = "noir"
	StyleFantasy   Style = "fantasy"
	StyleSciFi     Style = "sci_fi"
)

// Styles lists every accepted style value.
var Styles = []Style{
	StyleCinematic,
	StyleArtistic,
	StyleRealistic,
	StyleDarkMoody,
	StyleVintage,
	StyleModern,
	StyleNoir,
	StyleFantasy,
	StyleSciFi,
}

// AspectRatios lists every accepted aspect ratio value.
var AspectRatios = []string{"16:9", "2.35:1", "4:3", "1:1", "9:16"}

const (
	MinStoryLength = 50
	MaxStoryLength = 2000
	MinImageCount  = 4
	MaxImageCount  = 12

	DefaultImageCount  = 4
	DefaultAspectRatio = "16:9"

	StatusCompleted = "completed"
)

// Image is a single generated image slot within a moodboard. Index is
// the slot position in the prompt fan-out, so a board's images are
// ordered by the prompts that produced them, not by completion time.
type Image struct {
	Index    int    `json:"index"`
	URL      string `json:"url"`
	Prompt   string `json:"prompt"`
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
}

// Moodboard is the persisted generation result for one story.
type Moodboard struct {
	ID          uint       `json:"-"`
	PublicID    string     `json:"id"`
	UserID      uint       `json:"-"`
	ProjectID   *string    `json:"project_id,omitempty"`
	Story       string     `json:"story"`
	Style       Style      `json:"style"`
	ImageCount  int        `json:"image_count"`
	AspectRatio string     `json:"aspect_ratio"`
	Concept     string     `json:"concept"`
	Images      []Image    `json:"images"`
	Degraded    bool       `json:"degraded"`
	Status      string     `json:"status"`
	DeletedAt   *time.Time `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Filter narrows repository lookups.
type Filter struct {
	UserID    *uint
	ProjectID *string
}

// Repository defines storage operations for moodboards.
type Repository interface {
	Create(ctx context.Context, board *Moodboard) error
	GetByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) (*Moodboard, error)
	ListByUserID(ctx context.Context, userID uint, filter *Filter, pagination *query.Pagination) ([]*Moodboard, int64, error)
	Update(ctx context.Context, board *Moodboard) error
	Delete(ctx context.Context, publicID string) error
	DetachProject(ctx context.Context, projectPublicID string) error
}

// NewMoodboard creates a moodboard record ready for persistence.
func NewMoodboard(publicID string, userID uint, params GenerateParams) *Moodboard {
	now := time.Now()

	return &Moodboard{
		PublicID:    publicID,
		UserID:      userID,
		ProjectID:   params.ProjectID,
		Story:       params.Story,
		Style:       params.Style,
		ImageCount:  params.ImageCount,
		AspectRatio: params.AspectRatio,
		Status:      StatusCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
