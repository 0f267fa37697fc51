package moodboardres

import (
	"visioneer-server/internal/domain/moodboard"
)

// ImageResponse is a single image slot in a moodboard response
type ImageResponse struct {
	Index    int    `json:"index"`
	URL      string `json:"url"`
	Prompt   string `json:"prompt"`
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
}

// MoodboardResponse represents a single moodboard response
type MoodboardResponse struct {
	ID          string          `json:"id"`
	Object      string          `json:"object"`
	ProjectID   *string         `json:"project_id,omitempty"`
	Story       string          `json:"story"`
	Style       string          `json:"style"`
	ImageCount  int             `json:"image_count"`
	AspectRatio string          `json:"aspect_ratio"`
	Concept     string          `json:"concept"`
	Images      []ImageResponse `json:"images"`
	Degraded    bool            `json:"degraded"`
	Status      string          `json:"status"`
	CreatedAt   int64           `json:"created_at"`
	UpdatedAt   int64           `json:"updated_at"`
}

// MoodboardListResponse represents a paginated list of moodboards
type MoodboardListResponse struct {
	Object     string              `json:"object"`
	Data       []MoodboardResponse `json:"data"`
	FirstID    string              `json:"first_id,omitempty"`
	LastID     string              `json:"last_id,omitempty"`
	NextCursor *string             `json:"next_cursor,omitempty"`
	HasMore    bool                `json:"has_more"`
	Total      int64               `json:"total"`
}

// MoodboardDeletedResponse represents the delete confirmation response
type MoodboardDeletedResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// NewMoodboardResponse creates a response from a domain moodboard
func NewMoodboardResponse(board *moodboard.Moodboard) *MoodboardResponse {
	images := make([]ImageResponse, len(board.Images))
	for i, img := range board.Images {
		images[i] = ImageResponse{
			Index:    img.Index,
			URL:      img.URL,
			Prompt:   img.Prompt,
			Provider: img.Provider,
			Model:    img.Model,
		}
	}

	return &MoodboardResponse{
		ID:          board.PublicID,
		Object:      "moodboard",
		ProjectID:   board.ProjectID,
		Story:       board.Story,
		Style:       string(board.Style),
		ImageCount:  board.ImageCount,
		AspectRatio: board.AspectRatio,
		Concept:     board.Concept,
		Images:      images,
		Degraded:    board.Degraded,
		Status:      board.Status,
		CreatedAt:   board.CreatedAt.Unix(),
		UpdatedAt:   board.UpdatedAt.Unix(),
	}
}

// NewMoodboardListResponse creates a list response from domain moodboards
func NewMoodboardListResponse(boards []*moodboard.Moodboard, hasMore bool, nextCursor *string, total int64) *MoodboardListResponse {
	data := make([]MoodboardResponse, len(boards))
	for i, board := range boards {
		data[i] = *NewMoodboardResponse(board)
	}

	resp := &MoodboardListResponse{
		Object:     "list",
		Data:       data,
		HasMore:    hasMore,
		NextCursor: nextCursor,
		Total:      total,
	}

	if len(data) > 0 {
		resp.FirstID = data[0].ID
		resp.LastID = data[len(data)-1].ID
	}

	return resp
}

// NewMoodboardDeletedResponse creates a delete response
func NewMoodboardDeletedResponse(publicID string) *MoodboardDeletedResponse {
	return &MoodboardDeletedResponse{
		ID:      publicID,
		Object:  "moodboard",
		Deleted: true,
	}
}
