package moodboardreq

// GenerateMoodboardRequest represents the request to generate a moodboard
type GenerateMoodboardRequest struct {
	Story       string  `json:"story" binding:"required"`
	Style       string  `json:"style" binding:"required"`
	ImageCount  int     `json:"image_count,omitempty"`
	AspectRatio string  `json:"aspect_ratio,omitempty"`
	ProjectID   *string `json:"project_id,omitempty"`
}

// RefineMoodboardRequest represents the request to refine a board's concept
type RefineMoodboardRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}
