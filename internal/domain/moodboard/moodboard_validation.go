package moodboard

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"visioneer-server/internal/utils/functional"
	"visioneer-server/internal/utils/idgen"
)

// GenerateParams carries the normalized inputs of a generation request.
type GenerateParams struct {
	Story       string
	Style       Style
	ImageCount  int
	AspectRatio string
	ProjectID   *string
}

// ValidationConfig holds moodboard-level validation rules.
type ValidationConfig struct {
	MinStoryLength int
	MaxStoryLength int
	MinImageCount  int
	MaxImageCount  int
}

// DefaultValidationConfig returns the default moodboard validation rules.
func DefaultValidationConfig() *ValidationConfig {
	return &ValidationConfig{
		MinStoryLength: MinStoryLength,
		MaxStoryLength: MaxStoryLength,
		MinImageCount:  MinImageCount,
		MaxImageCount:  MaxImageCount,
	}
}

// Validator handles moodboard-level validation.
type Validator struct {
	config *ValidationConfig
}

// NewValidator creates a validator for moodboard inputs.
func NewValidator(config *ValidationConfig) *Validator {
	if config == nil {
		config = DefaultValidationConfig()
	}
	return &Validator{config: config}
}

// ValidateGenerateParams normalizes and validates generation inputs in
// place. Defaults are applied before range checks so an absent count or
// ratio never fails validation.
func (v *Validator) ValidateGenerateParams(params *GenerateParams) error {
	if params == nil {
		return fmt.Errorf("params cannot be nil")
	}

	params.Story = strings.TrimSpace(params.Story)
	if err := v.validateStory(params.Story); err != nil {
		return fmt.Errorf("invalid story: %w", err)
	}

	if !functional.Contains(Styles, params.Style) {
		return fmt.Errorf("invalid style %q, must be one of %v", params.Style, Styles)
	}

	if params.ImageCount == 0 {
		params.ImageCount = DefaultImageCount
	}
	if params.ImageCount < v.config.MinImageCount || params.ImageCount > v.config.MaxImageCount {
		return fmt.Errorf("image_count must be between %d and %d, got %d",
			v.config.MinImageCount, v.config.MaxImageCount, params.ImageCount)
	}

	if params.AspectRatio == "" {
		params.AspectRatio = DefaultAspectRatio
	}
	if !functional.Contains(AspectRatios, params.AspectRatio) {
		return fmt.Errorf("invalid aspect_ratio %q, must be one of %v", params.AspectRatio, AspectRatios)
	}

	if params.ProjectID != nil {
		if !idgen.ValidateIDFormat(*params.ProjectID, "proj") {
			return fmt.Errorf("invalid project ID format")
		}
	}

	return nil
}

// ValidateMoodboardID validates moodboard public ID format.
func (v *Validator) ValidateMoodboardID(id string) error {
	if id == "" {
		return fmt.Errorf("moodboard ID cannot be empty")
	}
	if !idgen.ValidateIDFormat(id, "mb") {
		return fmt.Errorf("invalid moodboard ID format")
	}
	return nil
}

// ValidateFeedback validates refine feedback text.
func (v *Validator) ValidateFeedback(feedback string) error {
	trimmed := strings.TrimSpace(feedback)
	if trimmed == "" {
		return fmt.Errorf("feedback cannot be empty or only whitespace")
	}
	if utf8.RuneCountInString(trimmed) > v.config.MaxStoryLength {
		return fmt.Errorf("feedback exceeds maximum length of %d characters", v.config.MaxStoryLength)
	}
	return nil
}

func (v *Validator) validateStory(story string) error {
	if story == "" {
		return fmt.Errorf("story cannot be empty")
	}

	length := utf8.RuneCountInString(story)
	if length < v.config.MinStoryLength {
		return fmt.Errorf("story must be at least %d characters, got %d", v.config.MinStoryLength, length)
	}
	if length > v.config.MaxStoryLength {
		return fmt.Errorf("story exceeds maximum length of %d characters", v.config.MaxStoryLength)
	}

	for _, r := range story {
		if !unicode.IsPrint(r) && r != '\n' && r != '\t' && r != '\r' {
			return fmt.Errorf("story contains unprintable characters")
		}
	}

	return nil
}
