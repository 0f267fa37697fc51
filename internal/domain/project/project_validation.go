package project

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"visioneer-server/internal/utils/idgen"
)

// ValidationConfig holds project-level validation rules.
type ValidationConfig struct {
	MaxTitleLength       int
	MaxDescriptionLength int
}

// DefaultValidationConfig returns default project validation rules.
func DefaultValidationConfig() *ValidationConfig {
	return &ValidationConfig{
		MaxTitleLength:       100,
		MaxDescriptionLength: 500,
	}
}

// Validator handles project-level validation.
type Validator struct {
	config             *ValidationConfig
	invalidCharPattern *regexp.Regexp
}

// NewValidator creates a validator for projects.
func NewValidator(config *ValidationConfig) *Validator {
	if config == nil {
		config = DefaultValidationConfig()
	}

	// Control characters except newline, tab, carriage return
	invalidCharPattern := regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

	return &Validator{
		config:             config,
		invalidCharPattern: invalidCharPattern,
	}
}

// ValidateProject performs full project validation.
func (v *Validator) ValidateProject(proj *Project) error {
	if proj == nil {
		return fmt.Errorf("project cannot be nil")
	}

	if proj.PublicID != "" {
		if err := v.ValidateProjectID(proj.PublicID); err != nil {
			return fmt.Errorf("invalid project ID: %w", err)
		}
	}

	if err := v.validateTitle(proj.Title); err != nil {
		return fmt.Errorf("invalid title: %w", err)
	}

	if err := v.validateDescription(proj.Description); err != nil {
		return fmt.Errorf("invalid description: %w", err)
	}

	return nil
}

// ValidateProjectID validates project ID format.
func (v *Validator) ValidateProjectID(id string) error {
	if id == "" {
		return fmt.Errorf("project ID cannot be empty")
	}

	if !strings.HasPrefix(id, "proj_") {
		return fmt.Errorf("project ID must start with 'proj_' prefix")
	}

	if !idgen.ValidateIDFormat(id, "proj") {
		return fmt.Errorf("invalid project ID format")
	}

	return nil
}

func (v *Validator) validateTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return fmt.Errorf("title cannot be empty or only whitespace")
	}

	if utf8.RuneCountInString(trimmed) > v.config.MaxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", v.config.MaxTitleLength)
	}

	if v.invalidCharPattern.MatchString(trimmed) {
		return fmt.Errorf("title contains invalid control characters")
	}

	for _, r := range trimmed {
		if !unicode.IsPrint(r) && r != '\n' && r != '\t' && r != '\r' {
			return fmt.Errorf("title contains unprintable characters")
		}
	}

	return nil
}

func (v *Validator) validateDescription(description string) error {
	trimmed := strings.TrimSpace(description)

	if trimmed == "" {
		// Description is optional
		return nil
	}

	if utf8.RuneCountInString(trimmed) > v.config.MaxDescriptionLength {
		return fmt.Errorf("description exceeds maximum length of %d characters", v.config.MaxDescriptionLength)
	}

	for _, r := range trimmed {
		if !unicode.IsPrint(r) && r != '\n' && r != '\t' && r != '\r' {
			return fmt.Errorf("description contains unprintable characters")
		}
	}

	return nil
}
