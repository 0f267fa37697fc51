package inference

import (
	"context"
)

// ImageGenerateRequest describes a single image slot to generate.
type ImageGenerateRequest struct {
	// Prompt is the text description of the desired image.
	Prompt string

	// Style is the moodboard style the prompt should be rendered in,
	// e.g. "cinematic" or "dark_moody".
	Style string

	// AspectRatio is one of the moodboard aspect ratios ("16:9", ...).
	// Services map it to the nearest size their backend supports.
	AspectRatio string

	// Model overrides the service's default model when set.
	Model string
}

// ImageEditRequest describes one edit instruction over an existing image.
type ImageEditRequest struct {
	// ImageURL is an http(s) URL or data URI of the image to edit.
	ImageURL string

	// Instruction is the natural language edit to apply.
	Instruction string

	// Model overrides the service's default model when set.
	Model string
}

// ImageResult is the outcome of one generation or edit call.
type ImageResult struct {
	// URL is either a provider-hosted URL or a data URI.
	URL string

	// RevisedPrompt is the provider-rewritten prompt, when reported.
	RevisedPrompt string

	// Provider and Model identify what produced the image.
	Provider ProviderKind
	Model    string
}

// ImageService defines the interface for image generation backends.
type ImageService interface {
	// Generate creates a single image for the request.
	Generate(ctx context.Context, request *ImageGenerateRequest) (*ImageResult, error)

	// Edit applies an instruction to an existing image. Backends
	// without edit support return a not-implemented error.
	Edit(ctx context.Context, request *ImageEditRequest) (*ImageResult, error)

	// DefaultModel returns the default model for this service.
	DefaultModel() string

	// Kind returns the provider kind this service handles.
	Kind() ProviderKind
}

// TextService defines the interface for text generation backends.
type TextService interface {
	// GenerateText returns the model reply for a single prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// DefaultModel returns the default model for this service.
	DefaultModel() string

	// Kind returns the provider kind this service handles.
	Kind() ProviderKind
}
