package moodboard

import (
	"context"

	"visioneer-server/internal/domain/query"
	"visioneer-server/internal/utils/idgen"
	"visioneer-server/internal/utils/platformerrors"
)

// ConceptService produces the textual artifacts of a generation run:
// the visual concept and the per-image prompts derived from it.
type ConceptService interface {
	GenerateConcept(ctx context.Context, story string, style Style) (string, error)
	RefineConcept(ctx context.Context, concept, feedback string) (string, error)
	GenerateImagePrompts(ctx context.Context, concept string, style Style, count int) ([]string, error)
}

// ImageBatcher turns a list of prompts into ordered image records.
type ImageBatcher interface {
	GenerateBatch(ctx context.Context, prompts []string, style Style, aspectRatio string) ([]Image, error)
	Placeholders(style Style) []Image
}

// ProjectGuard verifies that a project belongs to the caller before a
// moodboard is attached to it.
type ProjectGuard interface {
	VerifyOwnership(ctx context.Context, publicID string, userID uint) error
}

// UsageRecorder appends billable operations to the usage ledger. The
// recorder resolves the text provider and model itself; image calls
// report the provider that actually produced the images. Recording
// failures must not fail the generation.
type UsageRecorder interface {
	RecordTextGeneration(ctx context.Context, userID uint)
	RecordImageGeneration(ctx context.Context, userID uint, provider, model string, count int)
}

// Service handles business logic for moodboards.
type Service struct {
	repo      Repository
	concepts  ConceptService
	batcher   ImageBatcher
	projects  ProjectGuard
	usage     UsageRecorder
	validator *Validator
}

// NewService creates a new moodboard service.
func NewService(repo Repository, concepts ConceptService, batcher ImageBatcher, projects ProjectGuard, usage UsageRecorder) *Service {
	return &Service{
		repo:      repo,
		concepts:  concepts,
		batcher:   batcher,
		projects:  projects,
		usage:     usage,
		validator: NewValidator(nil),
	}
}

// Generate runs the full pipeline: concept, prompt fan-out, parallel
// image generation, placeholder fallback, persistence.
func (s *Service) Generate(ctx context.Context, userID uint, params GenerateParams) (*Moodboard, error) {
	if err := s.validator.ValidateGenerateParams(&params); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "moodboard validation failed", err, "8f0c2a4e-6b1d-4c3e-9a7f-2d5e8b1c4a6f")
	}

	if params.ProjectID != nil {
		if err := s.projects.VerifyOwnership(ctx, *params.ProjectID, userID); err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "project not found")
		}
	}

	concept, err := s.concepts.GenerateConcept(ctx, params.Story, params.Style)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "concept generation failed")
	}

	prompts, err := s.concepts.GenerateImagePrompts(ctx, concept, params.Style, params.ImageCount)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "image prompt generation failed")
	}

	board, err := s.buildBoard(ctx, userID, params, concept, prompts)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, board); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create moodboard")
	}

	return board, nil
}

// Refine regenerates a board's concept and images from user feedback.
func (s *Service) Refine(ctx context.Context, publicID string, userID uint, feedback string) (*Moodboard, error) {
	board, err := s.GetByPublicIDAndUserID(ctx, publicID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateFeedback(feedback); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid feedback", err, "3c9e1f7a-2b8d-4e6c-a1f4-7d2b9e5c8a3f")
	}

	concept, err := s.concepts.RefineConcept(ctx, board.Concept, feedback)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "concept refinement failed")
	}

	prompts, err := s.concepts.GenerateImagePrompts(ctx, concept, board.Style, board.ImageCount)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "image prompt generation failed")
	}

	images, degraded := s.generateImages(ctx, userID, prompts, board.Style, board.AspectRatio)
	// Refinement costs one concept call plus one prompt fan-out call.
	s.usage.RecordTextGeneration(ctx, userID)
	s.usage.RecordTextGeneration(ctx, userID)

	board.Concept = concept
	board.Images = images
	board.Degraded = degraded

	if err := s.repo.Update(ctx, board); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update moodboard")
	}

	return board, nil
}

// GetByPublicIDAndUserID retrieves a board and validates ownership.
func (s *Service) GetByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) (*Moodboard, error) {
	if err := s.validator.ValidateMoodboardID(publicID); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid moodboard ID", err, "5a7d3b9e-1f4c-4a2e-8c6b-9e3f7a1d5c2b")
	}

	board, err := s.repo.GetByPublicIDAndUserID(ctx, publicID, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "moodboard not found")
	}

	return board, nil
}

// ListByUserID retrieves a user's boards with pagination.
func (s *Service) ListByUserID(ctx context.Context, userID uint, filter *Filter, pagination *query.Pagination) ([]*Moodboard, int64, error) {
	boards, total, err := s.repo.ListByUserID(ctx, userID, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list moodboards")
	}
	return boards, total, nil
}

// Delete soft deletes a board after verifying ownership.
func (s *Service) Delete(ctx context.Context, publicID string, userID uint) error {
	if _, err := s.GetByPublicIDAndUserID(ctx, publicID, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, publicID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete moodboard")
	}
	return nil
}

func (s *Service) buildBoard(ctx context.Context, userID uint, params GenerateParams, concept string, prompts []string) (*Moodboard, error) {
	publicID, err := idgen.GenerateSecureID("mb", 16)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "failed to generate moodboard ID", err, "b4e8c2a6-9d1f-4b7e-a3c5-6f9d2e8b1a4c")
	}

	images, degraded := s.generateImages(ctx, userID, prompts, params.Style, params.AspectRatio)

	// Two text calls per run: concept plus prompt fan-out.
	s.usage.RecordTextGeneration(ctx, userID)
	s.usage.RecordTextGeneration(ctx, userID)

	board := NewMoodboard(publicID, userID, params)
	board.Concept = concept
	board.Images = images
	board.Degraded = degraded
	return board, nil
}

// generateImages runs the batch and applies the placeholder fallback.
// A batch error is treated the same as all slots failing: the caller
// still gets a board, just a degraded one.
func (s *Service) generateImages(ctx context.Context, userID uint, prompts []string, style Style, aspectRatio string) ([]Image, bool) {
	images, err := s.batcher.GenerateBatch(ctx, prompts, style, aspectRatio)
	if err != nil || len(images) == 0 {
		return s.batcher.Placeholders(style), true
	}

	s.usage.RecordImageGeneration(ctx, userID, images[0].Provider, images[0].Model, len(images))
	return images, false
}
