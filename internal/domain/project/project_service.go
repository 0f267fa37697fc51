package project

import (
	"context"

	"visioneer-server/internal/domain/query"
	"visioneer-server/internal/utils/platformerrors"
)

// MoodboardDetacher clears the project reference on moodboards that
// belong to a deleted project. Boards outlive their project.
type MoodboardDetacher interface {
	DetachProject(ctx context.Context, projectPublicID string) error
}

// Service handles business logic for projects.
type Service struct {
	repo      Repository
	boards    MoodboardDetacher
	validator *Validator
}

// NewService creates a new project service.
func NewService(repo Repository, boards MoodboardDetacher) *Service {
	return &Service{
		repo:      repo,
		boards:    boards,
		validator: NewValidator(nil),
	}
}

// CreateProject validates and persists a new project.
func (s *Service) CreateProject(ctx context.Context, proj *Project) (*Project, error) {
	if err := s.validator.ValidateProject(proj); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "project validation failed", err, "e2a6c4f8-1b3d-4e7a-9c5f-8d2b6e4a1c7f")
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create project")
	}

	return proj, nil
}

// GetProjectByPublicIDAndUserID retrieves a project and validates ownership.
func (s *Service) GetProjectByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) (*Project, error) {
	if err := s.validator.ValidateProjectID(publicID); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid project ID", err, "7c1e9a3f-5d8b-4f2c-b6e4-3a9c7f1d8b5e")
	}

	proj, err := s.repo.GetByPublicIDAndUserID(ctx, publicID, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "project not found")
	}

	return proj, nil
}

// VerifyOwnership checks that the project exists and belongs to userID.
func (s *Service) VerifyOwnership(ctx context.Context, publicID string, userID uint) error {
	_, err := s.GetProjectByPublicIDAndUserID(ctx, publicID, userID)
	return err
}

// UpdateProject validates and persists project changes.
func (s *Service) UpdateProject(ctx context.Context, proj *Project) (*Project, error) {
	if err := s.validator.ValidateProject(proj); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "project validation failed", err, "4f8b2d6a-9e1c-4a5f-8b3d-7c2e9a6f4d1b")
	}

	if err := s.repo.Update(ctx, proj); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update project")
	}

	return proj, nil
}

// DeleteProject soft deletes a project and detaches its moodboards.
func (s *Service) DeleteProject(ctx context.Context, publicID string, userID uint) error {
	if _, err := s.GetProjectByPublicIDAndUserID(ctx, publicID, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, publicID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete project")
	}

	if err := s.boards.DetachProject(ctx, publicID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to detach moodboards from project")
	}

	return nil
}

// ListProjectsByUserID retrieves all projects for a user with pagination.
func (s *Service) ListProjectsByUserID(ctx context.Context, userID uint, pagination *query.Pagination) ([]*Project, int64, error) {
	projects, total, err := s.repo.ListByUserID(ctx, userID, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list projects")
	}

	return projects, total, nil
}
