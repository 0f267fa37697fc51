package projecthandler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"visioneer-server/internal/domain/project"
	"visioneer-server/internal/domain/query"
	"visioneer-server/internal/interfaces/httpserver/requests/projectreq"
	"visioneer-server/internal/interfaces/httpserver/responses/projectres"
	"visioneer-server/internal/utils/idgen"
	"visioneer-server/internal/utils/platformerrors"
)

type ProjectHandler struct {
	projectService *project.Service
}

func NewProjectHandler(projectService *project.Service) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(
	ctx context.Context,
	userID uint,
	req projectreq.CreateProjectRequest,
) (*projectres.ProjectResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)

	publicID, err := idgen.GenerateSecureID("proj", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to generate project ID")
	}

	proj := project.NewProject(publicID, userID, req.Title, req.Description)

	proj, err = h.projectService.CreateProject(ctx, proj)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to create project")
	}

	return projectres.NewProjectResponse(proj), nil
}

// GetProject retrieves a single project
func (h *ProjectHandler) GetProject(
	ctx context.Context,
	userID uint,
	projectID string,
) (*projectres.ProjectResponse, error) {
	proj, err := h.projectService.GetProjectByPublicIDAndUserID(ctx, projectID, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get project")
	}

	return projectres.NewProjectResponse(proj), nil
}

// ListProjects lists all projects for a user
func (h *ProjectHandler) ListProjects(
	ctx context.Context,
	userID uint,
	pagination *query.Pagination,
) (*projectres.ProjectListResponse, error) {
	// Fetch limit+1 to determine hasMore
	var requestedLimit *int
	if pagination != nil && pagination.Limit != nil {
		requestedLimit = pagination.Limit
		extraLimit := *pagination.Limit + 1
		pagination.Limit = &extraLimit
	}

	projects, total, err := h.projectService.ListProjectsByUserID(ctx, userID, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list projects")
	}

	hasMore := false
	var nextCursor *string
	if requestedLimit != nil && len(projects) > *requestedLimit {
		hasMore = true
		lastIndex := *requestedLimit - 1
		cursorValue := strconv.FormatUint(uint64(projects[lastIndex].ID), 10)
		nextCursor = &cursorValue
		projects = projects[:*requestedLimit]
	}

	return projectres.NewProjectListResponse(projects, hasMore, nextCursor, total), nil
}

// UpdateProject updates a project
func (h *ProjectHandler) UpdateProject(
	ctx context.Context,
	userID uint,
	projectID string,
	req projectreq.UpdateProjectRequest,
) (*projectres.ProjectResponse, error) {
	proj, err := h.projectService.GetProjectByPublicIDAndUserID(ctx, projectID, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get project")
	}

	if req.Title != nil {
		proj.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		proj.Description = strings.TrimSpace(*req.Description)
	}
	proj.UpdatedAt = time.Now()

	proj, err = h.projectService.UpdateProject(ctx, proj)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to update project")
	}

	return projectres.NewProjectResponse(proj), nil
}

// DeleteProject deletes a project, detaching its moodboards
func (h *ProjectHandler) DeleteProject(
	ctx context.Context,
	userID uint,
	projectID string,
) (*projectres.ProjectDeletedResponse, error) {
	if err := h.projectService.DeleteProject(ctx, projectID, userID); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to delete project")
	}

	return projectres.NewProjectDeletedResponse(projectID), nil
}
