package moodboardhandler

import (
	"context"
	"strconv"
	"strings"

	"visioneer-server/internal/domain/moodboard"
	"visioneer-server/internal/domain/query"
	"visioneer-server/internal/interfaces/httpserver/requests/moodboardreq"
	"visioneer-server/internal/interfaces/httpserver/responses/moodboardres"
	"visioneer-server/internal/utils/platformerrors"
)

type MoodboardHandler struct {
	moodboardService *moodboard.Service
}

func NewMoodboardHandler(moodboardService *moodboard.Service) *MoodboardHandler {
	return &MoodboardHandler{
		moodboardService: moodboardService,
	}
}

// GenerateMoodboard runs the full generation pipeline for one story
func (h *MoodboardHandler) GenerateMoodboard(
	ctx context.Context,
	userID uint,
	req moodboardreq.GenerateMoodboardRequest,
) (*moodboardres.MoodboardResponse, error) {
	params := moodboard.GenerateParams{
		Story:       strings.TrimSpace(req.Story),
		Style:       moodboard.Style(req.Style),
		ImageCount:  req.ImageCount,
		AspectRatio: req.AspectRatio,
		ProjectID:   req.ProjectID,
	}

	board, err := h.moodboardService.Generate(ctx, userID, params)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to generate moodboard")
	}

	return moodboardres.NewMoodboardResponse(board), nil
}

// GetMoodboard retrieves a single moodboard
func (h *MoodboardHandler) GetMoodboard(
	ctx context.Context,
	userID uint,
	moodboardID string,
) (*moodboardres.MoodboardResponse, error) {
	board, err := h.moodboardService.GetByPublicIDAndUserID(ctx, moodboardID, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get moodboard")
	}

	return moodboardres.NewMoodboardResponse(board), nil
}

// ListMoodboards lists a user's moodboards, optionally scoped to a project
func (h *MoodboardHandler) ListMoodboards(
	ctx context.Context,
	userID uint,
	projectID *string,
	pagination *query.Pagination,
) (*moodboardres.MoodboardListResponse, error) {
	// Fetch limit+1 to determine hasMore
	var requestedLimit *int
	if pagination != nil && pagination.Limit != nil {
		requestedLimit = pagination.Limit
		extraLimit := *pagination.Limit + 1
		pagination.Limit = &extraLimit
	}

	filter := &moodboard.Filter{ProjectID: projectID}

	boards, total, err := h.moodboardService.ListByUserID(ctx, userID, filter, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list moodboards")
	}

	hasMore := false
	var nextCursor *string
	if requestedLimit != nil && len(boards) > *requestedLimit {
		hasMore = true
		lastIndex := *requestedLimit - 1
		cursorValue := strconv.FormatUint(uint64(boards[lastIndex].ID), 10)
		nextCursor = &cursorValue
		boards = boards[:*requestedLimit]
	}

	return moodboardres.NewMoodboardListResponse(boards, hasMore, nextCursor, total), nil
}

// RefineMoodboard regenerates a board's concept and images from feedback
func (h *MoodboardHandler) RefineMoodboard(
	ctx context.Context,
	userID uint,
	moodboardID string,
	req moodboardreq.RefineMoodboardRequest,
) (*moodboardres.MoodboardResponse, error) {
	board, err := h.moodboardService.Refine(ctx, moodboardID, userID, strings.TrimSpace(req.Feedback))
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to refine moodboard")
	}

	return moodboardres.NewMoodboardResponse(board), nil
}

// DeleteMoodboard deletes a moodboard
func (h *MoodboardHandler) DeleteMoodboard(
	ctx context.Context,
	userID uint,
	moodboardID string,
) (*moodboardres.MoodboardDeletedResponse, error) {
	if err := h.moodboardService.Delete(ctx, moodboardID, userID); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to delete moodboard")
	}

	return moodboardres.NewMoodboardDeletedResponse(moodboardID), nil
}
