package usagehandler

import (
	"context"

	"visioneer-server/internal/domain/query"
	"visioneer-server/internal/domain/usage"
	"visioneer-server/internal/interfaces/httpserver/responses/usageres"
	"visioneer-server/internal/utils/platformerrors"
)

type UsageHandler struct {
	usageService *usage.Service
}

func NewUsageHandler(usageService *usage.Service) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
	}
}

// ListUsage lists a user's ledger entries, newest first
func (h *UsageHandler) ListUsage(
	ctx context.Context,
	userID uint,
	pagination *query.Pagination,
) (*usageres.UsageListResponse, error) {
	// Fetch limit+1 to determine hasMore
	var requestedLimit *int
	if pagination != nil && pagination.Limit != nil {
		requestedLimit = pagination.Limit
		extraLimit := *pagination.Limit + 1
		pagination.Limit = &extraLimit
	}

	records, total, err := h.usageService.ListByUserID(ctx, userID, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list usage")
	}

	hasMore := false
	if requestedLimit != nil && len(records) > *requestedLimit {
		hasMore = true
		records = records[:*requestedLimit]
	}

	return usageres.NewUsageListResponse(records, hasMore, total), nil
}

// SummarizeUsage aggregates a user's ledger by service kind
func (h *UsageHandler) SummarizeUsage(
	ctx context.Context,
	userID uint,
) (*usageres.UsageSummaryResponse, error) {
	summaries, err := h.usageService.SummarizeByUserID(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to summarize usage")
	}

	return usageres.NewUsageSummaryResponse(summaries), nil
}
