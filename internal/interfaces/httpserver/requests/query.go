package requests

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"visioneer-server/internal/domain/query"
	"visioneer-server/internal/utils/platformerrors"
)

// GetCursorPaginationFromQuery parses limit/offset/order/after query
// parameters. The after cursor is a resource public id; findByLastID
// resolves it to the internal numeric id repositories paginate on.
func GetCursorPaginationFromQuery(reqCtx *gin.Context, findByLastID func(string) (*uint, error)) (*query.Pagination, error) {
	limitStr := reqCtx.DefaultQuery("limit", "20")
	offsetStr := reqCtx.Query("offset")
	order := reqCtx.DefaultQuery("order", "desc")
	afterStr := reqCtx.DefaultQuery("after", "")
	if afterStr == "" {
		if cursor := reqCtx.Query("cursor"); cursor != "" {
			afterStr = cursor
		}
	}

	var limit *int
	if limitStr != "" {
		limitInt, err := strconv.Atoi(limitStr)
		if err != nil || limitInt < 1 {
			return nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid limit number", nil, "2b1f74d3-9c6a-4e1b-8d2f-6a0c5e9b3f17")
		}
		limit = &limitInt
	}

	var offset *int
	var after *uint
	if offsetStr != "" {
		offsetInt, err := strconv.Atoi(offsetStr)
		if err != nil {
			return nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid offset number", nil, "c8e52a90-1d4b-4f6e-b3a7-8f2d6c0e4a19")
		}
		offset = &offsetInt
	} else if afterStr != "" {
		if findByLastID != nil {
			lastID, err := findByLastID(afterStr)
			if err != nil {
				return nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid pagination cursor", err, "5f3a8c21-7e9d-4b0a-a6c4-1d8e2f7b9c35")
			}
			after = lastID
		} else {
			parsedID, err := strconv.ParseUint(afterStr, 10, 64)
			if err != nil {
				return nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid pagination cursor", err, "9d6b4e72-3a1f-4c8e-950d-7b2a6f4e1c83")
			}
			tempID := uint(parsedID)
			after = &tempID
		}
	}

	if order != "asc" && order != "desc" {
		return nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid order", nil, "e4c19f60-8b5d-4a2e-b7f3-0c6d9a2e5b48")
	}

	return &query.Pagination{
		Limit:  limit,
		Offset: offset,
		Order:  order,
		After:  after,
	}, nil
}
