package moodboardrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"visioneer-server/internal/domain/moodboard"
	"visioneer-server/internal/domain/query"
	"visioneer-server/internal/infrastructure/database/dbschema"
	"visioneer-server/internal/infrastructure/database/transaction"
	"visioneer-server/internal/utils/platformerrors"
)

type MoodboardGormRepository struct {
	db *transaction.Database
}

var _ moodboard.Repository = (*MoodboardGormRepository)(nil)

func NewMoodboardGormRepository(db *transaction.Database) moodboard.Repository {
	return &MoodboardGormRepository{db: db}
}

// Create implements moodboard.Repository.
func (repo *MoodboardGormRepository) Create(ctx context.Context, board *moodboard.Moodboard) error {
	entity, err := dbschema.NewSchemaMoodboard(board)
	if err != nil {
		return platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err,
			"failed to encode moodboard images", uuid.NewString())
	}
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to create moodboard", err,
			"d3f82a17-64c9-4b0e-a5d1-8e2f7c9b3a46")
	}
	board.ID = entity.ID
	board.CreatedAt = entity.CreatedAt
	board.UpdatedAt = entity.UpdatedAt
	return nil
}

// GetByPublicIDAndUserID implements moodboard.Repository.
func (repo *MoodboardGormRepository) GetByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) (*moodboard.Moodboard, error) {
	var entity dbschema.Moodboard
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("public_id = ? AND user_id = ? AND deleted_at IS NULL", publicID, userID).
		First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "moodboard not found", err,
			"7a94c3e8-1b5f-42d6-9c07-e6a8d2f4b1c9")
	}
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to find moodboard", err,
			"b5e17f29-8d4a-4c63-b0f2-3a9c6e1d8547")
	}
	return entity.EtoD()
}

// ListByUserID implements moodboard.Repository.
func (repo *MoodboardGormRepository) ListByUserID(ctx context.Context, userID uint, filter *moodboard.Filter, pagination *query.Pagination) ([]*moodboard.Moodboard, int64, error) {
	baseQuery := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Moodboard{}).
		Where("user_id = ? AND deleted_at IS NULL", userID)

	if filter != nil && filter.ProjectID != nil {
		baseQuery = baseQuery.Where("project_id = ?", *filter.ProjectID)
	}

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to count moodboards", err,
			"f2c68d91-5a3e-47b0-8e14-c7d9a2b5e638")
	}

	listQuery := baseQuery
	if pagination != nil {
		if pagination.After != nil {
			if pagination.Order == "desc" {
				listQuery = listQuery.Where("id < ?", *pagination.After)
			} else {
				listQuery = listQuery.Where("id > ?", *pagination.After)
			}
		}

		if pagination.Order == "asc" {
			listQuery = listQuery.Order("created_at ASC")
		} else {
			listQuery = listQuery.Order("created_at DESC")
		}

		if pagination.Limit != nil && *pagination.Limit > 0 {
			listQuery = listQuery.Limit(*pagination.Limit)
		}
		if pagination.Offset != nil && *pagination.Offset > 0 {
			listQuery = listQuery.Offset(*pagination.Offset)
		}
	} else {
		listQuery = listQuery.Order("created_at DESC")
	}

	var rows []dbschema.Moodboard
	if err := listQuery.Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list moodboards", err,
			"1d7e4b86-9f2c-40a5-b3d8-6e5a9c2f7104")
	}

	result := make([]*moodboard.Moodboard, 0, len(rows))
	for i := range rows {
		board, err := rows[i].EtoD()
		if err != nil {
			return nil, 0, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err,
				"failed to decode moodboard images", uuid.NewString())
		}
		result = append(result, board)
	}

	return result, total, nil
}

// Update implements moodboard.Repository.
func (repo *MoodboardGormRepository) Update(ctx context.Context, board *moodboard.Moodboard) error {
	entity, err := dbschema.NewSchemaMoodboard(board)
	if err != nil {
		return platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err,
			"failed to encode moodboard images", uuid.NewString())
	}
	entity.UpdatedAt = time.Now()

	result := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Moodboard{}).
		Where("public_id = ? AND deleted_at IS NULL", board.PublicID).
		Updates(map[string]any{
			"concept":    entity.Concept,
			"images":     entity.Images,
			"degraded":   entity.Degraded,
			"status":     entity.Status,
			"updated_at": entity.UpdatedAt,
		})
	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to update moodboard", result.Error,
			"83a5f1d2-6c9e-4b47-a0d3-9f2e8b7c5061")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "moodboard not found", nil,
			"c9274e6b-0d8f-45a1-b6c3-2e7f9a4d8153")
	}
	board.UpdatedAt = entity.UpdatedAt
	return nil
}

// Delete implements moodboard.Repository. Rows are soft deleted so the
// ledger keeps referencing historical boards.
func (repo *MoodboardGormRepository) Delete(ctx context.Context, publicID string) error {
	result := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Moodboard{}).
		Where("public_id = ? AND deleted_at IS NULL", publicID).
		Updates(map[string]any{
			"deleted_at": time.Now(),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to delete moodboard", result.Error,
			"4f8b2c7d-3e61-49a0-8d5f-b1c6e9a27340")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "moodboard not found", nil,
			"a6d91e35-7f2b-4c08-9e64-d8b3f5a1c297")
	}
	return nil
}

// DetachProject implements moodboard.Repository. Boards survive their
// project's deletion with project_id cleared.
func (repo *MoodboardGormRepository) DetachProject(ctx context.Context, projectPublicID string) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Moodboard{}).
		Where("project_id = ?", projectPublicID).
		Updates(map[string]any{
			"project_id": nil,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to detach moodboards from project", err,
			"e1c47a92-5d8b-406f-a3e7-f9b2d6c80415")
	}
	return nil
}
