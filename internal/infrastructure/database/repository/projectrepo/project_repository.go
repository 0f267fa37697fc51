package projectrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"visioneer-server/internal/domain/project"
	"visioneer-server/internal/domain/query"
	"visioneer-server/internal/infrastructure/database/dbschema"
	"visioneer-server/internal/infrastructure/database/transaction"
	"visioneer-server/internal/utils/platformerrors"
)

type ProjectGormRepository struct {
	db *transaction.Database
}

var _ project.Repository = (*ProjectGormRepository)(nil)

func NewProjectGormRepository(db *transaction.Database) project.Repository {
	return &ProjectGormRepository{db: db}
}

// Create implements project.Repository.
func (repo *ProjectGormRepository) Create(ctx context.Context, proj *project.Project) error {
	entity := dbschema.NewSchemaProject(proj)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to create project", err,
			"6b3d9f14-2a7c-48e5-b0d9-c5f1e8a36270")
	}
	proj.ID = entity.ID
	proj.CreatedAt = entity.CreatedAt
	proj.UpdatedAt = entity.UpdatedAt
	return nil
}

// GetByPublicIDAndUserID implements project.Repository.
func (repo *ProjectGormRepository) GetByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) (*project.Project, error) {
	var entity dbschema.Project
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("public_id = ? AND user_id = ? AND deleted_at IS NULL", publicID, userID).
		First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "project not found", err,
			"9e52c8a7-4b1d-46f3-a8e0-d72c5f9b1684")
	}
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to find project", err,
			"3c7f1e95-8d2a-4b06-9f48-e6a1d3c87b52")
	}
	return entity.EtoD(), nil
}

// ListByUserID implements project.Repository.
func (repo *ProjectGormRepository) ListByUserID(ctx context.Context, userID uint, pagination *query.Pagination) ([]*project.Project, int64, error) {
	baseQuery := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Project{}).
		Where("user_id = ? AND deleted_at IS NULL", userID)

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to count projects", err,
			"d8b46c23-1f7e-49a5-b2d0-8c5e3a9f6174")
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
			listQuery = listQuery.Order("updated_at ASC")
		} else {
			listQuery = listQuery.Order("updated_at DESC")
		}

		if pagination.Limit != nil && *pagination.Limit > 0 {
			listQuery = listQuery.Limit(*pagination.Limit)
		}
	} else {
		listQuery = listQuery.Order("updated_at DESC")
	}

	var rows []dbschema.Project
	if err := listQuery.Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list projects", err,
			"f4a29d71-6e3b-40c8-a5f2-1d8c7b9e4356")
	}

	result := make([]*project.Project, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}

	return result, total, nil
}

// Update implements project.Repository.
func (repo *ProjectGormRepository) Update(ctx context.Context, proj *project.Project) error {
	now := time.Now()
	result := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Project{}).
		Where("public_id = ? AND deleted_at IS NULL", proj.PublicID).
		Updates(map[string]any{
			"title":       proj.Title,
			"description": proj.Description,
			"updated_at":  now,
		})
	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to update project", result.Error,
			"72e8c5d4-9a1f-43b6-8d20-c6f9e2a75b18")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "project not found", nil,
			"b1f63a48-5c2d-47e9-a0b4-8e7d9c3f1562")
	}
	proj.UpdatedAt = now
	return nil
}

// Delete implements project.Repository.
func (repo *ProjectGormRepository) Delete(ctx context.Context, publicID string) error {
	result := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Project{}).
		Where("public_id = ? AND deleted_at IS NULL", publicID).
		Updates(map[string]any{
			"deleted_at": time.Now(),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to delete project", result.Error,
			"5d9e7b21-3f8a-46c0-b7e5-a2c4f8d1963b")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "project not found", nil,
			"8a4c2f67-1e9d-45b3-9c08-f7b5d3e6a214")
	}
	return nil
}
