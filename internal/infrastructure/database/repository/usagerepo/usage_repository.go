package usagerepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"visioneer-server/internal/domain/query"
	"visioneer-server/internal/domain/usage"
	"visioneer-server/internal/infrastructure/database/dbschema"
	"visioneer-server/internal/infrastructure/database/transaction"
	"visioneer-server/internal/utils/platformerrors"
)

type UsageGormRepository struct {
	db *transaction.Database
}

var _ usage.Repository = (*UsageGormRepository)(nil)

func NewUsageGormRepository(db *transaction.Database) usage.Repository {
	return &UsageGormRepository{db: db}
}

// Create implements usage.Repository.
func (repo *UsageGormRepository) Create(ctx context.Context, record *usage.Record) error {
	entity, err := dbschema.NewSchemaUsageRecord(record)
	if err != nil {
		return platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err,
			"failed to encode usage metadata", uuid.NewString())
	}
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to create usage record", err,
			"c4e87d29-6b1f-43a0-9d52-f8a3c6e1b074")
	}
	record.ID = entity.ID
	record.CreatedAt = entity.CreatedAt
	return nil
}

// ListByUserID implements usage.Repository.
func (repo *UsageGormRepository) ListByUserID(ctx context.Context, userID uint, pagination *query.Pagination) ([]*usage.Record, int64, error) {
	baseQuery := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.UsageRecord{}).
		Where("user_id = ?", userID)

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to count usage records", err,
			"a3f59e12-7c8d-44b6-8e03-d1b7f4a29c65")
	}

	listQuery := baseQuery.Order("created_at DESC")
	if pagination != nil {
		if pagination.Limit != nil && *pagination.Limit > 0 {
			listQuery = listQuery.Limit(*pagination.Limit)
		}
		if pagination.Offset != nil && *pagination.Offset > 0 {
			listQuery = listQuery.Offset(*pagination.Offset)
		}
	}

	var rows []dbschema.UsageRecord
	if err := listQuery.Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to list usage records", err,
			"7d2b8f64-1a9e-45c3-b7f0-e5c8a3d91627")
	}

	result := make([]*usage.Record, 0, len(rows))
	for i := range rows {
		record, err := rows[i].EtoD()
		if err != nil {
			return nil, 0, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err,
				"failed to decode usage metadata", uuid.NewString())
		}
		result = append(result, record)
	}

	return result, total, nil
}

type summaryRow struct {
	Service      string
	RequestCount int64
	Quantity     int64
	CostUSD      decimal.Decimal
}

// SummarizeByUserID implements usage.Repository.
func (repo *UsageGormRepository) SummarizeByUserID(ctx context.Context, userID uint) ([]*usage.Summary, error) {
	var rows []summaryRow
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.UsageRecord{}).
		Select(`
			service,
			COUNT(*) as request_count,
			SUM(quantity) as quantity,
			SUM(cost_usd) as cost_usd
		`).
		Where("user_id = ?", userID).
		Group("service").
		Order("service").
		Scan(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to summarize usage", err,
			"e8a14c73-9f5b-42d0-a6e8-b2d7f9c3e516")
	}

	summaries := make([]*usage.Summary, len(rows))
	for i, row := range rows {
		summaries[i] = &usage.Summary{
			Service:      usage.ServiceKind(row.Service),
			RequestCount: row.RequestCount,
			Quantity:     row.Quantity,
			CostUSD:      row.CostUSD,
		}
	}
	return summaries, nil
}

// DeleteOlderThan implements usage.Repository. Records are hard deleted,
// the ledger only promises a bounded retention window.
func (repo *UsageGormRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := repo.db.GetTx(ctx).WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&dbschema.UsageRecord{})
	if result.Error != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to purge usage records", result.Error,
			"2f6c9a85-4e1d-47b2-8c69-a7e3d5f8b140")
	}
	return result.RowsAffected, nil
}
