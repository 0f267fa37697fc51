package usage

import (
	"context"
	"time"

	"visioneer-server/internal/domain/query"
	"visioneer-server/internal/infrastructure/logger"
	"visioneer-server/internal/infrastructure/metrics"
	"visioneer-server/internal/utils/idgen"
	"visioneer-server/internal/utils/platformerrors"
)

// Config carries the usage defaults resolved at wire time.
type Config struct {
	TextProvider  string
	TextModel     string
	RetentionDays int
}

// Service appends to and reads from the usage ledger.
type Service struct {
	repo Repository
	cfg  Config
}

// NewService creates a new usage service.
func NewService(repo Repository, cfg Config) *Service {
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 30
	}
	return &Service{repo: repo, cfg: cfg}
}

// RecordTextGeneration appends a text generation entry for the
// configured text provider. Ledger write failures are logged, never
// propagated; billing records must not break a generation.
func (s *Service) RecordTextGeneration(ctx context.Context, userID uint) {
	s.record(ctx, userID, ServiceTextGeneration, s.cfg.TextProvider, s.cfg.TextModel, 1, nil)
}

// RecordImageGeneration appends an image generation entry billed per image.
func (s *Service) RecordImageGeneration(ctx context.Context, userID uint, provider, model string, count int) {
	if count <= 0 {
		return
	}
	s.record(ctx, userID, ServiceImageGeneration, provider, model, count, map[string]any{
		"image_count": count,
	})
}

func (s *Service) record(ctx context.Context, userID uint, kind ServiceKind, provider, model string, quantity int, metadata map[string]any) {
	log := logger.GetLogger()

	publicID, err := idgen.GenerateSecureID("usage", 16)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate usage record ID")
		return
	}

	rec := &Record{
		PublicID:  publicID,
		UserID:    userID,
		Service:   kind,
		Provider:  provider,
		Model:     model,
		Quantity:  quantity,
		CostUSD:   CalculateCost(kind, quantity),
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		log.Error().Err(err).
			Uint("user_id", userID).
			Str("service", string(kind)).
			Msg("failed to record usage")
		return
	}

	cost, _ := rec.CostUSD.Float64()
	metrics.RecordUsageCost(string(kind), cost)
}

// ListByUserID retrieves a user's usage records with pagination.
func (s *Service) ListByUserID(ctx context.Context, userID uint, pagination *query.Pagination) ([]*Record, int64, error) {
	records, total, err := s.repo.ListByUserID(ctx, userID, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list usage records")
	}
	return records, total, nil
}

// SummarizeByUserID aggregates a user's ledger by service kind.
func (s *Service) SummarizeByUserID(ctx context.Context, userID uint) ([]*Summary, error) {
	summaries, err := s.repo.SummarizeByUserID(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to summarize usage")
	}
	return summaries, nil
}

// PurgeExpired removes records past the retention window and returns
// how many were deleted.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -s.cfg.RetentionDays)
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to purge usage records")
	}
	return deleted, nil
}
