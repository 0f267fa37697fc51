package usage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"visioneer-server/internal/domain/query"
	"visioneer-server/internal/domain/usage"
)

// mockUsageRepository is an in-memory Repository for testing.
type mockUsageRepository struct {
	records    []*usage.Record
	createErr  error
	lastCutoff time.Time
}

func (m *mockUsageRepository) Create(ctx context.Context, record *usage.Record) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockUsageRepository) ListByUserID(ctx context.Context, userID uint, pagination *query.Pagination) ([]*usage.Record, int64, error) {
	var out []*usage.Record
	for _, rec := range m.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockUsageRepository) SummarizeByUserID(ctx context.Context, userID uint) ([]*usage.Summary, error) {
	byKind := make(map[usage.ServiceKind]*usage.Summary)
	for _, rec := range m.records {
		if rec.UserID != userID {
			continue
		}
		s, ok := byKind[rec.Service]
		if !ok {
			s = &usage.Summary{Service: rec.Service}
			byKind[rec.Service] = s
		}
		s.RequestCount++
		s.Quantity += int64(rec.Quantity)
		s.CostUSD = s.CostUSD.Add(rec.CostUSD)
	}
	var out []*usage.Summary
	for _, s := range byKind {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockUsageRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	m.lastCutoff = cutoff
	var kept []*usage.Record
	var deleted int64
	for _, rec := range m.records {
		if rec.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	m.records = kept
	return deleted, nil
}

func TestCalculateCost(t *testing.T) {
	tests := []struct {
		name     string
		kind     usage.ServiceKind
		quantity int
		want     string
	}{
		{"single image", usage.ServiceImageGeneration, 1, "0.04"},
		{"four images", usage.ServiceImageGeneration, 4, "0.16"},
		{"twelve images", usage.ServiceImageGeneration, 12, "0.48"},
		{"text call", usage.ServiceTextGeneration, 1, "0.001"},
		{"zero clamps to one", usage.ServiceTextGeneration, 0, "0.001"},
		{"unknown kind", usage.ServiceKind("video_generation"), 3, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usage.CalculateCost(tt.kind, tt.quantity)
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("CalculateCost(%s, %d) = %s, want %s", tt.kind, tt.quantity, got, want)
			}
		})
	}
}

func TestRecordImageGeneration(t *testing.T) {
	repo := &mockUsageRepository{}
	service := usage.NewService(repo, usage.Config{TextProvider: "openai", TextModel: "gpt-4o-mini"})

	service.RecordImageGeneration(context.Background(), 7, "openai", "dall-e-3", 4)

	if len(repo.records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(repo.records))
	}
	rec := repo.records[0]
	if rec.Service != usage.ServiceImageGeneration {
		t.Errorf("Service = %q", rec.Service)
	}
	if rec.Provider != "openai" || rec.Model != "dall-e-3" {
		t.Errorf("Provider/Model = %q/%q", rec.Provider, rec.Model)
	}
	if rec.Quantity != 4 {
		t.Errorf("Quantity = %d, want 4", rec.Quantity)
	}
	if want, _ := decimal.NewFromString("0.16"); !rec.CostUSD.Equal(want) {
		t.Errorf("CostUSD = %s, want 0.16", rec.CostUSD)
	}
	if rec.Metadata["image_count"] != 4 {
		t.Errorf("Metadata[image_count] = %v, want 4", rec.Metadata["image_count"])
	}
	if rec.PublicID == "" {
		t.Error("PublicID is empty")
	}
}

func TestRecordImageGeneration_SkipsNonPositiveCount(t *testing.T) {
	repo := &mockUsageRepository{}
	service := usage.NewService(repo, usage.Config{})

	service.RecordImageGeneration(context.Background(), 7, "openai", "dall-e-3", 0)
	service.RecordImageGeneration(context.Background(), 7, "openai", "dall-e-3", -1)

	if len(repo.records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(repo.records))
	}
}

func TestRecordTextGeneration(t *testing.T) {
	repo := &mockUsageRepository{}
	service := usage.NewService(repo, usage.Config{TextProvider: "openai", TextModel: "gpt-4o-mini"})

	service.RecordTextGeneration(context.Background(), 7)

	if len(repo.records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(repo.records))
	}
	rec := repo.records[0]
	if rec.Service != usage.ServiceTextGeneration {
		t.Errorf("Service = %q", rec.Service)
	}
	if rec.Provider != "openai" || rec.Model != "gpt-4o-mini" {
		t.Errorf("Provider/Model = %q/%q, want the configured text stack", rec.Provider, rec.Model)
	}
	if want, _ := decimal.NewFromString("0.001"); !rec.CostUSD.Equal(want) {
		t.Errorf("CostUSD = %s, want 0.001", rec.CostUSD)
	}
}

func TestRecordTextGeneration_SwallowsRepositoryFailure(t *testing.T) {
	repo := &mockUsageRepository{createErr: errors.New("db down")}
	service := usage.NewService(repo, usage.Config{TextProvider: "openai"})

	// Must not panic or surface the error.
	service.RecordTextGeneration(context.Background(), 7)
}

func TestSummarizeByUserID(t *testing.T) {
	repo := &mockUsageRepository{}
	service := usage.NewService(repo, usage.Config{TextProvider: "openai", TextModel: "gpt-4o-mini"})

	service.RecordTextGeneration(context.Background(), 7)
	service.RecordTextGeneration(context.Background(), 7)
	service.RecordImageGeneration(context.Background(), 7, "openai", "dall-e-3", 4)
	service.RecordImageGeneration(context.Background(), 99, "openai", "dall-e-3", 4)

	summaries, err := service.SummarizeByUserID(context.Background(), 7)
	if err != nil {
		t.Fatalf("SummarizeByUserID() error = %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("len(summaries) = %d, want 2 service kinds", len(summaries))
	}
	for _, s := range summaries {
		switch s.Service {
		case usage.ServiceTextGeneration:
			if s.RequestCount != 2 || s.Quantity != 2 {
				t.Errorf("text summary = %d requests / %d quantity, want 2 / 2", s.RequestCount, s.Quantity)
			}
		case usage.ServiceImageGeneration:
			if s.RequestCount != 1 || s.Quantity != 4 {
				t.Errorf("image summary = %d requests / %d quantity, want 1 / 4", s.RequestCount, s.Quantity)
			}
		default:
			t.Errorf("unexpected service kind %q", s.Service)
		}
	}
}

func TestPurgeExpired(t *testing.T) {
	repo := &mockUsageRepository{}
	service := usage.NewService(repo, usage.Config{RetentionDays: 30})

	now := time.Now()
	repo.records = []*usage.Record{
		{PublicID: "usage_old1", UserID: 7, Service: usage.ServiceTextGeneration, CreatedAt: now.AddDate(0, 0, -40)},
		{PublicID: "usage_old2", UserID: 7, Service: usage.ServiceTextGeneration, CreatedAt: now.AddDate(0, 0, -31)},
		{PublicID: "usage_new1", UserID: 7, Service: usage.ServiceTextGeneration, CreatedAt: now.AddDate(0, 0, -5)},
	}

	deleted, err := service.PurgeExpired(context.Background())
	if err != nil {
		t.Fatalf("PurgeExpired() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	if len(repo.records) != 1 || repo.records[0].PublicID != "usage_new1" {
		t.Errorf("remaining = %v, want only the recent record", repo.records)
	}

	wantCutoff := now.AddDate(0, 0, -30)
	if diff := repo.lastCutoff.Sub(wantCutoff); diff < -time.Minute || diff > time.Minute {
		t.Errorf("cutoff = %v, want about 30 days ago", repo.lastCutoff)
	}
}

func TestNewService_DefaultRetention(t *testing.T) {
	repo := &mockUsageRepository{}
	service := usage.NewService(repo, usage.Config{})

	if _, err := service.PurgeExpired(context.Background()); err != nil {
		t.Fatalf("PurgeExpired() error = %v", err)
	}
	wantCutoff := time.Now().AddDate(0, 0, -30)
	if diff := repo.lastCutoff.Sub(wantCutoff); diff < -time.Minute || diff > time.Minute {
		t.Errorf("cutoff = %v, want the 30 day default", repo.lastCutoff)
	}
}
