package moodboard_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"visioneer-server/internal/domain/moodboard"
	"visioneer-server/internal/domain/query"
	"visioneer-server/internal/utils/platformerrors"
)

const validStory = "A lighthouse keeper on a remote island discovers that the fog rolling in every night carries whispered voices from ships lost a century ago."

// mockRepository is an in-memory Repository for testing.
type mockRepository struct {
	boards    map[string]*moodboard.Moodboard
	createErr error
	updateErr error
	deleteErr error
	deleted   []string
}

func newMockRepository() *mockRepository {
	return &mockRepository{boards: make(map[string]*moodboard.Moodboard)}
}

func (m *mockRepository) Create(ctx context.Context, board *moodboard.Moodboard) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.boards[board.PublicID] = board
	return nil
}

func (m *mockRepository) GetByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) (*moodboard.Moodboard, error) {
	board, ok := m.boards[publicID]
	if !ok || board.UserID != userID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeNotFound, "moodboard not found", nil, "test-not-found")
	}
	return board, nil
}

func (m *mockRepository) ListByUserID(ctx context.Context, userID uint, filter *moodboard.Filter, pagination *query.Pagination) ([]*moodboard.Moodboard, int64, error) {
	var out []*moodboard.Moodboard
	for _, board := range m.boards {
		if board.UserID != userID {
			continue
		}
		if filter != nil && filter.ProjectID != nil {
			if board.ProjectID == nil || *board.ProjectID != *filter.ProjectID {
				continue
			}
		}
		out = append(out, board)
	}
	return out, int64(len(out)), nil
}

func (m *mockRepository) Update(ctx context.Context, board *moodboard.Moodboard) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.boards[board.PublicID] = board
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, publicID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.boards, publicID)
	m.deleted = append(m.deleted, publicID)
	return nil
}

func (m *mockRepository) DetachProject(ctx context.Context, projectPublicID string) error {
	return nil
}

// mockConceptService returns canned concepts and prompts.
type mockConceptService struct {
	concept    string
	refined    string
	conceptErr error
	refineErr  error
	promptsErr error
}

func (m *mockConceptService) GenerateConcept(ctx context.Context, story string, style moodboard.Style) (string, error) {
	if m.conceptErr != nil {
		return "", m.conceptErr
	}
	return m.concept, nil
}

func (m *mockConceptService) RefineConcept(ctx context.Context, concept, feedback string) (string, error) {
	if m.refineErr != nil {
		return "", m.refineErr
	}
	return m.refined, nil
}

func (m *mockConceptService) GenerateImagePrompts(ctx context.Context, concept string, style moodboard.Style, count int) ([]string, error) {
	if m.promptsErr != nil {
		return nil, m.promptsErr
	}
	prompts := make([]string, count)
	for i := range prompts {
		prompts[i] = fmt.Sprintf("prompt %d for %s", i, concept)
	}
	return prompts, nil
}

// mockImageBatcher produces one image per prompt in slot order.
type mockImageBatcher struct {
	batchErr    error
	emptyBatch  bool
	lastPrompts []string
}

func (m *mockImageBatcher) GenerateBatch(ctx context.Context, prompts []string, style moodboard.Style, aspectRatio string) ([]moodboard.Image, error) {
	m.lastPrompts = prompts
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	if m.emptyBatch {
		return nil, nil
	}
	images := make([]moodboard.Image, len(prompts))
	for i, prompt := range prompts {
		images[i] = moodboard.Image{
			Index:    i,
			URL:      fmt.Sprintf("https://images.test/%d.png", i),
			Prompt:   prompt,
			Provider: "openai",
			Model:    "dall-e-3",
		}
	}
	return images, nil
}

func (m *mockImageBatcher) Placeholders(style moodboard.Style) []moodboard.Image {
	images := make([]moodboard.Image, moodboard.DefaultImageCount)
	for i := range images {
		images[i] = moodboard.Image{
			Index:    i,
			URL:      fmt.Sprintf("https://placeholders.test/%s/%d.png", style, i),
			Provider: "placeholder",
		}
	}
	return images
}

// mockProjectGuard records ownership checks.
type mockProjectGuard struct {
	err     error
	checked []string
}

func (m *mockProjectGuard) VerifyOwnership(ctx context.Context, publicID string, userID uint) error {
	m.checked = append(m.checked, publicID)
	return m.err
}

// mockUsageRecorder counts ledger calls.
type mockUsageRecorder struct {
	textCalls  int
	imageCalls int
	imageCount int
	provider   string
}

func (m *mockUsageRecorder) RecordTextGeneration(ctx context.Context, userID uint) {
	m.textCalls++
}

func (m *mockUsageRecorder) RecordImageGeneration(ctx context.Context, userID uint, provider, model string, count int) {
	m.imageCalls++
	m.imageCount = count
	m.provider = provider
}

type serviceFixture struct {
	repo     *mockRepository
	concepts *mockConceptService
	batcher  *mockImageBatcher
	projects *mockProjectGuard
	usage    *mockUsageRecorder
	service  *moodboard.Service
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		repo:     newMockRepository(),
		concepts: &mockConceptService{concept: "a fog-bound lighthouse at dusk", refined: "the same lighthouse, warmer light"},
		batcher:  &mockImageBatcher{},
		projects: &mockProjectGuard{},
		usage:    &mockUsageRecorder{},
	}
	f.service = moodboard.NewService(f.repo, f.concepts, f.batcher, f.projects, f.usage)
	return f
}

func TestGenerate_FullPipeline(t *testing.T) {
	f := newServiceFixture()

	board, err := f.service.Generate(context.Background(), 7, moodboard.GenerateParams{
		Story: validStory,
		Style: moodboard.StyleCinematic,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !strings.HasPrefix(board.PublicID, "mb_") {
		t.Errorf("PublicID = %q, want mb_ prefix", board.PublicID)
	}
	if board.Concept != "a fog-bound lighthouse at dusk" {
		t.Errorf("Concept = %q", board.Concept)
	}
	if board.ImageCount != moodboard.DefaultImageCount {
		t.Errorf("ImageCount = %d, want default %d", board.ImageCount, moodboard.DefaultImageCount)
	}
	if board.AspectRatio != moodboard.DefaultAspectRatio {
		t.Errorf("AspectRatio = %q, want default %q", board.AspectRatio, moodboard.DefaultAspectRatio)
	}
	if board.Degraded {
		t.Error("Degraded = true for a successful batch")
	}
	if board.Status != moodboard.StatusCompleted {
		t.Errorf("Status = %q, want %q", board.Status, moodboard.StatusCompleted)
	}
	if len(board.Images) != moodboard.DefaultImageCount {
		t.Fatalf("len(Images) = %d, want %d", len(board.Images), moodboard.DefaultImageCount)
	}
	for i, img := range board.Images {
		if img.Index != i {
			t.Errorf("Images[%d].Index = %d, want slot order preserved", i, img.Index)
		}
	}

	if _, ok := f.repo.boards[board.PublicID]; !ok {
		t.Error("board was not persisted")
	}
	if f.usage.textCalls != 2 {
		t.Errorf("text generations recorded = %d, want 2 (concept + prompt fan-out)", f.usage.textCalls)
	}
	if f.usage.imageCalls != 1 || f.usage.imageCount != moodboard.DefaultImageCount {
		t.Errorf("image generation recorded = %d calls / %d images, want 1 / %d",
			f.usage.imageCalls, f.usage.imageCount, moodboard.DefaultImageCount)
	}
}

func TestGenerate_ValidationRejections(t *testing.T) {
	projectID := "not-a-project-id"

	tests := []struct {
		name   string
		params moodboard.GenerateParams
	}{
		{
			name:   "story too short",
			params: moodboard.GenerateParams{Story: "too short", Style: moodboard.StyleCinematic},
		},
		{
			name:   "unknown style",
			params: moodboard.GenerateParams{Story: validStory, Style: "impressionist"},
		},
		{
			name:   "image count above limit",
			params: moodboard.GenerateParams{Story: validStory, Style: moodboard.StyleNoir, ImageCount: 13},
		},
		{
			name:   "image count below limit",
			params: moodboard.GenerateParams{Story: validStory, Style: moodboard.StyleNoir, ImageCount: 2},
		},
		{
			name:   "unknown aspect ratio",
			params: moodboard.GenerateParams{Story: validStory, Style: moodboard.StyleNoir, AspectRatio: "3:2"},
		},
		{
			name:   "malformed project ID",
			params: moodboard.GenerateParams{Story: validStory, Style: moodboard.StyleNoir, ProjectID: &projectID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture()
			_, err := f.service.Generate(context.Background(), 7, tt.params)
			if err == nil {
				t.Fatal("Generate() error = nil, want validation error")
			}
			if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
				t.Errorf("error type = %v, want validation", platformerrors.GetErrorType(err))
			}
			if len(f.repo.boards) != 0 {
				t.Error("board persisted despite validation failure")
			}
			if f.usage.textCalls != 0 {
				t.Error("usage recorded despite validation failure")
			}
		})
	}
}

func TestGenerate_ProjectOwnershipFailure(t *testing.T) {
	f := newServiceFixture()
	f.projects.err = platformerrors.NewError(context.Background(), platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "project not found", nil, "test-proj-missing")

	projectID := "proj_abcdef1234567890"
	_, err := f.service.Generate(context.Background(), 7, moodboard.GenerateParams{
		Story:     validStory,
		Style:     moodboard.StyleFantasy,
		ProjectID: &projectID,
	})
	if err == nil {
		t.Fatal("Generate() error = nil, want ownership failure")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("error type = %v, want not_found", platformerrors.GetErrorType(err))
	}
	if len(f.projects.checked) != 1 || f.projects.checked[0] != projectID {
		t.Errorf("ownership checked for %v, want [%s]", f.projects.checked, projectID)
	}
	if len(f.repo.boards) != 0 {
		t.Error("board persisted despite failed ownership check")
	}
}

func TestGenerate_ConceptFailureAborts(t *testing.T) {
	f := newServiceFixture()
	f.concepts.conceptErr = errors.New("model unavailable")

	_, err := f.service.Generate(context.Background(), 7, moodboard.GenerateParams{
		Story: validStory,
		Style: moodboard.StyleVintage,
	})
	if err == nil {
		t.Fatal("Generate() error = nil, want concept failure")
	}
	if len(f.repo.boards) != 0 {
		t.Error("board persisted despite concept failure")
	}
}

func TestGenerate_PlaceholderFallback(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*mockImageBatcher)
	}{
		{
			name:  "batch error",
			setup: func(b *mockImageBatcher) { b.batchErr = errors.New("every slot failed") },
		},
		{
			name:  "empty batch",
			setup: func(b *mockImageBatcher) { b.emptyBatch = true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture()
			tt.setup(f.batcher)

			board, err := f.service.Generate(context.Background(), 7, moodboard.GenerateParams{
				Story: validStory,
				Style: moodboard.StyleDarkMoody,
			})
			if err != nil {
				t.Fatalf("Generate() error = %v, want degraded board", err)
			}
			if !board.Degraded {
				t.Error("Degraded = false after total image failure")
			}
			if len(board.Images) != moodboard.DefaultImageCount {
				t.Errorf("len(Images) = %d, want %d placeholders", len(board.Images), moodboard.DefaultImageCount)
			}
			for _, img := range board.Images {
				if img.Provider != "placeholder" {
					t.Errorf("Images provider = %q, want placeholder", img.Provider)
				}
			}
			if _, ok := f.repo.boards[board.PublicID]; !ok {
				t.Error("degraded board was not persisted")
			}
			if f.usage.imageCalls != 0 {
				t.Error("image usage recorded for placeholder fallback")
			}
			if f.usage.textCalls != 2 {
				t.Errorf("text generations recorded = %d, want 2", f.usage.textCalls)
			}
		})
	}
}

func TestRefine(t *testing.T) {
	f := newServiceFixture()

	board, err := f.service.Generate(context.Background(), 7, moodboard.GenerateParams{
		Story: validStory,
		Style: moodboard.StyleCinematic,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	textBefore := f.usage.textCalls

	refined, err := f.service.Refine(context.Background(), board.PublicID, 7, "warmer colors, more dawn light")
	if err != nil {
		t.Fatalf("Refine() error = %v", err)
	}
	if refined.Concept != "the same lighthouse, warmer light" {
		t.Errorf("Concept = %q, want refined concept", refined.Concept)
	}
	if refined.Degraded {
		t.Error("Degraded = true for a successful refinement")
	}
	if got := f.usage.textCalls - textBefore; got != 2 {
		t.Errorf("text generations recorded by Refine = %d, want 2", got)
	}
	if f.repo.boards[board.PublicID].Concept != refined.Concept {
		t.Error("refined board was not persisted")
	}
}

func TestRefine_InvalidFeedback(t *testing.T) {
	f := newServiceFixture()

	board, err := f.service.Generate(context.Background(), 7, moodboard.GenerateParams{
		Story: validStory,
		Style: moodboard.StyleCinematic,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = f.service.Refine(context.Background(), board.PublicID, 7, "   ")
	if err == nil {
		t.Fatal("Refine() error = nil, want validation error")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("error type = %v, want validation", platformerrors.GetErrorType(err))
	}
}

func TestRefine_WrongUser(t *testing.T) {
	f := newServiceFixture()

	board, err := f.service.Generate(context.Background(), 7, moodboard.GenerateParams{
		Story: validStory,
		Style: moodboard.StyleCinematic,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = f.service.Refine(context.Background(), board.PublicID, 99, "different palette")
	if err == nil {
		t.Fatal("Refine() error = nil, want not found for another user's board")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("error type = %v, want not_found", platformerrors.GetErrorType(err))
	}
}

func TestGetByPublicIDAndUserID_InvalidID(t *testing.T) {
	f := newServiceFixture()

	tests := []string{"", "conv_abc123", "mb_", "mb_ABC!"}
	for _, id := range tests {
		if _, err := f.service.GetByPublicIDAndUserID(context.Background(), id, 7); err == nil {
			t.Errorf("GetByPublicIDAndUserID(%q) error = nil, want validation error", id)
		}
	}
}

func TestDelete(t *testing.T) {
	f := newServiceFixture()

	board, err := f.service.Generate(context.Background(), 7, moodboard.GenerateParams{
		Story: validStory,
		Style: moodboard.StyleCinematic,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if err := f.service.Delete(context.Background(), board.PublicID, 99); err == nil {
		t.Error("Delete() by another user succeeded, want not found")
	}
	if len(f.repo.deleted) != 0 {
		t.Fatal("repository delete reached for another user's board")
	}

	if err := f.service.Delete(context.Background(), board.PublicID, 7); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(f.repo.deleted) != 1 || f.repo.deleted[0] != board.PublicID {
		t.Errorf("deleted = %v, want [%s]", f.repo.deleted, board.PublicID)
	}
}

func TestListByUserID_ProjectFilter(t *testing.T) {
	f := newServiceFixture()
	projectID := "proj_abcdef1234567890"

	if _, err := f.service.Generate(context.Background(), 7, moodboard.GenerateParams{
		Story: validStory, Style: moodboard.StyleCinematic, ProjectID: &projectID,
	}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := f.service.Generate(context.Background(), 7, moodboard.GenerateParams{
		Story: validStory, Style: moodboard.StyleNoir,
	}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	boards, total, err := f.service.ListByUserID(context.Background(), 7, &moodboard.Filter{ProjectID: &projectID}, nil)
	if err != nil {
		t.Fatalf("ListByUserID() error = %v", err)
	}
	if total != 1 || len(boards) != 1 {
		t.Fatalf("got %d boards (total %d), want 1 in the project", len(boards), total)
	}
	if boards[0].ProjectID == nil || *boards[0].ProjectID != projectID {
		t.Errorf("ProjectID = %v, want %s", boards[0].ProjectID, projectID)
	}
}
