package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"visioneer-server/internal/domain/moodboard"
)

type stubImageService struct {
	mu        sync.Mutex
	inFlight  int32
	maxSeen   int32
	delays    map[string]time.Duration
	failures  map[string]error
	callCount int
}

func (s *stubImageService) Generate(ctx context.Context, request *ImageGenerateRequest) (*ImageResult, error) {
	current := atomic.AddInt32(&s.inFlight, 1)
	defer atomic.AddInt32(&s.inFlight, -1)
	for {
		seen := atomic.LoadInt32(&s.maxSeen)
		if current <= seen || atomic.CompareAndSwapInt32(&s.maxSeen, seen, current) {
			break
		}
	}

	s.mu.Lock()
	s.callCount++
	delay := s.delays[request.Prompt]
	failure := s.failures[request.Prompt]
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if failure != nil {
		return nil, failure
	}
	return &ImageResult{
		URL:      "https://images.test/" + request.Prompt,
		Provider: ProviderOpenAI,
		Model:    "dall-e-3",
	}, nil
}

func (s *stubImageService) Edit(ctx context.Context, request *ImageEditRequest) (*ImageResult, error) {
	return nil, errors.New("not supported")
}

func (s *stubImageService) DefaultModel() string { return "dall-e-3" }

func (s *stubImageService) Kind() ProviderKind { return ProviderOpenAI }

func TestGenerateBatchRestoresPromptOrder(t *testing.T) {
	// Earlier slots sleep longer, so completion order is the reverse
	// of submission order.
	stub := &stubImageService{delays: map[string]time.Duration{
		"first":  30 * time.Millisecond,
		"second": 20 * time.Millisecond,
		"third":  10 * time.Millisecond,
		"fourth": 0,
	}}
	orch := NewOrchestrator(stub, 4, 0)

	prompts := []string{"first", "second", "third", "fourth"}
	images, err := orch.GenerateBatch(context.Background(), prompts, moodboard.StyleCinematic, "16:9")
	if err != nil {
		t.Fatalf("GenerateBatch() error = %v", err)
	}
	if len(images) != len(prompts) {
		t.Fatalf("got %d images, want %d", len(images), len(prompts))
	}
	for i, img := range images {
		if img.Index != i {
			t.Errorf("images[%d].Index = %d, want %d", i, img.Index, i)
		}
		if img.Prompt != prompts[i] {
			t.Errorf("images[%d].Prompt = %q, want %q", i, img.Prompt, prompts[i])
		}
	}
}

func TestGenerateBatchDropsFailedSlots(t *testing.T) {
	stub := &stubImageService{failures: map[string]error{
		"bad": errors.New("backend refused"),
	}}
	orch := NewOrchestrator(stub, 4, 0)

	images, err := orch.GenerateBatch(context.Background(), []string{"ok-0", "bad", "ok-2"}, moodboard.StyleRealistic, "1:1")
	if err != nil {
		t.Fatalf("GenerateBatch() error = %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("got %d images, want 2", len(images))
	}
	if images[0].Index != 0 || images[1].Index != 2 {
		t.Errorf("surviving indexes = [%d, %d], want [0, 2]", images[0].Index, images[1].Index)
	}
}

func TestGenerateBatchAllSlotsFailed(t *testing.T) {
	failures := make(map[string]error)
	prompts := make([]string, 4)
	for i := range prompts {
		prompts[i] = fmt.Sprintf("prompt-%d", i)
		failures[prompts[i]] = errors.New("unavailable")
	}
	orch := NewOrchestrator(&stubImageService{failures: failures}, 4, 0)

	images, err := orch.GenerateBatch(context.Background(), prompts, moodboard.StyleNoir, "4:3")
	if err != nil {
		t.Fatalf("GenerateBatch() error = %v, want nil even when every slot fails", err)
	}
	if len(images) != 0 {
		t.Errorf("got %d images, want 0", len(images))
	}
}

func TestGenerateBatchRespectsWorkerBound(t *testing.T) {
	const workers = 2
	delays := make(map[string]time.Duration)
	prompts := make([]string, 8)
	for i := range prompts {
		prompts[i] = fmt.Sprintf("prompt-%d", i)
		delays[prompts[i]] = 15 * time.Millisecond
	}
	stub := &stubImageService{delays: delays}
	orch := NewOrchestrator(stub, workers, 0)

	if _, err := orch.GenerateBatch(context.Background(), prompts, moodboard.StyleModern, "16:9"); err != nil {
		t.Fatalf("GenerateBatch() error = %v", err)
	}
	if max := atomic.LoadInt32(&stub.maxSeen); max > workers {
		t.Errorf("observed %d concurrent calls, bound is %d", max, workers)
	}
	if stub.callCount != len(prompts) {
		t.Errorf("backend called %d times, want %d", stub.callCount, len(prompts))
	}
}

func TestGenerateBatchEmptyInput(t *testing.T) {
	stub := &stubImageService{}
	orch := NewOrchestrator(stub, 4, 0)

	images, err := orch.GenerateBatch(context.Background(), nil, moodboard.StyleVintage, "16:9")
	if err != nil {
		t.Fatalf("GenerateBatch() error = %v", err)
	}
	if len(images) != 0 {
		t.Errorf("got %d images, want 0", len(images))
	}
	if stub.callCount != 0 {
		t.Errorf("backend called %d times for empty input", stub.callCount)
	}
}

func TestGenerateBatchIsIdempotent(t *testing.T) {
	// A deterministic backend must yield the same batch on every run,
	// regardless of scheduling: same ordering, same surviving slots.
	stub := &stubImageService{
		delays: map[string]time.Duration{
			"prompt-0": 20 * time.Millisecond,
			"prompt-2": 5 * time.Millisecond,
		},
		failures: map[string]error{
			"prompt-1": errors.New("backend refused"),
			"prompt-4": errors.New("backend refused"),
		},
	}
	orch := NewOrchestrator(stub, 2, 0)
	prompts := []string{"prompt-0", "prompt-1", "prompt-2", "prompt-3", "prompt-4", "prompt-5"}

	first, err := orch.GenerateBatch(context.Background(), prompts, moodboard.StyleSciFi, "16:9")
	if err != nil {
		t.Fatalf("GenerateBatch() first run error = %v", err)
	}
	second, err := orch.GenerateBatch(context.Background(), prompts, moodboard.StyleSciFi, "16:9")
	if err != nil {
		t.Fatalf("GenerateBatch() second run error = %v", err)
	}

	if len(first) != 4 {
		t.Fatalf("got %d images, want 4 surviving slots", len(first))
	}
	if len(second) != len(first) {
		t.Fatalf("second run returned %d images, first returned %d", len(second), len(first))
	}
	wantIndexes := []int{0, 2, 3, 5}
	for i := range first {
		if first[i].Index != wantIndexes[i] {
			t.Errorf("first[%d].Index = %d, want %d", i, first[i].Index, wantIndexes[i])
		}
		if first[i].Index != second[i].Index || first[i].URL != second[i].URL || first[i].Prompt != second[i].Prompt {
			t.Errorf("run mismatch at %d: first = %+v, second = %+v", i, first[i], second[i])
		}
	}
}

func TestNewOrchestratorDefaultsWorkerCount(t *testing.T) {
	orch := NewOrchestrator(&stubImageService{}, 0, 0)
	if orch.workers != defaultWorkerCount {
		t.Errorf("workers = %d, want %d", orch.workers, defaultWorkerCount)
	}
}

func TestPlaceholders(t *testing.T) {
	orch := NewOrchestrator(&stubImageService{}, 4, 0)

	images := orch.Placeholders(moodboard.StyleDarkMoody)
	if len(images) != placeholderCount {
		t.Fatalf("got %d placeholders, want %d", len(images), placeholderCount)
	}
	for i, img := range images {
		if img.Index != i {
			t.Errorf("placeholder %d has index %d", i, img.Index)
		}
		want := fmt.Sprintf("https://picsum.photos/400/300?random=%d", i+1)
		if img.URL != want {
			t.Errorf("placeholder %d URL = %q, want %q", i, img.URL, want)
		}
		if img.Provider != string(ProviderDemo) {
			t.Errorf("placeholder %d provider = %q, want %q", i, img.Provider, ProviderDemo)
		}
		if !strings.Contains(img.Prompt, "dark moody") {
			t.Errorf("placeholder %d prompt %q missing style label", i, img.Prompt)
		}
	}
}
