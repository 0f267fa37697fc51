package inference

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"visioneer-server/internal/domain/moodboard"
	"visioneer-server/internal/infrastructure/logger"
	"visioneer-server/internal/infrastructure/metrics"
)

const defaultWorkerCount = 4

// Orchestrator fans a prompt list out to the image backend with a
// bounded worker pool and restores prompt order on collection.
type Orchestrator struct {
	images  ImageService
	workers int
	timeout time.Duration
}

// NewOrchestrator creates an orchestrator over the given backend.
// workers caps concurrent provider calls; values below 1 fall back to
// the default of 4. timeout bounds the whole batch; zero means no
// bound beyond the caller's context.
func NewOrchestrator(images ImageService, workers int, timeout time.Duration) *Orchestrator {
	if workers < 1 {
		workers = defaultWorkerCount
	}
	return &Orchestrator{images: images, workers: workers, timeout: timeout}
}

// GenerateBatch generates one image per prompt. Each slot failure is
// logged and dropped; the surviving results come back sorted by slot
// index, so output order matches prompt order regardless of completion
// order. No slot is retried and siblings are not cancelled on failure.
func (o *Orchestrator) GenerateBatch(ctx context.Context, prompts []string, style moodboard.Style, aspectRatio string) ([]moodboard.Image, error) {
	if len(prompts) == 0 {
		return []moodboard.Image{}, nil
	}

	log := logger.GetComponentLogger("orchestrator")
	provider := string(o.images.Kind())
	start := time.Now()

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	var (
		mu      sync.Mutex
		results []moodboard.Image
		wg      sync.WaitGroup
	)
	sem := make(chan struct{}, o.workers)

	for i, prompt := range prompts {
		wg.Add(1)
		go func(index int, prompt string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result, err := o.images.Generate(ctx, &ImageGenerateRequest{
				Prompt:      prompt,
				Style:       string(style),
				AspectRatio: aspectRatio,
			})
			if err != nil {
				log.Warn().Err(err).
					Int("slot", index).
					Str("provider", provider).
					Msg("image slot failed")
				metrics.RecordImageSlotFailure(provider)
				return
			}

			mu.Lock()
			results = append(results, moodboard.Image{
				Index:    index,
				URL:      result.URL,
				Prompt:   prompt,
				Provider: string(result.Provider),
				Model:    result.Model,
			})
			mu.Unlock()
			metrics.RecordImageGenerated(string(result.Provider), result.Model)
		}(i, prompt)
	}
	wg.Wait()

	sort.Slice(results, func(a, b int) bool {
		return results[a].Index < results[b].Index
	})

	metrics.RecordGenerationDuration(provider, time.Since(start).Seconds())
	log.Info().
		Int("requested", len(prompts)).
		Int("generated", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("image batch completed")

	return results, nil
}

// placeholderCount is the fixed size of the fallback set.
const placeholderCount = 4

// Placeholders returns the fixed demo image set substituted when a
// batch produced nothing at all.
func (o *Orchestrator) Placeholders(style moodboard.Style) []moodboard.Image {
	metrics.RecordPlaceholderFallback()

	images := make([]moodboard.Image, placeholderCount)
	for i := range images {
		images[i] = moodboard.Image{
			Index:    i,
			URL:      fmt.Sprintf("https://picsum.photos/400/300?random=%d", i+1),
			Prompt:   fmt.Sprintf("%s concept scene %d", styleLabel(string(style)), i+1),
			Provider: string(ProviderDemo),
		}
	}
	return images
}

var _ moodboard.ImageBatcher = (*Orchestrator)(nil)
