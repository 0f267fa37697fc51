package inference

import (
	"context"

	"github.com/google/uuid"

	"visioneer-server/internal/domain/moodboard"
	"visioneer-server/internal/domain/prompt"
	"visioneer-server/internal/infrastructure/cache"
	"visioneer-server/internal/infrastructure/logger"
	"visioneer-server/internal/infrastructure/metrics"
	"visioneer-server/internal/utils/idgen"
	"visioneer-server/internal/utils/platformerrors"
)

// ConceptGenerator produces moodboard concepts and image prompts through
// the configured text backend. Concepts are cached by story and style so
// repeated submissions of the same brief skip the LLM call.
type ConceptGenerator struct {
	text        TextService
	store       cache.Store
	cacheSecret []byte
}

// NewConceptGenerator creates a generator over the text backend.
// cacheSecret keys the story hash so cache keys are not guessable from
// story content alone.
func NewConceptGenerator(text TextService, store cache.Store, cacheSecret []byte) *ConceptGenerator {
	return &ConceptGenerator{text: text, store: store, cacheSecret: cacheSecret}
}

// GenerateConcept asks the text backend for a full visual concept, or
// returns the cached concept when the same story and style was seen
// within the cache TTL.
func (g *ConceptGenerator) GenerateConcept(ctx context.Context, story string, style moodboard.Style) (string, error) {
	key := g.cacheKey(story, style)
	if cached, ok := g.store.Get(key); ok {
		log := logger.GetComponentLogger("concepts")
		log.Debug().
			Str("style", string(style)).
			Msg("concept cache hit")
		return cached, nil
	}

	concept, err := g.text.GenerateText(ctx, prompt.ConceptPrompt(story, string(style)))
	if err != nil {
		metrics.RecordProviderError(string(g.text.Kind()), "concept")
		return "", platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerInfrastructure, err,
			"failed to generate concept", uuid.NewString())
	}
	if concept == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "text backend returned an empty concept",
			nil, uuid.NewString())
	}

	g.store.Set(key, concept)
	return concept, nil
}

// RefineConcept rewrites an existing concept according to user feedback.
// Refinements are never cached, every feedback round is distinct.
func (g *ConceptGenerator) RefineConcept(ctx context.Context, concept, feedback string) (string, error) {
	refined, err := g.text.GenerateText(ctx, prompt.RefinePrompt(concept, feedback))
	if err != nil {
		metrics.RecordProviderError(string(g.text.Kind()), "refine")
		return "", platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerInfrastructure, err,
			"failed to refine concept", uuid.NewString())
	}
	if refined == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "text backend returned an empty refinement",
			nil, uuid.NewString())
	}
	return refined, nil
}

// GenerateImagePrompts derives count image prompts from a concept. The
// backend reply is parsed line by line and padded when it comes up short,
// so the result always has exactly count entries.
func (g *ConceptGenerator) GenerateImagePrompts(ctx context.Context, concept string, style moodboard.Style, count int) ([]string, error) {
	raw, err := g.text.GenerateText(ctx, prompt.ImagePromptsPrompt(concept, string(style), count))
	if err != nil {
		metrics.RecordProviderError(string(g.text.Kind()), "image_prompts")
		return nil, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerInfrastructure, err,
			"failed to generate image prompts", uuid.NewString())
	}
	return prompt.ParseImagePrompts(raw, string(style), count), nil
}

func (g *ConceptGenerator) cacheKey(story string, style moodboard.Style) string {
	return idgen.HashKey256(story+"|"+string(style), g.cacheSecret)
}

var _ moodboard.ConceptService = (*ConceptGenerator)(nil)
