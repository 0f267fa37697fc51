package inference

import (
	"context"

	"github.com/google/uuid"
	"github.com/google/wire"

	"visioneer-server/internal/config"
	"visioneer-server/internal/domain/editsession"
	"visioneer-server/internal/domain/moodboard"
	"visioneer-server/internal/infrastructure/cache"
	"visioneer-server/internal/utils/platformerrors"
)

// ServiceProvider wires the inference backends selected by configuration.
var ServiceProvider = wire.NewSet(
	ProvideTextService,
	ProvideImageService,
	ProvideConceptStore,
	ProvideConceptService,
	ProvideImageBatcher,
	ProvideImageEditor,
)

// ProvideTextService selects the text backend from TEXT_PROVIDER.
func ProvideTextService(cfg *config.Config) (TextService, error) {
	kind, ok := KindFromString(cfg.TextProvider)
	if !ok {
		return nil, platformerrors.NewError(context.Background(), platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "unsupported text provider: "+cfg.TextProvider,
			nil, uuid.NewString())
	}

	switch kind {
	case ProviderOpenAI:
		return NewOpenAITextService(cfg), nil
	case ProviderGemini:
		return NewGeminiTextService(cfg), nil
	default:
		return nil, platformerrors.NewError(context.Background(), platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "text generation is not supported by provider: "+cfg.TextProvider,
			nil, uuid.NewString())
	}
}

// ProvideImageService selects the image backend from IMAGE_PROVIDER.
func ProvideImageService(cfg *config.Config) (ImageService, error) {
	kind, ok := KindFromString(cfg.ImageProvider)
	if !ok {
		return nil, platformerrors.NewError(context.Background(), platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "unsupported image provider: "+cfg.ImageProvider,
			nil, uuid.NewString())
	}

	switch kind {
	case ProviderOpenAI:
		return NewOpenAIImageService(cfg), nil
	case ProviderGemini:
		return NewGeminiImageService(cfg), nil
	case ProviderReplicate:
		return NewReplicateImageService(cfg), nil
	default:
		return nil, platformerrors.NewError(context.Background(), platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "image generation is not supported by provider: "+cfg.ImageProvider,
			nil, uuid.NewString())
	}
}

// ProvideConceptStore builds the TTL store backing the concept cache.
func ProvideConceptStore(cfg *config.Config) cache.Store {
	return cache.NewMemoryStore(cfg.ConceptCacheTTL)
}

func ProvideConceptService(text TextService, store cache.Store, cfg *config.Config) moodboard.ConceptService {
	return NewConceptGenerator(text, store, []byte(cfg.ConceptCacheSecret))
}

func ProvideImageBatcher(images ImageService, cfg *config.Config) moodboard.ImageBatcher {
	return NewOrchestrator(images, cfg.ImageWorkerCount, cfg.ImageGenerationTimeout)
}

func ProvideImageEditor(images ImageService) editsession.ImageEditor {
	return NewImageEditAdapter(images)
}
