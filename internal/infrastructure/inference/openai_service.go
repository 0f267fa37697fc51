package inference

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"visioneer-server/internal/config"
	"visioneer-server/internal/utils/platformerrors"
)

const (
	defaultOpenAITextModel  = "gpt-4o-mini"
	defaultOpenAIImageModel = openai.CreateImageModelDallE3
)

func newOpenAIClient(cfg *config.Config) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}

// OpenAITextService implements TextService against the OpenAI chat API.
type OpenAITextService struct {
	cfg    *config.Config
	client *openai.Client
}

// NewOpenAITextService creates a new OpenAITextService instance.
func NewOpenAITextService(cfg *config.Config) *OpenAITextService {
	return &OpenAITextService{cfg: cfg, client: newOpenAIClient(cfg)}
}

// GenerateText implements TextService.GenerateText.
func (s *OpenAITextService) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.DefaultModel(),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("openai chat completion failed: %v", err),
			err, "c8d2f6a4-3e9b-4c1f-8a5d-7b3e9c1f5a8d")
	}
	if len(resp.Choices) == 0 {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"openai chat completion returned no choices",
			nil, "f1a5c9e3-7d2b-4f8e-b4c6-9a3d7e1b5f8c")
	}
	return resp.Choices[0].Message.Content, nil
}

// DefaultModel implements TextService.DefaultModel.
func (s *OpenAITextService) DefaultModel() string {
	if s.cfg.TextModel != "" {
		return s.cfg.TextModel
	}
	return defaultOpenAITextModel
}

// Kind implements TextService.Kind.
func (s *OpenAITextService) Kind() ProviderKind {
	return ProviderOpenAI
}

// OpenAIImageService implements ImageService against the OpenAI image API.
type OpenAIImageService struct {
	cfg    *config.Config
	client *openai.Client
}

// NewOpenAIImageService creates a new OpenAIImageService instance.
func NewOpenAIImageService(cfg *config.Config) *OpenAIImageService {
	return &OpenAIImageService{cfg: cfg, client: newOpenAIClient(cfg)}
}

// Generate implements ImageService.Generate.
func (s *OpenAIImageService) Generate(ctx context.Context, request *ImageGenerateRequest) (*ImageResult, error) {
	model := request.Model
	if model == "" {
		model = s.DefaultModel()
	}

	start := time.Now()
	resp, err := s.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         enhanceImagePrompt(request.Prompt, request.Style),
		Model:          model,
		N:              1,
		Quality:        openai.CreateImageQualityHD,
		Size:           openaiImageSize(request.AspectRatio),
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("openai image generation failed: %v", err),
			err, "2e6b9d3f-8a1c-4e5b-9f7d-4c2a8e6b1d3f")
	}
	if len(resp.Data) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"openai image generation returned no data",
			nil, "7d1f4a8c-2b6e-4d9a-8c3f-5e9b1d7a4f2c")
	}

	log.Debug().
		Str("model", model).
		Dur("latency", time.Since(start)).
		Msg("[OpenAIImageService] image generated")

	return &ImageResult{
		URL:           resp.Data[0].URL,
		RevisedPrompt: resp.Data[0].RevisedPrompt,
		Provider:      ProviderOpenAI,
		Model:         model,
	}, nil
}

// Edit implements ImageService.Edit. The OpenAI image edit endpoint
// needs raw PNG uploads rather than URLs, which conversational
// sessions do not carry, so edits are routed to other backends.
func (s *OpenAIImageService) Edit(ctx context.Context, request *ImageEditRequest) (*ImageResult, error) {
	return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeNotImplemented,
		"image editing is not supported by the openai backend",
		nil, "9c5e2b8d-4f7a-4c1e-b6d3-8a2f5c9e7b1d")
}

// DefaultModel implements ImageService.DefaultModel.
func (s *OpenAIImageService) DefaultModel() string {
	if s.cfg.ImageModel != "" {
		return s.cfg.ImageModel
	}
	return defaultOpenAIImageModel
}

// Kind implements ImageService.Kind.
func (s *OpenAIImageService) Kind() ProviderKind {
	return ProviderOpenAI
}

// openaiImageSize maps a moodboard aspect ratio to the closest size
// dall-e-3 supports.
func openaiImageSize(aspectRatio string) string {
	switch aspectRatio {
	case "16:9", "2.35:1":
		return openai.CreateImageSize1792x1024
	case "9:16":
		return openai.CreateImageSize1024x1792
	default:
		return openai.CreateImageSize1024x1024
	}
}

// enhanceImagePrompt appends the style and quality suffix applied to
// every generation prompt.
func enhanceImagePrompt(prompt, style string) string {
	return fmt.Sprintf("%s, %s style, high quality, professional", prompt, styleLabel(style))
}

var _ TextService = (*OpenAITextService)(nil)
var _ ImageService = (*OpenAIImageService)(nil)
