package inference

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"resty.dev/v3"

	"visioneer-server/internal/config"
	"visioneer-server/internal/utils/httpclients"
	"visioneer-server/internal/utils/platformerrors"
)

const (
	defaultGeminiTextModel  = "gemini-1.5-flash"
	defaultGeminiImageModel = "gemini-2.0-flash-exp-image-generation"
)

// geminiContent mirrors the generativelanguage REST content shape.
type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenerateRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GeminiTextService implements TextService against the Gemini REST API.
type GeminiTextService struct {
	cfg    *config.Config
	client *resty.Client
}

// NewGeminiTextService creates a new GeminiTextService instance.
func NewGeminiTextService(cfg *config.Config) *GeminiTextService {
	return &GeminiTextService{
		cfg:    cfg,
		client: httpclients.NewClient("gemini-text", cfg.HTTPTimeout),
	}
}

// GenerateText implements TextService.GenerateText.
func (s *GeminiTextService) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := &geminiGenerateRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	resp, err := callGemini(ctx, s.client, s.cfg, s.DefaultModel(), req)
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}
	return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeExternal,
		"gemini reply contained no text part",
		nil, "4b8e1c6a-9f3d-4a7e-8b2c-6d9f3a1e7c4b")
}

// DefaultModel implements TextService.DefaultModel.
func (s *GeminiTextService) DefaultModel() string {
	if s.cfg.TextModel != "" {
		return s.cfg.TextModel
	}
	return defaultGeminiTextModel
}

// Kind implements TextService.Kind.
func (s *GeminiTextService) Kind() ProviderKind {
	return ProviderGemini
}

// GeminiImageService implements ImageService against the Gemini REST
// API. Generated images come back inline, so results are data URIs
// rather than hosted URLs.
type GeminiImageService struct {
	cfg    *config.Config
	client *resty.Client
}

// NewGeminiImageService creates a new GeminiImageService instance.
func NewGeminiImageService(cfg *config.Config) *GeminiImageService {
	timeout := cfg.ImageGenerationTimeout
	return &GeminiImageService{
		cfg:    cfg,
		client: httpclients.NewClient("gemini-image", timeout),
	}
}

// Generate implements ImageService.Generate.
func (s *GeminiImageService) Generate(ctx context.Context, request *ImageGenerateRequest) (*ImageResult, error) {
	model := request.Model
	if model == "" {
		model = s.DefaultModel()
	}

	prompt := fmt.Sprintf("Create a %s image: %s. Make it high quality and detailed.",
		styleLabel(request.Style), request.Prompt)

	req := &geminiGenerateRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	}

	resp, err := callGemini(ctx, s.client, s.cfg, model, req)
	if err != nil {
		return nil, err
	}

	uri, err := firstInlineImage(ctx, resp)
	if err != nil {
		return nil, err
	}

	return &ImageResult{
		URL:      uri,
		Provider: ProviderGemini,
		Model:    model,
	}, nil
}

// Edit implements ImageService.Edit. The current image is sent inline
// together with the instruction; only data URI images can be edited.
func (s *GeminiImageService) Edit(ctx context.Context, request *ImageEditRequest) (*ImageResult, error) {
	model := request.Model
	if model == "" {
		model = s.DefaultModel()
	}

	inline, err := inlineDataFromDataURI(request.ImageURL)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation,
			"image edit requires a data URI image",
			err, "8a4c7e2b-1d6f-4b9e-a3c8-5f2d9b7e4a1c")
	}

	req := &geminiGenerateRequest{
		Contents: []geminiContent{{Parts: []geminiPart{
			{InlineData: inline},
			{Text: request.Instruction},
		}}},
		GenerationConfig: &geminiGenerationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	}

	resp, err := callGemini(ctx, s.client, s.cfg, model, req)
	if err != nil {
		return nil, err
	}

	uri, err := firstInlineImage(ctx, resp)
	if err != nil {
		return nil, err
	}

	return &ImageResult{
		URL:      uri,
		Provider: ProviderGemini,
		Model:    model,
	}, nil
}

// DefaultModel implements ImageService.DefaultModel.
func (s *GeminiImageService) DefaultModel() string {
	if s.cfg.ImageModel != "" {
		return s.cfg.ImageModel
	}
	return defaultGeminiImageModel
}

// Kind implements ImageService.Kind.
func (s *GeminiImageService) Kind() ProviderKind {
	return ProviderGemini
}

func callGemini(ctx context.Context, client *resty.Client, cfg *config.Config, model string, body *geminiGenerateRequest) (*geminiGenerateResponse, error) {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimSuffix(cfg.GeminiBaseURL, "/"), model)

	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", cfg.GeminiAPIKey).
		SetBody(body).
		Post(endpoint)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("gemini call failed: %v", err),
			err, "d3f7b1e9-6c2a-4d8f-9e4b-2a7c5f1d8b3e")
	}

	respBytes := resp.Bytes()
	if resp.StatusCode() >= 400 {
		var errResp geminiGenerateResponse
		if parseErr := json.Unmarshal(respBytes, &errResp); parseErr == nil && errResp.Error != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
				platformerrors.ErrorTypeExternal,
				fmt.Sprintf("gemini error: %s", errResp.Error.Message),
				nil, "e9c4a7f2-8b1d-4f6c-a2e5-7d3b9f1c6a8e")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("gemini returned status %d: %s", resp.StatusCode(), string(respBytes)),
			nil, "1c6f9b3e-4a8d-4e2b-9c7f-5b1e8d4a2f6c")
	}

	var result geminiGenerateResponse
	if err := json.Unmarshal(respBytes, &result); err != nil {
		log.Error().Err(err).Msg("[Gemini] failed to parse response")
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal,
			"failed to parse gemini response",
			err, "5e2d8a4c-7f1b-4c9e-8a3d-6b9f2e5c1a7d")
	}

	if len(result.Candidates) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"gemini returned no candidates",
			nil, "b7e3f9c1-2a5d-4e8b-9f4c-1d6a8c3e7b5f")
	}

	return &result, nil
}

// firstInlineImage extracts the first inline image part as a data URI.
func firstInlineImage(ctx context.Context, resp *geminiGenerateResponse) (string, error) {
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			mime := part.InlineData.MimeType
			if mime == "" {
				mime = "image/png"
			}
			return fmt.Sprintf("data:%s;base64,%s", mime, part.InlineData.Data), nil
		}
	}
	return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeExternal,
		"gemini reply contained no image part",
		nil, "3a9d5f1b-8e4c-4b7a-9d2e-6f8c1b5a3e9d")
}

// inlineDataFromDataURI splits "data:<mime>;base64,<data>" into the
// inline payload shape, validating the base64 body.
func inlineDataFromDataURI(uri string) (*geminiInlineData, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, fmt.Errorf("not a data URI")
	}
	rest := strings.TrimPrefix(uri, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return nil, fmt.Errorf("data URI is not base64 encoded")
	}
	mime := rest[:sep]
	data := rest[sep+len(";base64,"):]
	if _, err := base64.StdEncoding.DecodeString(data); err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return &geminiInlineData{MimeType: mime, Data: data}, nil
}

var _ TextService = (*GeminiTextService)(nil)
var _ ImageService = (*GeminiImageService)(nil)
