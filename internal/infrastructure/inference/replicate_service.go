package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"resty.dev/v3"

	"visioneer-server/internal/config"
	"visioneer-server/internal/utils/httpclients"
	"visioneer-server/internal/utils/platformerrors"
)

const defaultReplicateImageModel = "stability-ai/stable-diffusion-3"

type replicatePredictionRequest struct {
	Input replicateInput `json:"input"`
}

type replicateInput struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
}

type replicatePredictionResponse struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output,omitempty"`
	Error  *string         `json:"error,omitempty"`
}

// ReplicateImageService implements ImageService against the Replicate
// predictions API using synchronous (Prefer: wait) calls.
type ReplicateImageService struct {
	cfg    *config.Config
	client *resty.Client
}

// NewReplicateImageService creates a new ReplicateImageService instance.
func NewReplicateImageService(cfg *config.Config) *ReplicateImageService {
	return &ReplicateImageService{
		cfg:    cfg,
		client: httpclients.NewClient("replicate-image", cfg.ImageGenerationTimeout),
	}
}

// Generate implements ImageService.Generate.
func (s *ReplicateImageService) Generate(ctx context.Context, request *ImageGenerateRequest) (*ImageResult, error) {
	model := request.Model
	if model == "" {
		model = s.DefaultModel()
	}

	endpoint := fmt.Sprintf("%s/v1/models/%s/predictions",
		strings.TrimSuffix(s.cfg.ReplicateBaseURL, "/"), model)

	body := &replicatePredictionRequest{
		Input: replicateInput{
			Prompt:      enhanceImagePrompt(request.Prompt, request.Style),
			AspectRatio: request.AspectRatio,
		},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", s.cfg.ReplicateAPIToken)).
		SetHeader("Prefer", "wait").
		SetBody(body).
		Post(endpoint)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("replicate call failed: %v", err),
			err, "6d2b8f4a-1e7c-4a9d-8f3b-2c5e9a7d4b1f")
	}

	respBytes := resp.Bytes()
	if resp.StatusCode() >= 400 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("replicate returned status %d: %s", resp.StatusCode(), string(respBytes)),
			nil, "9f5c1e7b-3a8d-4c2f-b6e9-8d1a4f7c2b5e")
	}

	var prediction replicatePredictionResponse
	if err := json.Unmarshal(respBytes, &prediction); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal,
			"failed to parse replicate response",
			err, "2a7e4c9f-6b1d-4e8a-9c5f-3d8b1e6a9f4c")
	}

	if prediction.Error != nil && *prediction.Error != "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("replicate prediction failed: %s", *prediction.Error),
			nil, "e4b9d2a7-8f3c-4b6e-a1d5-7c2f9e4b8a6d")
	}

	url, err := firstReplicateOutput(prediction.Output)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"replicate prediction produced no output",
			err, "1b6e9c3a-5d8f-4a2b-8e7c-4f1d6b9a2e5c")
	}

	return &ImageResult{
		URL:      url,
		Provider: ProviderReplicate,
		Model:    model,
	}, nil
}

// Edit implements ImageService.Edit.
func (s *ReplicateImageService) Edit(ctx context.Context, request *ImageEditRequest) (*ImageResult, error) {
	return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeNotImplemented,
		"image editing is not supported by the replicate backend",
		nil, "8c3f7a1e-9b4d-4f2a-b8e6-1d5c9f3a7e2b")
}

// DefaultModel implements ImageService.DefaultModel.
func (s *ReplicateImageService) DefaultModel() string {
	if s.cfg.ImageModel != "" {
		return s.cfg.ImageModel
	}
	return defaultReplicateImageModel
}

// Kind implements ImageService.Kind.
func (s *ReplicateImageService) Kind() ProviderKind {
	return ProviderReplicate
}

// firstReplicateOutput handles both output shapes the API uses: a
// single URL string or a list of URL strings.
func firstReplicateOutput(output json.RawMessage) (string, error) {
	if len(output) == 0 {
		return "", fmt.Errorf("empty output")
	}

	var single string
	if err := json.Unmarshal(output, &single); err == nil && single != "" {
		return single, nil
	}

	var many []string
	if err := json.Unmarshal(output, &many); err == nil && len(many) > 0 && many[0] != "" {
		return many[0], nil
	}

	return "", fmt.Errorf("unrecognized output shape: %s", string(output))
}

var _ ImageService = (*ReplicateImageService)(nil)
