package inference

import (
	"context"

	"visioneer-server/internal/domain/editsession"
)

// ImageEditAdapter exposes an ImageService's edit capability in the shape
// the edit session service expects.
type ImageEditAdapter struct {
	images ImageService
}

// NewImageEditAdapter wraps an image backend for edit sessions.
func NewImageEditAdapter(images ImageService) *ImageEditAdapter {
	return &ImageEditAdapter{images: images}
}

// EditImage applies the instruction to imageURL and returns the new image
// URL plus the provider and model that produced it.
func (a *ImageEditAdapter) EditImage(ctx context.Context, imageURL, instruction string) (string, string, string, error) {
	result, err := a.images.Edit(ctx, &ImageEditRequest{
		ImageURL:    imageURL,
		Instruction: instruction,
	})
	if err != nil {
		return "", "", "", err
	}
	return result.URL, string(result.Provider), result.Model, nil
}

var _ editsession.ImageEditor = (*ImageEditAdapter)(nil)
