package editsession

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"visioneer-server/internal/utils/idgen"
	"visioneer-server/internal/utils/platformerrors"
)

const maxInstructionLength = 2000

// ImageEditor applies one edit instruction to an image and returns the
// resulting image URL plus the provider and model that produced it.
type ImageEditor interface {
	EditImage(ctx context.Context, imageURL, instruction string) (string, string, string, error)
}

// UsageRecorder mirrors the moodboard ledger hook for edit operations.
type UsageRecorder interface {
	RecordImageGeneration(ctx context.Context, userID uint, provider, model string, count int)
}

// Service manages conversational editing sessions.
type Service struct {
	store  Store
	editor ImageEditor
	usage  UsageRecorder
}

// NewService creates a new edit session service.
func NewService(store Store, editor ImageEditor, usage UsageRecorder) *Service {
	return &Service{store: store, editor: editor, usage: usage}
}

// Start opens a session over imageURL.
func (s *Service) Start(ctx context.Context, userID uint, imageURL string) (*Session, error) {
	if err := validateImageURL(imageURL); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid image URL", err, "9b3f7d1a-4e8c-4b2f-a6d9-1c5e8f3b7a2d")
	}

	publicID, err := idgen.GenerateSecureID("sess", 16)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "failed to generate session ID", err, "2d6a9c4f-8b1e-4f7a-9c3d-5e8b2f6a1d4c")
	}

	now := time.Now()
	session := &Session{
		PublicID:  publicID,
		UserID:    userID,
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Put(ctx, session); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to store session")
	}
	return session, nil
}

// SendMessage applies one edit instruction to the session's current
// image and appends the turn to its history.
func (s *Service) SendMessage(ctx context.Context, publicID string, userID uint, instruction string) (*Session, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" || len(instruction) > maxInstructionLength {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "instruction must be between 1 and 2000 characters", nil, "6e2c8a5f-3d9b-4a1e-b7f4-8c2d5e9a3f6b")
	}

	session, err := s.get(ctx, publicID, userID)
	if err != nil {
		return nil, err
	}

	newURL, provider, model, err := s.editor.EditImage(ctx, session.ImageURL, instruction)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "image edit failed")
	}

	session.ImageURL = newURL
	session.History = append(session.History, Turn{
		Instruction: instruction,
		ImageURL:    newURL,
		CreatedAt:   time.Now(),
	})
	session.UpdatedAt = time.Now()

	if err := s.store.Put(ctx, session); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to store session")
	}

	s.usage.RecordImageGeneration(ctx, userID, provider, model, 1)
	return session, nil
}

// Get returns a session after verifying ownership.
func (s *Service) Get(ctx context.Context, publicID string, userID uint) (*Session, error) {
	return s.get(ctx, publicID, userID)
}

// End closes a session. Ending an unknown session is not an error.
func (s *Service) End(ctx context.Context, publicID string, userID uint) error {
	session, ok := s.store.Get(ctx, publicID)
	if !ok || session.UserID != userID {
		return nil
	}
	s.store.Delete(ctx, publicID)
	return nil
}

func (s *Service) get(ctx context.Context, publicID string, userID uint) (*Session, error) {
	if !idgen.ValidateIDFormat(publicID, "sess") {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid session ID", nil, "1f8d4b7c-6a2e-4c9f-8e3b-7d1a5c4f9b2e")
	}

	session, ok := s.store.Get(ctx, publicID)
	if !ok || session.UserID != userID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "session not found", nil, "a7c3e9f1-5b8d-4e2a-9f6c-3d7b1e8a4c5f")
	}
	return session, nil
}

func validateImageURL(raw string) error {
	if strings.HasPrefix(raw, "data:image/") {
		return nil
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("image URL must be http(s) or a data URI")
	}
	return nil
}
