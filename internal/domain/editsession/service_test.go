package editsession_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"visioneer-server/internal/domain/editsession"
	"visioneer-server/internal/utils/platformerrors"
)

// mockStore is an in-memory Store for testing.
type mockStore struct {
	sessions map[string]*editsession.Session
	putErr   error
}

func newMockStore() *mockStore {
	return &mockStore{sessions: make(map[string]*editsession.Session)}
}

func (m *mockStore) Put(ctx context.Context, session *editsession.Session) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.sessions[session.PublicID] = session
	return nil
}

func (m *mockStore) Get(ctx context.Context, publicID string) (*editsession.Session, bool) {
	session, ok := m.sessions[publicID]
	return session, ok
}

func (m *mockStore) Delete(ctx context.Context, publicID string) {
	delete(m.sessions, publicID)
}

// mockImageEditor returns a canned edited URL.
type mockImageEditor struct {
	editedURL string
	err       error
	calls     int
	lastURL   string
}

func (m *mockImageEditor) EditImage(ctx context.Context, imageURL, instruction string) (string, string, string, error) {
	m.calls++
	m.lastURL = imageURL
	if m.err != nil {
		return "", "", "", m.err
	}
	return m.editedURL, "gemini", "gemini-2.5-flash-image", nil
}

type mockUsageRecorder struct {
	imageCalls int
	imageCount int
}

func (m *mockUsageRecorder) RecordImageGeneration(ctx context.Context, userID uint, provider, model string, count int) {
	m.imageCalls++
	m.imageCount = count
}

func newTestService() (*editsession.Service, *mockStore, *mockImageEditor, *mockUsageRecorder) {
	store := newMockStore()
	editor := &mockImageEditor{editedURL: "https://images.test/edited-1.png"}
	usage := &mockUsageRecorder{}
	return editsession.NewService(store, editor, usage), store, editor, usage
}

func TestStart(t *testing.T) {
	service, store, _, _ := newTestService()

	session, err := service.Start(context.Background(), 7, "https://images.test/original.png")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !strings.HasPrefix(session.PublicID, "sess_") {
		t.Errorf("PublicID = %q, want sess_ prefix", session.PublicID)
	}
	if session.ImageURL != "https://images.test/original.png" {
		t.Errorf("ImageURL = %q", session.ImageURL)
	}
	if len(session.History) != 0 {
		t.Errorf("new session has %d history turns, want 0", len(session.History))
	}
	if _, ok := store.sessions[session.PublicID]; !ok {
		t.Error("session was not stored")
	}
}

func TestStart_InvalidImageURL(t *testing.T) {
	service, _, _, _ := newTestService()

	tests := []string{"", "not a url", "ftp://images.test/a.png", "javascript:alert(1)"}
	for _, raw := range tests {
		if _, err := service.Start(context.Background(), 7, raw); err == nil {
			t.Errorf("Start(%q) error = nil, want validation error", raw)
		}
	}
}

func TestStart_AcceptsDataURI(t *testing.T) {
	service, _, _, _ := newTestService()

	if _, err := service.Start(context.Background(), 7, "data:image/png;base64,iVBORw0KGgo="); err != nil {
		t.Fatalf("Start() with data URI error = %v", err)
	}
}

func TestSendMessage(t *testing.T) {
	service, store, editor, usage := newTestService()

	session, err := service.Start(context.Background(), 7, "https://images.test/original.png")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	updated, err := service.SendMessage(context.Background(), session.PublicID, 7, "make the sky stormier")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if updated.ImageURL != editor.editedURL {
		t.Errorf("ImageURL = %q, want edited URL %q", updated.ImageURL, editor.editedURL)
	}
	if editor.lastURL != "https://images.test/original.png" {
		t.Errorf("editor received %q, want the session's current image", editor.lastURL)
	}
	if len(updated.History) != 1 {
		t.Fatalf("len(History) = %d, want 1", len(updated.History))
	}
	if updated.History[0].Instruction != "make the sky stormier" {
		t.Errorf("History[0].Instruction = %q", updated.History[0].Instruction)
	}
	if usage.imageCalls != 1 || usage.imageCount != 1 {
		t.Errorf("usage recorded %d calls / %d images, want 1 / 1", usage.imageCalls, usage.imageCount)
	}
	if store.sessions[session.PublicID].ImageURL != editor.editedURL {
		t.Error("updated session was not stored")
	}

	// A second edit chains off the first result.
	editor.editedURL = "https://images.test/edited-2.png"
	updated, err = service.SendMessage(context.Background(), session.PublicID, 7, "now add rain")
	if err != nil {
		t.Fatalf("SendMessage() second edit error = %v", err)
	}
	if editor.lastURL != "https://images.test/edited-1.png" {
		t.Errorf("second edit received %q, want the first edit's output", editor.lastURL)
	}
	if len(updated.History) != 2 {
		t.Errorf("len(History) = %d, want 2", len(updated.History))
	}
}

func TestSendMessage_InvalidInstruction(t *testing.T) {
	service, _, editor, _ := newTestService()

	session, err := service.Start(context.Background(), 7, "https://images.test/original.png")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	for _, instruction := range []string{"", "   ", strings.Repeat("x", 2001)} {
		if _, err := service.SendMessage(context.Background(), session.PublicID, 7, instruction); err == nil {
			t.Errorf("SendMessage() with %d-char instruction error = nil, want validation error", len(instruction))
		}
	}
	if editor.calls != 0 {
		t.Error("editor called despite invalid instructions")
	}
}

func TestSendMessage_EditorFailureKeepsSession(t *testing.T) {
	service, store, editor, usage := newTestService()

	session, err := service.Start(context.Background(), 7, "https://images.test/original.png")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	editor.err = errors.New("provider down")

	if _, err := service.SendMessage(context.Background(), session.PublicID, 7, "brighter"); err == nil {
		t.Fatal("SendMessage() error = nil, want editor failure")
	}
	stored := store.sessions[session.PublicID]
	if stored.ImageURL != "https://images.test/original.png" || len(stored.History) != 0 {
		t.Error("failed edit mutated the stored session")
	}
	if usage.imageCalls != 0 {
		t.Error("usage recorded for a failed edit")
	}
}

func TestGet_OwnershipAndFormat(t *testing.T) {
	service, _, _, _ := newTestService()

	session, err := service.Start(context.Background(), 7, "https://images.test/original.png")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if _, err := service.Get(context.Background(), session.PublicID, 7); err != nil {
		t.Errorf("Get() by owner error = %v", err)
	}

	_, err = service.Get(context.Background(), session.PublicID, 99)
	if err == nil {
		t.Fatal("Get() by another user error = nil, want not found")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("error type = %v, want not_found", platformerrors.GetErrorType(err))
	}

	_, err = service.Get(context.Background(), "mb_abc123", 7)
	if err == nil || !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("Get() with wrong prefix error = %v, want validation error", err)
	}
}

func TestEnd(t *testing.T) {
	service, store, _, _ := newTestService()

	session, err := service.Start(context.Background(), 7, "https://images.test/original.png")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Another user's End leaves the session alone.
	if err := service.End(context.Background(), session.PublicID, 99); err != nil {
		t.Fatalf("End() by another user error = %v", err)
	}
	if _, ok := store.sessions[session.PublicID]; !ok {
		t.Fatal("End() by another user removed the session")
	}

	if err := service.End(context.Background(), session.PublicID, 7); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if _, ok := store.sessions[session.PublicID]; ok {
		t.Error("session still stored after End()")
	}

	// Ending an unknown session is not an error.
	if err := service.End(context.Background(), "sess_unknown123", 7); err != nil {
		t.Errorf("End() on unknown session error = %v", err)
	}
}
