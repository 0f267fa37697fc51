package inference

import (
	"testing"

	"visioneer-server/internal/config"
	"visioneer-server/internal/utils/platformerrors"
)

func TestProvideTextService(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantKind ProviderKind
		wantErr  bool
	}{
		{name: "openai", provider: "openai", wantKind: ProviderOpenAI},
		{name: "gemini", provider: "gemini", wantKind: ProviderGemini},
		{name: "replicate has no text backend", provider: "replicate", wantErr: true},
		{name: "unknown vendor", provider: "stability", wantErr: true},
		{name: "empty", provider: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := ProvideTextService(&config.Config{TextProvider: tt.provider})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ProvideTextService(%q) error = nil, want error", tt.provider)
				}
				if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeInternal) {
					t.Errorf("error type = %v, want internal", platformerrors.GetErrorType(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("ProvideTextService(%q) error = %v", tt.provider, err)
			}
			if svc.Kind() != tt.wantKind {
				t.Errorf("Kind() = %q, want %q", svc.Kind(), tt.wantKind)
			}
		})
	}
}

func TestProvideImageService(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantKind ProviderKind
		wantErr  bool
	}{
		{name: "openai", provider: "openai", wantKind: ProviderOpenAI},
		{name: "gemini", provider: "gemini", wantKind: ProviderGemini},
		{name: "replicate", provider: "replicate", wantKind: ProviderReplicate},
		{name: "unknown vendor", provider: "midjourney", wantErr: true},
		{name: "empty", provider: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := ProvideImageService(&config.Config{ImageProvider: tt.provider})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ProvideImageService(%q) error = nil, want error", tt.provider)
				}
				return
			}
			if err != nil {
				t.Fatalf("ProvideImageService(%q) error = %v", tt.provider, err)
			}
			if svc.Kind() != tt.wantKind {
				t.Errorf("Kind() = %q, want %q", svc.Kind(), tt.wantKind)
			}
		})
	}
}
