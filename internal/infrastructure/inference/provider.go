package inference

import "strings"

// styleLabel turns a style enum value like "dark_moody" into prose
// form for prompt text.
func styleLabel(style string) string {
	return strings.ReplaceAll(style, "_", " ")
}

// ProviderKind identifies an inference backend. Services are selected
// by kind at wire time; there is no string dispatch on request paths.
type ProviderKind string

const (
	ProviderOpenAI    ProviderKind = "openai"
	ProviderGemini    ProviderKind = "gemini"
	ProviderReplicate ProviderKind = "replicate"

	// ProviderDemo labels placeholder images substituted when every
	// generation slot failed.
	ProviderDemo ProviderKind = "demo"
)

// KindFromString maps a configured vendor name to its typed kind.
func KindFromString(s string) (ProviderKind, bool) {
	switch ProviderKind(s) {
	case ProviderOpenAI, ProviderGemini, ProviderReplicate:
		return ProviderKind(s), true
	default:
		return "", false
	}
}
