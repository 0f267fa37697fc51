package prompt

import (
	"strings"
	"testing"
)

func TestParseImagePrompts(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		count int
		want  []string
	}{
		{
			name:  "plain lines",
			raw:   "a foggy harbor at dawn\na lighthouse beam cutting the mist\nwet cobblestones reflecting lamplight\na lone fishing boat at anchor",
			count: 4,
			want: []string{
				"a foggy harbor at dawn",
				"a lighthouse beam cutting the mist",
				"wet cobblestones reflecting lamplight",
				"a lone fishing boat at anchor",
			},
		},
		{
			name:  "numbered lines",
			raw:   "1. a foggy harbor at dawn\n2. a lighthouse beam\n3. wet cobblestones\n4. a lone fishing boat",
			count: 4,
			want: []string{
				"a foggy harbor at dawn",
				"a lighthouse beam",
				"wet cobblestones",
				"a lone fishing boat",
			},
		},
		{
			name:  "double digit numbering",
			raw:   "10. tenth scene\n11. eleventh scene",
			count: 2,
			want:  []string{"tenth scene", "eleventh scene"},
		},
		{
			name:  "label prefixes",
			raw:   "Image 1: a foggy harbor\nPrompt 2: a lighthouse beam\nPrompt: wet cobblestones",
			count: 3,
			want:  []string{"a foggy harbor", "a lighthouse beam", "wet cobblestones"},
		},
		{
			name:  "skips headings and bullets",
			raw:   "# Image prompts\n* note from the model\na foggy harbor\na lighthouse beam",
			count: 2,
			want:  []string{"a foggy harbor", "a lighthouse beam"},
		},
		{
			name:  "skips blank lines",
			raw:   "a foggy harbor\n\n\na lighthouse beam\n",
			count: 2,
			want:  []string{"a foggy harbor", "a lighthouse beam"},
		},
		{
			name:  "strips quotes and dashes",
			raw:   "- \"a foggy harbor\"\n- 'a lighthouse beam'",
			count: 2,
			want:  []string{"a foggy harbor", "a lighthouse beam"},
		},
		{
			name:  "truncates excess lines",
			raw:   "one\ntwo\nthree\nfour\nfive\nsix",
			count: 4,
			want:  []string{"one", "two", "three", "four"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseImagePrompts(tt.raw, "cinematic", tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseImagePrompts() returned %d prompts, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("prompt[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseImagePrompts_PadsShortReplies(t *testing.T) {
	got := ParseImagePrompts("only one prompt", "dark_moody", 4)
	if len(got) != 4 {
		t.Fatalf("ParseImagePrompts() returned %d prompts, want 4", len(got))
	}
	if got[0] != "only one prompt" {
		t.Errorf("prompt[0] = %q, want %q", got[0], "only one prompt")
	}
	for i := 1; i < 4; i++ {
		if !strings.HasPrefix(got[i], "Additional moodboard image:") {
			t.Errorf("prompt[%d] = %q, want padding prompt", i, got[i])
		}
		if !strings.Contains(got[i], "dark moody") {
			t.Errorf("prompt[%d] = %q, want style label in padding", i, got[i])
		}
	}
}

func TestParseImagePrompts_EmptyReply(t *testing.T) {
	got := ParseImagePrompts("", "noir", 4)
	if len(got) != 4 {
		t.Fatalf("ParseImagePrompts() returned %d prompts, want 4", len(got))
	}
	for i, p := range got {
		if !strings.HasPrefix(p, "Additional moodboard image:") {
			t.Errorf("prompt[%d] = %q, want padding prompt", i, p)
		}
	}
}

func TestConceptPrompt(t *testing.T) {
	got := ConceptPrompt("a lighthouse keeper's last winter", "dark_moody")
	if !strings.Contains(got, "a lighthouse keeper's last winter") {
		t.Error("ConceptPrompt() missing story text")
	}
	if !strings.Contains(got, "dark moody") {
		t.Error("ConceptPrompt() missing humanized style label")
	}
	for _, section := range []string{"VISUAL ELEMENTS", "COLOR PALETTE", "MOOD & ATMOSPHERE", "LIGHTING", "COMPOSITION", "TEXTURE & MATERIALS", "STYLE REFERENCES"} {
		if !strings.Contains(got, section) {
			t.Errorf("ConceptPrompt() missing section %q", section)
		}
	}
}

func TestImagePromptsPrompt(t *testing.T) {
	got := ImagePromptsPrompt("the concept", "noir", 6)
	if !strings.Contains(got, "exactly 6 distinct") {
		t.Errorf("ImagePromptsPrompt() missing count: %s", got)
	}
	if !strings.Contains(got, "the concept") {
		t.Error("ImagePromptsPrompt() missing concept text")
	}
}

func TestRefinePrompt(t *testing.T) {
	got := RefinePrompt("old concept", "more neon, less fog")
	if !strings.Contains(got, "ORIGINAL CONCEPT:\nold concept") {
		t.Error("RefinePrompt() missing original concept")
	}
	if !strings.Contains(got, "USER FEEDBACK:\nmore neon, less fog") {
		t.Error("RefinePrompt() missing feedback")
	}
}
