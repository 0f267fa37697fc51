package prompt

import (
	"fmt"
	"strings"
)

// enumeration prefixes stripped from the start of reply lines, beyond
// plain "N." numbering.
var linePrefixes = []string{"Image", "Prompt"}

// ParseImagePrompts extracts image prompts from an LLM reply, one per
// line. Heading lines ('#') and bullet decorations ('*') are skipped,
// enumeration prefixes are stripped. The result always holds exactly
// count entries: excess lines are dropped, missing ones padded, so the
// fan-out batch size never depends on how chatty the model was.
func ParseImagePrompts(raw, style string, count int) []string {
	prompts := make([]string, 0, count)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "*") {
			continue
		}

		line = stripEnumeration(line)
		if line == "" {
			continue
		}

		prompts = append(prompts, line)
		if len(prompts) == count {
			break
		}
	}

	for len(prompts) < count {
		prompts = append(prompts, fmt.Sprintf("Additional moodboard image: %s visual, professional quality", styleLabel(style)))
	}

	return prompts
}

// stripEnumeration removes leading numbering ("3.", "12)"), label
// prefixes ("Image 3:", "Prompt:"), dashes and surrounding quotes.
func stripEnumeration(line string) string {
	for {
		trimmed := strings.TrimLeft(line, "-– ")

		if i := numberingLen(trimmed); i > 0 {
			line = strings.TrimSpace(trimmed[i:])
			continue
		}

		stripped := false
		for _, prefix := range linePrefixes {
			if strings.HasPrefix(trimmed, prefix) {
				rest := strings.TrimSpace(trimmed[len(prefix):])
				rest = strings.TrimLeft(rest, ":. ")
				line = rest
				stripped = true
				break
			}
		}
		if stripped {
			continue
		}

		line = strings.Trim(trimmed, `"'`)
		return strings.TrimSpace(line)
	}
}

// numberingLen returns the byte length of a leading "N." or "N)"
// enumeration, or 0 when the line does not start with one.
func numberingLen(line string) int {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return 0
	}
	if line[i] == '.' || line[i] == ')' || line[i] == ':' {
		return i + 1
	}
	return 0
}
