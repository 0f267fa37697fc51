// Package prompt builds the LLM prompts used during moodboard
// generation and parses the prompt fan-out reply.
package prompt

import (
	"fmt"
	"strings"
)

const conceptTemplate = `You are a professional visual consultant helping to create a moodboard.

Analyze the following story and develop a cohesive visual concept in the %s style.

STORY:
%s

Structure your answer in exactly these numbered sections:
1. VISUAL ELEMENTS - key objects, settings and motifs
2. COLOR PALETTE - dominant colors and their relationships
3. MOOD & ATMOSPHERE - the emotional tone of the imagery
4. LIGHTING - quality, direction and character of light
5. COMPOSITION - framing and spatial arrangement
6. TEXTURE & MATERIALS - surfaces and tactile qualities
7. STYLE REFERENCES - artistic or cinematic touchstones

Keep each section concrete and specific to the story.`

const imagePromptsTemplate = `You are a professional visual consultant preparing image generation prompts for a moodboard.

Based on the visual concept below, write exactly %d distinct image generation prompts in the %s style.

VISUAL CONCEPT:
%s

Rules:
- One prompt per line, no commentary between them.
- Each prompt must describe a single standalone image.
- Cover different aspects of the concept rather than repeating one scene.
- Each prompt should be detailed enough to generate a high quality image.`

const refineTemplate = `You are a professional visual consultant revising a moodboard concept.

ORIGINAL CONCEPT:
%s

USER FEEDBACK:
%s

Rework the concept to incorporate the feedback while keeping what the
feedback does not touch. Answer with the full revised concept in the
same numbered sections as the original.`

// ConceptPrompt builds the visual concept prompt for a story.
func ConceptPrompt(story, style string) string {
	return fmt.Sprintf(conceptTemplate, styleLabel(style), story)
}

// ImagePromptsPrompt builds the prompt fan-out request for a concept.
func ImagePromptsPrompt(concept, style string, count int) string {
	return fmt.Sprintf(imagePromptsTemplate, count, styleLabel(style), concept)
}

// RefinePrompt builds the concept revision prompt from user feedback.
func RefinePrompt(concept, feedback string) string {
	return fmt.Sprintf(refineTemplate, concept, feedback)
}

// styleLabel turns an enum value like "dark_moody" into "dark moody"
// for use inside prose.
func styleLabel(style string) string {
	return strings.ReplaceAll(style, "_", " ")
}
