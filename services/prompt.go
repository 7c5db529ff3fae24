package services

import "strings"

// Minimum length for a style prompt to be treated as meaningful input.
const minPromptLength = 5

// PromptOutcome describes how a user's style prompt was handled.
type PromptOutcome string

const (
	// PromptDefaulted: empty or too-short input replaced with the generic
	// clean-modern default.
	PromptDefaulted PromptOutcome = "defaulted"
	// PromptSanitized: input hit the blocklist and was replaced with the
	// generic safe-professional default.
	PromptSanitized PromptOutcome = "sanitized"
	// PromptEnhanced: input accepted and wrapped with the fixed
	// design-quality instructions.
	PromptEnhanced PromptOutcome = "enhanced"
)

const defaultStylePrompt = "A clean, modern design with plenty of whitespace, a restrained color palette and elegant typography."

const safeStylePrompt = "A professional, safe and welcoming design with a neutral color palette and clear typography."

// Fixed design-quality instructions appended to every accepted prompt.
const designQualityInstructions = "Ensure strong color contrast for readability, a fully responsive layout that works on mobile and desktop, accessible semantic markup, and polished typography with a clear visual hierarchy."

// Terms that force the safe default prompt. Matching is case-insensitive
// substring matching, the same lenient policy the blocklist has always had.
var blockedPromptTerms = []string{
	"gore",
	"gory",
	"blood",
	"violent",
	"violence",
	"kill",
	"murder",
	"weapon",
	"nsfw",
	"nude",
	"porn",
	"sexual",
	"fuck",
	"shit",
	"bitch",
	"racist",
	"nazi",
}

// containsBlockedTerm reports whether the prompt contains a blocklisted term.
func containsBlockedTerm(prompt string) bool {
	lowered := strings.ToLower(prompt)
	for _, term := range blockedPromptTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// EnhancePrompt classifies a free-text style prompt and always produces a
// usable generation prompt; a request is never rejected at this stage.
// Empty or very short input falls back to the clean-modern default,
// blocklisted input falls back to the safe-professional default, and
// anything else is wrapped with the fixed design-quality instructions.
func EnhancePrompt(userPrompt string) (string, PromptOutcome) {
	trimmed := strings.TrimSpace(userPrompt)

	if len(trimmed) < minPromptLength {
		return defaultStylePrompt + " " + designQualityInstructions, PromptDefaulted
	}

	if containsBlockedTerm(trimmed) {
		return safeStylePrompt + " " + designQualityInstructions, PromptSanitized
	}

	return trimmed + ". " + designQualityInstructions, PromptEnhanced
}
