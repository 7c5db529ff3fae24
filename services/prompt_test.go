package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnhancePromptDefaultsEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "ok", "\t\n"} {
		enhanced, outcome := EnhancePrompt(input)

		assert.Equal(t, PromptDefaulted, outcome, "input %q", input)
		assert.Contains(t, enhanced, defaultStylePrompt)
		assert.Contains(t, enhanced, designQualityInstructions)
	}
}

func TestEnhancePromptSanitizesBlockedTerms(t *testing.T) {
	enhanced, outcome := EnhancePrompt("dark theme with GORE everywhere")

	assert.Equal(t, PromptSanitized, outcome)
	assert.Contains(t, enhanced, safeStylePrompt)
	assert.NotContains(t, strings.ToLower(enhanced), "gore")
}

func TestEnhancePromptWrapsAcceptedInput(t *testing.T) {
	enhanced, outcome := EnhancePrompt("  warm autumn palette with serif type  ")

	assert.Equal(t, PromptEnhanced, outcome)
	assert.True(t, strings.HasPrefix(enhanced, "warm autumn palette with serif type"))
	assert.Contains(t, enhanced, designQualityInstructions)
}

func TestEnhancePromptNeverRejects(t *testing.T) {
	inputs := []string{"", "x", "murder mystery blog", "minimalist"}
	for _, input := range inputs {
		enhanced, _ := EnhancePrompt(input)
		assert.NotEmpty(t, enhanced, "input %q", input)
	}
}
