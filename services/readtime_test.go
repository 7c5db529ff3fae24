package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	content := `<p>Hello&nbsp;there, <strong>reader</strong> &amp; friend.</p>`

	text := StripHTML(content)

	assert.NotContains(t, text, "<")
	assert.NotContains(t, text, "&nbsp;")
	assert.Contains(t, text, "Hello")
	assert.Contains(t, text, "& friend")
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"plain words", "one two three", 3},
		{"markup excluded", "<p>one</p><p>two</p>", 2},
		{"empty", "", 0},
		{"entities only", "&nbsp;&nbsp;", 0},
		{"tags glue words apart", "one<br>two", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WordCount(tt.content))
		})
	}
}

func TestEstimateReadTime(t *testing.T) {
	word := "word "

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty content floors at one", "", 1},
		{"short content floors at one", "just a few words here", 1},
		{"exactly one minute", strings.Repeat(word, 200), 1},
		{"just over one minute rounds up", strings.Repeat(word, 201), 2},
		{"several minutes", strings.Repeat(word, 1000), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateReadTime(tt.content))
		})
	}
}

func TestEstimateReadTimeIgnoresMarkup(t *testing.T) {
	// The same 300 words wrapped in heavy markup must not change the estimate.
	words := strings.Repeat("word ", 300)
	wrapped := "<article><section><p>" + strings.ReplaceAll(words, "word", "<em>word</em>") + "</p></section></article>"

	assert.Equal(t, EstimateReadTime(words), EstimateReadTime(wrapped))
}
