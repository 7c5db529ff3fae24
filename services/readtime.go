package services

import (
	"math"
	"regexp"
	"strings"
)

// Average adult reading speed used for the estimate.
const wordsPerMinute = 200

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	htmlEntityPattern = regexp.MustCompile(`&#?[a-zA-Z0-9]+;`)
)

// entities that commonly appear in editor output and carry a textual value
var namedEntities = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&mdash;", "-",
	"&ndash;", "-",
	"&hellip;", "...",
)

// StripHTML removes markup and common HTML entities from rich-text content,
// leaving only its readable text.
func StripHTML(content string) string {
	text := htmlTagPattern.ReplaceAllString(content, " ")
	text = namedEntities.Replace(text)
	text = htmlEntityPattern.ReplaceAllString(text, " ")
	return text
}

// WordCount returns the number of whitespace-separated tokens in the
// readable text of content.
func WordCount(content string) int {
	return len(strings.Fields(StripHTML(content)))
}

// EstimateReadTime computes the estimated minutes-to-read for rich-text
// content: word count divided by 200 words per minute, rounded up, never
// below one minute. Pure and deterministic; callers re-invoke it on every
// content mutation rather than caching the result independently.
func EstimateReadTime(content string) int {
	words := WordCount(content)
	minutes := int(math.Ceil(float64(words) / float64(wordsPerMinute)))
	if minutes < 1 {
		return 1
	}
	return minutes
}
