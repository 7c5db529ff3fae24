package services

import (
	"fmt"
	"strings"
)

// Placeholder tokens recognized in a stored design document. The set is
// closed: rendering and validation both work off this list, and a stored
// template missing any of them is rejected before substitution.
const (
	TokenTitle        = "{TITLE}"
	TokenSubtitle     = "{SUBTITLE}"
	TokenContent      = "{CONTENT}"
	TokenAuthorName   = "{AUTHOR_NAME}"
	TokenAuthorAvatar = "{AUTHOR_AVATAR}"
	TokenPublishDate  = "{PUBLISH_DATE}"
	TokenReadTime     = "{READ_TIME}"
	TokenCategory     = "{CATEGORY}"
)

// PlaceholderTokens lists every recognized token, in document order.
func PlaceholderTokens() []string {
	return []string{
		TokenTitle,
		TokenSubtitle,
		TokenContent,
		TokenAuthorName,
		TokenAuthorAvatar,
		TokenPublishDate,
		TokenReadTime,
		TokenCategory,
	}
}

// TemplateFields carries the real values substituted for the placeholder
// tokens when a document is served.
type TemplateFields struct {
	Title        string
	Subtitle     string
	Content      string
	AuthorName   string
	AuthorAvatar string
	PublishDate  string
	ReadTime     string
	Category     string
}

// MissingTokens returns the recognized tokens absent from the document.
func MissingTokens(document string) []string {
	var missing []string
	for _, token := range PlaceholderTokens() {
		if !strings.Contains(document, token) {
			missing = append(missing, token)
		}
	}
	return missing
}

// ValidateTokens fails loudly when a stored template lacks any recognized
// token, so a broken document is caught before substitution instead of
// serving a page with holes in it.
func ValidateTokens(document string) error {
	if missing := MissingTokens(document); len(missing) > 0 {
		return fmt.Errorf("template is missing placeholder tokens: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Substitute textually replaces each recognized token with its field value.
// Tokens appearing zero or multiple times are both tolerated.
func Substitute(document string, fields TemplateFields) string {
	replacer := strings.NewReplacer(
		TokenTitle, fields.Title,
		TokenSubtitle, fields.Subtitle,
		TokenContent, fields.Content,
		TokenAuthorName, fields.AuthorName,
		TokenAuthorAvatar, fields.AuthorAvatar,
		TokenPublishDate, fields.PublishDate,
		TokenReadTime, fields.ReadTime,
		TokenCategory, fields.Category,
	)
	return replacer.Replace(document)
}

// RenderInitialDocument produces the canonical rendering artifact for a
// newly created post: a complete standalone HTML page with an embedded
// style block, carrying placeholder tokens rather than literal field
// values. This document is what the AI redesign step later restyles, and
// what /website serves after substitution, whether or not a redesign is
// ever requested.
func RenderInitialDocument() string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{TITLE}</title>
<style>
  :root {
    --text: #1a1a2e;
    --muted: #6b7280;
    --accent: #2563eb;
    --bg: #ffffff;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: Georgia, 'Times New Roman', serif;
    background: var(--bg);
    color: var(--text);
    line-height: 1.7;
  }
  .container { max-width: 720px; margin: 0 auto; padding: 48px 24px; }
  .category {
    color: var(--accent);
    font-family: -apple-system, 'Segoe UI', sans-serif;
    font-size: 0.85rem;
    font-weight: 600;
    letter-spacing: 0.08em;
    text-transform: uppercase;
  }
  h1.title { font-size: 2.4rem; line-height: 1.2; margin: 12px 0; }
  p.subtitle { color: var(--muted); font-size: 1.25rem; margin-bottom: 24px; }
  .byline {
    display: flex;
    align-items: center;
    gap: 12px;
    border-bottom: 1px solid #e5e7eb;
    padding-bottom: 24px;
    margin-bottom: 32px;
    font-family: -apple-system, 'Segoe UI', sans-serif;
  }
  .byline img { width: 44px; height: 44px; border-radius: 50%; object-fit: cover; }
  .byline .meta { font-size: 0.9rem; color: var(--muted); }
  .byline .meta strong { color: var(--text); display: block; }
  .content { font-size: 1.1rem; }
  .content img { max-width: 100%; border-radius: 8px; }
  .content h2, .content h3 { margin: 28px 0 12px; }
  .content p { margin-bottom: 18px; }
  .content blockquote {
    border-left: 4px solid var(--accent);
    color: var(--muted);
    font-style: italic;
    margin: 24px 0;
    padding-left: 20px;
  }
  .content pre {
    background: #f3f4f6;
    border-radius: 8px;
    overflow-x: auto;
    padding: 16px;
  }
  @media (max-width: 600px) {
    .container { padding: 32px 16px; }
    h1.title { font-size: 1.8rem; }
  }
</style>
</head>
<body>
<article class="container">
  <span class="category">{CATEGORY}</span>
  <h1 class="title">{TITLE}</h1>
  <p class="subtitle">{SUBTITLE}</p>
  <div class="byline">
    <img src="{AUTHOR_AVATAR}" alt="{AUTHOR_NAME}">
    <div class="meta">
      <strong>{AUTHOR_NAME}</strong>
      {PUBLISH_DATE} &middot; {READ_TIME} min read
    </div>
  </div>
  <div class="content">{CONTENT}</div>
</article>
</body>
</html>`
}
