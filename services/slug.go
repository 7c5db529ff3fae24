package services

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify converts a post title into a URL-safe slug: lowercase, letters and
// digits only, whitespace collapsed to single hyphens, no leading or
// trailing hyphen.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r) && r < 128:
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), "-")
}

// SlugExistsFunc reports whether a candidate slug is already taken.
type SlugExistsFunc func(slug string) (bool, error)

// UniqueSlug derives a slug from the title and resolves collisions against
// the store by appending -1, -2, ... until an unused candidate is found.
// Slugs are generated once at creation time; updates never regenerate them,
// so published URLs stay stable.
func UniqueSlug(title string, exists SlugExistsFunc) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "post"
	}

	candidate := base
	for suffix := 1; ; suffix++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}
