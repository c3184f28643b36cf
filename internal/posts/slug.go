package posts

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-slug"
)

var (
	slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)
	slugPattern    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Slugify lowercases value, transliterates it and collapses every run of
// non alphanumeric characters into a single hyphen. Applying it to a valid
// slug returns the slug unchanged.
func Slugify(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if normalized, err := slug.Normalize(value); err == nil && normalized != "" {
		value = normalized
	}
	value = strings.ToLower(value)
	value = slugSeparators.ReplaceAllString(value, "-")
	return strings.Trim(value, "-")
}

// IsValidSlug reports whether value is a lowercase hyphenated slug.
func IsValidSlug(value string) bool {
	return slugPattern.MatchString(value)
}
