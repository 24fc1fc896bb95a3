package utils

import (
	"regexp"
	"strings"
)

var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)

const maxSlugLength = 100

// Slugify lowercases a title and joins its alphanumeric runs with hyphens.
func Slugify(title string) string {
	slug := nonAlphanumericRegex.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}
	return slug
}
