package llms

import (
	"regexp"
	"strings"
)

// MaxSlugLength caps the length of export file names.
const MaxSlugLength = 50

// UntitledSlug is used when nothing of the input survives.
const UntitledSlug = "untitled"

var (
	slugInvalid    = regexp.MustCompile(`[^a-z0-9\s\p{Z}\x{FEFF}-]`)
	slugWhitespace = regexp.MustCompile(`[\s\p{Z}\x{FEFF}]+`)
	slugDashes     = regexp.MustCompile(`-+`)
)

// Slug derives a safe export file name from a title. The result only holds
// [a-z0-9-], never starts or ends with a hyphen, and Slug(Slug(s)) == Slug(s).
func Slug(s string) string {
	s = strings.ToLower(s)
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "-")
	}
	if s == "" {
		return UntitledSlug
	}
	return s
}
