package llms

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var summaryCleanups = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`#+\s*`), ""},
	{regexp.MustCompile(`\*\*(.+?)\*\*`), "$1"},
	{regexp.MustCompile(`\*(.+?)\*`), "$1"},
	{regexp.MustCompile("`(.+?)`"), "$1"},
	{regexp.MustCompile(`\[(.+?)\]\(.+?\)`), "$1"},
}

// ExtractSummary returns the first paragraph of body that is longer than
// minLength characters once markup is stripped and is neither a code fence
// nor an import. Paragraphs over maxLength characters are cut and end in "...".
func ExtractSummary(body string, minLength, maxLength int) string {
	for _, paragraph := range strings.Split(body, "\n\n") {
		if strings.HasPrefix(strings.TrimSpace(paragraph), "```") {
			continue
		}
		clean := paragraph
		for _, c := range summaryCleanups {
			clean = c.pattern.ReplaceAllString(clean, c.repl)
		}
		clean = strings.TrimSpace(clean)
		if utf8.RuneCountInString(clean) <= minLength ||
			strings.HasPrefix(clean, "```") ||
			strings.HasPrefix(clean, "import") {
			continue
		}
		if runes := []rune(clean); len(runes) > maxLength {
			return string(runes[:maxLength]) + "..."
		}
		return clean
	}
	return ""
}
