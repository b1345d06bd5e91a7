package merge

import (
	"regexp"
	"strings"

	"github.com/microsoft/teams-sdk/internal/markdown"
)

// DirectiveTag is the element name of section-include directives.
const DirectiveTag = "LanguageInclude"

var directivePattern = regexp.MustCompile(`<` + DirectiveTag + `(?:\s[^<>]*)?/>`)

// FindDirectives returns the [start, end) ranges of directive tags in s. A tag
// may wrap across lines but not across a blank line, which ends the paragraph
// holding it.
func FindDirectives(s string) [][2]int {
	var out [][2]int
	for _, loc := range directivePattern.FindAllStringIndex(s, -1) {
		if spansBlankLine(s[loc[0]:loc[1]]) {
			continue
		}
		out = append(out, [2]int{loc[0], loc[1]})
	}
	return out
}

func spansBlankLine(tag string) bool {
	lines := strings.Split(tag, "\n")
	if len(lines) < 3 {
		return false
	}
	for _, l := range lines[1 : len(lines)-1] {
		if strings.TrimSpace(l) == "" {
			return true
		}
	}
	return false
}

// SectionAttr returns the section attribute of a directive tag.
func SectionAttr(tag string) (string, bool) {
	return Attr(tag, "section")
}

// Attr returns the value of the named attribute of a single self-closing
// or opening tag. Attribute names are matched case-insensitively.
func Attr(tag, name string) (string, bool) {
	return markdown.TagAttr(tag, name)
}

// NewOccurrence builds an Occurrence for the directive at body[start:end].
func NewOccurrence(body []byte, start, end int) Occurrence {
	raw := string(body[start:end])
	section, _ := SectionAttr(raw)
	return Occurrence{Start: start, End: end, Raw: raw, Section: section}
}
