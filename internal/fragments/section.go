package fragments

import (
	"regexp"
	"strings"
)

// Status is the three-way outcome of looking a section up in a fragment file.
type Status int

const (
	// StatusPresent means the section exists and has content.
	StatusPresent Status = iota
	// StatusMissing means the marker was not found: a documentation gap.
	StatusMissing
	// StatusNotApplicable means the section is deliberately absent for this language.
	StatusNotApplicable
)

func (s Status) String() string {
	switch s {
	case StatusPresent:
		return "present"
	case StatusMissing:
		return "missing"
	case StatusNotApplicable:
		return "not_applicable"
	default:
		return "unknown"
	}
}

// Section is the result of ExtractSection.
type Section struct {
	Status  Status
	Content string
}

var notApplicable = regexp.MustCompile(`(?i)^(not applicable|n/a)\s*$`)

func sectionPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<!--\s*` + regexp.QuoteMeta(name) + `\s*-->\s*(.*?)(?:<!--\s*[\w-]+\s*-->|$)`)
}

// ExtractSection returns the body of the `<!-- name -->` section in markdown.
//
// The body runs to the next section marker or the end of the file and is
// trimmed. Marker names match case-insensitively. An empty file, or a body of
// "not applicable" or "N/A", is StatusNotApplicable.
func ExtractSection(markdown, name string) Section {
	if markdown == "" {
		return Section{Status: StatusNotApplicable}
	}

	m := sectionPattern(name).FindStringSubmatch(markdown)
	if m == nil {
		return Section{Status: StatusMissing}
	}

	content := strings.TrimSpace(m[1])
	if notApplicable.MatchString(content) {
		return Section{Status: StatusNotApplicable}
	}
	return Section{Status: StatusPresent, Content: content}
}

// SectionNames lists the section markers of markdown in file order.
func SectionNames(markdown string) []string {
	var names []string
	for _, m := range markerPattern.FindAllStringSubmatch(markdown, -1) {
		names = append(names, m[1])
	}
	return names
}

var markerPattern = regexp.MustCompile(`<!--\s*([\w-]+)\s*-->`)
