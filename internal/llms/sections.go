package llms

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microsoft/teams-sdk/internal/docs"
)

// Fixed sections of the complete export, keyed by top-level folder. Top-level
// files belong to the main section.
var fixedSections = []struct {
	folder string
	title  string
}{
	{"main", "Main Documentation"},
	{"getting-started", "Getting Started"},
	{"essentials", "Essentials"},
	{"in-depth-guides", "In-Depth Guides"},
	{"migrations", "Migrations"},
}

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)
	upperLetter     = regexp.MustCompile(`([A-Z])`)
)

type section struct {
	key   string
	title string
	docs  []*exportDoc
}

// groupSections assigns documents to sections. Fixed sections come first;
// other top-level folders follow in the order their first document appears.
// Documents inside a section are ordered by (sidebar_position, title).
func groupSections(documents []*exportDoc) []*section {
	var (
		sections []*section
		byKey    = make(map[string]*section)
	)
	for _, f := range fixedSections {
		s := &section{key: f.folder, title: f.title}
		sections = append(sections, s)
		byKey[f.folder] = s
	}

	for _, d := range documents {
		key := sectionKey(d.Rel)
		s, ok := byKey[key]
		if !ok {
			s = &section{key: key, title: formatSectionName(key)}
			sections = append(sections, s)
			byKey[key] = s
		}
		s.docs = append(s.docs, d)
	}

	for _, s := range sections {
		docs.SortByOrder(s.docs, func(d *exportDoc) (int, string) { return d.Order, d.Title })
	}
	return sections
}

func sectionKey(rel string) string {
	folder, _, nested := strings.Cut(rel, "/")
	if !nested {
		return "main"
	}
	for _, f := range fixedSections {
		if folder == f.folder {
			return folder
		}
	}
	if key := nonAlphanumeric.ReplaceAllString(folder, ""); key != "" {
		return key
	}
	return folder
}

// formatSectionName splits a camel-case key into words and capitalises the
// first letter.
func formatSectionName(key string) string {
	name := strings.TrimSpace(upperLetter.ReplaceAllString(key, " $1"))
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
