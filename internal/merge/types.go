package merge

import (
	"github.com/microsoft/teams-sdk/internal/foundation/normalization"
)

// Mode selects how directives render.
type Mode string

const (
	// ModeDevelopment renders every language in containers, with diagnostics.
	ModeDevelopment Mode = "development"
	// ModeProduction renders the target language only, unwrapped, without diagnostics.
	ModeProduction Mode = "production"
)

var modeNormalizer = normalization.NewNormalizer("mode", map[string]Mode{
	"development": ModeDevelopment,
	"dev":         ModeDevelopment,
	"production":  ModeProduction,
	"prod":        ModeProduction,
}, ModeDevelopment)

// ParseMode parses a mode name; empty means development.
func ParseMode(raw string) (Mode, error) {
	return modeNormalizer.NormalizeWithError(raw)
}

// Context is where a directive sits in its document.
type Context int

const (
	// ContextBlock is a directive alone on its line.
	ContextBlock Context = iota
	// ContextInline is a directive embedded in running text.
	ContextInline
)

func (c Context) String() string {
	if c == ContextInline {
		return "inline"
	}
	return "block"
}

// Language identifies a target language and its display name.
type Language struct {
	ID   string
	Name string
}

// Occurrence is a directive found by a Scanner. Start and End delimit the raw
// tag in the scanned body. Section is empty when the tag has no usable
// section attribute.
type Occurrence struct {
	Start   int
	End     int
	Raw     string
	Section string
}

// Scanner finds section-include directives in a template body (frontmatter
// removed). Occurrences must be returned in document order and must not
// overlap. Directives inside code are not reported.
type Scanner interface {
	Name() string
	Scan(body []byte) ([]Occurrence, error)
}

// Request is one template rendered for one output.
type Request struct {
	// Template is the template path relative to the templates root, slash separated.
	Template string
	Source   []byte
	Mode     Mode
	// Language is the output's language; production renders only its content.
	Language string
	// Header is inserted before the body when non-empty.
	Header string
}

// Result is a merged document plus what happened while producing it.
type Result struct {
	Document   []byte
	Directives int
	// Containers counts emitted `<Language>` elements.
	Containers int
	Outcomes   map[Outcome]int
	// Skipped counts directives left untouched for lack of a section attribute.
	Skipped int
}
