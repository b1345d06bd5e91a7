package merge

import (
	"fmt"
	"path/filepath"

	"github.com/microsoft/teams-sdk/internal/fragments"
)

// Outcome classifies what a directive resolved to for one language.
type Outcome int

const (
	OutcomeContent Outcome = iota
	OutcomeMissingFile
	OutcomeMissingSection
	OutcomeNotApplicable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContent:
		return "content"
	case OutcomeMissingFile:
		return "missing_file"
	case OutcomeMissingSection:
		return "missing_section"
	case OutcomeNotApplicable:
		return "not_applicable"
	default:
		return "unknown"
	}
}

// Piece is the resolution of one directive for one language.
type Piece struct {
	Language Language
	Outcome  Outcome
	Content  string
	// Fragment is the fragment file path as shown in diagnostics.
	Fragment string
	// Available lists the sections the fragment does declare when the requested
	// one is missing.
	Available []string
}

// Resolver looks sections up in fragment files. It belongs to one generation
// pass: its Store caches every fragment it reads.
type Resolver struct {
	store     *fragments.Store
	locator   fragments.Locator
	languages []Language
	// displayRoot makes diagnostic paths relative; empty keeps them as-is.
	displayRoot string
}

// NewResolver returns a Resolver over languages, in output order.
func NewResolver(store *fragments.Store, locator fragments.Locator, languages []Language, displayRoot string) *Resolver {
	return &Resolver{store: store, locator: locator, languages: languages, displayRoot: displayRoot}
}

// Languages returns the configured languages.
func (r *Resolver) Languages() []Language { return r.languages }

// Language returns the configured language with id.
func (r *Resolver) Language(id string) (Language, bool) {
	for _, l := range r.languages {
		if l.ID == id {
			return l, true
		}
	}
	return Language{}, false
}

// Resolve resolves section of template for each of langs, in order.
// Not-applicable sections are reported with OutcomeNotApplicable and no content.
func (r *Resolver) Resolve(template, section string, langs []Language) ([]Piece, error) {
	pieces := make([]Piece, 0, len(langs))
	for _, lang := range langs {
		path := r.locator.Path(template, lang.ID)
		piece := Piece{Language: lang, Fragment: r.display(path)}

		content, exists, err := r.store.Read(path)
		if err != nil {
			return nil, fmt.Errorf("read fragment %s: %w", path, err)
		}
		if !exists {
			piece.Outcome = OutcomeMissingFile
			pieces = append(pieces, piece)
			continue
		}

		sec := fragments.ExtractSection(content, section)
		switch sec.Status {
		case fragments.StatusMissing:
			piece.Outcome = OutcomeMissingSection
			piece.Available = fragments.SectionNames(content)
		case fragments.StatusNotApplicable:
			piece.Outcome = OutcomeNotApplicable
		case fragments.StatusPresent:
			piece.Outcome = OutcomeContent
			piece.Content = sec.Content
		}
		pieces = append(pieces, piece)
	}
	return pieces, nil
}

func (r *Resolver) display(path string) string {
	if r.displayRoot == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(r.displayRoot, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
