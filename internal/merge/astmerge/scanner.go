package astmerge

import (
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/microsoft/teams-sdk/internal/merge"
)

// Scanner is the goldmark-backed merge.Scanner. Besides fenced code and code
// spans it also skips indented code blocks, which the text scanner cannot tell
// apart from indented list content.
type Scanner struct {
	md goldmark.Markdown
}

// NewScanner returns a Scanner with the directive extension installed.
func NewScanner() *Scanner {
	return &Scanner{md: goldmark.New(goldmark.WithExtensions(Extension))}
}

// New returns a merge engine backed by the goldmark scanner.
func New(resolver *merge.Resolver) *merge.Merger {
	return merge.NewMerger(NewScanner(), resolver)
}

// Name implements merge.Scanner.
func (s *Scanner) Name() string { return "ast" }

// Scan implements merge.Scanner.
func (s *Scanner) Scan(body []byte) ([]merge.Occurrence, error) {
	doc := s.md.Parser().Parse(text.NewReader(body))

	var occs []merge.Occurrence
	err := gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *Directive:
			occs = append(occs, node.Occurrence)
		case *DirectiveBlock:
			occs = append(occs, node.Occurrences...)
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(occs, func(i, j int) bool { return occs[i].Start < occs[j].Start })
	return occs, nil
}
