// Package textmerge finds section-include directives by matching the template
// text. Fenced code blocks, inline code spans and HTML comments are masked
// first, so tags inside them are not reported.
package textmerge

import (
	"github.com/microsoft/teams-sdk/internal/markdown"
	"github.com/microsoft/teams-sdk/internal/merge"
)

// Scanner is the text-matching merge.Scanner.
type Scanner struct{}

// New returns a merge engine backed by the text scanner.
func New(resolver *merge.Resolver) *merge.Merger {
	return merge.NewMerger(Scanner{}, resolver)
}

// Name implements merge.Scanner.
func (Scanner) Name() string { return "text" }

// Scan implements merge.Scanner. Directives may span several lines.
func (Scanner) Scan(body []byte) ([]merge.Occurrence, error) {
	masked := markdown.MaskCode(body)

	var out []merge.Occurrence
	for _, loc := range merge.FindDirectives(string(masked)) {
		out = append(out, merge.NewOccurrence(body, loc[0], loc[1]))
	}
	return out, nil
}
