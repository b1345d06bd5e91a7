// Package astmerge finds section-include directives with goldmark. Its
// extension turns directive tags into Directive and DirectiveBlock nodes, so
// any goldmark pipeline can locate them without re-scanning text.
package astmerge

import (
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/microsoft/teams-sdk/internal/markdown"
	"github.com/microsoft/teams-sdk/internal/merge"
)

// Extension registers the directive transformer on a goldmark instance.
var Extension goldmark.Extender = &extension{}

type extension struct{}

func (e *extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&transformer{}, 100),
	))
}

type transformer struct{}

type replacement struct {
	parent gmast.Node
	old    gmast.Node
	new    gmast.Node
}

// Transform implements parser.ASTTransformer.
func (t *transformer) Transform(doc *gmast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	var pending []replacement

	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.RawHTML:
			if occ, ok := rawDirective(source, node); ok {
				d := &Directive{Occurrence: occ}
				pending = append(pending, replacement{parent: node.Parent(), old: node, new: d})
			}
			return gmast.WalkSkipChildren, nil
		case *gmast.HTMLBlock:
			if occs := blockDirectives(source, node); len(occs) > 0 {
				pending = append(pending, replacement{parent: node.Parent(), old: node, new: &DirectiveBlock{Occurrences: occs}})
			}
			return gmast.WalkSkipChildren, nil
		case *gmast.FencedCodeBlock, *gmast.CodeBlock, *gmast.CodeSpan:
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})

	for _, r := range pending {
		r.parent.ReplaceChild(r.parent, r.old, r.new)
		if block, ok := r.new.(*DirectiveBlock); ok {
			block.AppendChild(block, r.old)
		}
	}
}

func rawDirective(source []byte, node *gmast.RawHTML) (merge.Occurrence, bool) {
	if node.Segments.Len() == 0 {
		return merge.Occurrence{}, false
	}
	start := node.Segments.At(0).Start
	end := node.Segments.At(node.Segments.Len() - 1).Stop
	raw := string(source[start:end])
	locs := merge.FindDirectives(raw)
	if len(locs) != 1 || locs[0][0] != 0 || locs[0][1] != len(raw) {
		return merge.Occurrence{}, false
	}
	return merge.NewOccurrence(source, start, end), true
}

// blockDirectives matches directives against the block's source range with
// comments and code spans masked, the same view the text scanner has.
func blockDirectives(source []byte, node *gmast.HTMLBlock) []merge.Occurrence {
	lines := node.Lines()
	if lines.Len() == 0 {
		return nil
	}
	start := lines.At(0).Start
	stop := lines.At(lines.Len() - 1).Stop
	if node.HasClosure() {
		stop = node.ClosureLine.Stop
	}

	masked := markdown.MaskCode(source[start:stop])
	var occs []merge.Occurrence
	for _, loc := range merge.FindDirectives(string(masked)) {
		occs = append(occs, merge.NewOccurrence(source, start+loc[0], start+loc[1]))
	}
	return occs
}
