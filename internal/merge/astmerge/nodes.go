package astmerge

import (
	"fmt"

	gmast "github.com/yuin/goldmark/ast"

	"github.com/microsoft/teams-sdk/internal/merge"
)

// KindDirective is the node kind of an inline LanguageInclude directive.
var KindDirective = gmast.NewNodeKind("LanguageInclude")

// KindDirectiveBlock is the node kind of an HTML block holding directives.
var KindDirectiveBlock = gmast.NewNodeKind("LanguageIncludeBlock")

// Directive replaces a raw HTML inline that is exactly one directive tag.
type Directive struct {
	gmast.BaseInline
	Occurrence merge.Occurrence
}

// Kind implements ast.Node.
func (n *Directive) Kind() gmast.NodeKind { return KindDirective }

// Dump implements ast.Node.
func (n *Directive) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{
		"Section": n.Occurrence.Section,
		"Range":   fmt.Sprintf("%d:%d", n.Occurrence.Start, n.Occurrence.End),
	}, nil)
}

// DirectiveBlock wraps an HTML block that contains directive tags. The
// original block stays as its only child.
type DirectiveBlock struct {
	gmast.BaseBlock
	Occurrences []merge.Occurrence
}

// Kind implements ast.Node.
func (n *DirectiveBlock) Kind() gmast.NodeKind { return KindDirectiveBlock }

// Dump implements ast.Node.
func (n *DirectiveBlock) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{
		"Directives": fmt.Sprintf("%d", len(n.Occurrences)),
	}, nil)
}
