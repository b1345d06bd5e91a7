package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ParseBody parses a Markdown body (frontmatter already removed) into a Goldmark AST.
func ParseBody(body []byte, opts ...parser.ParseOption) gmast.Node {
	md := goldmark.New()
	return md.Parser().Parse(text.NewReader(body), opts...)
}

// Heading is an ATX first-level heading.
type Heading struct {
	Text string
	// Offset is the byte offset of the heading line in the parsed body.
	Offset int
}

// H1Headings returns every `# ` heading of body in document order. Headings
// inside code blocks, HTML blocks and setext headings are not reported.
func H1Headings(body []byte) []Heading {
	root := ParseBody(body)

	var headings []Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		if h.Level != 1 || h.Lines().Len() == 0 {
			return gmast.WalkSkipChildren, nil
		}

		seg := h.Lines().At(0)
		lineStart := bytes.LastIndexByte(body[:seg.Start], '\n') + 1
		if !bytes.HasPrefix(bytes.TrimLeft(body[lineStart:seg.Start], " "), []byte("#")) {
			return gmast.WalkSkipChildren, nil
		}

		title := string(bytes.TrimSpace(h.Lines().Value(body)))
		if title != "" {
			headings = append(headings, Heading{Text: title, Offset: lineStart})
		}
		return gmast.WalkSkipChildren, nil
	})
	return headings
}

// FirstH1 returns the text of the first `# ` heading in body.
func FirstH1(body []byte) (string, bool) {
	headings := H1Headings(body)
	if len(headings) == 0 {
		return "", false
	}
	return headings[0].Text, true
}
