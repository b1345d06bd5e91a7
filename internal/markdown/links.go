package markdown

import "strings"

// InlineLink is a `[text](destination)` construct located in a document.
type InlineLink struct {
	Text        string
	Destination string
	// DestStart and DestEnd delimit Destination in the scanned source.
	DestStart int
	DestEnd   int
}

// FindInlineLinks scans body for inline links outside fenced code blocks and
// inline code spans. Image links are not reported. Destinations are taken
// verbatim up to the first closing parenthesis.
func FindInlineLinks(body string) []InlineLink {
	var (
		links  []InlineLink
		fences Fences
		offset int
	)
	for _, line := range strings.SplitAfter(body, "\n") {
		if fences.Line(line) {
			offset += len(line)
			continue
		}
		spans := CodeSpans(line)
		for i := 0; i+1 < len(line); i++ {
			if line[i] != ']' || line[i+1] != '(' || InSpans(spans, i) {
				continue
			}
			link, ok := inlineLinkAt(line, i)
			if !ok {
				continue
			}
			link.DestStart += offset
			link.DestEnd += offset
			links = append(links, link)
		}
		offset += len(line)
	}
	return links
}

func inlineLinkAt(line string, closeBracketPos int) (InlineLink, bool) {
	start := findLinkTextStart(line, closeBracketPos)
	if start == -1 {
		return InlineLink{}, false
	}

	end := findLinkEnd(line, closeBracketPos+2)
	if end == -1 || end == closeBracketPos+2 {
		return InlineLink{}, false
	}

	return InlineLink{
		Text:        line[start+1 : closeBracketPos],
		Destination: line[closeBracketPos+2 : end],
		DestStart:   closeBracketPos + 2,
		DestEnd:     end,
	}, true
}

func findLinkTextStart(line string, closeBracketPos int) int {
	for j := closeBracketPos - 1; j >= 0; j-- {
		switch line[j] {
		case ']':
			return -1
		case '[':
			if j > 0 && line[j-1] == '!' {
				return -1
			}
			if j == closeBracketPos-1 {
				return -1
			}
			return j
		}
	}
	return -1
}

func findLinkEnd(line string, startPos int) int {
	end := strings.IndexAny(line[startPos:], ")\n")
	if end == -1 || line[startPos+end] != ')' {
		return -1
	}
	return startPos + end
}

// RewriteLinks replaces inline link destinations using rewrite. Links for which
// rewrite reports false are left untouched.
func RewriteLinks(body string, rewrite func(link InlineLink) (string, bool)) (string, error) {
	var edits []Edit
	for _, link := range FindInlineLinks(body) {
		dest, ok := rewrite(link)
		if !ok || dest == link.Destination {
			continue
		}
		edits = append(edits, Edit{Start: link.DestStart, End: link.DestEnd, Replacement: []byte(dest)})
	}
	if len(edits) == 0 {
		return body, nil
	}
	out, err := ApplyEdits([]byte(body), edits)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
