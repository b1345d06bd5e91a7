package frontmatter

import (
	"bytes"
	"errors"
)

// Delimiter opens and closes a frontmatter block.
const Delimiter = "---"

// ErrMissingClosingDelimiter is returned by Split when a document opens a
// frontmatter block that never closes.
var ErrMissingClosingDelimiter = errors.New("frontmatter start delimiter found but closing delimiter is missing")

// Style is the line ending a document uses; Join writes delimiters with it.
type Style struct {
	Newline string
}

func (s Style) newline() string {
	if s.Newline == "" {
		return "\n"
	}
	return s.Newline
}

// Split separates the raw frontmatter block from the body. The block opens on
// the first line and closes at the next delimiter line; blanks after either
// delimiter are tolerated. A document that does not open with a delimiter has
// no block and body is content.
func Split(content []byte) (fm, body []byte, had bool, style Style, err error) {
	style = Style{Newline: newlineOf(content)}

	start, ok := delimiterAt(content, 0)
	if !ok || start == len(content) {
		if ok {
			return nil, nil, false, style, ErrMissingClosingDelimiter
		}
		return nil, content, false, style, nil
	}
	for pos := start; pos < len(content); {
		next, closing := delimiterAt(content, pos)
		if closing {
			return content[start:pos], content[next:], true, style, nil
		}
		pos = next
	}
	return nil, nil, false, style, ErrMissingClosingDelimiter
}

// Join writes a block and body back out. Without had it returns body.
func Join(fm, body []byte, had bool, style Style) []byte {
	if !had {
		return body
	}
	nl := style.newline()
	out := make([]byte, 0, len(fm)+len(body)+2*(len(Delimiter)+len(nl)))
	out = append(out, Delimiter+nl...)
	out = append(out, fm...)
	if len(fm) > 0 && fm[len(fm)-1] != '\n' {
		out = append(out, nl...)
	}
	out = append(out, Delimiter+nl...)
	return append(out, body...)
}

// delimiterAt reports whether the line starting at pos is a delimiter line
// and returns the offset of the following line.
func delimiterAt(content []byte, pos int) (int, bool) {
	end := len(content)
	next := end
	if i := bytes.IndexByte(content[pos:], '\n'); i >= 0 {
		end = pos + i
		next = end + 1
	}
	line := bytes.TrimRight(content[pos:end], " \t\r")
	return next, string(line) == Delimiter
}

func newlineOf(content []byte) string {
	i := bytes.IndexByte(content, '\n')
	if i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
