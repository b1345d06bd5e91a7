package markdown

import "strings"

// MaskCode returns a copy of src with fenced code blocks, HTML comments and
// inline code spans replaced by spaces. Line breaks survive, so offsets into
// the copy are offsets into src and constructs spanning several lines can be
// matched against it directly. Code spans are recognised within a line.
func MaskCode(src []byte) []byte {
	out := make([]byte, 0, len(src))
	var (
		fences    Fences
		inComment bool
	)
	for _, line := range strings.SplitAfter(string(src), "\n") {
		if !inComment && fences.Line(line) {
			out = append(out, blankOut([]byte(line))...)
			continue
		}
		var visible string
		visible, inComment = MaskComments(line, inComment)
		b := []byte(visible)
		for _, span := range CodeSpans(visible) {
			blankOut(b[span[0]:span[1]])
		}
		out = append(out, b...)
	}
	return out
}

// MaskComments blanks out HTML comment text in line, keeping byte offsets.
// inComment carries an unclosed comment over from the previous line; the
// returned flag reports whether one is still open at the end of line.
func MaskComments(line string, inComment bool) (string, bool) {
	if !inComment && !strings.Contains(line, "<!--") {
		return line, false
	}
	b := []byte(line)
	for i := 0; i < len(b); {
		if inComment {
			end := strings.Index(line[i:], "-->")
			if end < 0 {
				blankOut(b[i:])
				return string(b), true
			}
			blankOut(b[i : i+end+3])
			i += end + 3
			inComment = false
			continue
		}
		start := strings.Index(line[i:], "<!--")
		if start < 0 {
			break
		}
		i += start
		inComment = true
	}
	return string(b), inComment
}

func blankOut(b []byte) []byte {
	for i := range b {
		if b[i] != '\n' && b[i] != '\r' {
			b[i] = ' '
		}
	}
	return b
}
