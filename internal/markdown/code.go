package markdown

import "strings"

// Fences tracks fenced code block state while scanning a document line by line.
//
// A fence opens with three or more backticks or tildes (indented at most three
// spaces) and closes with a run of the same character at least as long.
type Fences struct {
	open   bool
	marker byte
	width  int
}

// Line feeds the next line and reports whether it belongs to a fenced block,
// including the opening and closing delimiter lines.
func (f *Fences) Line(line string) bool {
	marker, width, rest, ok := fenceRun(line)
	if !f.open {
		if ok {
			f.open, f.marker, f.width = true, marker, width
			return true
		}
		return false
	}
	if ok && marker == f.marker && width >= f.width && strings.TrimSpace(rest) == "" {
		f.open, f.marker, f.width = false, 0, 0
	}
	return true
}

// Open reports whether a fence is currently open.
func (f *Fences) Open() bool { return f.open }

func fenceRun(line string) (marker byte, width int, rest string, ok bool) {
	trimmed := strings.TrimRight(line, "\r")
	indent := len(trimmed) - len(strings.TrimLeft(trimmed, " "))
	if indent > 3 {
		return 0, 0, "", false
	}
	trimmed = trimmed[indent:]
	if trimmed == "" || (trimmed[0] != '`' && trimmed[0] != '~') {
		return 0, 0, "", false
	}
	marker = trimmed[0]
	for width < len(trimmed) && trimmed[width] == marker {
		width++
	}
	if width < 3 {
		return 0, 0, "", false
	}
	rest = trimmed[width:]
	if marker == '`' && strings.Contains(rest, "`") {
		return 0, 0, "", false
	}
	return marker, width, rest, true
}

// CodeSpans returns the byte ranges [start, end) of inline code spans in line,
// delimiters included. Unclosed backtick runs are literal text.
func CodeSpans(line string) [][2]int {
	if !strings.Contains(line, "`") {
		return nil
	}

	var spans [][2]int
	for i := 0; i < len(line); {
		if line[i] != '`' {
			i++
			continue
		}

		run := 1
		for i+run < len(line) && line[i+run] == '`' {
			run++
		}

		marker := strings.Repeat("`", run)
		closeRel := strings.Index(line[i+run:], marker)
		if closeRel == -1 {
			i += run
			continue
		}

		end := i + run + closeRel + run
		spans = append(spans, [2]int{i, end})
		i = end
	}
	return spans
}

// InSpans reports whether offset falls within one of spans.
func InSpans(spans [][2]int, offset int) bool {
	for _, s := range spans {
		if offset >= s[0] && offset < s[1] {
			return true
		}
	}
	return false
}

// StripInlineCodeSpans removes inline code spans, delimiters included.
func StripInlineCodeSpans(s string) string {
	spans := CodeSpans(s)
	if len(spans) == 0 {
		return s
	}

	var out strings.Builder
	out.Grow(len(s))
	cursor := 0
	for _, span := range spans {
		out.WriteString(s[cursor:span[0]])
		cursor = span[1]
	}
	out.WriteString(s[cursor:])
	return out.String()
}
