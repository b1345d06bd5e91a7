package merge

import (
	"regexp"
	"strings"

	"github.com/microsoft/teams-sdk/internal/markdown"
)

var admonitionOpen = regexp.MustCompile(`^:::(\w+)\s*(.*)$`)

// ConvertAdmonitions rewrites `:::type ... :::` blocks outside fenced code into
// `<admonition type="type">` elements. Nested admonitions are kept verbatim
// inside the outer element. An unclosed admonition runs to the end of content.
func ConvertAdmonitions(content string) string {
	if !strings.Contains(content, ":::") {
		return content
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines)+4)

	var (
		fences markdown.Fences
		open   bool
		depth  int
		inner  []string
	)
	flush := func(kind string, body []string) {
		out = append(out, `<admonition type="`+kind+`">`, "")
		body = trimBlankLines(body)
		if len(body) > 0 {
			out = append(out, body...)
			out = append(out, "")
		}
		out = append(out, "</admonition>")
	}

	var kind string
	for _, line := range lines {
		if fences.Line(line) {
			if open {
				inner = append(inner, line)
			} else {
				out = append(out, line)
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if !open {
			if m := admonitionOpen.FindStringSubmatch(trimmed); m != nil {
				open, kind, depth, inner = true, m[1], 0, nil
				if rest := strings.TrimSpace(m[2]); rest != "" {
					if before, closed := strings.CutSuffix(rest, ":::"); closed {
						inner = append(inner, strings.TrimSpace(before))
						flush(kind, inner)
						open = false
						continue
					}
					inner = append(inner, rest)
				}
				continue
			}
			out = append(out, line)
			continue
		}

		switch {
		case admonitionOpen.MatchString(trimmed):
			depth++
			inner = append(inner, line)
		case strings.HasPrefix(trimmed, ":::"):
			if depth > 0 {
				depth--
				inner = append(inner, line)
				continue
			}
			if after := strings.TrimSpace(strings.TrimLeft(trimmed, ":")); after != "" {
				inner = append(inner, after)
			}
			flush(kind, inner)
			open = false
		case depth == 0 && strings.HasSuffix(trimmed, ":::"):
			inner = append(inner, strings.TrimSpace(strings.TrimSuffix(trimmed, ":::")))
			flush(kind, inner)
			open = false
		default:
			inner = append(inner, line)
		}
	}
	if open {
		flush(kind, inner)
	}

	return strings.Join(out, "\n")
}

func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
