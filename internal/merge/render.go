package merge

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/microsoft/teams-sdk/internal/frontmatter"
)

// ImportStatement makes the Language container component available to a document.
const ImportStatement = "import Language from '@site/src/components/Language';"

const importSource = "from '@site/src/components/Language'"

var lineBreaks = regexp.MustCompile(`[ \t]*\r?\n[ \t]*`)

// Render turns the pieces of one directive into replacement text and reports
// how many containers it emitted. Production renders content only and never
// wraps it. Development wraps content and diagnostics per language.
func Render(section string, pieces []Piece, c Context, mode Mode) (string, int) {
	var parts []string
	containers := 0
	for _, p := range pieces {
		text, ok := pieceText(section, p, c, mode)
		if !ok {
			continue
		}
		if mode == ModeProduction {
			parts = append(parts, text)
			continue
		}
		containers++
		parts = append(parts, container(p.Language.ID, text, c))
	}

	switch {
	case c == ContextInline:
		return strings.Join(parts, ""), containers
	case mode == ModeProduction:
		return strings.Join(parts, "\n\n"), containers
	default:
		return strings.Join(parts, "\n"), containers
	}
}

func pieceText(section string, p Piece, c Context, mode Mode) (string, bool) {
	name := p.Language.Name
	if name == "" {
		name = p.Language.ID
	}

	switch p.Outcome {
	case OutcomeContent:
		if c == ContextInline {
			return lineBreaks.ReplaceAllString(p.Content, " "), true
		}
		return ConvertAdmonitions(p.Content), true
	case OutcomeMissingFile:
		if mode == ModeProduction {
			return "", false
		}
		return fmt.Sprintf("[Dev] Documentation file for %s not found: %s", name, p.Fragment), true
	case OutcomeMissingSection:
		if mode == ModeProduction {
			return "", false
		}
		return fmt.Sprintf("[Dev] Section %q not found in %s documentation", section, name), true
	default:
		return "", false
	}
}

func container(language, text string, c Context) string {
	open := `<Language language="` + language + `">`
	if c == ContextInline {
		return open + text + "</Language>"
	}
	return open + "\n\n" + text + "\n\n</Language>"
}

// HasImport reports whether body already imports the Language component.
func HasImport(body []byte) bool {
	return strings.Contains(string(body), importSource)
}

// Assemble builds the output document: the frontmatter block when the
// template had one, the import when needed, the header, then the body with
// leading blank lines removed. Separators use the template's line ending.
func Assemble(rawFrontmatter []byte, hadFrontmatter bool, style frontmatter.Style, header string, body []byte, needsImport bool) []byte {
	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}
	var b strings.Builder
	if hadFrontmatter {
		b.WriteString(nl)
	}
	if needsImport && !HasImport(body) {
		b.WriteString(ImportStatement + nl + nl)
	}
	if header != "" {
		b.WriteString(header + nl + nl)
	}
	b.WriteString(strings.TrimLeft(string(body), "\r\n"))
	return frontmatter.Join(rawFrontmatter, []byte(b.String()), hadFrontmatter, style)
}
