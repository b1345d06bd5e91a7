package merge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	foundationerrors "github.com/microsoft/teams-sdk/internal/foundation/errors"
	"github.com/microsoft/teams-sdk/internal/frontmatter"
	"github.com/microsoft/teams-sdk/internal/logfields"
	"github.com/microsoft/teams-sdk/internal/markdown"
	"github.com/microsoft/teams-sdk/internal/observability"
)

// Engine merges one template into one output document.
type Engine interface {
	Name() string
	Merge(ctx context.Context, req Request) (Result, error)
}

// Merger is the Engine shared by all backends; only directive discovery differs.
type Merger struct {
	scanner  Scanner
	resolver *Resolver
}

// NewMerger returns a Merger that finds directives with scanner.
func NewMerger(scanner Scanner, resolver *Resolver) *Merger {
	return &Merger{scanner: scanner, resolver: resolver}
}

// Name returns the backend name.
func (m *Merger) Name() string { return m.scanner.Name() }

// Merge renders req.Source for req.Language in req.Mode.
func (m *Merger) Merge(ctx context.Context, req Request) (Result, error) {
	fm, body, had, style, err := frontmatter.Split(req.Source)
	if errors.Is(err, frontmatter.ErrMissingClosingDelimiter) {
		observability.WarnContext(ctx, "Template frontmatter is not closed, treating it as body",
			logfields.Template(req.Template))
		fm, body, had = nil, req.Source, false
	} else if err != nil {
		return Result{}, err
	}

	langs, err := m.targets(req)
	if err != nil {
		return Result{}, err
	}

	occurrences, err := m.scanner.Scan(body)
	if err != nil {
		return Result{}, foundationerrors.WrapError(err, foundationerrors.CategoryTemplate, "scan template").
			Fatal().
			WithContext("template", req.Template).
			Build()
	}

	res := Result{Outcomes: make(map[Outcome]int)}
	edits := make([]markdown.Edit, 0, len(occurrences))
	for _, occ := range occurrences {
		if occ.Section == "" {
			observability.WarnContext(ctx, "LanguageInclude: missing section attribute",
				logfields.Template(req.Template), logfields.Name(occ.Raw))
			res.Skipped++
			continue
		}
		res.Directives++

		pieces, err := m.resolver.Resolve(req.Template, occ.Section, langs)
		if err != nil {
			return Result{}, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "resolve section").
				Fatal().
				WithContext("template", req.Template).
				WithContext("section", occ.Section).
				Build()
		}
		for _, p := range pieces {
			res.Outcomes[p.Outcome]++
			if p.Outcome == OutcomeMissingFile || p.Outcome == OutcomeMissingSection {
				observability.DebugContext(ctx, "Section unresolved",
					logfields.Template(req.Template),
					logfields.Section(occ.Section),
					logfields.Language(p.Language.ID),
					slog.String("outcome", p.Outcome.String()),
					slog.String("available", strings.Join(p.Available, ",")))
			}
		}

		c, lineStart, lineEnd := Classify(body, occ.Start, occ.End)
		text, containers := Render(occ.Section, pieces, c, req.Mode)
		res.Containers += containers

		if c == ContextInline {
			edits = append(edits, markdown.Edit{Start: occ.Start, End: occ.End, Replacement: []byte(text)})
			continue
		}
		edits = append(edits, blockEdit(body, lineStart, lineEnd, text))
	}

	merged, err := markdown.ApplyEdits(body, edits)
	if err != nil {
		return Result{}, foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "apply directive edits").
			WithContext("template", req.Template).
			Build()
	}

	res.Document = Assemble(fm, had, style, req.Header, merged, res.Containers > 0)
	return res, nil
}

func (m *Merger) targets(req Request) ([]Language, error) {
	if req.Mode != ModeProduction {
		return m.resolver.Languages(), nil
	}
	lang, ok := m.resolver.Language(req.Language)
	if !ok {
		return nil, foundationerrors.ValidationError(fmt.Sprintf("unknown target language %q", req.Language)).
			WithContext("template", req.Template).
			Build()
	}
	return []Language{lang}, nil
}

// Classify reports whether body[start:end] is alone on its line and returns
// that line's bounds (newline excluded).
func Classify(body []byte, start, end int) (Context, int, int) {
	lineStart := bytes.LastIndexByte(body[:start], '\n') + 1
	lineEnd := len(body)
	if i := bytes.IndexByte(body[end:], '\n'); i >= 0 {
		lineEnd = end + i
	}
	before := strings.TrimSpace(string(body[lineStart:start]))
	after := strings.TrimSpace(string(body[end:lineEnd]))
	if before == "" && after == "" {
		return ContextBlock, lineStart, lineEnd
	}
	return ContextInline, lineStart, lineEnd
}

// blockEdit replaces a directive line. Content keeps the line's indentation and
// is separated from neighbouring text by blank lines. Empty content removes the
// line, and a doubled blank line left behind collapses to one.
func blockEdit(body []byte, lineStart, lineEnd int, text string) markdown.Edit {
	prevBlank := lineStart == 0 || isBlankLine(body, lineStart-1)
	nextStart := lineEnd + 1
	nextBlank := nextStart >= len(body) || isBlankLineAt(body, nextStart)

	if text == "" {
		end := lineEnd
		if end < len(body) {
			end++ // newline
		}
		if prevBlank && lineStart > 0 && nextStart < len(body) && isBlankLineAt(body, nextStart) {
			if i := bytes.IndexByte(body[nextStart:], '\n'); i >= 0 {
				end = nextStart + i + 1
			}
		}
		return markdown.Edit{Start: lineStart, End: end}
	}

	line := string(body[lineStart:lineEnd])
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	text = indentLines(text, indent)
	if !prevBlank {
		text = "\n" + text
	}
	if !nextBlank {
		text += "\n"
	}
	return markdown.Edit{Start: lineStart, End: lineEnd, Replacement: []byte(text)}
}

// isBlankLine reports whether the line ending at the newline body[nl] is blank.
func isBlankLine(body []byte, nl int) bool {
	start := bytes.LastIndexByte(body[:nl], '\n') + 1
	return len(bytes.TrimSpace(body[start:nl])) == 0
}

// isBlankLineAt reports whether the line starting at body[start] is blank.
func isBlankLineAt(body []byte, start int) bool {
	end := len(body)
	if i := bytes.IndexByte(body[start:], '\n'); i >= 0 {
		end = start + i
	}
	return len(bytes.TrimSpace(body[start:end])) == 0
}

func indentLines(text, indent string) string {
	if indent == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			lines[i] = indent + l
		}
	}
	return strings.Join(lines, "\n")
}
