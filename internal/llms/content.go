package llms

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/microsoft/teams-sdk/internal/docs"
	derrors "github.com/microsoft/teams-sdk/internal/docs/errors"
	foundationerrors "github.com/microsoft/teams-sdk/internal/foundation/errors"
	"github.com/microsoft/teams-sdk/internal/frontmatter"
	"github.com/microsoft/teams-sdk/internal/logfields"
	"github.com/microsoft/teams-sdk/internal/markdown"
	"github.com/microsoft/teams-sdk/internal/observability"
)

// CodeRemovedPlaceholder replaces code embeds when code examples are omitted.
const CodeRemovedPlaceholder = "[Code example removed for brevity]"

// DefaultCodeLanguage is the fence language of embeds without a lang attribute.
const DefaultCodeLanguage = "typescript"

var (
	importLine    = regexp.MustCompile(`(?m)^import\s+.*$`)
	codeBlockTag  = regexp.MustCompile(`(?s)<FileCodeBlock\b.*?/>`)
	jsxTag        = regexp.MustCompile(`</?[A-Z][^>]*>`)
	emptyFragment = regexp.MustCompile(`<>\s*</>`)
	jsxExpression = regexp.MustCompile(`\{([^{}]+)\}`)
	blankRuns     = regexp.MustCompile(`\n\s*\n\s*\n`)
	newlineRuns   = regexp.MustCompile(`\n{3,}`)
)

// Document is a documentation file flattened for export.
type Document struct {
	Path string
	// Rel is the slash-separated path relative to the language root.
	Rel    string
	Title  string
	Order  int
	Fields frontmatter.Fields
	// Body is the cleaned content before links are rewritten.
	Body string
}

// IsIndex reports whether the document describes its directory.
func (d *Document) IsIndex() bool {
	return docs.IsIndexFile(filepath.Base(d.Path))
}

// Slug is the export file name of the document without extension. Index
// files are named after their directory, other documents after their title.
func (d *Document) Slug() string {
	if d.IsIndex() {
		return Slug(filepath.Base(filepath.Dir(d.Path)))
	}
	return Slug(d.Title)
}

// Render finishes the body: sibling links are rewritten with links (when
// non-nil), blank line runs are collapsed and the result is trimmed.
func (d *Document) Render(links *LinkResolver) (string, error) {
	content := d.Body
	if links != nil {
		var err error
		content, err = markdown.RewriteLinks(content, links.Rewriter(d.Path))
		if err != nil {
			return "", foundationerrors.InternalError("rewrite links").
				WithCause(err).
				WithContext("path", d.Path).
				Build()
		}
	}
	content = newlineRuns.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content), nil
}

// Processor turns documentation files of one language tree into Documents.
type Processor struct {
	root      string
	staticDir string
	omitCode  bool
	// ignored caches the llms section setting per directory.
	ignored map[string]bool
}

// NewProcessor returns a Processor for the language tree at root. Code
// embeds are read from staticDir, or replaced by CodeRemovedPlaceholder when
// omitCode is set.
func NewProcessor(root, staticDir string, omitCode bool) *Processor {
	return &Processor{root: root, staticDir: staticDir, omitCode: omitCode, ignored: make(map[string]bool)}
}

// Process reads and cleans the file at path. ok is false when the file is
// excluded from exports, by its own llms setting or by an ancestor index
// file. A file without a first-level heading is a fatal error.
func (p *Processor) Process(ctx context.Context, path string) (doc *Document, ok bool, err error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the docs walk
	if err != nil {
		return nil, false, foundationerrors.FileSystemError("read documentation file").
			WithCause(fmt.Errorf("%w: %s: %w", derrors.ErrFileReadFailed, path, err)).
			Fatal().
			WithContext("path", path).
			Build()
	}

	if frontmatter.ShouldIgnore(string(data)) || p.ignoredBySection(path) {
		observability.DebugContext(ctx, "Skipping document excluded from LLM exports", logfields.Path(path))
		return nil, false, nil
	}

	res := frontmatter.Extract(string(data))
	headings := markdown.H1Headings([]byte(res.Content))
	if len(headings) == 0 {
		return nil, false, foundationerrors.StructureError("no # heading found in file: "+path).
			WithCause(derrors.ErrMissingHeading).
			WithContext("path", path).
			Build()
	}
	title := headings[0].Text
	if len(headings) > 1 {
		observability.WarnContext(ctx, "Document has more than one # heading, using the first as its title",
			logfields.Path(path), logfields.Count(len(headings)))
	}

	rel, err := filepath.Rel(p.root, path)
	if err != nil {
		rel = filepath.Base(path)
	}

	body := outsideFences(res.Content, func(s string) string { return importLine.ReplaceAllString(s, "") })
	body = outsideFences(body, func(s string) string { return p.codeBlocks(ctx, s) })
	body = outsideFences(body, CleanMDX)

	return &Document{
		Path:   path,
		Rel:    filepath.ToSlash(rel),
		Title:  title,
		Order:  res.Fields.Order(),
		Fields: res.Fields,
		Body:   body,
	}, true, nil
}

// ignoredBySection reports whether an index file between the file and the
// language root (exclusive) removes its whole section.
func (p *Processor) ignoredBySection(path string) bool {
	sep := string(filepath.Separator)
	for dir := filepath.Dir(path); dir != p.root && strings.HasPrefix(dir, p.root+sep); dir = filepath.Dir(dir) {
		ignored, cached := p.ignored[dir]
		if !cached {
			ignored = indexIgnoresSection(dir)
			p.ignored[dir] = ignored
		}
		if ignored {
			return true
		}
	}
	return false
}

// indexIgnoresSection reads the llms key of dir's index file. An unreadable
// index file counts as not ignoring.
func indexIgnoresSection(dir string) bool {
	index, ok := docs.FindIndexFile(dir)
	if !ok {
		return false
	}
	llms := frontmatter.GetProperty(index, frontmatter.KeyLLMs, nil)
	if llms == nil {
		return false
	}
	return frontmatter.Fields{frontmatter.KeyLLMs: llms}.IgnoresSection()
}

func (p *Processor) codeBlocks(ctx context.Context, s string) string {
	return codeBlockTag.ReplaceAllStringFunc(s, func(tag string) string {
		if p.omitCode {
			return CodeRemovedPlaceholder
		}
		src, ok := markdown.TagAttr(tag, "src")
		if !ok {
			return tag
		}
		lang, ok := markdown.TagAttr(tag, "lang")
		if !ok {
			lang = DefaultCodeLanguage
		}
		code, err := p.loadCode(src)
		if err != nil {
			observability.WarnContext(ctx, "Could not load code file", logfields.File(src), logfields.Error(err))
			return "[Code file not found: " + src + "]"
		}
		return "```" + lang + "\n" + code + "\n```"
	})
}

func (p *Processor) loadCode(src string) (string, error) {
	path := filepath.Join(p.staticDir, filepath.FromSlash(strings.TrimPrefix(src, "/")))
	if rel, err := filepath.Rel(p.staticDir, path); err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside the static directory", src)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- confined to the static directory above
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// CleanMDX strips MDX syntax from markdown outside code: capitalised
// component tags and empty fragments are removed, and `{expr}` expressions
// keep their text unless they call, index or access a member.
func CleanMDX(s string) string {
	s = jsxTag.ReplaceAllString(s, "")
	s = emptyFragment.ReplaceAllString(s, "")
	s = jsxExpression.ReplaceAllStringFunc(s, func(m string) string {
		expr := m[1 : len(m)-1]
		if strings.ContainsAny(expr, "(.[") {
			return ""
		}
		return expr
	})
	return blankRuns.ReplaceAllString(s, "\n\n")
}

// outsideFences applies fn to every run of lines outside fenced code blocks.
func outsideFences(s string, fn func(string) string) string {
	var (
		out    strings.Builder
		run    strings.Builder
		fences markdown.Fences
	)
	flush := func() {
		if run.Len() > 0 {
			out.WriteString(fn(run.String()))
			run.Reset()
		}
	}
	for _, line := range strings.SplitAfter(s, "\n") {
		if fences.Line(line) {
			flush()
			out.WriteString(line)
			continue
		}
		run.WriteString(line)
	}
	flush()
	return out.String()
}
