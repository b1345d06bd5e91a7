package generate

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/microsoft/teams-sdk/internal/docs"
	derrors "github.com/microsoft/teams-sdk/internal/docs/errors"
	foundationerrors "github.com/microsoft/teams-sdk/internal/foundation/errors"
	"github.com/microsoft/teams-sdk/internal/fragments"
	"github.com/microsoft/teams-sdk/internal/logfields"
	"github.com/microsoft/teams-sdk/internal/merge"
	"github.com/microsoft/teams-sdk/internal/metrics"
	"github.com/microsoft/teams-sdk/internal/observability"
	"github.com/microsoft/teams-sdk/internal/util/sets"
)

// TemplateExtensions are the template file extensions.
var TemplateExtensions = []string{".mdx", ".md"}

// OutputExtension is the extension of every generated document.
const OutputExtension = ".mdx"

// Stats summarizes a generation pass.
type Stats struct {
	Templates int
	Written   int
	Unchanged int
	Removed   int
	// FragmentReads counts fragment files read from disk; each is read once per pass.
	FragmentReads int
}

func (s *Stats) add(o Stats) {
	s.Templates += o.Templates
	s.Written += o.Written
	s.Unchanged += o.Unchanged
	s.Removed += o.Removed
	s.FragmentReads += o.FragmentReads
}

// Generator writes per-language documents from templates.
type Generator struct {
	opts     Options
	locator  fragments.Locator
	recorder metrics.Recorder
}

// New returns a Generator for opts.
func New(opts Options) *Generator {
	return &Generator{
		opts:     opts,
		locator:  fragments.NewLocator(opts.FragmentsDir),
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder sets the metrics recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r != nil {
		g.recorder = r
	}
	return g
}

// Options returns the generator's options.
func (g *Generator) Options() Options { return g.opts }

// pass is the state of one generation pass.
type pass struct {
	store   *fragments.Store
	engine  merge.Engine
	outputs sets.Set[string]
	stats   Stats
}

func (g *Generator) newPass() *pass {
	store := fragments.NewStore()
	resolver := merge.NewResolver(store, g.locator, g.opts.mergeLanguages(), g.opts.Root)
	return &pass{
		store:   store,
		engine:  newEngine(g.opts.Engine, resolver),
		outputs: sets.New[string](),
	}
}

// GenerateAll regenerates every language tree from scratch.
func (g *Generator) GenerateAll(ctx context.Context) (Stats, error) {
	start := time.Now()
	ctx = observability.WithStage(ctx, "generate")

	templates, err := g.FindTemplates()
	if err != nil {
		return Stats{}, err
	}
	observability.InfoContext(ctx, "Generating language-specific documentation",
		logfields.Count(len(templates)),
		logfields.Mode(string(g.opts.Mode)))

	p := g.newPass()
	for _, rel := range templates {
		if err := ctx.Err(); err != nil {
			return p.stats, err
		}
		if err := g.generateTemplate(ctx, p, rel); err != nil {
			return p.stats, err
		}
	}
	if err := g.copyCategories(ctx, p); err != nil {
		return p.stats, err
	}
	if err := g.writeRootCategories(p); err != nil {
		return p.stats, err
	}
	if err := g.removeStale(ctx, p); err != nil {
		return p.stats, err
	}
	p.stats.FragmentReads = p.store.Reads()

	observability.InfoContext(ctx, "Generation complete",
		logfields.Count(p.stats.Templates),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return p.stats, nil
}

// GenerateTemplate regenerates the outputs of one template, given relative to
// the templates root.
func (g *Generator) GenerateTemplate(ctx context.Context, rel string) (Stats, error) {
	p := g.newPass()
	err := g.generateTemplate(observability.WithStage(ctx, "generate"), p, filepath.ToSlash(rel))
	p.stats.FragmentReads = p.store.Reads()
	return p.stats, err
}

func (g *Generator) generateTemplate(ctx context.Context, p *pass, rel string) error {
	src := filepath.Join(g.opts.TemplatesDir, filepath.FromSlash(rel))
	source, err := os.ReadFile(src) // #nosec G304 -- template paths come from the templates walk
	if err != nil {
		return foundationerrors.FileSystemError("read template").
			WithCause(err).
			Fatal().
			WithContext("template", rel).
			Build()
	}

	header := g.header(rel)
	for i, lang := range g.opts.Languages {
		req := merge.Request{
			Template: rel,
			Source:   source,
			Mode:     g.opts.Mode,
			Language: lang.ID,
			Header:   header,
		}
		if g.opts.Mode == merge.ModeProduction && g.opts.Target != "" {
			req.Language = g.opts.Target
		}

		res, err := p.engine.Merge(observability.WithLanguage(ctx, lang.ID), req)
		if err != nil {
			return err
		}
		if i == 0 && res.Directives+res.Skipped == 0 {
			observability.WarnContext(ctx, "Template has no LanguageInclude directives; it is copied unchanged to every language",
				logfields.Template(rel))
		}
		for outcome, n := range res.Outcomes {
			for range n {
				g.recorder.IncDirective(lang.ID, outcome.String())
			}
		}

		out := g.OutputPath(lang.ID, rel)
		changed, err := writeIfChanged(out, res.Document)
		if err != nil {
			return err
		}
		p.outputs.Add(out)
		if changed {
			p.stats.Written++
			g.recorder.IncDocument(lang.ID, metrics.WriteWritten)
			observability.DebugContext(ctx, "Wrote document", logfields.Path(out), logfields.Language(lang.ID))
		} else {
			p.stats.Unchanged++
			g.recorder.IncDocument(lang.ID, metrics.WriteUnchanged)
		}
	}
	p.stats.Templates++
	observability.InfoContext(ctx, "Generated docs for template", logfields.Template(rel))
	return nil
}

// OutputPath returns the generated document of template rel for language.
func (g *Generator) OutputPath(language, rel string) string {
	rel = filepath.ToSlash(rel)
	dir, name := path.Split(rel)
	return filepath.Join(g.opts.DocsDir, language, filepath.FromSlash(dir), fragments.OutputBase(name)+OutputExtension)
}

// RemoveTemplateOutputs deletes every language's output of template rel and
// prunes directories left empty.
func (g *Generator) RemoveTemplateOutputs(ctx context.Context, rel string) (Stats, error) {
	var stats Stats
	for _, lang := range g.opts.Languages {
		out := g.OutputPath(lang.ID, rel)
		err := os.Remove(out)
		switch {
		case os.IsNotExist(err):
			continue
		case err != nil:
			return stats, foundationerrors.FileSystemError("remove generated document").
				WithCause(err).
				WithContext("path", out).
				Build()
		}
		stats.Removed++
		g.recorder.IncDocument(lang.ID, metrics.WriteRemoved)
		observability.InfoContext(ctx, "Removed generated document", logfields.Path(out))
		pruneEmptyParents(filepath.Dir(out), filepath.Join(g.opts.DocsDir, lang.ID))
	}
	return stats, nil
}

func (g *Generator) header(rel string) string {
	shown := path.Join(filepath.ToSlash(g.display(g.opts.TemplatesDir)), rel)
	return "{/*\n" +
		"  AUTO-GENERATED FILE - DO NOT EDIT\n" +
		"  This file is generated from: " + shown + "\n" +
		"  To make changes, edit the template file, then run: docsgen generate\n" +
		"*/}"
}

func (g *Generator) display(p string) string {
	if g.opts.Root == "" {
		return p
	}
	rel, err := filepath.Rel(g.opts.Root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}

// FindTemplates lists template paths relative to the templates root, slash
// separated and sorted. Names starting with `_` are partials and are skipped.
func (g *Generator) FindTemplates() ([]string, error) {
	root := g.opts.TemplatesDir
	if _, err := os.Stat(root); err != nil {
		cause := err
		if os.IsNotExist(err) {
			cause = fmt.Errorf("%w: %s: %w", derrors.ErrDocsPathNotFound, root, err)
		}
		return nil, foundationerrors.FileSystemError("templates directory not found: "+root).
			WithCause(cause).
			Fatal().
			WithContext("path", root).
			Build()
	}

	var out []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && docs.ShouldSkipDirectory(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsTemplateFile(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, foundationerrors.FileSystemError("walk templates").
			WithCause(err).
			Fatal().
			WithContext("path", root).
			Build()
	}
	sort.Strings(out)
	return out, nil
}

// IsTemplateFile reports whether a file name is a template.
func IsTemplateFile(name string) bool {
	if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range TemplateExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (g *Generator) templateExists(rel string) bool {
	info, err := os.Stat(filepath.Join(g.opts.TemplatesDir, filepath.FromSlash(rel)))
	return err == nil && !info.IsDir()
}

func (g *Generator) languageDir(id string) string {
	return filepath.Join(g.opts.DocsDir, id)
}

func wrapWrite(err error, p string) error {
	return foundationerrors.FileSystemError("write generated file").
		WithCause(fmt.Errorf("%s: %w", p, err)).
		Fatal().
		WithContext("path", p).
		Build()
}
