package llms

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/microsoft/teams-sdk/internal/config"
	"github.com/microsoft/teams-sdk/internal/docs"
	foundationerrors "github.com/microsoft/teams-sdk/internal/foundation/errors"
	"github.com/microsoft/teams-sdk/internal/logfields"
	"github.com/microsoft/teams-sdk/internal/metrics"
	"github.com/microsoft/teams-sdk/internal/observability"
)

// Export kinds, as recorded in metrics.
const (
	KindSmall    = "small"
	KindFull     = "full"
	KindDocument = "document"
)

// Language is an export target.
type Language struct {
	ID string
	// Name is shown in export headers.
	Name string
	Tips []string
}

// Options configures an Exporter.
type Options struct {
	DocsDir   string
	StaticDir string
	OutputDir string
	Languages []Language

	SiteTitle string
	SiteURL   string
	BaseURL   string

	// Preamble is a text/template executed with .Language, .LangName and .Tips.
	Preamble         string
	SummaryMinLength int
	SummaryMaxLength int
	OmitCode         bool
}

// OptionsFromConfig builds Options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	langs := make([]Language, 0, len(cfg.Languages))
	for _, l := range cfg.Languages {
		langs = append(langs, Language{ID: l.ID, Name: l.LLMsName, Tips: l.Tips})
	}
	return Options{
		DocsDir:          cfg.Path(cfg.Paths.Docs),
		StaticDir:        cfg.Path(cfg.Paths.Static),
		OutputDir:        cfg.Path(cfg.Paths.LLMsOutput),
		Languages:        langs,
		SiteTitle:        cfg.Site.Title,
		SiteURL:          cfg.Site.URL,
		BaseURL:          cfg.Site.BaseURL,
		Preamble:         cfg.LLMs.Preamble,
		SummaryMinLength: cfg.LLMs.SummaryMinLength,
		SummaryMaxLength: cfg.LLMs.SummaryMaxLength,
		OmitCode:         cfg.LLMs.OmitCodeExamples,
	}
}

// Stats summarizes an export run.
type Stats struct {
	Languages int
	Documents int
	Written   int
	Removed   int
}

// Bundle holds every export of one language.
type Bundle struct {
	Language Language
	Small    string
	Full     string
	// Docs maps export slugs to document contents.
	Docs map[string]string
}

// Exporter builds and writes LLM exports.
type Exporter struct {
	opts     Options
	preamble *template.Template
	recorder metrics.Recorder
}

// New returns an Exporter for opts. The preamble template must parse.
func New(opts Options) (*Exporter, error) {
	tmpl, err := template.New("preamble").Option("missingkey=error").Parse(opts.Preamble)
	if err != nil {
		return nil, foundationerrors.ConfigError("invalid llms preamble template").
			WithCause(err).
			Fatal().
			Build()
	}
	return &Exporter{opts: opts, preamble: tmpl, recorder: metrics.NoopRecorder{}}, nil
}

// WithRecorder sets the metrics recorder.
func (e *Exporter) WithRecorder(r metrics.Recorder) *Exporter {
	if r != nil {
		e.recorder = r
	}
	return e
}

// Export builds the exports of every language, then writes them. When any
// language fails to build nothing is written.
func (e *Exporter) Export(ctx context.Context) (Stats, error) {
	start := time.Now()
	ctx = observability.WithStage(ctx, "llms")

	bundles := make([]*Bundle, 0, len(e.opts.Languages))
	for _, lang := range e.opts.Languages {
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		b, err := e.Build(ctx, lang)
		if err != nil {
			return Stats{}, err
		}
		bundles = append(bundles, b)
	}

	var stats Stats
	for _, b := range bundles {
		if err := e.write(ctx, b, &stats); err != nil {
			return stats, err
		}
		stats.Languages++
		stats.Documents += len(b.Docs)
	}

	observability.InfoContext(ctx, "Generated LLM exports",
		logfields.Count(stats.Documents),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return stats, nil
}

// exportDoc is a processed document with its export name and content.
type exportDoc struct {
	*Document
	slug string
	// content has links relative to the per-language export directory.
	content string
}

// Build processes the documentation tree of lang into its exports without
// writing anything.
func (e *Exporter) Build(ctx context.Context, lang Language) (*Bundle, error) {
	ctx = observability.WithLanguage(ctx, lang.ID)
	root := filepath.Join(e.opts.DocsDir, lang.ID)

	tree, err := docs.BuildTree(root, docs.NewTitleRegistry())
	if err != nil {
		return nil, err
	}
	files, err := docs.CollectFiles(root, nil)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "collect documentation files").
			Fatal().
			WithContext("path", root).
			Build()
	}

	proc := NewProcessor(root, e.opts.StaticDir, e.opts.OmitCode)
	var documents []*exportDoc
	slugs := make(map[string]string, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, ok, err := proc.Process(ctx, f)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		d := &exportDoc{Document: doc, slug: doc.Slug()}
		slugs[f] = d.slug
		documents = append(documents, d)
	}
	docs.SortByOrder(documents, func(d *exportDoc) (int, string) { return d.Order, d.Title })

	exportDir := "docs_" + lang.ID
	base := siteBase(e.opts.SiteURL, e.opts.BaseURL, filepath.Base(e.opts.OutputDir))
	relative := NewLinkResolver(slugs, "")
	published, navigation := relative, relative.WithPrefix(exportDir+"/")
	if base != "" {
		published = relative.WithPrefix(base + exportDir + "/")
		navigation = published
	}

	bundle := &Bundle{Language: lang, Docs: make(map[string]string, len(documents))}
	for _, d := range documents {
		if d.content, err = d.Render(relative); err != nil {
			return nil, err
		}
		if d.content == "" {
			continue
		}
		content := d.content
		if published != relative {
			if content, err = d.Render(published); err != nil {
				return nil, err
			}
		}
		if _, taken := bundle.Docs[d.slug]; taken {
			observability.WarnContext(ctx, "Two documents export to the same file; the later one wins",
				logfields.Name(d.slug+ExportExtension), logfields.Path(d.Path))
		}
		bundle.Docs[d.slug] = content
	}

	preamble, err := e.renderPreamble(lang)
	if err != nil {
		return nil, err
	}

	var full strings.Builder
	full.WriteString(header(e.opts.SiteTitle, lang.Name, " (Complete)", preamble))
	renderFull(&full, groupSections(documents))
	bundle.Full = full.String()

	var small strings.Builder
	small.WriteString(header(e.opts.SiteTitle, lang.Name, "", preamble))
	(&smallRenderer{
		ctx:        ctx,
		b:          &small,
		links:      navigation,
		minSummary: e.opts.SummaryMinLength,
		maxSummary: e.opts.SummaryMaxLength,
	}).render(tree)
	bundle.Small = small.String()

	observability.DebugContext(ctx, "Built LLM exports", logfields.Count(len(bundle.Docs)))
	return bundle, nil
}

func (e *Exporter) renderPreamble(lang Language) (string, error) {
	var b strings.Builder
	err := e.preamble.Execute(&b, struct {
		Language string
		LangName string
		Tips     []string
	}{lang.ID, lang.Name, lang.Tips})
	if err != nil {
		return "", foundationerrors.ConfigError("render llms preamble").
			WithCause(err).
			Fatal().
			WithContext("language", lang.ID).
			Build()
	}
	return b.String(), nil
}

// write stores a bundle under the output directory and removes exports of
// documents that no longer exist.
func (e *Exporter) write(ctx context.Context, b *Bundle, stats *Stats) error {
	id := b.Language.ID
	outputs := []struct {
		path, content, kind string
	}{
		{filepath.Join(e.opts.OutputDir, "llms_"+id+ExportExtension), b.Small, KindSmall},
		{filepath.Join(e.opts.OutputDir, "llms_"+id+"_full"+ExportExtension), b.Full, KindFull},
	}

	docsDir := filepath.Join(e.opts.OutputDir, "docs_"+id)
	slugs := make([]string, 0, len(b.Docs))
	for slug := range b.Docs {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	for _, slug := range slugs {
		outputs = append(outputs, struct{ path, content, kind string }{
			filepath.Join(docsDir, slug+ExportExtension), b.Docs[slug], KindDocument,
		})
	}

	for _, o := range outputs {
		if err := writeFile(o.path, o.content); err != nil {
			return err
		}
		stats.Written++
		e.recorder.IncExport(id, o.kind)
	}
	observability.InfoContext(ctx, "Wrote LLM exports",
		logfields.Language(id),
		logfields.Path(e.opts.OutputDir),
		logfields.Count(len(outputs)))

	removed, err := removeStale(ctx, docsDir, b.Docs)
	stats.Removed += removed
	return err
}

func writeFile(p, content string) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return writeError(err, p)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil { // #nosec G306 -- exports are published as static files
		return writeError(err, p)
	}
	return nil
}

func writeError(err error, p string) error {
	return foundationerrors.FileSystemError("write LLM export").
		WithCause(err).
		Fatal().
		WithContext("path", p).
		Build()
}

func removeStale(ctx context.Context, dir string, keep map[string]string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, foundationerrors.FileSystemError("list LLM exports").WithCause(err).WithContext("path", dir).Build()
	}
	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ExportExtension {
			continue
		}
		if _, ok := keep[strings.TrimSuffix(name, ExportExtension)]; ok {
			continue
		}
		p := filepath.Join(dir, name)
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return removed, foundationerrors.FileSystemError("remove stale LLM export").
				WithCause(err).
				WithContext("path", p).
				Build()
		}
		removed++
		observability.DebugContext(ctx, "Removed stale LLM export", logfields.Path(p))
	}
	return removed, nil
}
