package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/microsoft/teams-sdk/internal/docs"
	foundationerrors "github.com/microsoft/teams-sdk/internal/foundation/errors"
	"github.com/microsoft/teams-sdk/internal/logfields"
	"github.com/microsoft/teams-sdk/internal/metrics"
	"github.com/microsoft/teams-sdk/internal/observability"
)

// CategoryFile is the sidebar category file name.
const CategoryFile = "_category_.json"

// rootCategory is written to each language directory.
type rootCategory struct {
	Label       string  `json:"label"`
	Position    float64 `json:"position"`
	Collapsible bool    `json:"collapsible"`
	Collapsed   bool    `json:"collapsed"`
}

// CopyCategories copies every category file under the templates root into
// each language tree.
func (g *Generator) CopyCategories(ctx context.Context) (Stats, error) {
	p := g.newPass()
	err := g.copyCategories(ctx, p)
	return p.stats, err
}

func (g *Generator) copyCategories(ctx context.Context, p *pass) error {
	root := g.opts.TemplatesDir
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && docs.ShouldSkipDirectory(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != CategoryFile {
			return nil
		}
		relDir, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		if relDir == "." {
			relDir = ""
		}
		return g.copyCategory(ctx, p, path, filepath.ToSlash(relDir))
	})
}

func (g *Generator) copyCategory(ctx context.Context, p *pass, src, relDir string) error {
	data, err := os.ReadFile(src) // #nosec G304 -- found by the templates walk
	if err != nil {
		return foundationerrors.FileSystemError("read category file").
			WithCause(err).
			Fatal().
			WithContext("path", src).
			Build()
	}
	var category map[string]any
	if err := json.Unmarshal(data, &category); err != nil {
		return foundationerrors.ValidationError("invalid category file "+src).
			WithCause(err).
			WithContext("path", src).
			Build()
	}

	for _, lang := range g.opts.Languages {
		category["key"] = CategoryKey(lang.ID, relDir)
		out := filepath.Join(g.languageDir(lang.ID), filepath.FromSlash(relDir), CategoryFile)
		if err := g.writeJSON(p, lang.ID, out, category); err != nil {
			return err
		}
	}
	observability.DebugContext(ctx, "Copied category file to all language directories",
		logfields.Path(filepath.ToSlash(filepath.Join(relDir, CategoryFile))))
	return nil
}

// CategoryKey is the unique sidebar key of a copied category file.
func CategoryKey(language, relDir string) string {
	slug := strings.ReplaceAll(strings.Trim(filepath.ToSlash(relDir), "/"), "/", "-")
	if slug == "" {
		slug = "root"
	}
	return language + "-" + slug
}

func (g *Generator) writeRootCategories(p *pass) error {
	for _, lang := range g.opts.Languages {
		name := lang.Name
		if name == "" {
			name = lang.ID
		}
		category := rootCategory{
			Label:       name + " Guide",
			Position:    lang.Position,
			Collapsible: true,
			Collapsed:   false,
		}
		out := filepath.Join(g.languageDir(lang.ID), CategoryFile)
		if err := g.writeJSON(p, lang.ID, out, category); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeJSON(p *pass, language, out string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return foundationerrors.InternalError("encode category file").WithCause(err).Build()
	}

	changed, err := writeIfChanged(out, buf.Bytes())
	if err != nil {
		return err
	}
	p.outputs.Add(out)
	if changed {
		p.stats.Written++
		g.recorder.IncDocument(language, metrics.WriteWritten)
	} else {
		p.stats.Unchanged++
		g.recorder.IncDocument(language, metrics.WriteUnchanged)
	}
	return nil
}
