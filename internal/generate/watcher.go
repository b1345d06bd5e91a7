package generate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/microsoft/teams-sdk/internal/docs"
	"github.com/microsoft/teams-sdk/internal/logfields"
	"github.com/microsoft/teams-sdk/internal/observability"
)

// Watcher regenerates outputs as templates and fragments change. Events are
// handled one at a time on the goroutine running Run.
type Watcher struct {
	gen     *Generator
	watcher *fsnotify.Watcher
}

// NewWatcher watches the templates and fragments roots of gen recursively.
func NewWatcher(gen *Generator) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	for _, root := range []string{gen.opts.TemplatesDir, gen.opts.FragmentsDir} {
		if err := addDirsRecursive(w, root); err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	return &Watcher{gen: gen, watcher: w}, nil
}

// Run handles events until ctx is canceled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()
	ctx = observability.WithStage(ctx, "watch")
	observability.InfoContext(ctx, "Watching for template and fragment changes",
		logfields.Path(w.gen.opts.TemplatesDir))

	for {
		select {
		case <-ctx.Done():
			observability.InfoContext(ctx, "Watcher stopped")
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			observability.WarnContext(ctx, "Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	observability.DebugContext(ctx, "File change detected", logfields.Path(ev.Name), logfields.Event(ev.Op.String()))

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			_ = addDirsRecursive(w.watcher, ev.Name)
			w.directoryCreated(ctx, ev.Name)
			return
		}
	}

	switch {
	case within(w.gen.opts.TemplatesDir, ev.Name):
		w.templateEvent(ctx, ev)
	case within(w.gen.opts.FragmentsDir, ev.Name):
		w.fragmentEvent(ctx, ev)
	}
}

func (w *Watcher) templateEvent(ctx context.Context, ev fsnotify.Event) {
	name := filepath.Base(ev.Name)
	changed := ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write)
	removed := ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)

	if name == CategoryFile {
		if changed || removed {
			w.report(ctx, "copy categories", func() (Stats, error) { return w.gen.CopyCategories(ctx) })
		}
		return
	}
	if !IsTemplateFile(name) {
		return
	}

	rel, err := filepath.Rel(w.gen.opts.TemplatesDir, ev.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)
	switch {
	case removed:
		w.report(ctx, "remove template outputs", func() (Stats, error) { return w.gen.RemoveTemplateOutputs(ctx, rel) })
	case changed:
		w.report(ctx, "regenerate template", func() (Stats, error) { return w.gen.GenerateTemplate(ctx, rel) })
	}
}

func (w *Watcher) fragmentEvent(ctx context.Context, ev fsnotify.Event) {
	if !(ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)) {
		return
	}
	templates, ok := w.gen.TemplatesForFragment(ev.Name)
	if !ok {
		return
	}
	if len(templates) == 0 {
		observability.WarnContext(ctx, "Fragment changed but no template reads it; it might be orphaned",
			logfields.File(ev.Name))
		return
	}
	w.report(ctx, "regenerate templates", func() (Stats, error) {
		var (
			total Stats
			errs  []error
		)
		for _, rel := range templates {
			observability.InfoContext(ctx, "Fragment changed, regenerating template",
				logfields.File(ev.Name), logfields.Template(rel))
			stats, err := w.gen.GenerateTemplate(ctx, rel)
			total.add(stats)
			if err != nil {
				errs = append(errs, err)
			}
		}
		return total, errors.Join(errs...)
	})
}

// directoryCreated generates templates inside a directory that appeared in
// one step, such as a moved folder.
func (w *Watcher) directoryCreated(ctx context.Context, dir string) {
	if !within(w.gen.opts.TemplatesDir, dir) {
		return
	}
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		w.templateEvent(ctx, fsnotify.Event{Name: p, Op: fsnotify.Create})
		return nil
	})
}

func (w *Watcher) report(ctx context.Context, action string, fn func() (Stats, error)) {
	stats, err := fn()
	if err != nil {
		observability.ErrorContext(ctx, "Watch update failed", logfields.Name(action), logfields.Error(err))
		return
	}
	observability.DebugContext(ctx, "Watch update done", logfields.Name(action),
		logfields.Count(stats.Written+stats.Removed))
}

// TemplatesForFragment returns the existing templates that read the fragment
// file p. ok is false when p is not a fragment file.
func (g *Generator) TemplatesForFragment(p string) ([]string, bool) {
	candidates, _, ok := g.locator.Templates(p, TemplateExtensions)
	if !ok {
		return nil, false
	}
	var out []string
	for _, rel := range candidates {
		if g.templateExists(rel) {
			out = append(out, rel)
		}
	}
	return out, true
}

func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && docs.ShouldSkipDirectory(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for editor and OS files that never affect output.
func shouldIgnoreEvent(p string) bool {
	base := filepath.Base(p)
	if strings.HasPrefix(base, ".") {
		return true
	}
	return strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		(strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#")) ||
		base == "Thumbs.db"
}
