package generate

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	foundationerrors "github.com/microsoft/teams-sdk/internal/foundation/errors"
	"github.com/microsoft/teams-sdk/internal/logfields"
	"github.com/microsoft/teams-sdk/internal/metrics"
	"github.com/microsoft/teams-sdk/internal/observability"
)

// isGenerated reports whether a file in a language tree is one the generator owns.
func isGenerated(name string) bool {
	return name == CategoryFile || strings.EqualFold(filepath.Ext(name), OutputExtension)
}

// removeStale deletes generated files of every language tree that p did not
// produce, then prunes empty directories.
func (g *Generator) removeStale(ctx context.Context, p *pass) error {
	for _, lang := range g.opts.Languages {
		dir := g.languageDir(lang.ID)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}

		var stale, dirs []string
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != dir {
					dirs = append(dirs, path)
				}
				return nil
			}
			if isGenerated(d.Name()) && !p.outputs.Has(path) {
				stale = append(stale, path)
			}
			return nil
		})
		if err != nil {
			return foundationerrors.FileSystemError("walk language directory").
				WithCause(err).
				Fatal().
				WithContext("path", dir).
				Build()
		}

		for _, path := range stale {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return foundationerrors.FileSystemError("remove stale file").
					WithCause(err).
					WithContext("path", path).
					Build()
			}
			p.stats.Removed++
			g.recorder.IncDocument(lang.ID, metrics.WriteRemoved)
			observability.InfoContext(ctx, "Removed stale generated file", logfields.Path(path))
		}

		// Deepest first so parents see their emptied children removed.
		sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })
		for _, d := range dirs {
			removeIfEmpty(d)
		}
	}
	return nil
}

// pruneEmptyParents removes dir and its ancestors while they are empty,
// stopping at stop.
func pruneEmptyParents(dir, stop string) {
	for dir != stop && strings.HasPrefix(dir, stop) {
		if !removeIfEmpty(dir) {
			return
		}
		dir = filepath.Dir(dir)
	}
}

func removeIfEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return false
	}
	return os.Remove(dir) == nil
}
