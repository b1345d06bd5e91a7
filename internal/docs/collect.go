package docs

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	derrors "github.com/microsoft/teams-sdk/internal/docs/errors"
	"github.com/microsoft/teams-sdk/internal/logfields"
)

// DefaultExtensions are the content file extensions collected when none are given.
var DefaultExtensions = []string{".md", ".mdx"}

var skipDirs = []string{
	"node_modules",
	".git",
	"build",
	"dist",
	".next",
	".docusaurus",
	"coverage",
	"__pycache__",
}

// ShouldSkipDirectory reports whether a directory never contains documentation:
// tool and build output directories, any dot-directory, and extra names.
func ShouldSkipDirectory(name string, extra ...string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return slices.Contains(skipDirs, name) || slices.Contains(extra, name)
}

// CollectFiles recursively collects files under root whose extension is one of
// extensions (case-insensitive). The result is sorted. A missing root yields an
// empty result and a warning.
func CollectFiles(root string, extensions []string, exclude ...string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	if _, err := os.Stat(root); os.IsNotExist(err) {
		slog.Warn("Directory not found", logfields.Path(root))
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && ShouldSkipDirectory(d.Name(), exclude...) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if hasExtension(d.Name(), extensions) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrDocsDirWalkFailed, root, err)
	}

	sort.Strings(files)
	return files, nil
}

func hasExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// IndexFileNames lists the file names that describe their directory, in lookup order.
var IndexFileNames = []string{"README.md", "README.mdx", "index.md", "index.mdx"}

// IsIndexFile reports whether name is one of IndexFileNames.
func IsIndexFile(name string) bool {
	return slices.Contains(IndexFileNames, name)
}

// FindIndexFile returns the index file of dir, if any.
func FindIndexFile(dir string) (string, bool) {
	for _, name := range IndexFileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}
