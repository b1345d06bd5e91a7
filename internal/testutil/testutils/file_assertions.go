// Package testutils holds filesystem fixtures shared by package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// WriteTree writes files, keyed by slash-separated paths relative to root,
// creating parent directories as needed.
func WriteTree(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
}

// ReadFile returns the contents of p and fails the test when it cannot be read.
func ReadFile(t testing.TB, p string) string {
	t.Helper()
	// #nosec G304 - test helper, paths are controlled by test code
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(data)
}

// FileAssertions provides chained assertions on files under a base directory.
type FileAssertions struct {
	t       testing.TB
	baseDir string
}

// NewFileAssertions creates a new file assertions helper.
func NewFileAssertions(t testing.TB, baseDir string) *FileAssertions {
	return &FileAssertions{
		t:       t,
		baseDir: baseDir,
	}
}

func (fa *FileAssertions) path(rel string) string {
	return filepath.Join(fa.baseDir, filepath.FromSlash(rel))
}

// AssertFileExists validates that a file exists.
func (fa *FileAssertions) AssertFileExists(rel string) *FileAssertions {
	fa.t.Helper()
	assert.FileExists(fa.t, fa.path(rel))
	return fa
}

// AssertNoFile validates that nothing exists at rel.
func (fa *FileAssertions) AssertNoFile(rel string) *FileAssertions {
	fa.t.Helper()
	assert.NoFileExists(fa.t, fa.path(rel))
	return fa
}

// AssertFileContains validates that a file contains expected content.
func (fa *FileAssertions) AssertFileContains(rel, expected string) *FileAssertions {
	fa.t.Helper()
	content, err := os.ReadFile(fa.path(rel))
	if !assert.NoError(fa.t, err) {
		return fa
	}
	assert.Contains(fa.t, string(content), expected, "file %s", rel)
	return fa
}

// AssertFileCount validates that a directory holds exactly n regular files.
func (fa *FileAssertions) AssertFileCount(rel string, n int) *FileAssertions {
	fa.t.Helper()
	entries, err := os.ReadDir(fa.path(rel))
	if !assert.NoError(fa.t, err) {
		return fa
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			count++
		}
	}
	assert.Equal(fa.t, n, count, "files in %s", rel)
	return fa
}
