package testutils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteTreeAndAssertions(t *testing.T) {
	root := t.TempDir()
	WriteTree(t, root, map[string]string{
		"a.md":        "alpha",
		"nested/b.md": "beta",
	})

	assert.Equal(t, "beta", ReadFile(t, filepath.Join(root, "nested", "b.md")))
	NewFileAssertions(t, root).
		AssertFileExists("a.md").
		AssertFileContains("nested/b.md", "bet").
		AssertNoFile("nested/c.md").
		AssertFileCount(".", 1).
		AssertFileCount("nested", 1)
}
