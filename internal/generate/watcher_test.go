package generate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/teams-sdk/internal/merge"
	"github.com/microsoft/teams-sdk/internal/testutil/testutils"
)

func newTestWatcher(t *testing.T) (*Watcher, *Generator) {
	t.Helper()
	g := newProject(t, merge.ModeProduction)
	_, err := g.GenerateAll(context.Background())
	require.NoError(t, err)

	w, err := NewWatcher(g)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.watcher.Close() })
	return w, g
}

func TestWatcher_FragmentWriteRegeneratesTemplate(t *testing.T) {
	w, g := newTestWatcher(t)
	frag := filepath.Join(g.opts.FragmentsDir, "guide", "intro", "python.incl.md")
	testutils.WriteTree(t, g.opts.FragmentsDir, map[string]string{
		"guide/intro/python.incl.md": "<!-- greeting -->\nHello from Python.\n",
	})

	w.handle(context.Background(), fsnotify.Event{Name: frag, Op: fsnotify.Create})

	assert.Contains(t, testutils.ReadFile(t, g.OutputPath("python", "guide/intro.mdx")), "Hello from Python.")
}

func TestWatcher_TemplateRemoveDeletesOutputs(t *testing.T) {
	w, g := newTestWatcher(t)
	src := filepath.Join(g.opts.TemplatesDir, "guide", "intro.mdx")
	require.NoError(t, os.Remove(src))

	w.handle(context.Background(), fsnotify.Event{Name: src, Op: fsnotify.Remove})

	for _, lang := range []string{"typescript", "csharp", "python"} {
		assert.NoFileExists(t, g.OutputPath(lang, "guide/intro.mdx"))
	}
}

func TestWatcher_TemplateWrite(t *testing.T) {
	w, g := newTestWatcher(t)
	testutils.WriteTree(t, g.opts.TemplatesDir, map[string]string{
		"guide/intro.mdx": strings.Replace(introTemplate, "# Intro", "# Introduction", 1),
	})

	w.handle(context.Background(), fsnotify.Event{Name: filepath.Join(g.opts.TemplatesDir, "guide", "intro.mdx"), Op: fsnotify.Write})

	assert.Contains(t, testutils.ReadFile(t, g.OutputPath("csharp", "guide/intro.mdx")), "# Introduction")
}

func TestWatcher_DirectoryCreate(t *testing.T) {
	w, g := newTestWatcher(t)
	testutils.WriteTree(t, g.opts.TemplatesDir, map[string]string{
		"moved/a.mdx":     "# A\n",
		"moved/sub/b.mdx": "# B\n",
	})

	w.handle(context.Background(), fsnotify.Event{Name: filepath.Join(g.opts.TemplatesDir, "moved"), Op: fsnotify.Create})

	assert.FileExists(t, g.OutputPath("typescript", "moved/a.mdx"))
	assert.FileExists(t, g.OutputPath("python", "moved/sub/b.mdx"))
}

func TestWatcher_CategoryWriteRecopies(t *testing.T) {
	w, g := newTestWatcher(t)
	testutils.WriteTree(t, g.opts.TemplatesDir, map[string]string{
		"guide/_category_.json": `{"label": "Guides"}`,
	})

	w.handle(context.Background(), fsnotify.Event{Name: filepath.Join(g.opts.TemplatesDir, "guide", CategoryFile), Op: fsnotify.Write})

	assert.Contains(t, testutils.ReadFile(t, filepath.Join(g.opts.DocsDir, "typescript", "guide", CategoryFile)), `"label": "Guides"`)
}

func TestWatcher_IgnoresEditorFiles(t *testing.T) {
	w, g := newTestWatcher(t)
	swp := filepath.Join(g.opts.TemplatesDir, "guide", ".intro.mdx.swp")
	testutils.WriteTree(t, g.opts.TemplatesDir, map[string]string{"guide/.intro.mdx.swp": "junk"})

	w.handle(context.Background(), fsnotify.Event{Name: swp, Op: fsnotify.Write})

	assert.NoFileExists(t, filepath.Join(g.opts.DocsDir, "typescript", "guide", ".intro.mdx.mdx"))
}

func TestWatcher_Run(t *testing.T) {
	w, g := newTestWatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	testutils.WriteTree(t, g.opts.TemplatesDir, map[string]string{"guide/live.mdx": "# Live\n"})

	assert.Eventually(t, func() bool {
		_, err := os.Stat(g.OutputPath("csharp", "guide/live.mdx"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestShouldIgnoreEvent(t *testing.T) {
	for _, name := range []string{".DS_Store", "intro.mdx~", "intro.mdx.swp", "#intro.mdx#", "Thumbs.db"} {
		assert.True(t, shouldIgnoreEvent(filepath.Join("x", name)), name)
	}
	assert.False(t, shouldIgnoreEvent(filepath.Join("x", "intro.mdx")))
}

func TestWithin(t *testing.T) {
	root := filepath.FromSlash("/a/templates")
	assert.True(t, within(root, filepath.FromSlash("/a/templates/x.mdx")))
	assert.False(t, within(root, filepath.FromSlash("/a/templates-old/x.mdx")))
	assert.False(t, within(root, filepath.FromSlash("/a/fragments/x.incl.md")))
}
