package frontmatter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_CoercesScalarValues(t *testing.T) {
	input := "---\n" +
		"title: \"Getting Started\"\n" +
		"sidebar_label: 'Start'\n" +
		"sidebar_position: 3\n" +
		"draft: true\n" +
		"llms: false\n" +
		"summary: Learn the basics: setup and run\n" +
		"tags:\n" +
		"  - nested\n" +
		"---\n\n\n# Heading\n"

	res := Extract(input)
	require.True(t, res.HadFrontmatter)
	assert.Equal(t, "Getting Started", res.Fields["title"])
	assert.Equal(t, "Start", res.Fields["sidebar_label"])
	assert.Equal(t, 3, res.Fields["sidebar_position"])
	assert.Equal(t, true, res.Fields["draft"])
	assert.Equal(t, false, res.Fields["llms"])
	assert.Equal(t, "Learn the basics: setup and run", res.Fields["summary"])
	_, hasTags := res.Fields["tags"]
	assert.False(t, hasTags, "keys without an inline value are skipped")
	assert.Equal(t, "# Heading\n", res.Content)
}

func TestExtract_NoFrontmatter(t *testing.T) {
	input := "# Title\n\n---\nnot: frontmatter\n---\n"
	res := Extract(input)
	assert.False(t, res.HadFrontmatter)
	assert.Empty(t, res.Fields)
	assert.Equal(t, input, res.Content)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{`"quoted"`, "quoted"},
		{`'single'`, "single"},
		{`"`, `"`},
		{"true", true},
		{"false", false},
		{"42", 42},
		{"-1", "-1"},
		{"1.5", "1.5"},
		{"ignore-file", "ignore-file"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseValue(tt.in))
		})
	}
}

func TestFieldsAccessors(t *testing.T) {
	f := Parse("sidebar_position: 0\nsidebar_label: Label\ntitle: \"\"")
	assert.Equal(t, 0, f.Order())
	title, ok := f.Title()
	require.True(t, ok)
	assert.Equal(t, "Label", title)

	assert.Equal(t, DefaultOrder, Fields{}.Order())
	assert.Equal(t, DefaultOrder, Parse("sidebar_position: first").Order())
}

func TestIgnoreSemantics(t *testing.T) {
	tests := []struct {
		name        string
		llms        string
		fileIgnored bool
		sectionSkip bool
	}{
		{"absent", "", false, false},
		{"ignore", "llms: ignore", true, true},
		{"ignore-file", "llms: ignore-file", true, false},
		{"false", "llms: false", true, true},
		{"true", "llms: true", false, false},
		{"other", "llms: keep", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "---\n" + tt.llms + "\n---\n# T\n"
			assert.Equal(t, tt.fileIgnored, ShouldIgnore(content))
			assert.Equal(t, tt.sectionSkip, Extract(content).Fields.IgnoresSection())
		})
	}
}

func TestGetProperty_FromPathOrContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(path, []byte("---\nsummary: From disk\n---\n# Guide\n"), 0o600))

	assert.Equal(t, "From disk", GetProperty(path, "summary", ""))
	assert.Equal(t, "inline", GetProperty("---\nsummary: inline\n---\n", "summary", ""))
	assert.Equal(t, 999, GetProperty(path, "sidebar_position", 999))
	assert.Equal(t, "fallback", GetProperty(filepath.Join(dir, "missing.md"), "summary", "fallback"))
	assert.True(t, ShouldIgnore("---\nllms: ignore-file\n---\n"))
}
