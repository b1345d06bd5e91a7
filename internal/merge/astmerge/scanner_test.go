package astmerge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/microsoft/teams-sdk/internal/fragments"
	"github.com/microsoft/teams-sdk/internal/merge"
	"github.com/microsoft/teams-sdk/internal/merge/textmerge"
)

var corpus = map[string]string{
	"block":     "# T\n\n<LanguageInclude section=\"a\" />\n\ntext\n",
	"inline":    "Say <LanguageInclude section=\"b\" /> and <LanguageInclude section=\"c\" />.\n",
	"fenced":    "```mdx\n<LanguageInclude section=\"a\" />\n```\n\n<LanguageInclude section=\"b\" />\n",
	"code span": "Use `<LanguageInclude section=\"a\" />` or <LanguageInclude section=\"b\" />.\n",
	"comment":   "<!-- <LanguageInclude section=\"a\" /> -->\n\n<LanguageInclude section=\"b\" />\n",
	"list":      "- item\n\n  <LanguageInclude section=\"a\" />\n\n- next <LanguageInclude section=\"b\" />\n",
	"adjacent":  "before\n<LanguageInclude section=\"a\" />\nafter\n",
	"no attr":   "<LanguageInclude />\n",
	"emphasis":  "*see <LanguageInclude section=\"a\" />*\n",

	"multi-line block":   "<LanguageInclude\n  section=\"a\"\n/>\n",
	"multi-line inline":  "Say <LanguageInclude\nsection=\"a\" /> now.\n",
	"blank line in tag":  "<LanguageInclude\n\nsection=\"a\" />\n",
	"comment in html":    "<div>\n<!-- <LanguageInclude section=\"a\" /> -->\n</div>\n",
	"after comment":      "<!-- note --> <LanguageInclude section=\"a\" />\n",
	"list inline html":   "- Use <span><LanguageInclude section=\"a\" /></span> here\n",
	"list html block":    "- <div><LanguageInclude section=\"a\" /></div>\n",
	"multi-line in html": "<div>\n<LanguageInclude\nsection=\"a\" />\n</div>\n",
}

func TestScan_MatchesTextScanner(t *testing.T) {
	for name, body := range corpus {
		t.Run(name, func(t *testing.T) {
			want, err := textmerge.Scanner{}.Scan([]byte(body))
			require.NoError(t, err)
			got, err := NewScanner().Scan([]byte(body))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestScan_SkipsIndentedCode(t *testing.T) {
	body := "Paragraph.\n\n    <LanguageInclude section=\"a\" />\n"

	got, err := NewScanner().Scan([]byte(body))
	require.NoError(t, err)
	assert.Empty(t, got)

	text, err := textmerge.Scanner{}.Scan([]byte(body))
	require.NoError(t, err)
	assert.Len(t, text, 1)
}

func TestExtension_ReplacesDirectiveNodes(t *testing.T) {
	src := []byte("<LanguageInclude section=\"a\" />\n\nText <LanguageInclude section=\"b\" />.\n")
	md := goldmark.New(goldmark.WithExtensions(Extension))
	doc := md.Parser().Parse(text.NewReader(src))

	var kinds []gmast.NodeKind
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if entering && (n.Kind() == KindDirective || n.Kind() == KindDirectiveBlock) {
			kinds = append(kinds, n.Kind())
		}
		return gmast.WalkContinue, nil
	})
	assert.Equal(t, []gmast.NodeKind{KindDirectiveBlock, KindDirective}, kinds)
}

func TestMerge_BackendsProduceIdenticalDocuments(t *testing.T) {
	root := t.TempDir()
	for rel, content := range map[string]string{
		"guide/intro/typescript.incl.md": "<!-- greeting -->\nHello from TS.\n\n:::tip\nUse npm.\n:::\n\n<!-- setup -->\nRun npm install.\n",
		"guide/intro/csharp.incl.md":     "<!-- greeting -->\nN/A\n\n<!-- setup -->\nRun dotnet restore.\n",
	} {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	languages := []merge.Language{{ID: "typescript", Name: "TypeScript"}, {ID: "csharp", Name: "C#"}, {ID: "python", Name: "Python"}}
	template := "---\ntitle: Intro\n---\n\n# Intro\n\n<LanguageInclude section=\"greeting\" />\n\nInstall with <LanguageInclude section=\"setup\" /> today.\n\n<LanguageInclude\n  section=\"setup\"\n/>\n\n<div>\n<!-- <LanguageInclude section=\"greeting\" /> -->\n</div>\n\n```mdx\n<LanguageInclude section=\"setup\" />\n```\n"

	for _, req := range []merge.Request{
		{Mode: merge.ModeDevelopment},
		{Mode: merge.ModeProduction, Language: "typescript"},
		{Mode: merge.ModeProduction, Language: "csharp"},
		{Mode: merge.ModeProduction, Language: "python"},
	} {
		req.Template = "guide/intro.mdx"
		req.Source = []byte(template)
		req.Header = "{/* AUTO-GENERATED FILE - DO NOT EDIT */}"

		newResolver := func() *merge.Resolver {
			return merge.NewResolver(fragments.NewStore(), fragments.NewLocator(root), languages, root)
		}
		want, err := textmerge.New(newResolver()).Merge(context.Background(), req)
		require.NoError(t, err)
		got, err := New(newResolver()).Merge(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, string(want.Document), string(got.Document), "%s %s", req.Mode, req.Language)
		assert.Equal(t, want.Outcomes, got.Outcomes)
		assert.NotContains(t, string(want.Document), "<LanguageInclude\n")
		assert.Contains(t, string(want.Document), "<!-- <LanguageInclude section=\"greeting\" /> -->")
	}
}

func TestScanner_Name(t *testing.T) {
	assert.Equal(t, "ast", NewScanner().Name())
	assert.Equal(t, "text", textmerge.Scanner{}.Name())
}
