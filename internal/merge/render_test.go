package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/teams-sdk/internal/frontmatter"
)

var (
	ts = Language{ID: "typescript", Name: "TypeScript"}
	cs = Language{ID: "csharp", Name: "C#"}
	py = Language{ID: "python", Name: "Python"}
)

func TestRender_ProductionJoinsContentWithoutContainers(t *testing.T) {
	pieces := []Piece{{Language: ts, Outcome: OutcomeContent, Content: "one"}}

	text, containers := Render("s", pieces, ContextBlock, ModeProduction)
	assert.Equal(t, "one", text)
	assert.Zero(t, containers)
}

func TestRender_ProductionHidesDiagnostics(t *testing.T) {
	pieces := []Piece{
		{Language: ts, Outcome: OutcomeMissingFile, Fragment: "a/typescript.incl.md"},
		{Language: cs, Outcome: OutcomeMissingSection},
		{Language: py, Outcome: OutcomeNotApplicable},
	}

	for _, c := range []Context{ContextBlock, ContextInline} {
		text, containers := Render("s", pieces, c, ModeProduction)
		assert.Empty(t, text, c.String())
		assert.Zero(t, containers)
	}
}

func TestRender_DevelopmentBlock(t *testing.T) {
	pieces := []Piece{
		{Language: ts, Outcome: OutcomeContent, Content: "ts body"},
		{Language: cs, Outcome: OutcomeNotApplicable},
		{Language: py, Outcome: OutcomeMissingSection},
	}

	text, containers := Render("setup", pieces, ContextBlock, ModeDevelopment)
	assert.Equal(t, "<Language language=\"typescript\">\n\nts body\n\n</Language>\n"+
		"<Language language=\"python\">\n\n[Dev] Section \"setup\" not found in Python documentation\n\n</Language>", text)
	assert.Equal(t, 2, containers)
}

func TestRender_DevelopmentInline(t *testing.T) {
	pieces := []Piece{
		{Language: ts, Outcome: OutcomeContent, Content: "a\n  b"},
		{Language: cs, Outcome: OutcomeMissingFile, Fragment: "x/csharp.incl.md"},
	}

	text, containers := Render("s", pieces, ContextInline, ModeDevelopment)
	assert.Equal(t, `<Language language="typescript">a b</Language>`+
		`<Language language="csharp">[Dev] Documentation file for C# not found: x/csharp.incl.md</Language>`, text)
	assert.NotContains(t, text, "\n")
	assert.Equal(t, 2, containers)
}

func TestRender_LanguageNameFallsBackToID(t *testing.T) {
	pieces := []Piece{{Language: Language{ID: "go"}, Outcome: OutcomeMissingSection}}

	text, _ := Render("s", pieces, ContextInline, ModeDevelopment)
	assert.Contains(t, text, "not found in go documentation")
}

func TestAssemble(t *testing.T) {
	tests := []struct {
		name        string
		fm          string
		had         bool
		newline     string
		header      string
		body        string
		needsImport bool
		want        string
	}{
		{
			name: "body only",
			body: "\n\n# Title\n",
			want: "# Title\n",
		},
		{
			name:        "frontmatter import and header",
			fm:          "title: A\n",
			had:         true,
			header:      "{/* header */}",
			body:        "\n# A\n",
			needsImport: true,
			want:        "---\ntitle: A\n---\n\n" + ImportStatement + "\n\n{/* header */}\n\n# A\n",
		},
		{
			name: "empty frontmatter kept",
			had:  true,
			body: "# A\n",
			want: "---\n---\n\n# A\n",
		},
		{
			name:        "existing import not duplicated",
			body:        ImportStatement + "\n\n# A\n",
			needsImport: true,
			want:        ImportStatement + "\n\n# A\n",
		},
		{
			name:        "crlf template keeps its line endings",
			fm:          "title: A\r\n",
			had:         true,
			newline:     "\r\n",
			body:        "\r\n# A\r\n",
			needsImport: true,
			want:        "---\r\ntitle: A\r\n---\r\n\r\n" + ImportStatement + "\r\n\r\n# A\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := frontmatter.Style{Newline: tt.newline}
			got := Assemble([]byte(tt.fm), tt.had, style, tt.header, []byte(tt.body), tt.needsImport)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestClassify(t *testing.T) {
	body := []byte("text\n  <X/>  \nsay <X/> here\n<X/>")

	c, start, end := Classify(body, 7, 11)
	assert.Equal(t, ContextBlock, c)
	assert.Equal(t, "  <X/>  ", string(body[start:end]))

	c, _, _ = Classify(body, 18, 22)
	assert.Equal(t, ContextInline, c)

	c, start, end = Classify(body, 28, 32)
	assert.Equal(t, ContextBlock, c)
	assert.Equal(t, "<X/>", string(body[start:end]))
}

func TestParseMode(t *testing.T) {
	for raw, want := range map[string]Mode{
		"":            ModeDevelopment,
		"dev":         ModeDevelopment,
		"Development": ModeDevelopment,
		"prod":        ModeProduction,
		"production":  ModeProduction,
	} {
		got, err := ParseMode(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseMode("staging")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mode")
}
