package textmerge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sections(t *testing.T, body string) []string {
	t.Helper()
	occs, err := Scanner{}.Scan([]byte(body))
	require.NoError(t, err)
	out := make([]string, 0, len(occs))
	for _, o := range occs {
		assert.Equal(t, o.Raw, body[o.Start:o.End])
		out = append(out, o.Section)
	}
	return out
}

func TestScan_FindsBlockAndInlineDirectives(t *testing.T) {
	body := "# T\n\n<LanguageInclude section=\"a\" />\n\nSay <LanguageInclude section=\"b\" /> and <LanguageInclude section=\"c\" />.\n"
	assert.Equal(t, []string{"a", "b", "c"}, sections(t, body))
}

func TestScan_SkipsFencedCode(t *testing.T) {
	body := "```mdx\n<LanguageInclude section=\"a\" />\n```\n~~~\n<LanguageInclude section=\"b\" />\n~~~\n<LanguageInclude section=\"c\" />\n"
	assert.Equal(t, []string{"c"}, sections(t, body))
}

func TestScan_SkipsInlineCode(t *testing.T) {
	body := "Use `<LanguageInclude section=\"a\" />` or <LanguageInclude section=\"b\" />.\n"
	assert.Equal(t, []string{"b"}, sections(t, body))
}

func TestScan_SkipsHTMLComments(t *testing.T) {
	body := "<!-- <LanguageInclude section=\"a\" /> -->\n<!--\n<LanguageInclude section=\"b\" />\n-->\n<LanguageInclude section=\"c\" /> <!-- x -->\n"
	assert.Equal(t, []string{"c"}, sections(t, body))
}

func TestScan_ReportsMissingSectionAsEmpty(t *testing.T) {
	assert.Equal(t, []string{""}, sections(t, "<LanguageInclude />\n"))
}

func TestScan_MultiLineDirectives(t *testing.T) {
	block := "<LanguageInclude\n  section=\"a\"\n/>\n"
	assert.Equal(t, []string{"a"}, sections(t, block))

	inline := "Say <LanguageInclude\nsection=\"b\" /> now.\n"
	assert.Equal(t, []string{"b"}, sections(t, inline))
}

func TestScan_IgnoresTagsBrokenByBlankLine(t *testing.T) {
	assert.Empty(t, sections(t, "<LanguageInclude\n\nsection=\"a\" />\n"))
}

func TestScan_SkipsCommentsInsideHTML(t *testing.T) {
	body := "<div>\n<!-- <LanguageInclude section=\"a\" /> -->\n</div>\n"
	assert.Empty(t, sections(t, body))
}
