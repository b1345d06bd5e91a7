package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestH1Headings(t *testing.T) {
	body := []byte("Intro text\n\n# First Title\n\n```python\n# not a heading\n```\n\n## Sub\n\n# Second\n\nSetext\n======\n")

	headings := H1Headings(body)
	require.Len(t, headings, 2)
	assert.Equal(t, "First Title", headings[0].Text)
	assert.Equal(t, "Second", headings[1].Text)
	assert.True(t, strings.HasPrefix(string(body[headings[0].Offset:]), "# First Title"))

	title, ok := FirstH1(body)
	require.True(t, ok)
	assert.Equal(t, "First Title", title)
}

func TestFirstH1_Missing(t *testing.T) {
	_, ok := FirstH1([]byte("## Only a subheading\n\n```\n# code\n```\n"))
	assert.False(t, ok)
}

func TestFences(t *testing.T) {
	lines := []string{"text", "```ts", "code", "~~~", "```", "after", "~~~~", "```", "~~~~"}
	want := []bool{false, true, true, true, true, false, true, true, true}

	var f Fences
	for i, line := range lines {
		assert.Equal(t, want[i], f.Line(line), "line %d %q", i, line)
	}
	assert.False(t, f.Open())
}

func TestCodeSpans(t *testing.T) {
	line := "use `<LanguageInclude />` or ``a ` b`` but ` open"
	spans := CodeSpans(line)
	require.Len(t, spans, 2)
	assert.Equal(t, "`<LanguageInclude />`", line[spans[0][0]:spans[0][1]])
	assert.Equal(t, "``a ` b``", line[spans[1][0]:spans[1][1]])
	assert.Equal(t, "use  or  but ` open", StripInlineCodeSpans(line))
	assert.True(t, InSpans(spans, spans[0][0]+1))
	assert.False(t, InSpans(spans, 0))
}

func TestMaskComments(t *testing.T) {
	masked, open := MaskComments("a <!-- b --> c <!-- d\n", false)
	assert.True(t, open)
	assert.Equal(t, "a            c      \n", masked)

	masked, open = MaskComments("e --> f\n", true)
	assert.False(t, open)
	assert.Equal(t, "      f\n", masked)
}

func TestMaskCode(t *testing.T) {
	src := "a `b` c\n```\nfenced\n```\n<!-- x\ny --> z\n"

	masked := MaskCode([]byte(src))
	require.Len(t, masked, len(src))
	assert.Equal(t, "a     c\n   \n      \n   \n      \n      z\n", string(masked))
}

func TestFindInlineLinks(t *testing.T) {
	body := "See [Setup](setup.md) and ![img](pic.png).\n" +
		"```md\n[Inside](code.md)\n```\n" +
		"Inline `[x](span.md)` and [Ext](https://example.com/a).\n"

	links := FindInlineLinks(body)
	require.Len(t, links, 2)
	assert.Equal(t, "Setup", links[0].Text)
	assert.Equal(t, "setup.md", links[0].Destination)
	assert.Equal(t, "setup.md", body[links[0].DestStart:links[0].DestEnd])
	assert.Equal(t, "https://example.com/a", links[1].Destination)
	assert.Equal(t, "https://example.com/a", body[links[1].DestStart:links[1].DestEnd])
}

func TestRewriteLinks(t *testing.T) {
	body := "[See also](setup.md) and [Home](/docs) and [Again](setup.md#install)\n"
	out, err := RewriteLinks(body, func(l InlineLink) (string, bool) {
		if strings.HasPrefix(l.Destination, "/") {
			return "", false
		}
		return "custom-setup.txt", true
	})
	require.NoError(t, err)
	assert.Equal(t, "[See also](custom-setup.txt) and [Home](/docs) and [Again](custom-setup.txt)\n", out)
}

func TestTagAttr(t *testing.T) {
	tag := `<FileCodeBlock src="/generated-snippets/ts/app.ts" lang='ts' title="" />`

	src, ok := TagAttr(tag, "src")
	require.True(t, ok)
	assert.Equal(t, "/generated-snippets/ts/app.ts", src)

	lang, ok := TagAttr(tag, "LANG")
	require.True(t, ok)
	assert.Equal(t, "ts", lang)

	_, ok = TagAttr(tag, "title")
	assert.False(t, ok)
	_, ok = TagAttr(tag, "missing")
	assert.False(t, ok)
	_, ok = TagAttr("no tag here", "src")
	assert.False(t, ok)
}
