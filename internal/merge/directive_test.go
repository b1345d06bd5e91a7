package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindDirectives(t *testing.T) {
	s := `a <LanguageInclude section="x" /> b <LanguageInclude section='y'/> <LanguageIncluded section="z" />`

	locs := FindDirectives(s)
	if assert.Len(t, locs, 2) {
		assert.Equal(t, `<LanguageInclude section="x" />`, s[locs[0][0]:locs[0][1]])
		assert.Equal(t, `<LanguageInclude section='y'/>`, s[locs[1][0]:locs[1][1]])
	}
}

func TestFindDirectives_AcrossLines(t *testing.T) {
	s := "<LanguageInclude\n  section=\"x\"\n/>\n<LanguageInclude\n\n  section=\"y\" />"

	locs := FindDirectives(s)
	if assert.Len(t, locs, 1) {
		assert.Equal(t, 0, locs[0][0])
		assert.Equal(t, "x", NewOccurrence([]byte(s), locs[0][0], locs[0][1]).Section)
	}
}

func TestSectionAttr(t *testing.T) {
	tests := []struct {
		tag    string
		want   string
		wantOK bool
	}{
		{`<LanguageInclude section="intro" />`, "intro", true},
		{`<LanguageInclude section='intro'/>`, "intro", true},
		{`<LanguageInclude Section="a-b" />`, "a-b", true},
		{`<LanguageInclude other="1" section="x" />`, "x", true},
		{`<LanguageInclude />`, "", false},
		{`<LanguageInclude section="" />`, "", false},
	}
	for _, tt := range tests {
		got, ok := SectionAttr(tt.tag)
		assert.Equal(t, tt.wantOK, ok, tt.tag)
		assert.Equal(t, tt.want, got, tt.tag)
	}
}

func TestAttr(t *testing.T) {
	v, ok := Attr(`<FileCodeBlock src="/samples/app.ts" lang="typescript" />`, "lang")
	assert.True(t, ok)
	assert.Equal(t, "typescript", v)

	_, ok = Attr(`<FileCodeBlock src="x" />`, "lang")
	assert.False(t, ok)
}

func TestNewOccurrence(t *testing.T) {
	body := []byte(`x <LanguageInclude section="s" /> y`)
	occ := NewOccurrence(body, 2, 33)

	assert.Equal(t, `<LanguageInclude section="s" />`, occ.Raw)
	assert.Equal(t, "s", occ.Section)
}
