package markdown

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyEdits_SingleReplacement(t *testing.T) {
	src := []byte("See [Setup](setup.md) for details.\n")
	old := []byte("setup.md")
	idx := bytes.Index(src, old)
	require.NotEqual(t, -1, idx)

	out, err := ApplyEdits(src, []Edit{{Start: idx, End: idx + len(old), Replacement: []byte("custom-setup.txt")}})
	require.NoError(t, err)
	require.Equal(t, "See [Setup](custom-setup.txt) for details.\n", string(out))
}

func TestApplyEdits_MultipleReplacementsOutOfOrder(t *testing.T) {
	src := []byte(`A <LanguageInclude section="a" /> B <LanguageInclude section="b" />`)
	first := bytes.Index(src, []byte("<LanguageInclude"))
	second := bytes.LastIndex(src, []byte("<LanguageInclude"))

	out, err := ApplyEdits(src, []Edit{
		{Start: second, End: len(src), Replacement: []byte("two")},
		{Start: first, End: first + len(`<LanguageInclude section="a" />`), Replacement: []byte("one")},
	})
	require.NoError(t, err)
	require.Equal(t, "A one B two", string(out))
}

func TestApplyEdits_CRLFInputPreserved(t *testing.T) {
	src := []byte("A: ./old.md\r\nB: ./old.md\r\n")
	idx := bytes.Index(src, []byte("./old.md"))

	out, err := ApplyEdits(src, []Edit{{Start: idx, End: idx + len("./old.md"), Replacement: []byte("./new.md")}})
	require.NoError(t, err)
	require.Equal(t, "A: ./new.md\r\nB: ./old.md\r\n", string(out))
}

func TestApplyEdits_InsertionAndDeletion(t *testing.T) {
	src := []byte("---\ntitle: x\n---\nbody")
	out, err := ApplyEdits(src, []Edit{
		{Start: 17, End: 17, Replacement: []byte("import X;\n")},
		{Start: 17, End: 21, Replacement: nil},
	})
	require.NoError(t, err)
	require.Equal(t, "---\ntitle: x\n---\nimport X;\n", string(out))
}

func TestApplyEdits_NoEditsReturnsSource(t *testing.T) {
	src := []byte("unchanged")
	out, err := ApplyEdits(src, nil)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestApplyEdits_RejectsInvalidEdits(t *testing.T) {
	src := []byte("abcdef")
	_, err := ApplyEdits(src, []Edit{
		{Start: 1, End: 4, Replacement: []byte("X")},
		{Start: 3, End: 5, Replacement: []byte("Y")},
	})
	require.ErrorIs(t, err, ErrOverlappingEdits)

	_, err = ApplyEdits(src, []Edit{{Start: 4, End: 2}})
	require.Error(t, err)

	_, err = ApplyEdits(src, []Edit{{Start: 0, End: 99}})
	require.Error(t, err)
}
