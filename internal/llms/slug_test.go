package llms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Custom Setup", "custom-setup"},
		{"  Getting   Started  ", "getting-started"},
		{"What's new in v2.0?", "whats-new-in-v20"},
		{"--a -- b--", "a-b"},
		{"in-depth-guides", "in-depth-guides"},
		{"C# & .NET", "c-net"},
		{"日本語", UntitledSlug},
		{"Bot\u00a0Setup\u2003Guide", "bot-setup-guide"},
		{"", UntitledSlug},
		{strings.Repeat("word ", 20), "word-word-word-word-word-word-word-word-word-word"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}

func TestSlug_FixedPoint(t *testing.T) {
	inputs := []string{
		"Custom Setup",
		"Ünïcödé Títle",
		"a" + strings.Repeat("-b", 40),
		strings.Repeat("x", 49) + " tail",
		"--- ---",
		"Tabs\tand\nnewlines",
		"İstanbul",
	}
	for _, in := range inputs {
		once := Slug(in)
		assert.Equal(t, once, Slug(once), in)
		assert.LessOrEqual(t, len(once), MaxSlugLength)
		assert.False(t, strings.HasPrefix(once, "-") || strings.HasSuffix(once, "-"), once)
	}
}
