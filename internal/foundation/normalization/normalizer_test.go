package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type buildMode string

const (
	modeDev  buildMode = "development"
	modeProd buildMode = "production"
)

func newModeNormalizer() *Normalizer[buildMode] {
	return NewNormalizer("mode", map[string]buildMode{
		"development": modeDev,
		"dev":         modeDev,
		"production":  modeProd,
		"prod":        modeProd,
	}, modeDev)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newModeNormalizer()

	tests := []struct {
		name     string
		input    string
		expected buildMode
	}{
		{"exact match", "production", modeProd},
		{"alias", "prod", modeProd},
		{"case insensitive", "PRODUCTION", modeProd},
		{"with spaces", "  dev  ", modeDev},
		{"invalid input", "staging", modeDev},
		{"empty", "", modeDev},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_WithError(t *testing.T) {
	n := newModeNormalizer()

	got, err := n.NormalizeWithError(" Prod ")
	require.NoError(t, err)
	assert.Equal(t, modeProd, got)

	got, err = n.NormalizeWithError("")
	require.NoError(t, err)
	assert.Equal(t, modeDev, got)

	_, err = n.NormalizeWithError("staging")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid mode "staging"`)
	assert.Contains(t, err.Error(), "[dev development prod production]")
}

func TestNormalizer_ValidKeysIsCopy(t *testing.T) {
	n := newModeNormalizer()
	keys := n.ValidKeys()
	keys[0] = "mutated"
	assert.Equal(t, "dev", n.ValidKeys()[0])
}
