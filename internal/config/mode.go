package config

import (
	"os"
	"strings"

	foundationerrors "github.com/microsoft/teams-sdk/internal/foundation/errors"
	"github.com/microsoft/teams-sdk/internal/foundation/normalization"
	"github.com/microsoft/teams-sdk/internal/merge"
)

// Engine names a merge backend.
type Engine string

const (
	EngineText Engine = "text"
	EngineAST  Engine = "ast"
)

var engineNormalizer = normalization.NewNormalizer("engine", map[string]Engine{
	"text":     EngineText,
	"regex":    EngineText,
	"ast":      EngineAST,
	"goldmark": EngineAST,
}, EngineText)

// ParseEngine parses an engine name; empty means text.
func ParseEngine(raw string) (Engine, error) {
	return engineNormalizer.NormalizeWithError(raw)
}

// ModeEnv overrides the configured mode.
const ModeEnv = "DOCSGEN_MODE"

// ResolveMode picks the generation mode: flag, then DOCSGEN_MODE, then
// NODE_ENV=production, then the configured mode.
func (c *Config) ResolveMode(flag string) (merge.Mode, error) {
	raw := c.Mode
	switch {
	case flag != "":
		raw = flag
	case os.Getenv(ModeEnv) != "":
		raw = os.Getenv(ModeEnv)
	case strings.EqualFold(os.Getenv("NODE_ENV"), "production"):
		raw = string(merge.ModeProduction)
	}

	mode, err := merge.ParseMode(raw)
	if err != nil {
		return "", foundationerrors.ConfigError(err.Error()).
			WithContext("mode", raw).
			Build()
	}
	return mode, nil
}
