package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	foundationerrors "github.com/microsoft/teams-sdk/internal/foundation/errors"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "docsgen.yaml"

// Config is the docsgen configuration.
type Config struct {
	Paths     PathsConfig      `yaml:"paths" toml:"paths"`
	Languages []LanguageConfig `yaml:"languages" toml:"languages"`
	// Mode is development or production; see ResolveMode for overrides.
	Mode string `yaml:"mode,omitempty" toml:"mode,omitempty"`
	// Engine selects the merge backend: text or ast.
	Engine  string        `yaml:"engine,omitempty" toml:"engine,omitempty"`
	Site    SiteConfig    `yaml:"site" toml:"site"`
	LLMs    LLMsConfig    `yaml:"llms" toml:"llms"`
	Logging LoggingConfig `yaml:"logging,omitempty" toml:"logging,omitempty"`

	// Root is the directory relative paths resolve against: the directory of
	// the loaded file, or the working directory.
	Root string `yaml:"-" toml:"-"`
}

// PathsConfig locates inputs and outputs.
type PathsConfig struct {
	Templates  string `yaml:"templates" toml:"templates"`
	Fragments  string `yaml:"fragments" toml:"fragments"`
	Docs       string `yaml:"docs" toml:"docs"`
	Static     string `yaml:"static" toml:"static"`
	LLMsOutput string `yaml:"llms_output" toml:"llms_output"`
}

// LanguageConfig describes one target language.
type LanguageConfig struct {
	ID   string `yaml:"id" toml:"id"`
	Name string `yaml:"name" toml:"name"`
	// LLMsName is the language name used in LLM export headers.
	LLMsName string `yaml:"llms_name,omitempty" toml:"llms_name,omitempty"`
	// Position orders the language's root sidebar category.
	Position float64  `yaml:"position" toml:"position"`
	Tips     []string `yaml:"tips,omitempty" toml:"tips,omitempty"`
}

// SiteConfig describes the published documentation site.
type SiteConfig struct {
	Title   string `yaml:"title" toml:"title"`
	URL     string `yaml:"url,omitempty" toml:"url,omitempty"`
	BaseURL string `yaml:"base_url,omitempty" toml:"base_url,omitempty"`
}

// LLMsConfig tunes LLM exports.
type LLMsConfig struct {
	// Preamble is a text/template rendered after each export header.
	Preamble         string `yaml:"preamble,omitempty" toml:"preamble,omitempty"`
	SummaryMaxLength int    `yaml:"summary_max_length,omitempty" toml:"summary_max_length,omitempty"`
	SummaryMinLength int    `yaml:"summary_min_length,omitempty" toml:"summary_min_length,omitempty"`
	// OmitCodeExamples replaces FileCodeBlock embeds with a placeholder.
	OmitCodeExamples bool `yaml:"omit_code_examples,omitempty" toml:"omit_code_examples,omitempty"`
}

// LoggingConfig sets log defaults; DOCSGEN_LOG_LEVEL and DOCSGEN_LOG_FORMAT override them.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty" toml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty" toml:"format,omitempty"`
}

// Load reads the configuration at path. An empty path looks for DefaultFile in
// the working directory and falls back to defaults when it is absent; an
// explicit path must exist. `.env` files next to the configuration are loaded
// first, and `${VAR}` references in the file are expanded. Files ending in
// `.toml` are parsed as TOML, anything else as YAML.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "resolve configuration path").
			WithContext("path", path).
			Fatal().
			Build()
	}
	root := filepath.Dir(abs)
	loadEnvFiles(root)

	cfg := &Config{Root: root}
	data, err := os.ReadFile(abs) // #nosec G304 -- path is the user-supplied config file
	switch {
	case os.IsNotExist(err) && !explicit:
		// defaults only
	case err != nil:
		return nil, foundationerrors.ConfigError(fmt.Sprintf("configuration file not found: %s", path)).
			WithCause(err).
			WithContext("path", path).
			Build()
	default:
		if err := decode(abs, expandEnv(data), cfg); err != nil {
			return nil, foundationerrors.ConfigError("failed to parse configuration").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		cfg.Root = root
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces `${VAR}` references with the variable's value. Bare `$`
// text, as in prices or shell snippets, is left alone.
func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(ref []byte) []byte {
		return []byte(os.Getenv(string(ref[2 : len(ref)-1])))
	})
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Path resolves p against the configuration root.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// Language returns the configured language with id.
func (c *Config) Language(id string) (LanguageConfig, bool) {
	for _, l := range c.Languages {
		if l.ID == id {
			return l, true
		}
	}
	return LanguageConfig{}, false
}

// LanguageIDs returns the configured language ids in order.
func (c *Config) LanguageIDs() []string {
	ids := make([]string, 0, len(c.Languages))
	for _, l := range c.Languages {
		ids = append(ids, l.ID)
	}
	return ids
}
