package config

import (
	"fmt"
	"net/url"
	"regexp"
	"text/template"

	foundationerrors "github.com/microsoft/teams-sdk/internal/foundation/errors"
	"github.com/microsoft/teams-sdk/internal/merge"
	"github.com/microsoft/teams-sdk/internal/util/sets"
)

var languageID = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Validate checks a configuration with defaults applied.
func Validate(cfg *Config) error {
	if err := validatePaths(cfg); err != nil {
		return err
	}
	if err := validateLanguages(cfg); err != nil {
		return err
	}
	if _, err := merge.ParseMode(cfg.Mode); err != nil {
		return foundationerrors.ConfigError(err.Error()).WithContext("field", "mode").Build()
	}
	if _, err := ParseEngine(cfg.Engine); err != nil {
		return foundationerrors.ConfigError(err.Error()).WithContext("field", "engine").Build()
	}
	if err := validateSite(cfg.Site); err != nil {
		return err
	}
	if _, err := template.New("preamble").Parse(cfg.LLMs.Preamble); err != nil {
		return foundationerrors.ConfigError("invalid llms preamble template").
			WithCause(err).
			WithContext("field", "llms.preamble").
			Build()
	}
	if cfg.LLMs.SummaryMinLength >= cfg.LLMs.SummaryMaxLength {
		return foundationerrors.ConfigError(fmt.Sprintf("llms summary_min_length (%d) must be below summary_max_length (%d)",
			cfg.LLMs.SummaryMinLength, cfg.LLMs.SummaryMaxLength)).
			WithContext("field", "llms").
			Build()
	}
	return nil
}

func validatePaths(cfg *Config) error {
	paths := map[string]string{
		"paths.templates":   cfg.Paths.Templates,
		"paths.fragments":   cfg.Paths.Fragments,
		"paths.docs":        cfg.Paths.Docs,
		"paths.static":      cfg.Paths.Static,
		"paths.llms_output": cfg.Paths.LLMsOutput,
	}
	for field, p := range paths {
		if p == "" {
			return foundationerrors.ConfigError(field + " cannot be empty").WithContext("field", field).Build()
		}
	}
	if cfg.Path(cfg.Paths.Templates) == cfg.Path(cfg.Paths.Docs) {
		return foundationerrors.ConfigError("paths.templates and paths.docs must differ").
			WithContext("path", cfg.Paths.Docs).
			Build()
	}
	return nil
}

func validateLanguages(cfg *Config) error {
	seen := sets.New[string]()
	for i, l := range cfg.Languages {
		if !languageID.MatchString(l.ID) {
			return foundationerrors.ConfigError(fmt.Sprintf("invalid language id %q", l.ID)).
				WithContext("field", fmt.Sprintf("languages[%d].id", i)).
				Build()
		}
		if seen.Has(l.ID) {
			return foundationerrors.ConfigError(fmt.Sprintf("duplicate language id %q", l.ID)).
				WithContext("field", fmt.Sprintf("languages[%d].id", i)).
				Build()
		}
		seen.Add(l.ID)
	}
	return nil
}

func validateSite(site SiteConfig) error {
	if site.URL == "" {
		return nil
	}
	u, err := url.Parse(site.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return foundationerrors.ConfigError(fmt.Sprintf("site.url must be an absolute http(s) URL: %q", site.URL)).
			WithContext("field", "site.url").
			Build()
	}
	return nil
}
