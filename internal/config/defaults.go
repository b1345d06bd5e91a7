package config

// Default paths, relative to the configuration root.
const (
	DefaultTemplatesDir  = "src/pages/templates"
	DefaultFragmentsDir  = "src/components/include"
	DefaultDocsDir       = "docs/main"
	DefaultStaticDir     = "static"
	DefaultLLMsOutputDir = "static/llms_docs"
)

// DefaultSiteTitle is used in LLM export headers.
const DefaultSiteTitle = "Teams AI Library"

// DefaultPreamble is the LLM export preamble. It is rendered with
// text/template; .LangName and .Tips are available.
const DefaultPreamble = `> Microsoft Teams AI Library (v2) - A comprehensive framework for building AI-powered Teams applications using {{.LangName}}. Using this Library, you can easily build and integrate a variety of features in Microsoft Teams by building Agents or Tools. The documentation here helps by giving background information and code samples on how best to do this.

IMPORTANT THINGS TO REMEMBER:
- This Library is NOT based off of BotFramework (which the _previous_ version of the Teams AI Library was based on). This Library is a completely new framework. Use this guide to find snippets to drive your decisions.
- When scaffolding new applications, using the CLI is a lot simpler and preferred than doing it all by yourself. See the Quickstart guide for that.
{{- range .Tips}}
- {{.}}
{{- end}}

YOU MUST FOLLOW THE ABOVE GUIDANCE.`

const (
	defaultSummaryMaxLength = 100
	defaultSummaryMinLength = 20
)

// DefaultLanguages returns the built-in language set.
func DefaultLanguages() []LanguageConfig {
	return []LanguageConfig{
		{
			ID:       "typescript",
			Name:     "TypeScript",
			LLMsName: "Typescript",
			Position: 2.0,
			Tips: []string{
				"It's a good idea to build the application using `npm run build` and fix compile time errors to help ensure the app works as expected.",
				"The library uses typescript to help you make the right decisions when using the APIs. You may check type definitions and type checkers to make sure your code is correct.",
			},
		},
		{
			ID:       "csharp",
			Name:     "C#",
			LLMsName: "Dotnet (C#)",
			Position: 2.1,
			Tips: []string{
				"It's a good idea to build the application and fix compile time errors to help ensure the app works as expected.",
				"It is helpful to inspect NuGet packages folder to get exact types for a given namespace",
			},
		},
		{
			ID:       "python",
			Name:     "Python",
			LLMsName: "Python",
			Position: 2.2,
			Tips: []string{
				"It's a good idea to run `uv run typecheck` to make sure the code is correctly typed and fix any type errors.",
			},
		},
	}
}

// Default returns a configuration with every default applied, rooted at root.
func Default(root string) *Config {
	cfg := &Config{Root: root}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	p := &cfg.Paths
	setDefault(&p.Templates, DefaultTemplatesDir)
	setDefault(&p.Fragments, DefaultFragmentsDir)
	setDefault(&p.Docs, DefaultDocsDir)
	setDefault(&p.Static, DefaultStaticDir)
	setDefault(&p.LLMsOutput, DefaultLLMsOutputDir)

	if len(cfg.Languages) == 0 {
		cfg.Languages = DefaultLanguages()
	}
	for i := range cfg.Languages {
		l := &cfg.Languages[i]
		setDefault(&l.Name, l.ID)
		setDefault(&l.LLMsName, l.Name)
	}

	setDefault(&cfg.Mode, "development")
	setDefault(&cfg.Engine, string(EngineText))
	setDefault(&cfg.Site.Title, DefaultSiteTitle)
	setDefault(&cfg.LLMs.Preamble, DefaultPreamble)
	if cfg.LLMs.SummaryMaxLength <= 0 {
		cfg.LLMs.SummaryMaxLength = defaultSummaryMaxLength
	}
	if cfg.LLMs.SummaryMinLength <= 0 {
		cfg.LLMs.SummaryMinLength = defaultSummaryMinLength
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
