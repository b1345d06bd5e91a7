package generate

import (
	"github.com/microsoft/teams-sdk/internal/config"
	"github.com/microsoft/teams-sdk/internal/merge"
	"github.com/microsoft/teams-sdk/internal/merge/astmerge"
	"github.com/microsoft/teams-sdk/internal/merge/textmerge"
)

// Language is a target language with its root category position.
type Language struct {
	merge.Language
	Position float64
}

// Options configures a Generator.
type Options struct {
	// Root is the project root; diagnostics and headers show paths relative to it.
	Root         string
	TemplatesDir string
	FragmentsDir string
	DocsDir      string
	Languages    []Language
	Mode         merge.Mode
	// Target overrides the language rendered into every output in production.
	// Empty renders each language's own content into its own tree.
	Target string
	Engine config.Engine
}

// OptionsFromConfig builds Options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config, mode merge.Mode, target string) (Options, error) {
	engine, err := config.ParseEngine(cfg.Engine)
	if err != nil {
		return Options{}, err
	}
	langs := make([]Language, 0, len(cfg.Languages))
	for _, l := range cfg.Languages {
		langs = append(langs, Language{Language: merge.Language{ID: l.ID, Name: l.Name}, Position: l.Position})
	}
	return Options{
		Root:         cfg.Root,
		TemplatesDir: cfg.Path(cfg.Paths.Templates),
		FragmentsDir: cfg.Path(cfg.Paths.Fragments),
		DocsDir:      cfg.Path(cfg.Paths.Docs),
		Languages:    langs,
		Mode:         mode,
		Target:       target,
		Engine:       engine,
	}, nil
}

func (o Options) mergeLanguages() []merge.Language {
	out := make([]merge.Language, 0, len(o.Languages))
	for _, l := range o.Languages {
		out = append(out, l.Language)
	}
	return out
}

func newEngine(engine config.Engine, resolver *merge.Resolver) merge.Engine {
	if engine == config.EngineAST {
		return astmerge.New(resolver)
	}
	return textmerge.New(resolver)
}
