package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/microsoft/teams-sdk/internal/config"
	foundationerrors "github.com/microsoft/teams-sdk/internal/foundation/errors"
	"github.com/microsoft/teams-sdk/internal/generate"
	"github.com/microsoft/teams-sdk/internal/logfields"
	"github.com/microsoft/teams-sdk/internal/observability"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Watch    bool   `short:"w" help:"Keep running and regenerate as templates and fragments change"`
	Mode     string `name:"mode" help:"Generation mode: development or production (default: DOCSGEN_MODE, NODE_ENV, then config)"`
	Language string `name:"language" help:"In production, render this language's content into every language tree"`
}

func (g *GenerateCmd) Run(global *Global, root *CLI) error {
	return root.run("generate", global, func(ctx context.Context, cfg *config.Config) error {
		gen, err := g.generator(cfg, global)
		if err != nil {
			return err
		}

		stats, err := gen.GenerateAll(ctx)
		if err != nil {
			return err
		}
		observability.InfoContext(ctx, "Documentation generated",
			logfields.Mode(string(gen.Options().Mode)),
			slog.Int("templates", stats.Templates),
			slog.Int("written", stats.Written),
			slog.Int("unchanged", stats.Unchanged),
			slog.Int("removed", stats.Removed),
			slog.Int("fragment_reads", stats.FragmentReads))

		if !g.Watch {
			return nil
		}
		w, err := generate.NewWatcher(gen)
		if err != nil {
			return foundationerrors.WrapError(err, foundationerrors.CategoryWatch, "failed to start watcher").Build()
		}
		return w.Run(ctx)
	})
}

func (g *GenerateCmd) generator(cfg *config.Config, global *Global) (*generate.Generator, error) {
	mode, err := cfg.ResolveMode(g.Mode)
	if err != nil {
		return nil, err
	}
	if g.Language != "" {
		if _, ok := cfg.Language(g.Language); !ok {
			return nil, foundationerrors.ValidationError(fmt.Sprintf("unknown language: %s", g.Language)).
				WithContext("languages", strings.Join(cfg.LanguageIDs(), ", ")).
				Build()
		}
	}
	opts, err := generate.OptionsFromConfig(cfg, mode, g.Language)
	if err != nil {
		return nil, err
	}
	return generate.New(opts).WithRecorder(global.Recorder), nil
}
