package commands

import (
	"context"
	"log/slog"

	"github.com/microsoft/teams-sdk/internal/config"
	"github.com/microsoft/teams-sdk/internal/llms"
	"github.com/microsoft/teams-sdk/internal/logfields"
	"github.com/microsoft/teams-sdk/internal/observability"
)

// LLMsCmd implements the 'llms' command.
type LLMsCmd struct{}

func (l *LLMsCmd) Run(global *Global, root *CLI) error {
	return root.run("llms", global, func(ctx context.Context, cfg *config.Config) error {
		exp, err := llms.New(llms.OptionsFromConfig(cfg))
		if err != nil {
			return err
		}
		stats, err := exp.WithRecorder(global.Recorder).Export(ctx)
		if err != nil {
			return err
		}
		observability.InfoContext(ctx, "LLM exports written",
			logfields.Path(cfg.Path(cfg.Paths.LLMsOutput)),
			slog.Int("languages", stats.Languages),
			slog.Int("documents", stats.Documents),
			slog.Int("written", stats.Written),
			slog.Int("removed", stats.Removed))
		return nil
	})
}
