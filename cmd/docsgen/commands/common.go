package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/microsoft/teams-sdk/internal/config"
	"github.com/microsoft/teams-sdk/internal/logfields"
	"github.com/microsoft/teams-sdk/internal/metrics"
	"github.com/microsoft/teams-sdk/internal/observability"
)

// Global carries state shared by subcommands.
type Global struct {
	Registry *prom.Registry
	Recorder metrics.Recorder
	// Log receives log output; nil means stderr.
	Log io.Writer
}

// NewGlobal returns a Global recording into a fresh Prometheus registry.
func NewGlobal() *Global {
	reg := prom.NewRegistry()
	return &Global{Registry: reg, Recorder: metrics.NewPrometheusRecorder(reg)}
}

func (g *Global) logWriter() io.Writer {
	if g.Log == nil {
		return os.Stderr
	}
	return g.Log
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path (default: docsgen.yaml when present)"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics to this file on exit"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Generate per-language docs from templates and fragments"`
	LLMs     LLMsCmd     `cmd:"" name:"llms" help:"Export generated docs as LLM-friendly text files"`
}

// AfterApply runs after flag parsing; sets up logging until a configuration is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	slog.SetDefault(newLogger(g.logWriter(), c.Verbose, config.LoggingConfig{}))
	return nil
}

// newLogger builds the process logger: cfg, then the environment, then -v.
func newLogger(w io.Writer, verbose bool, cfg config.LoggingConfig) *slog.Logger {
	cfg = cfg.WithEnv()
	level := cfg.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// run loads the configuration and executes fn under a run ID, recording the
// run's duration and outcome. SIGINT and SIGTERM cancel the context.
func (c *CLI) run(command string, g *Global, fn func(ctx context.Context, cfg *config.Config) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runID := observability.NewRunID()
	ctx = observability.WithRunID(ctx, runID)
	ctx = observability.WithStage(ctx, command)

	start := time.Now()
	err := c.execute(ctx, g, fn)
	elapsed := time.Since(start)

	g.Recorder.ObserveRunDuration(command, elapsed)
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFailed
	}
	g.Recorder.IncRunOutcome(command, result)
	observability.DebugContext(ctx, "Run finished",
		slog.String("result", string(result)),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))

	if c.MetricsFile != "" && g.Registry != nil {
		if werr := metrics.WriteTextfile(c.MetricsFile, g.Registry); werr != nil {
			observability.WarnContext(ctx, "Failed to write metrics file",
				logfields.Path(c.MetricsFile), logfields.Error(werr))
		}
	}
	return err
}

func (c *CLI) execute(ctx context.Context, g *Global, fn func(ctx context.Context, cfg *config.Config) error) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(g.logWriter(), c.Verbose, cfg.Logging))
	observability.DebugContext(ctx, "Configuration loaded", logfields.Path(cfg.Root))
	return fn(ctx, cfg)
}
