package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/microsoft/teams-sdk/cmd/docsgen/commands"
	foundationerrors "github.com/microsoft/teams-sdk/internal/foundation/errors"
	"github.com/microsoft/teams-sdk/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := commands.NewGlobal()
	ctx := kong.Parse(cli,
		kong.Name("docsgen"),
		kong.Description("Generate language-specific documentation from shared templates and per-language fragments."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	err := ctx.Run()
	foundationerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
