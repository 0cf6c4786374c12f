package main

import (
	"github.com/alecthomas/kong"

	"github.com/gigglehq/giggle/cmd/giggle/commands"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("giggle"),
		kong.Description("A small static site generator: Markdown in, website out."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	err := ctx.Run(&commands.Global{}, &cli)
	ctx.FatalIfErrorf(err)
}
