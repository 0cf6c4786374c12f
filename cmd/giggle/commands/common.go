package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
)

// Global carries state shared by all subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command definition and global flags.
type CLI struct {
	SiteConfig  string           `short:"c" name:"site-config" help:"Site configuration file path" default:"site.yaml"`
	StyleConfig string           `short:"s" name:"style-config" help:"Style configuration file path" default:"style.yaml"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" aliases:"cook" help:"Build the site into the output directory"`
	Init    InitCmd    `cmd:"" help:"Scaffold site and style configuration files"`
	New     NewCmd     `cmd:"" help:"Scaffold a new content file with frontmatter"`
	Serve   ServeCmd   `cmd:"" help:"Build and serve the site locally, rebuilding on change"`
	Theme   ThemeCmd   `cmd:"" help:"Install and list themes"`
	History HistoryCmd `cmd:"" help:"Show recent build history"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(c.Verbose),
	}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel honors GIGGLE_LOG_LEVEL, with --verbose as a convenience
// for debug.
func parseLogLevel(verbose bool) slog.Level {
	switch strings.ToLower(os.Getenv("GIGGLE_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	}
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// styleConfigPath treats a missing default style file as "no style config";
// an explicitly given path is always passed through so its absence fails
// loudly.
func styleConfigPath(path string) string {
	if path != "style.yaml" {
		return path
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ""
	}
	return path
}
