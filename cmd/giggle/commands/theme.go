package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gigglehq/giggle/internal/logfields"
	"github.com/gigglehq/giggle/internal/theme"
)

// ThemeCmd groups the theme subcommands.
type ThemeCmd struct {
	Install ThemeInstallCmd `cmd:"" help:"Install a theme from a git repository"`
	List    ThemeListCmd    `cmd:"" help:"List installed themes"`
}

// ThemeInstallCmd clones a theme repository into the themes directory.
type ThemeInstallCmd struct {
	Name   string `arg:"" help:"Name to install the theme under"`
	URL    string `arg:"" help:"Git repository URL of the theme"`
	Branch string `short:"b" help:"Branch to clone (default branch when empty)" default:""`
	Dir    string `short:"d" help:"Themes directory" default:"themes"`
}

func (t *ThemeInstallCmd) Run(_ *Global, _ *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dest, err := theme.Install(ctx, t.Dir, t.Name, t.URL, t.Branch)
	if err != nil {
		return err
	}
	slog.Info("Theme ready", slog.String("theme", t.Name), logfields.Path(dest))
	return nil
}

// ThemeListCmd prints the installed themes.
type ThemeListCmd struct {
	Dir string `short:"d" help:"Themes directory" default:"themes"`
}

func (t *ThemeListCmd) Run(_ *Global, _ *CLI) error {
	names, err := theme.List(t.Dir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No themes installed.")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
