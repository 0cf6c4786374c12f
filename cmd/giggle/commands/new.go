package commands

import (
	"log/slog"
	"time"

	"github.com/gigglehq/giggle/internal/content"
	"github.com/gigglehq/giggle/internal/logfields"
)

// NewCmd scaffolds a content file with a frontmatter skeleton.
type NewCmd struct {
	Title string   `arg:"" help:"Title of the new content"`
	Dir   string   `short:"d" help:"Directory to create the file in" default:"content/blogs"`
	Tags  []string `help:"Tags for the new content"`
	Draft bool     `help:"Mark the new content as a draft"`
}

func (n *NewCmd) Run(_ *Global, _ *CLI) error {
	path, err := content.NewFile(n.Dir, n.Title, n.Tags, n.Draft, time.Now())
	if err != nil {
		return err
	}
	slog.Info("Created content file", logfields.Path(path))
	return nil
}
