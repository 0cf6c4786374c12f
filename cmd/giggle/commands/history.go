package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gigglehq/giggle/internal/history"
)

// HistoryCmd prints recent builds from the history database.
type HistoryCmd struct {
	Limit int    `short:"n" help:"Maximum number of builds to show" default:"10"`
	DB    string `name:"history-db" help:"Build history database path" default:".giggle/history.db"`
}

func (h *HistoryCmd) Run(_ *Global, _ *CLI) error {
	if _, err := os.Stat(h.DB); os.IsNotExist(err) {
		fmt.Println("No build history yet.")
		return nil
	}

	store, err := history.Open(h.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No build history yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tOUTCOME\tPAGES\tWARNINGS\tDURATION\tBUILD ID")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%dms\t%s\n",
			rec.StartedAt.Format("2006-01-02 15:04:05"),
			rec.Outcome, rec.Pages, rec.Warnings, rec.DurationMS, rec.BuildID)
	}
	return w.Flush()
}
