package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/chris-regnier/thankful/internal/storage"
	"github.com/chris-regnier/thankful/internal/ui"
	"github.com/spf13/cobra"
)

var (
	listFrom  string
	listTo    string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	Example: `  thankful list
  thankful list --from 2024-11-01 --to 2024-11-30
  thankful list --limit 7 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRun(cmd.Context(), os.Stdout, listFrom, listTo, listLimit)
	},
}

func listRun(ctx context.Context, w io.Writer, from, to string, limit int) error {
	opts := storage.ListOptions{Limit: limit}
	if from != "" {
		t, err := entry.ParseDate(from)
		if err != nil {
			return fmt.Errorf("invalid --from: %w", err)
		}
		opts.StartDate = &t
	}
	if to != "" {
		t, err := entry.ParseDate(to)
		if err != nil {
			return fmt.Errorf("invalid --to: %w", err)
		}
		opts.EndDate = &t
	}

	entries, err := store.List(ctx, opts)
	if err != nil {
		return fmt.Errorf("listing entries: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.ToSummaries(entries))
	}

	var buf bytes.Buffer
	ui.FormatEntryList(&buf, entries)
	return ui.Pager{Theme: ui.ResolveTheme(appConfig.Theme), MaxWidth: appConfig.MaxWidth}.Page(w, buf.String())
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "earliest date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "latest date (YYYY-MM-DD)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of entries")
	rootCmd.AddCommand(listCmd)
}
