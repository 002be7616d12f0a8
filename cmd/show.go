package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/thankful/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show the entry for a date",
	Long:  "Display the entry for a date (YYYY-MM-DD, default today) with rendered markdown.",
	Example: `  thankful show
  thankful show 2024-11-28
  thankful show --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showRun(cmd.Context(), os.Stdout, dateArg(args))
	},
}

func showRun(ctx context.Context, w io.Writer, date string) error {
	sess, err := openSession(ctx, date)
	if err != nil {
		return err
	}
	defer sess.Close()

	e := sess.Entry().Get()
	if jsonOutput {
		return ui.FormatJSON(w, e)
	}
	if e == nil {
		fmt.Fprintf(w, "No entry for %s yet. %s\n", sess.DateLabel(), sess.Hint())
		return nil
	}

	theme := ui.ResolveTheme(appConfig.Theme)
	var buf bytes.Buffer
	ui.FormatEntryFull(&buf, *e, sess.DateLabel(), theme.MarkdownStyle, min(appConfig.MaxWidth, 100))
	return ui.Pager{Theme: theme, MaxWidth: appConfig.MaxWidth}.Page(w, buf.String())
}

func init() {
	rootCmd.AddCommand(showCmd)
}
