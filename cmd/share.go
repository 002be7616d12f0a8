package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/chris-regnier/thankful/internal/ui"
	"github.com/spf13/cobra"
)

var shareCopy bool

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

var shareCmd = &cobra.Command{
	Use:   "share [date]",
	Short: "Print a shareable sentence for an entry",
	Long: `Print the entry as a single sentence such as
"Today I am thankful for a long walk". With --copy the sentence is also
copied to the clipboard.`,
	Example: `  thankful share
  thankful share 2024-11-28 --copy`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return shareRun(cmd.Context(), os.Stdout, dateArg(args), shareCopy)
	},
}

func shareRun(ctx context.Context, w io.Writer, date string, copyText bool) error {
	sess, err := openSession(ctx, date)
	if err != nil {
		return err
	}
	defer sess.Close()

	text := sess.ShareText()
	if copyText {
		if err := copyToClipboard(text); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.ShareResult{
			Date:   entry.FormatDate(sess.Date()),
			Text:   text,
			Copied: copyText,
		})
	}
	fmt.Fprintln(w, text)
	return nil
}

func init() {
	shareCmd.Flags().BoolVar(&shareCopy, "copy", false, "copy the sentence to the clipboard")
	rootCmd.AddCommand(shareCmd)
}
