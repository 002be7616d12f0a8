package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var addReplace bool

var addCmd = &cobra.Command{
	Use:   "add [date] <text|->",
	Short: "Add a line to an entry",
	Long: `Append a line of text to the entry for a date (default today). Use "-"
to read the text from stdin. With --replace the text replaces the entry.`,
	Example: `  thankful add "the smell of rain"
  thankful add 2024-11-28 "family dinner"
  echo "a good book" | thankful add -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, text := "", args[0]
		if len(args) == 2 {
			date, text = args[0], args[1]
		}
		return addRun(cmd.Context(), os.Stdout, os.Stdin, date, text)
	},
}

func addRun(ctx context.Context, w io.Writer, stdin io.Reader, date, text string) error {
	if text == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("nothing to add")
	}

	sess, err := openSession(ctx, date)
	if err != nil {
		return err
	}
	defer sess.Close()

	content := text
	if existing := sess.Content().Get(); existing != "" && !addReplace {
		content = existing + "\n" + text
	}
	return saveAndReport(ctx, w, sess, content)
}

func init() {
	addCmd.Flags().BoolVar(&addReplace, "replace", false, "replace the entry instead of appending")
	rootCmd.AddCommand(addCmd)
}
