package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/chris-regnier/thankful/internal/storage"
	"github.com/chris-regnier/thankful/internal/ui"
	"github.com/spf13/cobra"
)

var forceDelete bool

var deleteCmd = &cobra.Command{
	Use:   "delete <date>",
	Short: "Delete the entry for a date",
	Long:  "Permanently delete the entry for a date. Requires confirmation unless --force is used.",
	Example: `  thankful delete 2024-11-28
  thankful delete 2024-11-28 --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm := func(e entry.Entry) (bool, error) {
			fmt.Fprintf(os.Stdout, "Entry: %s (%s)\n", e.Key(), e.ID)
			fmt.Fprintf(os.Stdout, "Preview: %s\n\n", e.Preview(60))
			return ui.Confirm("Delete this entry? This cannot be undone.", ui.ResolveTheme(appConfig.Theme))
		}
		if forceDelete {
			confirm = nil
		}
		return deleteRun(cmd.Context(), os.Stdout, args[0], confirm)
	},
}

// deleteRun removes the entry for date. A nil confirm deletes without asking.
func deleteRun(ctx context.Context, w io.Writer, date string, confirm func(entry.Entry) (bool, error)) error {
	day, err := entry.ParseDate(date)
	if err != nil {
		return err
	}

	e, err := store.GetByDate(ctx, day)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no entry for %s: %w", date, err)
	}
	if err != nil {
		return err
	}

	if confirm != nil {
		ok, err := confirm(e)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	if err := store.Delete(ctx, day); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.DeleteResult{Date: entry.FormatDate(day), Deleted: true})
	}
	ui.FormatEntryDeleted(w, day)
	return nil
}

func init() {
	deleteCmd.Flags().BoolVar(&forceDelete, "force", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
