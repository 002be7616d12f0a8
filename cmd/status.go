package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/thankful/internal/streak"
	"github.com/chris-regnier/thankful/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's status and your streak",
	Long: `Show whether today's entry has been written and how many consecutive
days have entries. An unwritten today does not break the streak.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusRun(cmd.Context(), os.Stdout)
	},
}

func statusRun(ctx context.Context, w io.Writer) error {
	st, err := streak.Compute(ctx, store, nowFunc())
	if err != nil {
		return fmt.Errorf("computing status: %w", err)
	}
	if jsonOutput {
		return ui.FormatJSON(w, st)
	}
	ui.FormatStatus(w, st)
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
