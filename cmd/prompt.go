package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/thankful/internal/ui"
	"github.com/spf13/cobra"
)

var promptCount int

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Suggest writing prompts",
	Long:  "Print writing prompts. Prompts never repeat, so at most one full rotation is printed.",
	Example: `  thankful prompt
  thankful prompt -n 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return promptRun(cmd.Context(), os.Stdout, promptCount)
	},
}

var inspireCmd = &cobra.Command{
	Use:   "inspire",
	Short: "Print an inspirational quote",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspireRun(cmd.Context(), os.Stdout)
	},
}

func promptRun(ctx context.Context, w io.Writer, n int) error {
	sess, err := openSession(ctx, "")
	if err != nil {
		return err
	}
	defer sess.Close()

	n = max(n, 1)
	if k := sess.PromptCount(); k > 0 {
		n = min(n, k)
	}
	prompts := make([]string, 0, n)
	for range n {
		prompts = append(prompts, sess.DrawNextPrompt())
	}

	if jsonOutput {
		return ui.FormatJSON(w, prompts)
	}
	for _, p := range prompts {
		fmt.Fprintln(w, p)
	}
	return nil
}

func inspireRun(ctx context.Context, w io.Writer) error {
	sess, err := openSession(ctx, "")
	if err != nil {
		return err
	}
	defer sess.Close()

	if jsonOutput {
		return ui.FormatJSON(w, map[string]string{"inspiration": sess.Inspiration()})
	}
	fmt.Fprintln(w, sess.Inspiration())
	return nil
}

func init() {
	promptCmd.Flags().IntVarP(&promptCount, "count", "n", 1, "number of prompts")
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(inspireCmd)
}
