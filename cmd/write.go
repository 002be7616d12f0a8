package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/thankful/internal/editor"
	"github.com/chris-regnier/thankful/internal/logging"
	"github.com/chris-regnier/thankful/internal/session"
	"github.com/chris-regnier/thankful/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var writeWithEditor bool

var writeCmd = &cobra.Command{
	Use:   "write [date]",
	Short: "Write the entry for a date",
	Long: `Open the entry for a date (YYYY-MM-DD, default today) in the full-screen
editor. Keys: ctrl+s save, ctrl+p next prompt, ctrl+y copy share text,
esc quit (unsaved text is saved first).

With --editor the entry opens in $EDITOR instead.`,
	Example: `  thankful write
  thankful write 2024-11-28
  thankful write --editor`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if writeWithEditor {
			ed := editor.New(editor.ResolveEditor(appConfig.Editor))
			return editorRun(cmd.Context(), os.Stdout, dateArg(args), ed)
		}
		return screenRun(cmd.Context(), dateArg(args))
	},
}

// screenRun opens the entry screen. Logging moves to a file while the screen
// is up.
func screenRun(ctx context.Context, date string) error {
	fileLogger, closeLog, err := logging.New(logging.Options{
		Level: appConfig.LogLevel,
		Debug: debugLog,
		File:  appConfig.LogPath(),
	})
	if err != nil {
		return err
	}
	prev := logger
	logger = fileLogger
	defer func() {
		closeLog()
		logger = prev
	}()

	sess, err := openSession(ctx, date)
	if err != nil {
		return err
	}

	runErr := ui.RunEntryScreen(ctx, sess, ui.EntryScreenConfig{
		Theme:    ui.ResolveTheme(appConfig.Theme),
		MaxWidth: appConfig.MaxWidth,
	})
	if err := sess.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// textEditor edits text in an external program.
type textEditor interface {
	Edit(ctx context.Context, initial string) (string, bool, error)
}

func editorRun(ctx context.Context, w io.Writer, date string, ed textEditor) error {
	sess, err := openSession(ctx, date)
	if err != nil {
		return err
	}
	defer sess.Close()

	content, changed, err := ed.Edit(ctx, sess.Content().Get())
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(w, "No changes.")
		return nil
	}

	return saveAndReport(ctx, w, sess, content)
}

// saveAndReport saves content through the session and prints the stored entry.
func saveAndReport(ctx context.Context, w io.Writer, sess *session.Session, content string) error {
	sess.SetContent(content)
	sess.Save()
	if err := sess.Flush(ctx); err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}

	saved, err := store.GetByDate(ctx, sess.Date())
	if err != nil {
		return err
	}
	logger.Info("entry saved", zap.String("date", saved.Key()), zap.Int("length", len(saved.Content)))

	if jsonOutput {
		return ui.FormatJSON(w, saved)
	}
	ui.FormatEntrySaved(w, saved)
	return nil
}

func init() {
	writeCmd.Flags().BoolVar(&writeWithEditor, "editor", false, "open the entry in $EDITOR")
	rootCmd.AddCommand(writeCmd)
}
