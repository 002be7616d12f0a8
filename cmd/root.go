package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chris-regnier/thankful/internal/config"
	"github.com/chris-regnier/thankful/internal/entry"
	"github.com/chris-regnier/thankful/internal/logging"
	"github.com/chris-regnier/thankful/internal/resources"
	"github.com/chris-regnier/thankful/internal/session"
	"github.com/chris-regnier/thankful/internal/storage"
	"github.com/chris-regnier/thankful/internal/storage/diskv"
	"github.com/chris-regnier/thankful/internal/storage/markdown"
	"github.com/chris-regnier/thankful/internal/storage/sqlite"
	"github.com/chris-regnier/thankful/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Version is set at build time.
var Version = "dev"

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	debugLog       bool
	appConfig      *config.Config
	store          *storage.Live
	strs           resources.Provider
	logger         = zap.NewNop()
	closeLogger    = func() {}

	// nowFunc is the clock used for "today".
	nowFunc = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "thankful",
	Short: "A gratitude journal for the terminal",
	Long: `thankful keeps one short gratitude entry per day.

Run without arguments to write today's entry. When stdout is not a terminal,
today's entry is printed instead.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}
		if err := ui.ValidatePreset(appConfig.Theme.Preset); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger, closeLogger, err = logging.New(logging.Options{
			Level: appConfig.LogLevel,
			Debug: debugLog,
			File:  appConfig.LogFile,
		})
		if err != nil {
			return err
		}

		bundle, err := resources.Load(appConfig.Locale, appConfig.StringsPath())
		if err != nil {
			return fmt.Errorf("loading strings: %w", err)
		}
		strs = bundle
		logger.Debug("strings loaded",
			zap.String("requested", appConfig.Locale),
			zap.String("locale", bundle.Locale()))

		repo, err := openRepository(appConfig)
		if err != nil {
			return err
		}
		store = storage.NewLive(repo)

		logger.Debug("storage ready",
			zap.String("backend", appConfig.Storage),
			zap.String("data_dir", appConfig.DataDir))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return showRun(cmd.Context(), os.Stdout, "")
		}
		return screenRun(cmd.Context(), "")
	},
}

func openRepository(cfg *config.Config) (storage.Repository, error) {
	switch cfg.Storage {
	case "markdown":
		s, err := markdown.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing markdown storage: %w", err)
		}
		return s, nil
	case "sqlite":
		s, err := sqlite.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing sqlite storage: %w", err)
		}
		return s, nil
	case "diskv":
		s, err := diskv.New(cfg.DataDir, diskv.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("initializing diskv storage: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage)
	}
}

// openSession opens an entry session for date (YYYY-MM-DD, empty for today)
// and waits for the stored entry to load. Callers must Close it.
func openSession(ctx context.Context, date string) (*session.Session, error) {
	if date == "" {
		date = entry.FormatDate(nowFunc())
	}
	sess, err := session.New(ctx, date, store, strs,
		session.WithClock(nowFunc),
		session.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	if err := sess.WaitLoaded(ctx); err != nil {
		sess.Close()
		return nil, fmt.Errorf("loading entry for %s: %w", date, err)
	}
	return sess, nil
}

// dateArg returns the optional leading date argument.
func dateArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// Execute runs the root command and releases storage afterwards. Errors are
// printed to stderr.
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	if store != nil {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("closing storage", zap.Error(cerr))
		}
		store = nil
	}
	closeLogger()
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (markdown|sqlite|diskv)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "enable debug logging")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
