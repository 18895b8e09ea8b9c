// Package main implements the acct CLI, the terminal client for the
// accountability analysis service.
//
// Running acct with no subcommand opens the interactive dashboard. The query,
// health, config and version subcommands are scriptable and never touch the
// alternate screen.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"accountability/cmd/acct/tui"
	"accountability/cmd/acct/ui"
	"accountability/internal/client"
	"accountability/internal/config"
	"accountability/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	verbose    bool
	apiURL     string
	configPath string
	timeout    time.Duration

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "acct",
	Short: "Accountability++ - terminal client for the accountability analysis service",
	Long: `acct sends a natural-language query to the accountability analysis
service and shows the returned narrative, the people and organisations it
names, and the reference links it was built from.

Run without arguments for the interactive dashboard, or use "acct query"
to print a single report to stdout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			// config init must be able to replace a broken file.
			if cmd != configInitCmd {
				return err
			}
			cfg = config.DefaultConfig()
		}

		// The interactive dashboard owns the terminal, so stderr logging
		// stays off there and file logging takes over.
		if cmd == cmd.Root() {
			logger = zap.NewNop()
			return nil
		}

		zapCfg := zap.NewProductionConfig()
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInteractive,
}

// loadConfig resolves configuration from file, environment and flags, in
// increasing order of precedence.
func loadConfig() error {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if apiURL != "" {
		loaded.API.BaseURL = apiURL
	}
	if verbose {
		loaded.Logging.DebugMode = true
		loaded.Logging.Level = "debug"
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded
	return nil
}

// newClient builds an API client from the resolved configuration.
func newClient(l *zap.Logger) *client.Client {
	return client.NewClientWithConfig(client.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: timeout,
		Logger:  l,
	})
}

// runInteractive launches the dashboard.
func runInteractive(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(cfg.Logging, cfg.LogDir()); err != nil {
		// File logging is optional; the dashboard still works without it.
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logging.CloseAll()
	if logging.IsDebugMode() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Debug logs: %s\n", cfg.LogDir())
	}

	boot := logging.Get(logging.CategoryBoot)
	boot.Info("starting interactive session",
		zap.String("version", version),
		zap.String("base_url", cfg.API.BaseURL),
		zap.String("theme", cfg.UI.Theme))

	c := newClient(logging.Get(logging.CategoryAPI))
	defer c.Close()

	// Theme edits in the config file apply without a restart.
	var updates <-chan *config.Config
	if w, err := config.NewWatcher(resolvedConfigPath(), boot); err != nil {
		boot.Warn("config watcher disabled", zap.Error(err))
	} else if err := w.Start(cmd.Context()); err != nil {
		boot.Warn("config watcher disabled", zap.Error(err))
		w.Stop()
	} else {
		defer w.Stop()
		updates = w.Updates()
	}

	return tui.Run(cmd.Context(), c, ui.NewStyles(ui.ThemeFor(cfg.UI.Theme)), updates)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Analysis service base URL (overrides config and environment)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: $XDG_CONFIG_HOME/accountability/config.yaml)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout (0 waits until the service responds)")

	rootCmd.AddCommand(
		queryCmd,
		healthCmd,
		configCmd,
		versionCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
