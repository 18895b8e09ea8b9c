package main

import (
	"fmt"
	"os"
	"strconv"

	"accountability/cmd/acct/ui"
	"accountability/internal/config"

	"github.com/spf13/cobra"
)

var configForce bool

// configCmd groups configuration subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the client configuration",
}

// configShowCmd prints the effective configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration after env and flag overrides",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t := ui.NewSimpleTable("Configuration", []string{"Key", "Value"})
		t.AddRow("config file", resolvedConfigPath())
		t.AddRow("api.base_url", cfg.API.BaseURL)
		t.AddRow("ui.theme", cfg.UI.Theme)
		t.AddRow("logging.level", cfg.Logging.Level)
		t.AddRow("logging.debug_mode", strconv.FormatBool(cfg.Logging.DebugMode))
		t.AddRow("logging.dir", cfg.LogDir())

		fmt.Fprintln(cmd.OutOrStdout(), t.View(ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))))
		return nil
	},
}

// configInitCmd writes a default config file
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolvedConfigPath()
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
}
