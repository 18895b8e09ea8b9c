package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppName names the xdg directories used for config and logs.
const AppName = "accountability"

// DefaultBaseURL is the orchestrator address when nothing else is configured.
const DefaultBaseURL = "http://localhost:8000"

// Config holds all client configuration.
type Config struct {
	// Analysis service
	API APIConfig `yaml:"api"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the analysis service endpoint.
type APIConfig struct {
	// BaseURL is joined with /process and /healthz at request time.
	BaseURL string `yaml:"base_url"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		UI: UIConfig{
			Theme: ThemeAuto,
		},
		Logging: LoggingConfig{
			Level:     "info",
			DebugMode: false,
		},
	}
}

// ConfigDir returns the xdg config directory for the client.
// On Linux: ~/.config/accountability
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// StateDir returns the xdg state directory, where logs are written.
// On Linux: ~/.local/state/accountability
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// DefaultConfigPath returns <ConfigDir>/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Load loads configuration from a YAML file, then applies a .env file in the
// working directory (if any) and environment overrides. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// .env is a convenience for local runs; real env vars win over it.
	_ = godotenv.Load()

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	// REACT_APP_API_URL is what the web build of this client read; keep
	// honouring it so one .env serves both.
	if u := os.Getenv("REACT_APP_API_URL"); u != "" {
		c.API.BaseURL = u
	}
	if u := os.Getenv("ACCT_API_URL"); u != "" {
		c.API.BaseURL = u
	}

	if theme := os.Getenv("ACCT_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}

	if os.Getenv("ACCT_DEBUG") == "1" {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}
	if dir := os.Getenv("ACCT_LOG_DIR"); dir != "" {
		c.Logging.Dir = dir
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api.base_url %q: %w", c.API.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api.base_url %q: scheme must be http or https", c.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid api.base_url %q: missing host", c.API.BaseURL)
	}

	if !IsValidTheme(c.UI.Theme) {
		return fmt.Errorf("invalid ui.theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}
	return nil
}

// LogDir returns the configured log directory or <StateDir>/logs.
func (c *Config) LogDir() string {
	if c.Logging.Dir != "" {
		return c.Logging.Dir
	}
	return filepath.Join(StateDir(), "logs")
}
