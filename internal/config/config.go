package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ThemeConfig holds TUI color configuration.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// Config holds the application configuration.
type Config struct {
	Storage  string      `mapstructure:"storage"`
	DataDir  string      `mapstructure:"data_dir"`
	Editor   string      `mapstructure:"editor"`
	Locale   string      `mapstructure:"locale"`
	LogLevel string      `mapstructure:"log_level"`
	LogFile  string      `mapstructure:"log_file"`
	MaxWidth int         `mapstructure:"max_width"`
	Theme    ThemeConfig `mapstructure:"theme"`
}

// DefaultDataDir returns the default data directory (~/.thankful/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".thankful")
	}
	return filepath.Join(home, ".thankful")
}

// DefaultLocale returns the locale from the environment, LC_ALL taking
// precedence over LANG.
func DefaultLocale() string {
	if l := os.Getenv("LC_ALL"); l != "" {
		return l
	}
	return os.Getenv("LANG")
}

// StringsPath returns the path of the optional user string overrides.
func (c *Config) StringsPath() string {
	return filepath.Join(c.DataDir, "strings.toml")
}

// LogPath returns the log file used while the terminal UI owns the screen.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "thankful.log")
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("storage", "markdown")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("editor", "")
	v.SetDefault("locale", DefaultLocale())
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")
	v.SetDefault("max_width", 100)
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("theme.primary", "")
	v.SetDefault("theme.secondary", "")
	v.SetDefault("theme.accent", "")
	v.SetDefault("theme.muted", "")
	v.SetDefault("theme.danger", "")
	v.SetDefault("theme.background", "")
	v.SetDefault("theme.markdown_style", "")

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "thankful"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: THANKFUL_STORAGE, THANKFUL_DATA_DIR, etc.
	v.SetEnvPrefix("THANKFUL")
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error if it's not a "file not found" error
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
