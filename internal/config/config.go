// Package config handles configuration loading for Lazy Susan.
// It supports XDG config paths, project-level overrides, and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for Lazy Susan.
type Config struct {
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Server     ServerConfig     `mapstructure:"server"`
	Models     ModelsConfig     `mapstructure:"models"`
	Timeouts   TimeoutsConfig   `mapstructure:"timeouts"`
	Intel      IntelConfig      `mapstructure:"intel"`
	History    HistoryConfig    `mapstructure:"history"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Roster     RosterConfig     `mapstructure:"roster"`
}

// OpenRouterConfig holds OpenRouter API settings.
type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Referer string `mapstructure:"referer"`
	Title   string `mapstructure:"title"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// ModelsConfig holds model selection settings.
type ModelsConfig struct {
	// Conductor runs the synthesis pass.
	Conductor string `mapstructure:"conductor"`
	// Intel is the search-capable model behind the news digest.
	Intel string `mapstructure:"intel"`
}

// TimeoutsConfig holds per-call timeout settings.
type TimeoutsConfig struct {
	Agent     time.Duration `mapstructure:"agent"`
	Synthesis time.Duration `mapstructure:"synthesis"`
}

// IntelConfig holds news digest settings.
type IntelConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
	// RedisAddr enables the shared Redis digest store when set;
	// empty means the in-process store.
	RedisAddr string `mapstructure:"redis_addr"`
}

// HistoryConfig holds session history settings.
type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RosterConfig holds agent panel settings.
type RosterConfig struct {
	// Path points at a YAML panel definition; empty uses the
	// built-in panel.
	Path string `mapstructure:"path"`
}

// Load loads configuration from XDG paths, project overrides, and
// environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (OPENROUTER_API_KEY, PORT)
// 2. Project config (.lazysusan.yaml in current directory or parent)
// 3. User config (~/.config/lazysusan/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	v.BindEnv("server.port", "PORT")
	v.BindEnv("intel.redis_addr", "REDIS_ADDR")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.OpenRouter.APIKey = expandEnv(cfg.OpenRouter.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.OpenRouter.APIKey = expandEnv(cfg.OpenRouter.APIKey)

	return cfg, nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("openrouter.api_key", "")
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.referer", "https://lazysusan.fly.dev")
	v.SetDefault("openrouter.title", "Lazy Susan Orchestrator")

	v.SetDefault("server.port", 3000)

	v.SetDefault("models.conductor", "anthropic/claude-opus-4")
	v.SetDefault("models.intel", "perplexity/sonar-pro")

	v.SetDefault("timeouts.agent", "90s")
	v.SetDefault("timeouts.synthesis", "3m")

	v.SetDefault("intel.ttl", "15m")
	v.SetDefault("intel.redis_addr", "")

	v.SetDefault("history.path", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("roster.path", "")
}

// getUserConfigDir returns the XDG config directory for Lazy Susan.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "lazysusan")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "lazysusan")
	}
	return filepath.Join(home, ".config", "lazysusan")
}

// findProjectConfig searches for .lazysusan.yaml in the current
// directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".lazysusan.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		OpenRouter: OpenRouterConfig{
			BaseURL: "https://openrouter.ai/api/v1",
			Referer: "https://lazysusan.fly.dev",
			Title:   "Lazy Susan Orchestrator",
		},
		Server: ServerConfig{
			Port: 3000,
		},
		Models: ModelsConfig{
			Conductor: "anthropic/claude-opus-4",
			Intel:     "perplexity/sonar-pro",
		},
		Timeouts: TimeoutsConfig{
			Agent:     90 * time.Second,
			Synthesis: 3 * time.Minute,
		},
		Intel: IntelConfig{
			TTL: 15 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
