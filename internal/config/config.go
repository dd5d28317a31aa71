package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultAPIURL = "http://localhost:8000"

	EnvDevelopment = "development"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName               string        `mapstructure:"app_name"`
	Env                   string        `mapstructure:"app_env"`
	LogLevel              string        `mapstructure:"log_level"`
	APIURL                string        `mapstructure:"api_url"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	TokenStore     string `mapstructure:"token_store"`
	BBoltPath      string `mapstructure:"bbolt_path"`
	PublishersFile string `mapstructure:"publishers_file"`
	OutputFormat   string `mapstructure:"output_format"`
}

// IsDevelopment reports whether the app runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c != nil && strings.EqualFold(strings.TrimSpace(c.Env), EnvDevelopment)
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "storefront")
	v.SetDefault("app_env", EnvDevelopment)
	v.SetDefault("log_level", "warn")
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("request_timeout_seconds", 15)
	v.SetDefault("token_store", "bbolt")
	v.SetDefault("bbolt_path", defaultSessionPath())
	v.SetDefault("publishers_file", "")
	v.SetDefault("output_format", "json")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		return fmt.Errorf("invalid api_url (must not be empty)")
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	c.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second

	c.TokenStore = strings.ToLower(strings.TrimSpace(c.TokenStore))
	c.OutputFormat = strings.ToLower(strings.TrimSpace(c.OutputFormat))
	switch c.OutputFormat {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid output_format %q (expected json or yaml)", c.OutputFormat)
	}
	return nil
}

// defaultSessionPath places the token database under the user config dir when it is known.
func defaultSessionPath() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return "./data/session.db"
	}
	return filepath.Join(base, "storefront", "session.db")
}
