package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "marquee"

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Storage StorageConfig `mapstructure:"storage"`
	Player  PlayerConfig  `mapstructure:"player"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig holds the remote catalog connection settings
type CatalogConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Token        string        `mapstructure:"token"`    // v4 read access token (Bearer)
	Language     string        `mapstructure:"language"` // e.g. "en-US"
	Timeout      time.Duration `mapstructure:"timeout"`  // 0 leaves it to the transport
	RateLimit    float64       `mapstructure:"rate_limit"`
	Burst        int           `mapstructure:"burst"`
}

// CacheConfig holds the paged cache timings
type CacheConfig struct {
	StaleTime time.Duration `mapstructure:"stale_time"`
	GCTime    time.Duration `mapstructure:"gc_time"`
	Debounce  time.Duration `mapstructure:"debounce"`
}

// StorageConfig holds the local database location
type StorageConfig struct {
	Path string `mapstructure:"path"` // empty keeps the shortlist in memory only
}

// PlayerConfig holds the trailer player command
type PlayerConfig struct {
	Command string   `mapstructure:"command"` // empty uses the system opener
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			Language:     "en-US",
			RateLimit:    40,
			Burst:        20,
		},
		Cache: CacheConfig{
			StaleTime: 5 * time.Minute,
			GCTime:    10 * time.Minute,
			Debounce:  300 * time.Millisecond,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "marquee.db"),
		},
		Player: PlayerConfig{
			Args: []string{},
		},
		Logging: LoggingConfig{
			File:       filepath.Join(defaultDataPath(), "marquee.log"),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// DefaultConfigFile returns where SaveConfig writes when no file was given
func DefaultConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// newViper returns a viper instance with every key defaulted, so that
// MARQUEE_* environment variables reach nested fields on Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	setValues(DefaultConfig(), v.SetDefault)

	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setValues(cfg *Config, set func(key string, value any)) {
	set("catalog.base_url", cfg.Catalog.BaseURL)
	set("catalog.image_base_url", cfg.Catalog.ImageBaseURL)
	set("catalog.token", cfg.Catalog.Token)
	set("catalog.language", cfg.Catalog.Language)
	set("catalog.timeout", cfg.Catalog.Timeout.String())
	set("catalog.rate_limit", cfg.Catalog.RateLimit)
	set("catalog.burst", cfg.Catalog.Burst)

	set("cache.stale_time", cfg.Cache.StaleTime.String())
	set("cache.gc_time", cfg.Cache.GCTime.String())
	set("cache.debounce", cfg.Cache.Debounce.String())

	set("storage.path", cfg.Storage.Path)

	set("player.command", cfg.Player.Command)
	set("player.args", cfg.Player.Args)

	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
	set("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	set("logging.max_backups", cfg.Logging.MaxBackups)
}

// LoadConfig loads configuration from file and environment. An empty
// path searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(path != "" && errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)
	return cfg, nil
}

// SaveConfig writes cfg to path (DefaultConfigFile when empty)
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile()
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v := viper.New()
	setValues(cfg, v.Set)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	// The file holds the bearer token
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to restrict config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if a catalog token is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.Catalog.Token) != ""
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
