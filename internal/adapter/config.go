package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Search   SearchConfig   `mapstructure:"search"`
	Geocoder GeocoderConfig `mapstructure:"geocoder"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Events   EventsConfig   `mapstructure:"events"`
	Store    StoreConfig    `mapstructure:"store"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SearchConfig holds the search endpoint for each content type
type SearchConfig struct {
	EventsURL string `mapstructure:"events_url"`
	NewsURL   string `mapstructure:"news_url"`
	VideosURL string `mapstructure:"videos_url"`
}

// GeocoderConfig holds the address lookup endpoint
type GeocoderConfig struct {
	URL       string `mapstructure:"url"`
	UserAgent string `mapstructure:"user_agent"` // Nominatim requires an identifying agent
}

// HTTPConfig holds transport settings shared by all outbound requests
type HTTPConfig struct {
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"` // 0 disables limiting
	Burst             int           `mapstructure:"burst"`
	UserAgent         string        `mapstructure:"user_agent"`
}

// EventsConfig holds defaults for event searches
type EventsConfig struct {
	DefaultZip  string  `mapstructure:"default_zip"`
	RadiusMiles float64 `mapstructure:"radius_miles"`
}

// StoreConfig holds local settings persistence
type StoreConfig struct {
	Path string `mapstructure:"path"` // empty = memory only
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			EventsURL: "https://search.berniesanders.tech/events_berniesanders_com/_search",
			NewsURL:   "https://search.berniesanders.tech/articles_en/berniesanders_com/_search",
			VideosURL: "https://search.berniesanders.tech/videos_en/_search",
		},
		Geocoder: GeocoderConfig{
			URL:       "https://nominatim.openstreetmap.org/search",
			UserAgent: "movement-cli",
		},
		HTTP: HTTPConfig{
			Timeout:           30 * time.Second,
			RequestsPerSecond: 4,
			Burst:             4,
			UserAgent:         "movement-cli",
		},
		Events: EventsConfig{
			RadiusMiles: 50,
		},
		Store: StoreConfig{
			Path: filepath.Join(defaultDataPath(), "movement.db"),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "movement.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the directory for logs and the settings database
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "movement")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "movement")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "movement")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "movement")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(defaultConfigPath(), ".")
}

// LoadConfigFrom reads config.yaml from the first of dirs that has one.
// MOVEMENT_* environment variables override file values.
func LoadConfigFrom(dirs ...string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("MOVEMENT")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	var err error
	if cfg.Store.Path, err = expandHome(cfg.Store.Path); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the fetch layer cannot work with
func (c *Config) Validate() error {
	if c.Search.EventsURL == "" || c.Search.NewsURL == "" || c.Search.VideosURL == "" {
		return fmt.Errorf("search URLs for events, news and videos are required")
	}
	if c.Geocoder.URL == "" {
		return fmt.Errorf("geocoder URL is required")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTP.Timeout)
	}
	if c.HTTP.RequestsPerSecond < 0 {
		return fmt.Errorf("http requests_per_second must not be negative")
	}
	if c.Events.RadiusMiles <= 0 {
		return fmt.Errorf("events radius_miles must be positive")
	}
	return nil
}
