package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values for the server configuration.
const (
	DefaultHTTPPort    = 8080
	DefaultLogLevel    = "info"
	DefaultTitle       = "Measurable Clot Probability Calculator"
	DefaultSubtitle    = "Enter the patient's lab values and duration of gross hematuria."
	DefaultGaugeWidth  = 500
	DefaultGaugeHeight = 50
)

// Config holds the server configuration parsed from the `server:` section of
// config.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds all server-side settings.
type ServerConfig struct {
	// HTTPPort is the port the form, REST API, WebSocket hub and metrics
	// endpoint listen on (default 8080).
	HTTPPort int `yaml:"http_port"`

	// LogLevel is one of: debug | info | warn | error. Applied on reload.
	LogLevel string `yaml:"log_level"`

	// Auth configures how the server authenticates REST and WebSocket clients.
	Auth AuthConfig `yaml:"auth"`

	// UI holds presentation settings for the web form. Applied on reload.
	UI UIConfig `yaml:"ui"`

	// WS controls the live-calculation WebSocket endpoint.
	WS WSConfig `yaml:"ws"`
}

// AuthConfig controls client authentication for /api/ and /ws/.
type AuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `yaml:"mode"`

	// KeyEnv is the name of the environment variable that holds the expected API key.
	KeyEnv string `yaml:"key_env"`

	// Header is the HTTP header name to read the key from.
	// Defaults to "x-api-key" if empty.
	Header string `yaml:"header"`
}

// Key returns the expected API key resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return "x-api-key"
}

// UIConfig holds web form presentation settings.
type UIConfig struct {
	Title       string `yaml:"title"`
	Subtitle    string `yaml:"subtitle"`
	GaugeWidth  int    `yaml:"gauge_width"`
	GaugeHeight int    `yaml:"gauge_height"`
}

// WSConfig controls the WebSocket hub.
type WSConfig struct {
	// Enabled mounts /ws/calculate when true (default true).
	Enabled bool `yaml:"enabled"`
}

// Level returns the slog level for LogLevel. Unknown values map to info;
// Load rejects them before they get here.
func (s ServerConfig) Level() slog.Level {
	lvl, err := parseLevel(s.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Load reads and parses the config file at path, returning the server configuration.
// Missing fields are filled with sensible defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("server config: read %q: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("server config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return defaults()
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort,
			LogLevel: DefaultLogLevel,
			UI: UIConfig{
				Title:       DefaultTitle,
				Subtitle:    DefaultSubtitle,
				GaugeWidth:  DefaultGaugeWidth,
				GaugeHeight: DefaultGaugeHeight,
			},
			WS: WSConfig{Enabled: true},
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", cfg.Server.HTTPPort)
	}
	if _, err := parseLevel(cfg.Server.LogLevel); err != nil {
		return fmt.Errorf("server.log_level: %w", err)
	}
	switch cfg.Server.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("server.auth.mode %q unknown: want apikey|none", cfg.Server.Auth.Mode)
	}
	if cfg.Server.UI.GaugeWidth <= 0 || cfg.Server.UI.GaugeHeight <= 0 {
		return fmt.Errorf("server.ui gauge size %dx%d must be positive",
			cfg.Server.UI.GaugeWidth, cfg.Server.UI.GaugeHeight)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown level %q: want debug|info|warn|error", s)
	}
}
