package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Export drivers
const (
	ExportFS = "fs"
	ExportS3 = "s3"
)

// Defaults
const (
	DefaultServerURL      = "http://localhost:5000"
	DefaultPollIntervalMs = 5000
	DefaultGraceWindowMs  = 5000
	DefaultTimeoutMs      = 10000
)

// Config represents the console configuration stored in .board/config.json.
type Config struct {
	ServerURL      string `json:"server_url"`
	SessionID      string `json:"session_id,omitempty"`
	Operator       string `json:"operator,omitempty"`
	PollIntervalMs int    `json:"poll_interval_ms"`
	GraceWindowMs  int    `json:"grace_window_ms"`
	TimeoutMs      int    `json:"timeout_ms"`
	LogLevel       string `json:"log_level,omitempty"`
	LogFormat      string `json:"log_format,omitempty"` // "console" or "json"
	CachePath      string `json:"cache_path,omitempty"` // empty: .board/cache.db
	Export         Export `json:"export"`
}

// Export configures where end-of-shift exports are stored.
// Driver is "fs" (Dir) or "s3" (Bucket, Prefix, Region, Endpoint).
type Export struct {
	Driver       string `json:"driver"`
	Dir          string `json:"dir,omitempty"`
	Bucket       string `json:"bucket,omitempty"`
	Prefix       string `json:"prefix,omitempty"`
	Region       string `json:"region,omitempty"`
	Endpoint     string `json:"endpoint,omitempty"`
	UsePathStyle bool   `json:"use_path_style,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		ServerURL:      DefaultServerURL,
		PollIntervalMs: DefaultPollIntervalMs,
		GraceWindowMs:  DefaultGraceWindowMs,
		TimeoutMs:      DefaultTimeoutMs,
		LogLevel:       "info",
		LogFormat:      "console",
		Export:         Export{Driver: ExportFS, Dir: "exports"},
	}
}

// Dir returns the configuration directory inside dir.
func Dir(dir string) string {
	return filepath.Join(dir, ".board")
}

// LoadConfig reads .board/config.json from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(Dir(dir), "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Load resolves the effective configuration: defaults, then the config file
// in dir if present, then BOARD_* environment variables.
func Load(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	boardDir := Dir(dir)
	if err := os.MkdirAll(boardDir, 0755); err != nil {
		return fmt.Errorf("failed to create .board dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(boardDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from environment variables looked up through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("BOARD_SERVER_URL", &c.ServerURL)
	str("BOARD_SESSION_ID", &c.SessionID)
	str("BOARD_OPERATOR", &c.Operator)
	str("BOARD_LOG_LEVEL", &c.LogLevel)
	str("BOARD_LOG_FORMAT", &c.LogFormat)
	str("BOARD_CACHE_PATH", &c.CachePath)
	str("BOARD_EXPORT_DRIVER", &c.Export.Driver)
	str("BOARD_EXPORT_DIR", &c.Export.Dir)
	str("BOARD_EXPORT_BUCKET", &c.Export.Bucket)
	str("BOARD_EXPORT_PREFIX", &c.Export.Prefix)
	str("BOARD_EXPORT_REGION", &c.Export.Region)
	str("BOARD_EXPORT_ENDPOINT", &c.Export.Endpoint)
	if v := getenv("BOARD_EXPORT_PATH_STYLE"); v != "" {
		c.Export.UsePathStyle = v == "true" || v == "1"
	}

	for key, dst := range map[string]*int{
		"BOARD_POLL_INTERVAL_MS": &c.PollIntervalMs,
		"BOARD_GRACE_WINDOW_MS":  &c.GraceWindowMs,
		"BOARD_TIMEOUT_MS":       &c.TimeoutMs,
	} {
		if err := num(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the configuration for values the console cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ServerURL) == "" {
		return fmt.Errorf("server_url is required")
	}
	if c.PollIntervalMs <= 0 {
		return fmt.Errorf("poll_interval_ms must be positive, got %d", c.PollIntervalMs)
	}
	if c.GraceWindowMs <= 0 {
		return fmt.Errorf("grace_window_ms must be positive, got %d", c.GraceWindowMs)
	}
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", c.TimeoutMs)
	}
	switch c.Export.Driver {
	case "", ExportFS:
	case ExportS3:
		if c.Export.Bucket == "" {
			return fmt.Errorf("export bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown export driver %q", c.Export.Driver)
	}
	return nil
}

// PollInterval returns the poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// GraceWindow returns the grace window as a duration.
func (c *Config) GraceWindow() time.Duration {
	return time.Duration(c.GraceWindowMs) * time.Millisecond
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// ResolveCachePath returns the cache database path relative to dir.
func (c *Config) ResolveCachePath(dir string) string {
	if c.CachePath == "" {
		return filepath.Join(Dir(dir), "cache.db")
	}
	if filepath.IsAbs(c.CachePath) {
		return c.CachePath
	}
	return filepath.Join(dir, c.CachePath)
}
