// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/lore-oracle/internal/domain/nlp"
	"github.com/ersonp/lore-oracle/internal/domain/textnorm"
)

const (
	// DefaultConfigDir is the directory name for lore configuration.
	DefaultConfigDir = ".lore"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultWorldsFile is the default worlds file name.
	DefaultWorldsFile = "worlds.yaml"
	// DefaultServerAddr is the listen address of `lore serve`.
	DefaultServerAddr = ":8080"
	// DefaultRequestTimeout bounds one HTTP request.
	DefaultRequestTimeout = 10 * time.Second
)

var (
	// reNonAlphanumeric matches characters that aren't alphanumeric or underscore.
	reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9_]`)
	// reMultipleUnderscores matches consecutive underscores.
	reMultipleUnderscores = regexp.MustCompile(`_+`)
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
	Analysis AnalysisConfig `yaml:"analysis,omitempty"`
	Log      LogConfig      `yaml:"log,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite relational database.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	// When empty, the per-world path from SQLitePathForWorld is used.
	Path string `yaml:"path,omitempty"`
}

// ServerConfig holds configuration for the HTTP API.
type ServerConfig struct {
	Addr           string        `yaml:"addr,omitempty"`
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"`
}

// AnalysisConfig tunes the question pipeline.
type AnalysisConfig struct {
	// FuzzyThreshold is the score an event must exceed to be a fuzzy hit.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold,omitempty"`
	// ObjectsEnabled turns on matching of the object catalog.
	ObjectsEnabled *bool `yaml:"objects_enabled,omitempty"`
	// LexiconFile replaces the built-in intent lexicon. Relative paths are
	// resolved against the project root.
	LexiconFile string `yaml:"lexicon_file,omitempty"`
}

// ObjectsOn reports whether the object catalog takes part in analysis.
// It defaults to true.
func (a AnalysisConfig) ObjectsOn() bool {
	return a.ObjectsEnabled == nil || *a.ObjectsEnabled
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `yaml:"level,omitempty"`
	Development bool   `yaml:"development,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           DefaultServerAddr,
			RequestTimeout: DefaultRequestTimeout,
		},
		Analysis: AnalysisConfig{
			FuzzyThreshold: nlp.DefaultFuzzyThreshold,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the .lore directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'lore worlds create' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Analysis.FuzzyThreshold < 0 || c.Analysis.FuzzyThreshold >= 1 {
		return fmt.Errorf("analysis.fuzzy_threshold must be in [0, 1), got %v", c.Analysis.FuzzyThreshold)
	}
	if c.Server.RequestTimeout < 0 {
		return fmt.Errorf("server.request_timeout must not be negative")
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if addr := os.Getenv("LORE_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("LORE_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if raw := os.Getenv("LORE_FUZZY_THRESHOLD"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("LORE_FUZZY_THRESHOLD: %w", err)
		}
		c.Analysis.FuzzyThreshold = v
	}
	return nil
}

// ConfigDir returns the path to the .lore config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// WorldsFilePath returns the path to the worlds file.
func WorldsFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultWorldsFile)
}

// Exists checks if a lore config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}

// SanitizeWorldName converts a world name to a valid directory name.
// Accents are folded, so "Cien Años" becomes "cien_anos".
func SanitizeWorldName(name string) string {
	name = textnorm.CleanOnly(name)

	// Replace spaces and hyphens with underscores
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	// Remove any characters that aren't alphanumeric or underscore
	name = reNonAlphanumeric.ReplaceAllString(name, "")

	// Remove consecutive underscores
	name = reMultipleUnderscores.ReplaceAllString(name, "_")

	// Trim leading/trailing underscores
	name = strings.Trim(name, "_")

	if name == "" {
		return "default"
	}

	return name
}

// WorldDir returns the directory path for a given world.
func WorldDir(basePath, worldName string) string {
	return filepath.Join(basePath, DefaultConfigDir, "worlds", SanitizeWorldName(worldName))
}

// SQLitePathForWorld returns the SQLite database path for a given world.
func SQLitePathForWorld(basePath, worldName string) string {
	return filepath.Join(WorldDir(basePath, worldName), "lore.db")
}

// DatabasePath returns the configured SQLite path, or the world's own
// database when none is configured.
func (c *Config) DatabasePath(basePath, worldName string) string {
	if c.SQLite.Path == "" {
		return SQLitePathForWorld(basePath, worldName)
	}
	if c.SQLite.Path == ":memory:" || filepath.IsAbs(c.SQLite.Path) {
		return c.SQLite.Path
	}
	return filepath.Join(basePath, c.SQLite.Path)
}
