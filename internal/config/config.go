// Package config loads and validates site generator configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigTooLarge  = errors.New("config file exceeds maximum size")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config value")
)

// MaxConfigSize limits config input to prevent memory exhaustion.
const MaxConfigSize = 1 << 20

// Field limits.
const (
	MaxPathLength = 4096 // PATH_MAX on linux
	MaxURLLength  = 2048 // De facto URL limit
	MaxWorkers    = 64
)

// Accepted values for enumerated fields.
var (
	validEngines   = []string{"native", "goldmark"}
	validLogLevels = []string{"none", "normal", "debug"}
)

// appDir is the directory name under the user config dir searched by name.
const appDir = "go-mdsite"

// Config holds all configuration for a site build.
type Config struct {
	Content    string    `yaml:"content"`    // Markdown source directory
	Static     string    `yaml:"static"`     // Copied verbatim into Public
	Public     string    `yaml:"public"`     // Output directory, deleted on each build
	Template   string    `yaml:"template"`   // Embedded name or file path (empty = embedded default)
	BasePath   string    `yaml:"basePath"`   // Prefix for root-relative links, e.g. "/repo/"
	Engine     string    `yaml:"engine"`     // "native" or "goldmark"
	Workers    int       `yaml:"workers"`    // 0 = GOMAXPROCS
	CheckLinks bool      `yaml:"checkLinks"` // Audit generated pages for broken local links
	Log        LogConfig `yaml:"log"`
}

// LogConfig defines logging options.
type LogConfig struct {
	Level string `yaml:"level"` // "none", "normal", "debug"
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Content:  "content",
		Static:   "static",
		Public:   "public",
		Template: "",
		BasePath: "/",
		Engine:   "native",
		Workers:  0,
		Log:      LogConfig{Level: "normal"},
	}
}

// Validate checks enumerations, ranges and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., flag overrides, library users).
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"content", c.Content},
		{"static", c.Static},
		{"public", c.Public},
		{"template", c.Template},
	} {
		if err := validateFieldLength(f.name, f.value, MaxPathLength); err != nil {
			return err
		}
	}

	if c.Content == "" {
		return fmt.Errorf("%w: content: must not be empty", ErrInvalidConfig)
	}
	if c.Public == "" {
		return fmt.Errorf("%w: public: must not be empty", ErrInvalidConfig)
	}
	if filepath.Clean(c.Public) == filepath.Clean(c.Content) {
		return fmt.Errorf("%w: public: must differ from content (%q)", ErrInvalidConfig, c.Public)
	}
	if c.Static != "" && filepath.Clean(c.Public) == filepath.Clean(c.Static) {
		return fmt.Errorf("%w: public: must differ from static (%q)", ErrInvalidConfig, c.Public)
	}

	if err := validateFieldLength("basePath", c.BasePath, MaxURLLength); err != nil {
		return err
	}
	if err := validateBasePath(c.BasePath); err != nil {
		return err
	}

	if c.Engine != "" && !contains(validEngines, strings.ToLower(c.Engine)) {
		return fmt.Errorf("%w: engine: %q (must be %s)", ErrInvalidConfig, c.Engine, strings.Join(validEngines, " or "))
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidConfig, MaxWorkers, c.Workers)
	}

	if c.Log.Level != "" && !contains(validLogLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("%w: log.level: %q (must be one of %s)", ErrInvalidConfig, c.Log.Level, strings.Join(validLogLevels, ", "))
	}

	return nil
}

// validateBasePath accepts "/" style prefixes and full http(s) URLs.
// Both must end with a slash so joined links keep their separator.
func validateBasePath(basePath string) error {
	if basePath == "" {
		return nil
	}
	isURL := strings.HasPrefix(basePath, "http://") || strings.HasPrefix(basePath, "https://")
	if !isURL && !strings.HasPrefix(basePath, "/") {
		return fmt.Errorf("%w: basePath: %q must start with \"/\" or be an http(s) URL", ErrInvalidConfig, basePath)
	}
	if !strings.HasSuffix(basePath, "/") {
		return fmt.Errorf("%w: basePath: %q must end with \"/\"", ErrInvalidConfig, basePath)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Keys absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// Parse decodes YAML over DefaultConfig, rejecting unknown keys, then
// validates the result. Empty input yields the defaults.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxConfigSize)
	}

	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths returns the candidate files for a config name, in lookup
// order: .yaml then .yml, current directory then $XDG_CONFIG_HOME/go-mdsite/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
