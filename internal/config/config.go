package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// LocalConfigName is the per-site config file looked up in the working directory
const LocalConfigName = "mdsite.json"

// Config represents the mdsite configuration
type Config struct {
	ContentDir      string        `json:"content_dir"`
	StaticDir       string        `json:"static_dir"`
	Template        string        `json:"template"`
	OutputDir       string        `json:"output_dir"`
	BasePath        string        `json:"base_path"`
	LogFile         string        `json:"log_file"`
	StateFile       string        `json:"state_file"`
	Interval        time.Duration `json:"-"` // Custom JSON handling below
	Workers         int           `json:"workers"`
	Clean           bool          `json:"clean"`
	ExcludePatterns []string      `json:"exclude_patterns,omitempty"`
}

// rawConfig mirrors Config with the interval as a duration string
type rawConfig struct {
	ContentDir      string   `json:"content_dir"`
	StaticDir       string   `json:"static_dir"`
	Template        string   `json:"template"`
	OutputDir       string   `json:"output_dir"`
	BasePath        string   `json:"base_path"`
	LogFile         string   `json:"log_file"`
	StateFile       string   `json:"state_file"`
	Interval        string   `json:"interval"`
	Workers         int      `json:"workers"`
	Clean           *bool    `json:"clean,omitempty"`
	ExcludePatterns []string `json:"exclude_patterns,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		ContentDir:      "./content",
		StaticDir:       "./static",
		Template:        "./template.html",
		OutputDir:       "./docs",
		BasePath:        "/",
		LogFile:         "",
		StateFile:       StateFilePath(),
		Interval:        2 * time.Second,
		Workers:         4,
		Clean:           true,
		ExcludePatterns: []string{},
	}
}

// ConfigPath returns the path to the config file.
// A mdsite.json in the working directory wins over the user config.
// Can be overridden for testing
var ConfigPath = func() string {
	if _, err := os.Stat(LocalConfigName); err == nil {
		return LocalConfigName
	}
	return filepath.Join(xdg.ConfigHome, "mdsite", "config.json")
}

// StateFilePath returns the default path of the incremental build state.
// Can be overridden for testing
var StateFilePath = func() string {
	wd, err := os.Getwd()
	if err != nil {
		return filepath.Join(xdg.CacheHome, "mdsite", "state.json")
	}
	// One state file per site directory
	name := strings.Trim(strings.ReplaceAll(filepath.ToSlash(wd), "/", "_"), "_")
	return filepath.Join(xdg.CacheHome, "mdsite", name+".json")
}

// Load reads configuration from ConfigPath
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads configuration from path, falling back to defaults when the
// file does not exist
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := cfg.ExpandPaths(); err != nil {
				return nil, fmt.Errorf("failed to expand paths: %w", err)
			}
			return cfg, nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := DefaultConfig()
	if raw.ContentDir != "" {
		cfg.ContentDir = raw.ContentDir
	}
	if raw.StaticDir != "" {
		cfg.StaticDir = raw.StaticDir
	}
	if raw.Template != "" {
		cfg.Template = raw.Template
	}
	if raw.OutputDir != "" {
		cfg.OutputDir = raw.OutputDir
	}
	if raw.BasePath != "" {
		cfg.BasePath = raw.BasePath
	}
	if raw.StateFile != "" {
		cfg.StateFile = raw.StateFile
	}
	if raw.Workers != 0 {
		cfg.Workers = raw.Workers
	}
	if raw.Clean != nil {
		cfg.Clean = *raw.Clean
	}
	if raw.ExcludePatterns != nil {
		cfg.ExcludePatterns = raw.ExcludePatterns
	}
	cfg.LogFile = raw.LogFile

	if raw.Interval != "" {
		interval, err := time.ParseDuration(raw.Interval)
		if err != nil {
			return nil, fmt.Errorf("invalid interval format '%s': %w", raw.Interval, err)
		}
		cfg.Interval = interval
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to path
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	clean := c.Clean
	raw := rawConfig{
		ContentDir:      c.ContentDir,
		StaticDir:       c.StaticDir,
		Template:        c.Template,
		OutputDir:       c.OutputDir,
		BasePath:        c.BasePath,
		LogFile:         c.LogFile,
		StateFile:       c.StateFile,
		Interval:        c.Interval.String(),
		Workers:         c.Workers,
		Clean:           &clean,
		ExcludePatterns: c.ExcludePatterns,
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir cannot be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	if c.Template == "" {
		return fmt.Errorf("template cannot be empty")
	}
	if !strings.HasPrefix(c.BasePath, "/") || !strings.HasSuffix(c.BasePath, "/") {
		return fmt.Errorf("invalid base_path '%s': must start and end with /", c.BasePath)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	for _, pattern := range c.ExcludePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
	}
	if c.OutputDir == c.ContentDir || (c.StaticDir != "" && c.OutputDir == c.StaticDir) {
		return fmt.Errorf("output_dir must differ from content_dir and static_dir")
	}
	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	fields := []struct {
		name string
		ptr  *string
	}{
		{"content_dir", &c.ContentDir},
		{"static_dir", &c.StaticDir},
		{"template", &c.Template},
		{"output_dir", &c.OutputDir},
		{"log_file", &c.LogFile},
		{"state_file", &c.StateFile},
	}
	for _, f := range fields {
		*f.ptr, err = expandPath(*f.ptr)
		if err != nil {
			return fmt.Errorf("failed to expand %s: %w", f.name, err)
		}
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
