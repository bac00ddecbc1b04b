package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ContentDir == "" {
		t.Error("Expected ContentDir to be set")
	}
	if cfg.OutputDir == "" {
		t.Error("Expected OutputDir to be set")
	}
	if cfg.Template == "" {
		t.Error("Expected Template to be set")
	}
	if cfg.StateFile == "" {
		t.Error("Expected StateFile to be set")
	}
	if cfg.BasePath != "/" {
		t.Errorf("Expected BasePath to be /, got %q", cfg.BasePath)
	}
	if cfg.Interval != 2*time.Second {
		t.Errorf("Expected Interval to be 2s, got %v", cfg.Interval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ContentDir: "/site/content",
			StaticDir:  "/site/static",
			Template:   "/site/template.html",
			OutputDir:  "/site/docs",
			BasePath:   "/",
			Interval:   time.Second,
			Workers:    1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{name: "empty content_dir", mutate: func(c *Config) { c.ContentDir = "" }, wantErr: true},
		{name: "empty output_dir", mutate: func(c *Config) { c.OutputDir = "" }, wantErr: true},
		{name: "empty template", mutate: func(c *Config) { c.Template = "" }, wantErr: true},
		{name: "base path without slash", mutate: func(c *Config) { c.BasePath = "blog" }, wantErr: true},
		{name: "base path without trailing slash", mutate: func(c *Config) { c.BasePath = "/blog" }, wantErr: true},
		{name: "nested base path", mutate: func(c *Config) { c.BasePath = "/blog/" }},
		{name: "zero interval", mutate: func(c *Config) { c.Interval = 0 }, wantErr: true},
		{name: "no workers", mutate: func(c *Config) { c.Workers = 0 }, wantErr: true},
		{name: "bad exclude pattern", mutate: func(c *Config) { c.ExcludePatterns = []string{"[x"} }, wantErr: true},
		{name: "output is content", mutate: func(c *Config) { c.OutputDir = c.ContentDir }, wantErr: true},
		{name: "output is static", mutate: func(c *Config) { c.OutputDir = c.StaticDir }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.json")

	cfg := &Config{
		ContentDir:      filepath.Join(tmpDir, "content"),
		StaticDir:       filepath.Join(tmpDir, "static"),
		Template:        filepath.Join(tmpDir, "template.html"),
		OutputDir:       filepath.Join(tmpDir, "public"),
		BasePath:        "/blog/",
		LogFile:         filepath.Join(tmpDir, "mdsite.log"),
		StateFile:       filepath.Join(tmpDir, "state.json"),
		Interval:        5 * time.Second,
		Workers:         2,
		Clean:           false,
		ExcludePatterns: []string{"_*", "*.draft.md"},
	}

	if err := cfg.Save(testConfigPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadFrom(testConfigPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.ContentDir != cfg.ContentDir {
		t.Errorf("ContentDir mismatch: got %s, want %s", loaded.ContentDir, cfg.ContentDir)
	}
	if loaded.OutputDir != cfg.OutputDir {
		t.Errorf("OutputDir mismatch: got %s, want %s", loaded.OutputDir, cfg.OutputDir)
	}
	if loaded.BasePath != cfg.BasePath {
		t.Errorf("BasePath mismatch: got %s, want %s", loaded.BasePath, cfg.BasePath)
	}
	if loaded.Interval != cfg.Interval {
		t.Errorf("Interval mismatch: got %v, want %v", loaded.Interval, cfg.Interval)
	}
	if loaded.Workers != 2 {
		t.Errorf("Workers mismatch: got %d, want 2", loaded.Workers)
	}
	if loaded.Clean {
		t.Error("Clean should stay false after round trip")
	}
	if len(loaded.ExcludePatterns) != 2 {
		t.Errorf("ExcludePatterns mismatch: got %v", loaded.ExcludePatterns)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadFrom(filepath.Join(tmpDir, "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if !filepath.IsAbs(cfg.ContentDir) {
		t.Errorf("Expected ContentDir to be absolute, got %s", cfg.ContentDir)
	}
	if cfg.Workers != DefaultConfig().Workers {
		t.Errorf("Expected default workers, got %d", cfg.Workers)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "mdsite.json")
	data := `{"content_dir": "` + filepath.ToSlash(filepath.Join(tmpDir, "pages")) + `", "interval": "10s"}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.ContentDir != filepath.Join(tmpDir, "pages") {
		t.Errorf("ContentDir = %s", cfg.ContentDir)
	}
	if cfg.Interval != 10*time.Second {
		t.Errorf("Interval = %v, want 10s", cfg.Interval)
	}
	if cfg.BasePath != "/" {
		t.Errorf("BasePath = %q, want default /", cfg.BasePath)
	}
	if !cfg.Clean {
		t.Error("Clean should default to true")
	}
}

func TestLoadInvalidInterval(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "mdsite.json")
	if err := os.WriteFile(path, []byte(`{"interval": "soon"}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("Expected error for invalid interval")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := expandPath("~/sites/blog")
	if err != nil {
		t.Fatalf("expandPath failed: %v", err)
	}
	if got != filepath.Join(home, "sites", "blog") {
		t.Errorf("expandPath(~/sites/blog) = %s", got)
	}

	got, err = expandPath("")
	if err != nil || got != "" {
		t.Errorf("expandPath(\"\") = %q, %v", got, err)
	}
}
