package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/site"
	"github.com/gerunddev/mdsite/internal/state"
	"github.com/google/go-cmp/cmp"
)

func TestParseLogLines(t *testing.T) {
	lines := []string{
		"2025-11-27 14:11:50 INFO build started build_id=a",
		"2025-11-27 14:11:51 INFO build completed build_id=a pages_built=7 skipped=0 errors=0",
		"2025-11-27 14:11:57 INFO build started build_id=b",
		"2025-11-27 14:11:58 INFO build completed build_id=b pages_built=2 skipped=5 errors=0",
		"2025-11-27 14:12:00 INFO build started build_id=c",
	}

	recent, lastBuild, pages := ParseLogLines(lines, 3)
	if diff := cmp.Diff(lines[2:], recent); diff != "" {
		t.Errorf("recent lines mismatch (-want +got):\n%s", diff)
	}
	want := time.Date(2025, 11, 27, 14, 11, 58, 0, time.Local)
	if !lastBuild.Equal(want) {
		t.Errorf("lastBuild = %v, want %v", lastBuild, want)
	}
	if pages != 2 {
		t.Errorf("pages = %d, want 2", pages)
	}

	_, lastBuild, pages = ParseLogLines(lines[:1], 20)
	if !lastBuild.IsZero() || pages != 0 {
		t.Errorf("expected no build info, got %v %d", lastBuild, pages)
	}
}

func TestParseLogFileMissing(t *testing.T) {
	lines, _, _ := ParseLogFile(filepath.Join(t.TempDir(), "missing.log"), 10)
	if len(lines) != 1 || lines[0] != "Unable to read log file" {
		t.Errorf("unexpected lines %v", lines)
	}
}

func TestLogTail(t *testing.T) {
	tail := newLogTail(3)
	for i := 1; i <= 4; i++ {
		fmt.Fprintf(tail, "line %d\n", i)
	}
	// Partial writes are joined until the newline arrives
	fmt.Fprint(tail, "line ")
	fmt.Fprint(tail, "5\nline 6")

	want := []string{"line 3", "line 4", "line 5"}
	if diff := cmp.Diff(want, tail.Lines()); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}
}

func TestScaffold(t *testing.T) {
	dir := t.TempDir()

	created, err := Scaffold(dir, "/blog/", false)
	if err != nil {
		t.Fatalf("Scaffold failed: %v", err)
	}
	if len(created) != 4 {
		t.Errorf("created %v, want 4 files", created)
	}

	cfg, err := config.LoadFrom(filepath.Join(dir, config.LocalConfigName))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.BasePath != "/blog/" {
		t.Errorf("BasePath = %q", cfg.BasePath)
	}

	// Leaves existing files alone
	index := filepath.Join(dir, "content", "index.md")
	if err := os.WriteFile(index, []byte("# Mine"), 0644); err != nil {
		t.Fatalf("Failed to write page: %v", err)
	}
	created, err = Scaffold(dir, "/", false)
	if err != nil {
		t.Fatalf("second Scaffold failed: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("second Scaffold created %v", created)
	}
	data, _ := os.ReadFile(index)
	if string(data) != "# Mine" {
		t.Errorf("index.md overwritten: %q", data)
	}

	if _, err := Scaffold(dir, "no-slashes", true); err == nil {
		t.Error("expected error for invalid base path")
	}
}

func TestScaffoldBuilds(t *testing.T) {
	dir := t.TempDir()
	if _, err := Scaffold(dir, "/", false); err != nil {
		t.Fatalf("Scaffold failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.ContentDir = filepath.Join(dir, "content")
	cfg.StaticDir = filepath.Join(dir, "static")
	cfg.Template = filepath.Join(dir, "template.html")
	cfg.OutputDir = filepath.Join(dir, "docs")

	result, err := site.NewBuilder(cfg, state.NewState()).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(result.Errors) != 0 || result.PagesBuilt != 1 {
		t.Fatalf("unexpected result: %s %v", result, result.Errors)
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "index.html"))
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	for _, want := range []string{"<title>Welcome</title>", "<b>mdsite</b>", "<code>mdsite build</code>"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("scaffolded page missing %q:\n%s", want, data)
		}
	}
}

func TestLoadConfigBasePathOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.json")
	cfg := config.DefaultConfig()
	cfg.StateFile = filepath.Join(dir, "state.json")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	sf := siteFlags{configPath: path, basePath: "/docs/"}
	got, err := sf.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if got.BasePath != "/docs/" {
		t.Errorf("BasePath = %q, want /docs/", got.BasePath)
	}

	sf.basePath = "docs"
	if _, err := sf.loadConfig(); err == nil {
		t.Error("expected error for invalid base path override")
	}
}
