package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gerunddev/mdsite/internal/config"
	"github.com/gerunddev/mdsite/internal/styles"
	"github.com/spf13/pflag"
)

const defaultTemplate = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ Title }}</title>
  <link href="/index.css" rel="stylesheet">
</head>
<body>
  <article>
    {{ Content }}
  </article>
</body>
</html>
`

const defaultIndex = `---
description: The front page
---
# Welcome

This site is built by **mdsite** from the markdown files in _content_.

- Edit ` + "`content/index.md`" + `
- Run ` + "`mdsite build`" + `
`

const defaultCSS = `body {
  max-width: 42rem;
  margin: 2rem auto;
  padding: 0 1rem;
  font-family: system-ui, sans-serif;
  line-height: 1.6;
}

blockquote {
  border-left: 3px solid #ccc;
  margin-left: 0;
  padding-left: 1rem;
  color: #555;
}

pre {
  overflow-x: auto;
  padding: 1rem;
  background: #f5f5f5;
}
`

// Init scaffolds a new site in the working directory
func Init(args []string) {
	var (
		force    bool
		basePath string
	)
	flags := pflag.NewFlagSet("init", pflag.ExitOnError)
	flags.BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	flags.StringVarP(&basePath, "base-path", "b", "/", "Base path the site is served under")
	if err := flags.Parse(args); err != nil {
		os.Exit(2)
	}

	created, err := Scaffold(".", basePath, force)
	if err != nil {
		fail("Error creating site", err)
	}

	for _, path := range created {
		fmt.Println(styles.SuccessStyle.Render("✓ Created " + path))
	}
	if len(created) == 0 {
		fmt.Println(styles.DimStyle.Render("Nothing to create, site already initialized"))
		return
	}
	fmt.Println(styles.DimStyle.Render("  Run 'mdsite build' to generate the site"))
}

// Scaffold writes a config file, template, stylesheet and first page under
// dir, leaving existing files alone. It returns the paths it created.
func Scaffold(dir, basePath string, force bool) ([]string, error) {
	cfg := config.DefaultConfig()
	cfg.BasePath = basePath
	// An empty state file falls back to the per-site cache path
	cfg.StateFile = ""
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var created []string

	configPath := filepath.Join(dir, config.LocalConfigName)
	if force || !exists(configPath) {
		if err := cfg.Save(configPath); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(dir, cfg.Template), defaultTemplate},
		{filepath.Join(dir, cfg.StaticDir, "index.css"), defaultCSS},
		{filepath.Join(dir, cfg.ContentDir, "index.md"), defaultIndex},
	}
	for _, f := range files {
		if exists(f.path) {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
			return created, fmt.Errorf("failed to create directory: %w", err)
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0644); err != nil {
			return created, fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		created = append(created, f.path)
	}

	return created, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
