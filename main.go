package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/mdsite/internal/commands"
	"github.com/gerunddev/mdsite/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "build":
		commands.Build(os.Args[2:])
	case "watch":
		commands.Watch(os.Args[2:])
	case "page":
		commands.Page(os.Args[2:])
	case "diff":
		commands.Diff(os.Args[2:])
	case "status":
		commands.Status(os.Args[2:])
	case "init":
		commands.Init(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("mdsite v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`mdsite - Static site generator for markdown content

Usage:
  mdsite <command> [options]

Commands:
  init        Create a config file, template and first page
  build       Build the site (optionally pass the base path)
  watch       Rebuild the site on an interval with a live dashboard
  page        Render a single page to stdout
  diff        Show what rebuilding a page would change
  status      Show which pages are up to date, stale, new or drafts
  version     Show version information
  help        Show this help message

Examples:
  mdsite init
  mdsite build
  mdsite build /my-repo/
  mdsite build --dry-run --force
  mdsite watch --interval 5s
  mdsite page content/index.md --body
  mdsite diff content/blog/post.md
  mdsite status

Configuration:
  Config file: %s
  State file:  %s

For more information, visit: https://github.com/gerunddev/mdsite
`, config.ConfigPath(), config.StateFilePath())
	fmt.Print(usage)
}
