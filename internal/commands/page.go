package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gerunddev/mdsite/internal/diff"
	"github.com/gerunddev/mdsite/internal/site"
	"github.com/gerunddev/mdsite/internal/state"
	"github.com/gerunddev/mdsite/internal/styles"
	"github.com/spf13/pflag"
)

// Page renders a single markdown file to stdout
func Page(args []string) {
	var (
		sf       siteFlags
		bodyOnly bool
	)
	flags := pflag.NewFlagSet("page", pflag.ExitOnError)
	sf.register(flags)
	flags.BoolVar(&bodyOnly, "body", false, "Print only the rendered body, without the template")
	if err := flags.Parse(args); err != nil {
		os.Exit(2)
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: mdsite page [flags] <file.md>")
		os.Exit(2)
	}

	cfg, err := sf.loadConfig()
	if err != nil {
		fail("Error loading config", err)
	}

	src, err := filepath.Abs(flags.Arg(0))
	if err != nil {
		fail("Error resolving page", err)
	}

	builder := site.NewBuilder(cfg, state.NewState())
	page, doc, err := builder.RenderPage(src)
	if err != nil {
		fail("Error rendering "+flags.Arg(0), err)
	}

	if bodyOnly {
		fmt.Println(doc.Body)
		return
	}
	fmt.Print(page)
}

// Diff shows what rebuilding a page would change in the output directory
func Diff(args []string) {
	var (
		sf    siteFlags
		plain bool
	)
	flags := pflag.NewFlagSet("diff", pflag.ExitOnError)
	sf.register(flags)
	flags.BoolVar(&plain, "plain", false, "Print a raw unified diff")
	if err := flags.Parse(args); err != nil {
		os.Exit(2)
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: mdsite diff [flags] <file.md>")
		os.Exit(2)
	}

	cfg, err := sf.loadConfig()
	if err != nil {
		fail("Error loading config", err)
	}

	src, err := filepath.Abs(flags.Arg(0))
	if err != nil {
		fail("Error resolving page", err)
	}

	format := diff.FormatRendered
	if plain || !isInteractive() {
		format = diff.FormatPlain
	}

	builder := site.NewBuilder(cfg, state.NewState())
	out, err := diff.Generate(builder, src, format)
	if err != nil {
		fail("Error generating diff", err)
	}
	if out == "" {
		fmt.Println(styles.SuccessStyle.Render("✓ Output is up to date"))
		return
	}
	fmt.Print(out)
}
