package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gousd/usda"
)

const checkUsage = `usda check - Parse files and report diagnostics

Usage:
  usda check [options] PATH...

Each PATH is a file or a directory searched recursively for .usda files.

Options:
  --time          Print elapsed time and throughput
  --search        Also check the asset search path (PXR_AR_DEFAULT_SEARCH_PATH)
  -j N            Parse N files at once (default: number of CPUs)
  --max-depth N   Nesting limit (default: 256)
  -q, --quiet     Print failures only
  -h, --help      Show help

Examples:
  usda check scene.usda
  usda check --time assets/
  usda check -j 1 --search
`

type checkSummary struct {
	files   int
	failed  int
	skipped int
}

func (c *cli) cmdCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { _, _ = fmt.Fprint(c.stderr, checkUsage) }

	timing := fs.Bool("time", false, "print timing")
	search := fs.Bool("search", false, "check the asset search path")
	jobs := fs.Int("j", 0, "parallel files")
	maxDepth := fs.Int("max-depth", 0, "nesting limit")
	quiet := fs.Bool("q", false, "failures only")
	fs.BoolVar(quiet, "quiet", false, "failures only")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}

	if *help || c.helpFlag {
		_, _ = fmt.Fprint(c.stdout, checkUsage)
		return exitOK
	}

	sources, err := c.buildSources(fs.Args(), *search)
	if err != nil {
		c.printError("%v", err)
		return exitError
	}
	if len(sources) == 0 {
		c.printError("no paths specified")
		_, _ = fmt.Fprint(c.stderr, checkUsage)
		return exitError
	}

	opts := append(c.parseOptions(), usda.WithConcurrency(*jobs), usda.WithMaxDepth(*maxDepth))
	start := time.Now()
	results, err := usda.ParseFiles(context.Background(), usda.Multi(sources...), opts...)
	if err != nil {
		c.printError("%v", err)
		return exitError
	}
	elapsed := time.Since(start)

	pal := c.palette()
	var sum checkSummary
	for _, r := range results {
		sum.files++
		switch {
		case r.Skipped:
			sum.skipped++
			if !*quiet {
				_, _ = fmt.Fprintf(c.stdout, "%s %s (not USDA text)\n", pal.Skip.Sprint("skip"), r.Path)
			}
		case r.Err != nil:
			sum.failed++
			_, _ = fmt.Fprintf(c.stdout, "%s %s\n", pal.Fail.Sprint("FAIL"), r.Path)
			src, _ := os.ReadFile(r.Path)
			c.reportParseError(r.Path, src, r.Err)
		default:
			if !*quiet {
				_, _ = fmt.Fprintf(c.stdout, "%s   %s\n", pal.OK.Sprint("ok"), r.Path)
			}
		}
	}

	if !*quiet || sum.failed > 0 {
		_, _ = fmt.Fprintf(c.stdout, "\n%d files, %d failed, %d skipped\n", sum.files, sum.failed, sum.skipped)
	}
	if *timing {
		_, _ = fmt.Fprintf(c.stdout, "elapsed: %v\n", elapsed.Round(time.Microsecond))
	}

	if sum.failed > 0 {
		return exitError
	}
	return exitOK
}

// buildSources maps each path to a source: directories are indexed
// recursively and files are taken as given.
func (c *cli) buildSources(paths []string, search bool) ([]usda.Source, error) {
	var sources []usda.Source
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		src, err := usda.DirTree(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if len(files) > 0 {
		sources = append(sources, usda.Files(files...))
	}
	if search {
		sources = append(sources, usda.SearchPath(c.setupLogger()))
	}
	return sources, nil
}
