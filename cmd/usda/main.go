// Command usda is a CLI tool for checking, inspecting, and dumping USDA
// scene-description files.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/gousd/usda"
	"github.com/gousd/usda/cmd/internal/cliutil"
)

// Exit codes.
const (
	exitOK    = 0 // success
	exitError = 1 // usage error or a file failed to parse
)

const usage = `usda - USDA parser and inspection tool

Usage:
  usda <command> [options] [arguments]

Commands:
  check   Parse files and report diagnostics
  tree    Print the concrete syntax tree of a file
  dump    Output the scene model of a file as JSON or YAML
  deps    Show layer dependencies and cycles
  rules   List grammar rule names
  version Show version

Common options:
  -v, --verbose     Enable debug logging
  -vv               Enable trace logging (implies -v)
  --no-color        Disable colored output
  -h, --help        Show help

Examples:
  usda check scene.usda assets/
  usda check --search
  usda tree -rule value - <<< '[(0, 1), (2, 3)]'
  usda dump -format yaml scene.usda
`

type cli struct {
	verbose  int
	noColor  bool
	helpFlag bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	c := &cli{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(c.run(os.Args[1:]))
}

func (c *cli) run(args []string) int {
	var cmdArgs []string
	var cmd string

	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			c.helpFlag = true
		case arg == "-v" || arg == "--verbose":
			if c.verbose < 1 {
				c.verbose = 1
			}
		case arg == "-vv":
			c.verbose = 2
		case arg == "--no-color":
			c.noColor = true
		case len(arg) > 0 && arg[0] == '-':
			cmdArgs = append(cmdArgs, arg)
		default:
			if cmd == "" {
				cmd = arg
			} else {
				cmdArgs = append(cmdArgs, arg)
			}
		}
	}

	if c.helpFlag && cmd == "" {
		_, _ = fmt.Fprint(c.stdout, usage)
		return exitOK
	}

	if cmd == "" {
		_, _ = fmt.Fprint(c.stderr, usage)
		return exitError
	}

	switch cmd {
	case "check":
		return c.cmdCheck(cmdArgs)
	case "tree":
		return c.cmdTree(cmdArgs)
	case "dump":
		return c.cmdDump(cmdArgs)
	case "deps":
		return c.cmdDeps(cmdArgs)
	case "rules":
		return c.cmdRules(cmdArgs)
	case "version":
		c.printVersion()
		return exitOK
	case "help":
		_, _ = fmt.Fprint(c.stdout, usage)
		return exitOK
	default:
		_, _ = fmt.Fprintf(c.stderr, "unknown command: %s\n\n", cmd)
		_, _ = fmt.Fprint(c.stderr, usage)
		return exitError
	}
}

func (c *cli) setupLogger() *slog.Logger {
	if c.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.verbose >= 2 {
		level = usda.LevelTrace
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func (c *cli) parseOptions() []usda.Option {
	var opts []usda.Option
	if logger := c.setupLogger(); logger != nil {
		opts = append(opts, usda.WithLogger(logger))
	}
	return opts
}

func (c *cli) palette() *cliutil.Palette {
	return cliutil.NewPalette(cliutil.ColorEnabled(c.stdout, c.noColor))
}

// reportParseError prints err and, when it carries a position, the
// offending source line.
func (c *cli) reportParseError(name string, src []byte, err error) {
	pal := cliutil.NewPalette(cliutil.ColorEnabled(c.stderr, c.noColor))
	if pos, ok := cliutil.ErrorPosition(err); ok {
		_, _ = fmt.Fprintf(c.stderr, "%s:%s: %s\n", name, pos, pal.Fail.Sprint(err))
		if src != nil {
			cliutil.WriteSnippet(c.stderr, src, pos, pal.Caret)
		}
		return
	}
	_, _ = fmt.Fprintf(c.stderr, "%s: %s\n", name, pal.Fail.Sprint(err))
}

func (c *cli) printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	_, _ = fmt.Fprintf(c.stdout, "usda %s\n", version)
}

func (c *cli) printError(format string, args ...any) {
	cliutil.PrintError(c.stderr, format, args...)
}
