package main

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/gousd/usda"
	"github.com/gousd/usda/cmd/internal/cliutil"
)

const dumpUsage = `usda dump - Output the scene model of a file as JSON or YAML

Usage:
  usda dump [options] FILE

FILE may be "-" to read standard input.

Options:
  -f, --format FMT   Output format: json, yaml (default: json)
  --compact          Minified JSON, flow-style YAML
  --max-depth N      Nesting limit (default: 256)
  -h, --help         Show help

Examples:
  usda dump scene.usda
  usda dump --format yaml scene.usda
  usda dump --compact scene.usda | jq '.prims[].name'
`

func (c *cli) cmdDump(args []string) int {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { _, _ = fmt.Fprint(c.stderr, dumpUsage) }

	format := fs.String("f", "json", "output format")
	fs.StringVar(format, "format", "json", "output format")
	compact := fs.Bool("compact", false, "compact output")
	maxDepth := fs.Int("max-depth", 0, "nesting limit")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}

	if *help || c.helpFlag {
		_, _ = fmt.Fprint(c.stdout, dumpUsage)
		return exitOK
	}

	switch *format {
	case "json", "yaml":
		// ok
	default:
		c.printError("unknown format: %s", *format)
		return exitError
	}

	if fs.NArg() != 1 {
		c.printError("expected exactly one file")
		_, _ = fmt.Fprint(c.stderr, dumpUsage)
		return exitError
	}

	name := fs.Arg(0)
	src, err := cliutil.ReadInput(name, c.stdin)
	if err != nil {
		c.printError("%v", err)
		return exitError
	}

	opts := append(c.parseOptions(), usda.WithMaxDepth(*maxDepth))
	doc, err := usda.Parse(src, opts...)
	if err != nil {
		c.reportParseError(name, src, err)
		return exitError
	}

	out, err := marshalDump(buildDocumentJSON(doc), *format, *compact)
	if err != nil {
		c.printError("failed to marshal %s: %v", *format, err)
		return exitError
	}
	_, _ = c.stdout.Write(out)
	if len(out) > 0 && out[len(out)-1] != '\n' {
		_, _ = fmt.Fprintln(c.stdout)
	}
	return exitOK
}

func marshalDump(v any, format string, compact bool) ([]byte, error) {
	if format == "yaml" {
		if compact {
			return yaml.MarshalWithOptions(v, yaml.Flow(true))
		}
		return yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	}
	if compact {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
