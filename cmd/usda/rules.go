package main

import (
	"flag"
	"fmt"

	"github.com/gousd/usda/syntax"
)

const rulesUsage = `usda rules - List grammar rule names

Usage:
  usda rules [options]

Options:
  --lexical     Only list rules that produce childless nodes
  -h, --help    Show help

Rule names are accepted by 'usda tree -rule'.
`

func (c *cli) cmdRules(args []string) int {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { _, _ = fmt.Fprint(c.stderr, rulesUsage) }

	lexical := fs.Bool("lexical", false, "lexical rules only")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}

	if *help || c.helpFlag {
		_, _ = fmt.Fprint(c.stdout, rulesUsage)
		return exitOK
	}

	for _, r := range syntax.Rules() {
		if *lexical && !r.IsTerminal() {
			continue
		}
		_, _ = fmt.Fprintln(c.stdout, r)
	}
	return exitOK
}
