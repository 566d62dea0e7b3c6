package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/gousd/usda"
	"github.com/gousd/usda/cmd/internal/cliutil"
	"github.com/gousd/usda/syntax"
)

const treeUsage = `usda tree - Print the concrete syntax tree of a file

Usage:
  usda tree [options] FILE

FILE may be "-" to read standard input.

Options:
  -r, --rule NAME   Parse the input as rule NAME instead of a document
  --spans           Show the byte span of every node
  --max-depth N     Nesting limit (default: 256)
  -h, --help        Show help

Examples:
  usda tree scene.usda
  usda tree -rule value - <<< '[(0, 1), (2, 3)]'
  usda tree --spans -rule attribute - <<< 'float3[] extent = [(0, 0, 0)]'
`

func (c *cli) cmdTree(args []string) int {
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { _, _ = fmt.Fprint(c.stderr, treeUsage) }

	ruleName := fs.String("r", "document", "rule name")
	fs.StringVar(ruleName, "rule", "document", "rule name")
	spans := fs.Bool("spans", false, "show spans")
	maxDepth := fs.Int("max-depth", 0, "nesting limit")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}

	if *help || c.helpFlag {
		_, _ = fmt.Fprint(c.stdout, treeUsage)
		return exitOK
	}

	if fs.NArg() != 1 {
		c.printError("expected exactly one file")
		_, _ = fmt.Fprint(c.stderr, treeUsage)
		return exitError
	}

	rule, ok := syntax.RuleByName(*ruleName)
	if !ok {
		c.printError("unknown rule: %s (see 'usda rules')", *ruleName)
		return exitError
	}

	name := fs.Arg(0)
	src, err := cliutil.ReadInput(name, c.stdin)
	if err != nil {
		c.printError("%v", err)
		return exitError
	}

	opts := append(c.parseOptions(), usda.WithMaxDepth(*maxDepth))
	tree, err := usda.ParseRule(rule, src, opts...)
	if err != nil {
		c.reportParseError(name, src, err)
		return exitError
	}

	printTree(c, tree, *spans)
	return exitOK
}

// printTree writes one line per node: the rule name, optionally its span,
// and for childless nodes the quoted source text.
func printTree(c *cli, tree *syntax.Tree, spans bool) {
	pal := c.palette()
	var b strings.Builder
	tree.Walk(func(n syntax.Node, depth int) bool {
		b.Reset()
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(pal.Rule.Sprint(n.Rule()))
		if spans {
			sp := n.Span()
			b.WriteString(pal.Span.Sprintf(" [%d,%d)", sp.Start, sp.End))
		}
		if !n.HasChildren() {
			b.WriteByte(' ')
			b.WriteString(pal.Text.Sprint(strconv.Quote(n.Text())))
		}
		b.WriteByte('\n')
		_, _ = fmt.Fprint(c.stdout, b.String())
		return true
	})
}
