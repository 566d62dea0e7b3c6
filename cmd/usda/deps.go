package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/gousd/usda"
)

const depsUsage = `usda deps - Show layer dependencies through sublayers, references and payloads

Usage:
  usda deps [options] PATH...

Options:
  --order       Print layers in load order, dependencies first
  -h, --help    Show help

Exits non-zero when the layers form a dependency cycle.

Examples:
  usda deps assets/
  usda deps --order shot.usda set.usda
`

func (c *cli) cmdDeps(args []string) int {
	fs := flag.NewFlagSet("deps", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { _, _ = fmt.Fprint(c.stderr, depsUsage) }

	order := fs.Bool("order", false, "print load order")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}

	if *help || c.helpFlag {
		_, _ = fmt.Fprint(c.stdout, depsUsage)
		return exitOK
	}

	sources, err := c.buildSources(fs.Args(), false)
	if err != nil {
		c.printError("%v", err)
		return exitError
	}
	if len(sources) == 0 {
		c.printError("no paths specified")
		_, _ = fmt.Fprint(c.stderr, depsUsage)
		return exitError
	}

	results, err := usda.ParseFiles(context.Background(), usda.Multi(sources...), c.parseOptions()...)
	if err != nil {
		c.printError("%v", err)
		return exitError
	}
	for _, r := range results {
		if r.Err != nil {
			c.reportParseError(r.Path, nil, r.Err)
		}
	}

	lg := usda.BuildLayerGraph(results)
	pal := c.palette()
	unresolved := make(map[string]bool)
	for _, u := range lg.Unresolved() {
		unresolved[u] = true
	}

	if *order {
		loadOrder, _ := lg.LoadOrder()
		for i, layer := range loadOrder {
			_, _ = fmt.Fprintf(c.stdout, "%3d %s\n", i+1, layer)
		}
	} else {
		for _, layer := range lg.Layers() {
			if unresolved[layer] {
				continue
			}
			_, _ = fmt.Fprintln(c.stdout, pal.Rule.Sprint(layer))
			for _, dep := range lg.Dependencies(layer) {
				note := ""
				if unresolved[dep] {
					note = pal.Skip.Sprint(" (not found)")
				}
				_, _ = fmt.Fprintf(c.stdout, "  -> %s%s\n", dep, note)
			}
		}
	}

	for _, cycle := range lg.Cycles() {
		_, _ = fmt.Fprintf(c.stdout, "%s %v\n", pal.Fail.Sprint("cycle:"), cycle)
	}
	_, _ = fmt.Fprintf(c.stdout, "\n%d layers, %d not found\n", lg.Len(), len(unresolved))
	if lg.HasCycles() {
		return exitError
	}
	return exitOK
}
