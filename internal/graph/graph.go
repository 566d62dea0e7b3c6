// Package graph provides dependency graph construction and analysis for
// layers that name other layers through composition arcs.
package graph

import (
	"slices"
)

// Graph is a dependency graph of layer identifiers with forward edges.
type Graph struct {
	nodes map[string]struct{}
	edges map[string][]string
}

// New returns a graph with no nodes or edges.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		edges: make(map[string][]string),
	}
}

// AddNode registers a layer. Duplicate calls are no-ops.
func (g *Graph) AddNode(layer string) {
	g.nodes[layer] = struct{}{}
}

// AddEdge records that "from" depends on "to", meaning "to" must be
// loaded before "from". Missing nodes are created implicitly.
// Duplicate edges are ignored.
func (g *Graph) AddEdge(from, to string) {
	g.nodes[from] = struct{}{}
	g.nodes[to] = struct{}{}

	if slices.Contains(g.edges[from], to) {
		return
	}
	g.edges[from] = append(g.edges[from], to)
}

// Dependencies returns the layers that layer depends on, in the order
// the edges were added.
func (g *Graph) Dependencies(layer string) []string {
	return g.edges[layer]
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns every layer in sorted order.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		nodes = append(nodes, n)
	}
	slices.Sort(nodes)
	return nodes
}

// Dependents returns the layers that depend on layer, sorted.
func (g *Graph) Dependents(layer string) []string {
	var out []string
	for from, deps := range g.edges {
		if slices.Contains(deps, layer) {
			out = append(out, from)
		}
	}
	slices.Sort(out)
	return out
}
