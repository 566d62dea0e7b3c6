package graph

import "slices"

// LoadOrder returns layers with dependencies before dependents, found via
// Tarjan's strongly connected components. Components with more than one
// node, or a single node with a self-loop, are reported as cycles and
// excluded from the order. Roots are visited in sorted order so the
// result is deterministic; each cycle is sorted.
func (g *Graph) LoadOrder() (order []string, cycles [][]string) {
	var (
		index    int
		stack    []string
		onStack  = make(map[string]bool)
		indices  = make(map[string]int)
		lowlinks = make(map[string]int)
	)

	var strongConnect func(n string)
	strongConnect = func(n string) {
		indices[n] = index
		lowlinks[n] = index
		index++
		stack = append(stack, n)
		onStack[n] = true

		for _, dep := range g.edges[n] {
			if _, visited := indices[dep]; !visited {
				strongConnect(dep)
				lowlinks[n] = min(lowlinks[n], lowlinks[dep])
			} else if onStack[dep] {
				lowlinks[n] = min(lowlinks[n], indices[dep])
			}
		}

		if lowlinks[n] != indices[n] {
			return
		}
		var scc []string
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			scc = append(scc, w)
			if w == n {
				break
			}
		}
		switch {
		case len(scc) > 1:
			slices.Sort(scc)
			cycles = append(cycles, scc)
		case slices.Contains(g.edges[scc[0]], scc[0]):
			cycles = append(cycles, scc)
		default:
			order = append(order, scc[0])
		}
	}

	for _, n := range g.Nodes() {
		if _, visited := indices[n]; !visited {
			strongConnect(n)
		}
	}
	return order, cycles
}

// FindCycles returns every dependency cycle.
func (g *Graph) FindCycles() [][]string {
	_, cycles := g.LoadOrder()
	return cycles
}

// HasCycles reports whether the graph contains any cycles.
func (g *Graph) HasCycles() bool {
	return len(g.FindCycles()) > 0
}
