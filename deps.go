package usda

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/gousd/usda/internal/graph"
	"github.com/gousd/usda/usd"
)

// LayerGraph records which parsed layers name which other layers through
// sublayer, reference and payload arcs. Layers are identified by the
// paths ParseFiles reports; asset paths are resolved against the
// directory of the layer that names them.
type LayerGraph struct {
	g      *graph.Graph
	parsed map[string]struct{}
}

// BuildLayerGraph builds the dependency graph of the successfully parsed
// results. Failed and skipped files appear as nodes without edges.
func BuildLayerGraph(results []FileResult) *LayerGraph {
	lg := &LayerGraph{g: graph.New(), parsed: make(map[string]struct{}, len(results))}
	for _, r := range results {
		lg.g.AddNode(r.Path)
		lg.parsed[r.Path] = struct{}{}
		for _, arc := range r.Document.Arcs() {
			lg.g.AddEdge(r.Path, ResolveAsset(r.Path, arc.Asset))
		}
	}
	return lg
}

// ResolveAsset resolves an asset path named by the layer at layerPath.
// Absolute asset paths are cleaned and returned; relative ones are joined
// to the layer's directory. Paths of fs.FS sources, "name:dir/file",
// resolve within the same source.
func ResolveAsset(layerPath string, asset usd.AssetRef) string {
	a := string(asset)
	if filepath.IsAbs(a) {
		return filepath.Clean(a)
	}
	if name, rel, ok := strings.Cut(layerPath, ":"); ok && !filepath.IsAbs(layerPath) && filepath.VolumeName(layerPath) == "" {
		return name + ":" + path.Join(path.Dir(rel), a)
	}
	return filepath.Join(filepath.Dir(layerPath), filepath.FromSlash(a))
}

// Layers returns every layer in the graph, sorted, including assets that
// were named but not parsed.
func (lg *LayerGraph) Layers() []string {
	return lg.g.Nodes()
}

// Dependencies returns the layers named by layer, in source order.
func (lg *LayerGraph) Dependencies(layer string) []string {
	return lg.g.Dependencies(layer)
}

// Dependents returns the layers that name layer, sorted.
func (lg *LayerGraph) Dependents(layer string) []string {
	return lg.g.Dependents(layer)
}

// Unresolved returns the named assets that were not among the parsed
// files, sorted.
func (lg *LayerGraph) Unresolved() []string {
	var out []string
	for _, n := range lg.g.Nodes() {
		if _, ok := lg.parsed[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// LoadOrder returns layers with dependencies before the layers that name
// them. Layers on a dependency cycle are reported in cycles instead.
func (lg *LayerGraph) LoadOrder() (order []string, cycles [][]string) {
	return lg.g.LoadOrder()
}

// Cycles returns every dependency cycle, each sorted.
func (lg *LayerGraph) Cycles() [][]string {
	return lg.g.FindCycles()
}

// HasCycles reports whether any layers name each other in a cycle.
func (lg *LayerGraph) HasCycles() bool {
	return lg.g.HasCycles()
}

// Len returns the number of layers, parsed or only named.
func (lg *LayerGraph) Len() int {
	return lg.g.Len()
}
