package usd

import "strconv"

// ArcKind is the kind of composition arc that names another layer.
type ArcKind int

const (
	ArcSubLayer ArcKind = iota
	ArcReference
	ArcPayload
)

func (k ArcKind) String() string {
	switch k {
	case ArcSubLayer:
		return "subLayer"
	case ArcReference:
		return "reference"
	case ArcPayload:
		return "payload"
	default:
		return "ArcKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// arcFields maps the metadata names that carry asset arcs to their kind.
var arcFields = map[string]ArcKind{
	"subLayers":  ArcSubLayer,
	"references": ArcReference,
	"payload":    ArcPayload,
}

// Arc is one asset named by a composition arc. Arcs are collected, not
// composed: the target layer is not opened.
type Arc struct {
	Kind  ArcKind
	Op    ListOp
	Asset AssetRef
	// Prim is the target prim inside Asset; empty for the default prim.
	Prim ScenePath
	// Site is the prim declaring the arc; empty for layer metadata.
	// Variant bodies appear as "/Prim{set=variant}".
	Site ScenePath
}

// Arcs returns every asset-valued sublayer, reference and payload in
// source order, including those declared inside variant bodies.
// References to prims of the same layer carry no asset and are omitted.
func (d *Document) Arcs() []Arc {
	if d == nil {
		return nil
	}
	var arcs []Arc
	arcs = appendArcs(arcs, d.Metadata, "")
	var walk func(parent string, prims []*Prim)
	var walkBody func(site string, body Body)
	walkBody = func(site string, body Body) {
		walk(site, body.Prims())
		for _, vs := range body.VariantSets() {
			for _, v := range vs.Variants {
				vsite := site + "{" + vs.Name + "=" + v.Name + "}"
				arcs = appendArcs(arcs, v.Metadata, ScenePath(vsite))
				walkBody(vsite, v.Body)
			}
		}
	}
	walk = func(parent string, prims []*Prim) {
		for _, p := range prims {
			site := parent + "/" + p.Name
			arcs = appendArcs(arcs, p.Metadata, ScenePath(site))
			walkBody(site, p.Body)
		}
	}
	walk("", d.Prims)
	return arcs
}

func appendArcs(arcs []Arc, m *Metadata, site ScenePath) []Arc {
	if m == nil {
		return arcs
	}
	for _, e := range m.Entries {
		kind, ok := arcFields[e.Name]
		if !ok {
			continue
		}
		base := Arc{Kind: kind, Op: e.Op, Site: site}
		for _, v := range arcValues(e.Value) {
			arc := base
			switch v := v.(type) {
			case AssetRef:
				arc.Asset = v
			case Reference:
				arc.Asset = v.Asset
				arc.Prim = v.Prim
			default:
				continue
			}
			if arc.Asset == "" {
				continue
			}
			arcs = append(arcs, arc)
		}
	}
	return arcs
}

// arcValues flattens the single-value and list forms of an arc entry.
func arcValues(v Value) []Value {
	if l, ok := v.(List); ok {
		return l
	}
	return []Value{v}
}
