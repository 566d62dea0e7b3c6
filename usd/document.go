package usd

import (
	"iter"
	"strings"
)

// Document is a parsed layer.
type Document struct {
	Version  string    // from the "#usda" header; empty when absent
	Metadata *Metadata // layer metadata; nil when absent
	Prims    []*Prim
}

// Find returns the prim at an absolute path such as "/World/Geom".
// Variant bodies are not searched.
func (d *Document) Find(path ScenePath) *Prim {
	if d == nil || !path.IsAbsolute() || path.IsRoot() {
		return nil
	}
	segs := path.Segments()
	var prim *Prim
	for _, p := range d.Prims {
		if p.Name == segs[0] {
			prim = p
			break
		}
	}
	for _, name := range segs[1:] {
		if prim == nil {
			return nil
		}
		prim = prim.Body.Prim(name)
	}
	return prim
}

// All yields every prim reachable through prim bodies in depth-first
// source order, with its absolute path. Variant bodies are not entered.
func (d *Document) All() iter.Seq2[ScenePath, *Prim] {
	return func(yield func(ScenePath, *Prim) bool) {
		var walk func(parent string, prims []*Prim) bool
		walk = func(parent string, prims []*Prim) bool {
			for _, p := range prims {
				path := parent + "/" + p.Name
				if !yield(ScenePath(path), p) {
					return false
				}
				if !walk(path, p.Body.Prims()) {
					return false
				}
			}
			return true
		}
		if d != nil {
			walk("", d.Prims)
		}
	}
}

// Metadata is a parenthesized metadata block.
type Metadata struct {
	Doc     string // leading anonymous string; empty when absent
	Entries []MetadataEntry
}

// MetadataEntry is one "op? name = value" entry. A customData entry holds
// a Dict.
type MetadataEntry struct {
	Op    ListOp
	Name  string
	Value Value
}

// Get returns the value of the first entry named name.
func (m *Metadata) Get(name string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	for _, e := range m.Entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}

// Lookup returns every entry named name, in source order.
func (m *Metadata) Lookup(name string) []MetadataEntry {
	if m == nil {
		return nil
	}
	var out []MetadataEntry
	for _, e := range m.Entries {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// CustomData returns the customData dictionary, if present.
func (m *Metadata) CustomData() (Dict, bool) {
	v, ok := m.Get("customData")
	if !ok {
		return nil, false
	}
	d, ok := v.(Dict)
	return d, ok
}

// Statement is a member of a prim or variant body: *Attribute,
// *Relationship, *Prim or *VariantSet.
type Statement interface {
	StatementName() string
	statement()
}

// Body is the ordered statement list of a prim or variant.
type Body []Statement

// Prims returns the nested prims.
func (b Body) Prims() []*Prim { return collect[*Prim](b) }

// Attributes returns the attributes.
func (b Body) Attributes() []*Attribute { return collect[*Attribute](b) }

// Relationships returns the relationships.
func (b Body) Relationships() []*Relationship { return collect[*Relationship](b) }

// VariantSets returns the variant sets.
func (b Body) VariantSets() []*VariantSet { return collect[*VariantSet](b) }

// Prim returns the first nested prim named name.
func (b Body) Prim(name string) *Prim { return find[*Prim](b, name) }

// Attribute returns the first attribute named name.
func (b Body) Attribute(name string) *Attribute { return find[*Attribute](b, name) }

// Relationship returns the first relationship named name.
func (b Body) Relationship(name string) *Relationship { return find[*Relationship](b, name) }

// VariantSet returns the first variant set named name.
func (b Body) VariantSet(name string) *VariantSet { return find[*VariantSet](b, name) }

func collect[T Statement](b Body) []T {
	var out []T
	for _, s := range b {
		if t, ok := s.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

func find[T Statement](b Body, name string) T {
	for _, s := range b {
		if t, ok := s.(T); ok && s.StatementName() == name {
			return t
		}
	}
	var zero T
	return zero
}

// Prim is a node of the scene hierarchy.
type Prim struct {
	Specifier Specifier
	TypeName  string // empty for untyped prims
	Name      string
	Metadata  *Metadata
	Body      Body
}

// Attribute is a typed property.
type Attribute struct {
	Qualifiers Qualifiers
	TypeName   string
	IsArray    bool
	Name       string
	Kind       PropertyKind
	// Value is the assigned default or connection; nil when the attribute
	// is only declared or holds time samples.
	Value Value
	// TimeSamples is non-nil for ".timeSamples" assignments.
	TimeSamples []TimeSample
	Metadata    *Metadata
}

// TimeSample is one "time: value" pair.
type TimeSample struct {
	Time  float64
	Value Value
}

// Relationship is a property pointing at other scene objects.
type Relationship struct {
	Qualifiers Qualifiers
	Op         ListOp
	Name       string
	// Targets is nil when unassigned, otherwise None, a ScenePath, or a
	// List of ScenePath.
	Targets  Value
	Metadata *Metadata
}

// Paths returns the target paths, flattening the single-path form.
func (r *Relationship) Paths() []ScenePath {
	switch t := r.Targets.(type) {
	case ScenePath:
		return []ScenePath{t}
	case List:
		out := make([]ScenePath, 0, len(t))
		for _, v := range t {
			if p, ok := v.(ScenePath); ok {
				out = append(out, p)
			}
		}
		return out
	default:
		return nil
	}
}

// VariantSet is a named set of alternative bodies.
type VariantSet struct {
	Name     string
	Variants []*Variant
}

// Variant returns the variant named name.
func (vs *VariantSet) Variant(name string) *Variant {
	for _, v := range vs.Variants {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Names returns the variant names in source order.
func (vs *VariantSet) Names() []string {
	names := make([]string, len(vs.Variants))
	for i, v := range vs.Variants {
		names[i] = v.Name
	}
	return names
}

// Variant is one alternative of a variant set.
type Variant struct {
	Name     string
	Metadata *Metadata
	Body     Body
}

func (p *Prim) StatementName() string         { return p.Name }
func (a *Attribute) StatementName() string    { return a.Name }
func (r *Relationship) StatementName() string { return r.Name }
func (vs *VariantSet) StatementName() string  { return vs.Name }

func (*Prim) statement()         {}
func (*Attribute) statement()    {}
func (*Relationship) statement() {}
func (*VariantSet) statement()   {}

// Namespace returns the namespace prefixes of a property name, so
// "primvars:displayColor" yields ["primvars"].
func Namespace(name string) []string {
	parts := strings.Split(name, ":")
	return parts[:len(parts)-1]
}
