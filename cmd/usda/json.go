package main

import (
	"bytes"
	"encoding/json"

	"github.com/goccy/go-yaml"

	"github.com/gousd/usda"
	"github.com/gousd/usda/usd"
)

// DocumentJSON is the top-level output of the dump command.
type DocumentJSON struct {
	Version  string        `json:"version,omitempty" yaml:"version,omitempty"`
	Metadata *MetadataJSON `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Prims    []PrimJSON    `json:"prims" yaml:"prims"`
}

// MetadataJSON holds a metadata block.
type MetadataJSON struct {
	Doc     string      `json:"doc,omitempty" yaml:"doc,omitempty"`
	Entries []EntryJSON `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// EntryJSON holds one metadata entry.
type EntryJSON struct {
	Op    string `json:"op,omitempty" yaml:"op,omitempty"`
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// PrimJSON holds a prim and its body.
type PrimJSON struct {
	Specifier string `json:"specifier" yaml:"specifier"`
	Type      string `json:"type,omitempty" yaml:"type,omitempty"`
	Name      string `json:"name" yaml:"name"`
	BodyJSON  `yaml:",inline"`
}

// BodyJSON holds the members of a prim or variant body, grouped by kind.
// Source order is kept within each group.
type BodyJSON struct {
	Metadata      *MetadataJSON      `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Attributes    []AttributeJSON    `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Relationships []RelationshipJSON `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	VariantSets   []VariantSetJSON   `json:"variantSets,omitempty" yaml:"variantSets,omitempty"`
	Children      []PrimJSON         `json:"children,omitempty" yaml:"children,omitempty"`
}

// AttributeJSON holds an attribute declaration.
type AttributeJSON struct {
	Qualifiers  []string         `json:"qualifiers,omitempty" yaml:"qualifiers,omitempty"`
	Type        string           `json:"type" yaml:"type"`
	Array       bool             `json:"array,omitempty" yaml:"array,omitempty"`
	Name        string           `json:"name" yaml:"name"`
	Kind        string           `json:"kind,omitempty" yaml:"kind,omitempty"`
	Value       any              `json:"value,omitempty" yaml:"value,omitempty"`
	TimeSamples []TimeSampleJSON `json:"timeSamples,omitempty" yaml:"timeSamples,omitempty"`
	Metadata    *MetadataJSON    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// TimeSampleJSON holds one time sample.
type TimeSampleJSON struct {
	Time  float64 `json:"time" yaml:"time"`
	Value any     `json:"value" yaml:"value"`
}

// RelationshipJSON holds a relationship declaration.
type RelationshipJSON struct {
	Qualifiers []string      `json:"qualifiers,omitempty" yaml:"qualifiers,omitempty"`
	Op         string        `json:"op,omitempty" yaml:"op,omitempty"`
	Name       string        `json:"name" yaml:"name"`
	Targets    []string      `json:"targets,omitempty" yaml:"targets,omitempty"`
	Metadata   *MetadataJSON `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// VariantSetJSON holds a variant set.
type VariantSetJSON struct {
	Name     string        `json:"name" yaml:"name"`
	Variants []VariantJSON `json:"variants" yaml:"variants"`
}

// VariantJSON holds one variant.
type VariantJSON struct {
	Name     string `json:"name" yaml:"name"`
	BodyJSON `yaml:",inline"`
}

func buildDocumentJSON(doc *usda.Document) *DocumentJSON {
	out := &DocumentJSON{
		Version:  doc.Version,
		Metadata: buildMetadataJSON(doc.Metadata),
		Prims:    make([]PrimJSON, 0, len(doc.Prims)),
	}
	for _, p := range doc.Prims {
		out.Prims = append(out.Prims, buildPrimJSON(p))
	}
	return out
}

func buildMetadataJSON(m *usd.Metadata) *MetadataJSON {
	if m == nil {
		return nil
	}
	out := &MetadataJSON{Doc: m.Doc}
	for _, e := range m.Entries {
		out.Entries = append(out.Entries, EntryJSON{
			Op:    e.Op.String(),
			Name:  e.Name,
			Value: plainValue(e.Value),
		})
	}
	return out
}

func buildPrimJSON(p *usd.Prim) PrimJSON {
	return PrimJSON{
		Specifier: p.Specifier.String(),
		Type:      p.TypeName,
		Name:      p.Name,
		BodyJSON:  buildBodyJSON(p.Metadata, p.Body),
	}
}

func buildBodyJSON(m *usd.Metadata, body usd.Body) BodyJSON {
	out := BodyJSON{Metadata: buildMetadataJSON(m)}
	for _, st := range body {
		switch st := st.(type) {
		case *usd.Attribute:
			out.Attributes = append(out.Attributes, buildAttributeJSON(st))
		case *usd.Relationship:
			out.Relationships = append(out.Relationships, buildRelationshipJSON(st))
		case *usd.VariantSet:
			out.VariantSets = append(out.VariantSets, buildVariantSetJSON(st))
		case *usd.Prim:
			out.Children = append(out.Children, buildPrimJSON(st))
		}
	}
	return out
}

func buildAttributeJSON(a *usd.Attribute) AttributeJSON {
	out := AttributeJSON{
		Qualifiers: a.Qualifiers.Names(),
		Type:       a.TypeName,
		Array:      a.IsArray,
		Name:       a.Name,
		Value:      plainValue(a.Value),
		Metadata:   buildMetadataJSON(a.Metadata),
	}
	if a.Kind != usd.PropertyDefault {
		out.Kind = a.Kind.String()
	}
	for _, s := range a.TimeSamples {
		out.TimeSamples = append(out.TimeSamples, TimeSampleJSON{Time: s.Time, Value: plainValue(s.Value)})
	}
	return out
}

func buildRelationshipJSON(r *usd.Relationship) RelationshipJSON {
	out := RelationshipJSON{
		Qualifiers: r.Qualifiers.Names(),
		Op:         r.Op.String(),
		Name:       r.Name,
		Metadata:   buildMetadataJSON(r.Metadata),
	}
	for _, p := range r.Paths() {
		out.Targets = append(out.Targets, p.String())
	}
	return out
}

func buildVariantSetJSON(vs *usd.VariantSet) VariantSetJSON {
	out := VariantSetJSON{Name: vs.Name, Variants: make([]VariantJSON, 0, len(vs.Variants))}
	for _, v := range vs.Variants {
		out.Variants = append(out.Variants, VariantJSON{
			Name:     v.Name,
			BodyJSON: buildBodyJSON(v.Metadata, v.Body),
		})
	}
	return out
}

// plainValue converts a model value to data both encoders accept, keeping
// dictionary key order.
func plainValue(v usd.Value) any {
	return orderDicts(usd.Interface(v))
}

func orderDicts(v any) any {
	switch v := v.(type) {
	case []any:
		for i, e := range v {
			v[i] = orderDicts(e)
		}
		return v
	case []usd.DictItem:
		d := make(orderedDict, len(v))
		for i, item := range v {
			d[i] = usd.DictItem{Key: item.Key, Value: orderDicts(item.Value)}
		}
		return d
	default:
		return v
	}
}

// orderedDict marshals as a mapping whose keys stay in source order.
type orderedDict []usd.DictItem

func (d orderedDict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(item.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(item.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d orderedDict) MarshalYAML() (any, error) {
	ms := make(yaml.MapSlice, len(d))
	for i, item := range d {
		ms[i] = yaml.MapItem{Key: item.Key, Value: item.Value}
	}
	return ms, nil
}
