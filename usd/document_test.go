package usd

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testDocument() *Document {
	world := &Prim{
		Specifier: SpecifierDef,
		TypeName:  "Sphere",
		Name:      "world",
		Body: Body{
			&Attribute{TypeName: "double", Name: "radius", Value: Int(2)},
		},
	}
	return &Document{
		Version: "1.0",
		Metadata: &Metadata{
			Doc: "layer doc",
			Entries: []MetadataEntry{
				{Name: "defaultPrim", Value: String("hello")},
				{Op: ListOpPrepend, Name: "subLayers", Value: List{AssetRef("./a.usda")}},
				{Name: "customData", Value: Dict{{Key: "k", TypedValue: TypedValue{TypeName: "int", Value: Int(1)}}}},
			},
		},
		Prims: []*Prim{
			{
				Specifier: SpecifierDef,
				TypeName:  "Xform",
				Name:      "hello",
				Body: Body{
					&Attribute{Qualifiers: QualifierCustom, TypeName: "double3", Name: "xformOp:translate",
						Value: Tuple{Int(4), Int(5), Int(6)}},
					&Relationship{Name: "material:binding", Targets: ScenePath("/Looks/Red")},
					world,
					&VariantSet{Name: "shadingVariant", Variants: []*Variant{
						{Name: "blue", Body: Body{&Prim{Specifier: SpecifierOver, Name: "world"}}},
						{Name: "green"},
					}},
				},
			},
			{Specifier: SpecifierClass, Name: "_template"},
		},
	}
}

func TestDocumentFind(t *testing.T) {
	doc := testDocument()

	if p := doc.Find("/hello/world"); p == nil || p.TypeName != "Sphere" {
		t.Fatalf("Find(/hello/world) = %v", p)
	}
	if p := doc.Find("/_template"); p == nil || p.Specifier != SpecifierClass {
		t.Errorf("Find(/_template) = %v", p)
	}
	for _, path := range []ScenePath{"/", "hello", "/missing", "/hello/missing/deeper"} {
		if p := doc.Find(path); p != nil {
			t.Errorf("Find(%s) = %v, want nil", path, p)
		}
	}
	var nilDoc *Document
	if nilDoc.Find("/hello") != nil {
		t.Error("Find on nil document should return nil")
	}
}

func TestDocumentAll(t *testing.T) {
	var paths []ScenePath
	for path := range testDocument().All() {
		paths = append(paths, path)
	}
	want := []ScenePath{"/hello", "/hello/world", "/_template"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestBodyLookups(t *testing.T) {
	hello := testDocument().Prims[0]

	if a := hello.Body.Attribute("xformOp:translate"); a == nil || !a.Qualifiers.Has(QualifierCustom) {
		t.Errorf("Attribute lookup = %v", a)
	}
	if hello.Body.Attribute("material:binding") != nil {
		t.Error("relationship must not be found as attribute")
	}
	rel := hello.Body.Relationship("material:binding")
	if rel == nil {
		t.Fatal("Relationship lookup failed")
	}
	if diff := cmp.Diff([]ScenePath{"/Looks/Red"}, rel.Paths()); diff != "" {
		t.Errorf("Paths() mismatch (-want +got):\n%s", diff)
	}
	vs := hello.Body.VariantSet("shadingVariant")
	if vs == nil {
		t.Fatal("VariantSet lookup failed")
	}
	if diff := cmp.Diff([]string{"blue", "green"}, vs.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if v := vs.Variant("blue"); v == nil || v.Body.Prim("world") == nil {
		t.Errorf("Variant(blue) = %v", v)
	}
	if len(hello.Body.Prims()) != 1 || len(hello.Body.Attributes()) != 1 ||
		len(hello.Body.Relationships()) != 1 || len(hello.Body.VariantSets()) != 1 {
		t.Error("body partition counts are wrong")
	}
}

func TestRelationshipPaths(t *testing.T) {
	tests := []struct {
		targets Value
		want    []ScenePath
	}{
		{nil, nil},
		{None{}, nil},
		{ScenePath("/a"), []ScenePath{"/a"}},
		{List{}, []ScenePath{}},
		{List{ScenePath("/a"), ScenePath("/b")}, []ScenePath{"/a", "/b"}},
	}
	for _, tt := range tests {
		r := &Relationship{Name: "r", Targets: tt.targets}
		if diff := cmp.Diff(tt.want, r.Paths()); diff != "" {
			t.Errorf("Paths(%v) mismatch (-want +got):\n%s", tt.targets, diff)
		}
	}
}

func TestMetadataAccess(t *testing.T) {
	md := testDocument().Metadata

	if v, ok := md.Get("defaultPrim"); !ok || v != String("hello") {
		t.Errorf("Get(defaultPrim) = %v, %v", v, ok)
	}
	entries := md.Lookup("subLayers")
	if len(entries) != 1 || entries[0].Op != ListOpPrepend {
		t.Errorf("Lookup(subLayers) = %v", entries)
	}
	cd, ok := md.CustomData()
	if !ok || len(cd) != 1 {
		t.Errorf("CustomData() = %v, %v", cd, ok)
	}

	var empty *Metadata
	if _, ok := empty.Get("x"); ok {
		t.Error("Get on nil metadata should fail")
	}
	if _, ok := empty.CustomData(); ok {
		t.Error("CustomData on nil metadata should fail")
	}
}

func TestNamespace(t *testing.T) {
	if diff := cmp.Diff([]string{"primvars"}, Namespace("primvars:displayColor")); diff != "" {
		t.Errorf("Namespace mismatch (-want +got):\n%s", diff)
	}
	if got := Namespace("radius"); len(got) != 0 {
		t.Errorf("Namespace(radius) = %v, want empty", got)
	}
}
