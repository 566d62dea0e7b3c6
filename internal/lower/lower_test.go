package lower

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gousd/usda/internal/parser"
	"github.com/gousd/usda/internal/testutil"
	"github.com/gousd/usda/syntax"
	"github.com/gousd/usda/usd"
)

func lowerSource(t *testing.T, src string) (*usd.Document, error) {
	t.Helper()
	tree, err := parser.New([]byte(src), nil, 0).Parse(syntax.RuleDocument)
	testutil.NoError(t, err, "parse")
	return Lower(tree, nil)
}

func lowerValue(t *testing.T, src string) usd.Value {
	t.Helper()
	tree, err := parser.New([]byte(src), nil, 0).Parse(syntax.RuleValue)
	testutil.NoError(t, err, "parse %q", src)
	v, err := Value(tree.Root())
	testutil.NoError(t, err, "lower %q", src)
	return v
}

func TestLowerValues(t *testing.T) {
	tests := []struct {
		src  string
		want usd.Value
	}{
		{"None", usd.None{}},
		{"true", usd.Bool(true)},
		{"-123", usd.Int(-123)},
		{"1.", usd.Float(1)},
		{"5.9604641222676946e-8", usd.Float(5.9604641222676946e-8)},
		{`'456\'abc\'123'`, usd.String("456'abc'123")},
		{`"a\tb\\c"`, usd.String("a\tb\\c")},
		{"\"\"\"line one\nline \"two\"\"\"\"", usd.String("line one\nline \"two\"")},
		{"@./a.usda@", usd.AssetRef("./a.usda")},
		{"</World/Geom>", usd.ScenePath("/World/Geom")},
		{"@./w.usdc@</_0457>", usd.Reference{Asset: "./w.usdc", Prim: "/_0457"}},
		{"((1, 3, 3), (4, 5, 6))", usd.Tuple{
			usd.Tuple{usd.Int(1), usd.Int(3), usd.Int(3)},
			usd.Tuple{usd.Int(4), usd.Int(5), usd.Int(6)},
		}},
		{"[]", usd.List{}},
		{"[(1.0, 2.0), 3,]", usd.List{usd.Tuple{usd.Float(1), usd.Float(2)}, usd.Int(3)}},
		{`{ int[] a = [1]; string "b c" = "d" }`, usd.Dict{
			{Key: "a", TypedValue: usd.TypedValue{TypeName: "int", IsArray: true, Value: usd.List{usd.Int(1)}}},
			{Key: "b c", TypedValue: usd.TypedValue{TypeName: "string", Value: usd.String("d")}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, lowerValue(t, tt.src)); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLowerIntOverflow(t *testing.T) {
	tree, err := parser.New([]byte("99999999999999999999"), nil, 0).Parse(syntax.RuleValue)
	testutil.NoError(t, err)
	_, err = Value(tree.Root())
	testutil.ErrorIs(t, err, syntax.ErrLiteral)

	var le *syntax.LiteralError
	testutil.True(t, errors.As(err, &le), "LiteralError")
	testutil.Equal(t, syntax.RuleInt, le.Rule)
	testutil.Equal(t, "99999999999999999999", le.Text)
}

func TestLowerLiteralErrorPosition(t *testing.T) {
	_, err := lowerSource(t, "def \"a\" {\n    int big = 99999999999999999999\n}\n")
	var le *syntax.LiteralError
	testutil.True(t, errors.As(err, &le), "LiteralError, got %v", err)
	testutil.Equal(t, 2, le.Line)
	testutil.Equal(t, 15, le.Column)
}

func TestLowerDocument(t *testing.T) {
	doc, err := Lower(mustParse(t, "scenes/layer.usda"), nil)
	testutil.NoError(t, err)

	want := &usd.Document{
		Version: "1.0",
		Metadata: &usd.Metadata{
			Doc: "DO NOT modify: this file is auto-generated.",
			Entries: []usd.MetadataEntry{
				{Name: "subLayers", Value: usd.List{usd.AssetRef("./surfacing.usda")}},
				{Name: "doc", Value: usd.String("Generated from Composed Stage of root layer RefExample.usda\n")},
			},
		},
	}
	for _, name := range []string{"refSphere", "refSphere2"} {
		color := usd.Tuple{usd.Int(0), usd.Int(0), usd.Int(1)}
		order := usd.List{}
		if name == "refSphere2" {
			color = usd.Tuple{usd.Int(1), usd.Int(0), usd.Int(0)}
			order = usd.List{usd.String("xformOp:translate")}
		}
		want.Prims = append(want.Prims, &usd.Prim{
			Specifier: usd.SpecifierDef,
			TypeName:  "Xform",
			Name:      name,
			Body: usd.Body{
				&usd.Attribute{TypeName: "double3", Name: "xformOp:translate",
					Value: usd.Tuple{usd.Int(4), usd.Int(5), usd.Int(6)}},
				&usd.Attribute{Qualifiers: usd.QualifierUniform, TypeName: "token", IsArray: true,
					Name: "xformOpOrder", Value: order},
				&usd.Prim{
					Specifier: usd.SpecifierDef,
					TypeName:  "Sphere",
					Name:      "world",
					Body: usd.Body{
						&usd.Attribute{TypeName: "float3", IsArray: true, Name: "extent", Value: usd.List{
							usd.Tuple{usd.Int(-2), usd.Int(-2), usd.Int(-2)},
							usd.Tuple{usd.Int(2), usd.Int(2), usd.Int(2)},
						}},
						&usd.Attribute{TypeName: "color3f", IsArray: true, Name: "primvars:displayColor",
							Value: usd.List{color}},
						&usd.Attribute{TypeName: "double", Name: "radius", Value: usd.Int(2)},
					},
				},
			},
		})
	}

	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestLowerVariants(t *testing.T) {
	doc, err := Lower(mustParse(t, "scenes/variants.usda"), nil)
	testutil.NoError(t, err)

	hello := doc.Find("/hello")
	testutil.True(t, hello != nil, "prim /hello")

	variants, ok := hello.Metadata.Get("variants")
	testutil.True(t, ok, "variants metadata")
	sel, ok := variants.(usd.Dict).Get("shadingVariant")
	testutil.True(t, ok, "shadingVariant selection")
	testutil.Equal(t, usd.Value(usd.String("green")), sel.Value)

	sets := hello.Metadata.Lookup("variantSets")
	testutil.Len(t, sets, 1)
	testutil.Equal(t, usd.ListOpPrepend, sets[0].Op)

	translate := hello.Body.Attribute("xformOp:translate")
	testutil.True(t, translate.Qualifiers.Has(usd.QualifierCustom), "custom qualifier")

	world := doc.Find("/hello/world")
	testutil.True(t, world != nil, "prim /hello/world")
	displayColor := world.Body.Attribute("primvars:displayColor")
	testutil.True(t, displayColor.Value == nil, "declared without default")

	vs := hello.Body.VariantSet("shadingVariant")
	testutil.SliceEqual(t, []string{"blue", "green", "red"}, vs.Names())
	green := vs.Variant("green")
	testutil.Equal(t, "", green.Metadata.Doc, "doc is an entry, not an anonymous string")
	docEntry, _ := green.Metadata.Get("doc")
	testutil.Equal(t, usd.Value(usd.String("the default")), docEntry)
	over := green.Body.Prim("world")
	testutil.Equal(t, usd.SpecifierOver, over.Specifier)
	testutil.Equal(t, "", over.TypeName)
}

func TestLowerReferences(t *testing.T) {
	doc, err := Lower(mustParse(t, "scenes/nested/references.usda"), nil)
	testutil.NoError(t, err)

	ref := doc.Prims[0]
	refs := ref.Metadata.Lookup("references")
	testutil.Len(t, refs, 1)
	testutil.Equal(t, usd.ListOpPrepend, refs[0].Op)
	testutil.Equal(t, usd.Value(usd.Reference{
		Asset: "./Workspace.resources.usdc",
		Prim:  "/_04575deb781a141a28d3f9e4270abc7c",
	}), refs[0].Value)

	tmpl := doc.Find("/_template")
	testutil.Equal(t, usd.SpecifierClass, tmpl.Specifier)
	cd, ok := tmpl.Metadata.CustomData()
	testutil.True(t, ok, "customData")
	testutil.SliceEqual(t, []string{"a", "b", "bs", "c", "allowedTokens"}, cd.Keys())

	binding := tmpl.Body.Relationship("material:binding")
	testutil.Equal(t, usd.Value(usd.ScenePath("/Looks/Red")), binding.Targets)

	abc := tmpl.Body.Relationship("abc")
	testutil.Equal(t, usd.ListOpDelete, abc.Op)
	testutil.True(t, abc.Qualifiers.Has(usd.QualifierCustom), "custom")
	testutil.True(t, abc.Targets == nil, "no targets")

	bank := tmpl.Body.Relationship("audioSetting:bankArray")
	testutil.Len(t, bank.Paths(), 2)

	proxy := tmpl.Body.Relationship("proxyPrim")
	testutil.Equal(t, usd.Value(usd.None{}), proxy.Targets)
}

func TestLowerSinglePathList(t *testing.T) {
	doc, err := lowerSource(t, "def \"a\" {\n    rel one = [</x>]\n    rel bare = </x>\n}\n")
	testutil.NoError(t, err)
	body := doc.Prims[0].Body
	if diff := cmp.Diff(usd.Value(usd.List{usd.ScenePath("/x")}), body.Relationship("one").Targets); diff != "" {
		t.Errorf("bracketed targets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(usd.Value(usd.ScenePath("/x")), body.Relationship("bare").Targets); diff != "" {
		t.Errorf("bare target mismatch (-want +got):\n%s", diff)
	}
}

func TestLowerTimeSamples(t *testing.T) {
	doc, err := Lower(mustParse(t, "scenes/nested/animated.usda"), nil)
	testutil.NoError(t, err)

	fps, _ := doc.Metadata.Get("timeCodesPerSecond")
	testutil.Equal(t, usd.Value(usd.Float(24)), fps)

	anim := doc.Find("/anim")
	translate := anim.Body.Attribute("xformOp:translate")
	testutil.Equal(t, usd.PropertyTimeSamples, translate.Kind)
	testutil.True(t, translate.Value == nil, "time samples carry no default")
	want := []usd.TimeSample{
		{Time: 1, Value: usd.Tuple{usd.Int(0), usd.Int(0), usd.Int(0)}},
		{Time: 12.5, Value: usd.Tuple{usd.Int(0), usd.Float(0.5), usd.Int(0)}},
		{Time: 24, Value: usd.Tuple{usd.Int(0), usd.Int(1), usd.Int(0)}},
	}
	if diff := cmp.Diff(want, translate.TimeSamples); diff != "" {
		t.Errorf("time samples mismatch (-want +got):\n%s", diff)
	}

	scale := anim.Body.Attribute("xformOp:scale")
	testutil.Equal(t, usd.PropertyConnect, scale.Kind)
	testutil.Equal(t, usd.Value(usd.ScenePath("/anim/Scale.outputs:result")), scale.Value)

	vis := anim.Body.Attribute("visibility")
	allowed, ok := vis.Metadata.Get("allowedTokens")
	testutil.True(t, ok, "property metadata")
	testutil.Equal(t, 2, len(allowed.(usd.List)))

	notes := anim.Body.Attribute("notes")
	testutil.Equal(t, usd.Value(usd.String("line one\nline 'two' \"quoted\"")), notes.Value)

	info := anim.Body.Attribute("assetInfo").Value.(usd.Dict)
	testutil.SliceEqual(t, []string{"identifier", "display name"}, info.Keys())
}

func TestLowerRejectsNonDocument(t *testing.T) {
	tree, err := parser.New([]byte("abc"), nil, 0).Parse(syntax.RuleIdentifier)
	testutil.NoError(t, err)
	_, err = Lower(tree, nil)
	testutil.True(t, err != nil, "identifier root must be rejected")
}

func TestUnescape(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{`a\nb`, "a\nb"},
		{`\"q\"`, `"q"`},
		{`\'`, "'"},
		{`\\`, `\`},
		{`\q`, "q"},
		{`trailing\`, `trailing\`},
	}
	for _, tt := range tests {
		testutil.Equal(t, tt.want, Unescape(tt.in), "Unescape(%q)", tt.in)
	}
}

func mustParse(t *testing.T, fixture string) *syntax.Tree {
	t.Helper()
	tree, err := parser.New(testutil.LoadFixture(t, fixture), nil, 0).Parse(syntax.RuleDocument)
	testutil.NoError(t, err, "parse %s", fixture)
	return tree
}
