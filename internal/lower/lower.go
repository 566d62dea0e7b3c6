// Package lower builds the typed usd model from a document tree.
//
// Lowering trusts the tree shape produced by the parser and only fails on
// literals that the grammar accepts but Go cannot represent, such as an
// integer outside the int64 range.
package lower

import (
	"log/slog"
	"strconv"

	"github.com/gousd/usda/internal/types"
	"github.com/gousd/usda/syntax"
	"github.com/gousd/usda/usd"
)

// loweringContext tracks state during lowering. The first literal error stops
// further conversion.
type loweringContext struct {
	err   error
	prims int
	types.Logger
}

// Lower converts a tree rooted at a document node into a usd.Document.
// If logger is nil, logging is disabled.
func Lower(tree *syntax.Tree, logger *slog.Logger) (*usd.Document, error) {
	root := tree.Root()
	if !root.Valid() || root.Rule() != syntax.RuleDocument {
		return nil, errNotDocument(root)
	}
	ctx := &loweringContext{Logger: types.Logger{L: logger}}

	doc := &usd.Document{}
	for c := range root.Children() {
		switch c.Rule() {
		case syntax.RuleVersionHeader:
			if v, ok := c.Child(syntax.RuleVersion); ok {
				doc.Version = v.Text()
			}
		case syntax.RuleMetadata:
			doc.Metadata = ctx.metadata(c)
		case syntax.RulePrim:
			doc.Prims = append(doc.Prims, ctx.prim(c))
		}
		if ctx.err != nil {
			return nil, ctx.err
		}
	}

	ctx.Log(slog.LevelDebug, "lowering complete",
		slog.String("version", doc.Version),
		slog.Int("prims", ctx.prims))
	return doc, nil
}

// Value converts a value node, or any node of a rule a value may consist
// of, into a usd.Value.
func Value(n syntax.Node) (usd.Value, error) {
	ctx := &loweringContext{}
	v := ctx.value(n)
	if ctx.err != nil {
		return nil, ctx.err
	}
	return v, nil
}

func (ctx *loweringContext) fail(n syntax.Node, err error) {
	if ctx.err == nil {
		ctx.err = &syntax.LiteralError{
			Position: n.Position(),
			Rule:     n.Rule(),
			Text:     n.Text(),
			Err:      err,
		}
	}
}

func (ctx *loweringContext) metadata(n syntax.Node) *usd.Metadata {
	md := &usd.Metadata{}
	for c := range n.Children() {
		switch c.Rule() {
		case syntax.RuleDocString:
			md.Doc = ctx.str(c.Only())
		case syntax.RuleCustomData:
			d, _ := c.Child(syntax.RuleDictionary)
			md.Entries = append(md.Entries, usd.MetadataEntry{
				Name:  "customData",
				Value: ctx.dict(d),
			})
		case syntax.RuleMetadataEntry:
			md.Entries = append(md.Entries, ctx.metadataEntry(c))
		}
	}
	return md
}

func (ctx *loweringContext) metadataEntry(n syntax.Node) usd.MetadataEntry {
	var e usd.MetadataEntry
	for c := range n.Children() {
		switch c.Rule() {
		case syntax.RuleListOp:
			e.Op, _ = usd.ParseListOp(c.Text())
		case syntax.RuleIdentifier:
			e.Name = c.Text()
		case syntax.RuleValue:
			e.Value = ctx.value(c)
		}
	}
	return e
}

func (ctx *loweringContext) prim(n syntax.Node) *usd.Prim {
	p := &usd.Prim{}
	for c := range n.Children() {
		switch c.Rule() {
		case syntax.RuleSpecifier:
			p.Specifier, _ = usd.ParseSpecifier(c.Text())
		case syntax.RuleTypeName:
			p.TypeName = c.Text()
		case syntax.RuleString:
			p.Name = ctx.str(c)
		case syntax.RuleMetadata:
			p.Metadata = ctx.metadata(c)
		default:
			if s := ctx.statement(c); s != nil {
				p.Body = append(p.Body, s)
			}
		}
	}
	ctx.prims++
	if ctx.TraceEnabled() {
		ctx.Trace("lowered prim",
			slog.String("name", p.Name),
			slog.String("type", p.TypeName),
			slog.Int("statements", len(p.Body)))
	}
	return p
}

func (ctx *loweringContext) statement(n syntax.Node) usd.Statement {
	switch n.Rule() {
	case syntax.RulePrim:
		return ctx.prim(n)
	case syntax.RuleVariantSet:
		return ctx.variantSet(n)
	case syntax.RuleRelationship:
		return ctx.relationship(n)
	case syntax.RuleAttribute:
		return ctx.attribute(n)
	default:
		return nil
	}
}

func (ctx *loweringContext) attribute(n syntax.Node) *usd.Attribute {
	a := &usd.Attribute{}
	for c := range n.Children() {
		switch c.Rule() {
		case syntax.RuleQualifier:
			q, _ := usd.ParseQualifier(c.Text())
			a.Qualifiers |= q
		case syntax.RuleTypeName:
			a.TypeName = c.Text()
		case syntax.RuleArrayMarker:
			a.IsArray = true
		case syntax.RuleNamespacedName:
			a.Name = c.Text()
		case syntax.RulePropertySuffix:
			a.Kind, _ = usd.ParsePropertySuffix(c.Text())
		case syntax.RuleValue:
			a.Value = ctx.value(c)
		case syntax.RuleTimeSamples:
			a.TimeSamples = ctx.timeSamples(c)
		case syntax.RuleMetadata:
			a.Metadata = ctx.metadata(c)
		}
	}
	return a
}

func (ctx *loweringContext) timeSamples(n syntax.Node) []usd.TimeSample {
	samples := []usd.TimeSample{}
	for c := range n.ChildrenOf(syntax.RuleTimeSample) {
		var s usd.TimeSample
		for part := range c.Children() {
			switch part.Rule() {
			case syntax.RuleFloat, syntax.RuleInt:
				s.Time = ctx.float(part)
			case syntax.RuleValue:
				s.Value = ctx.value(part)
			}
		}
		samples = append(samples, s)
	}
	return samples
}

func (ctx *loweringContext) relationship(n syntax.Node) *usd.Relationship {
	r := &usd.Relationship{}
	for c := range n.Children() {
		switch c.Rule() {
		case syntax.RuleListOp:
			r.Op, _ = usd.ParseListOp(c.Text())
		case syntax.RuleQualifier:
			q, _ := usd.ParseQualifier(c.Text())
			r.Qualifiers |= q
		case syntax.RuleNamespacedName:
			r.Name = c.Text()
		case syntax.RuleTargets:
			r.Targets = ctx.targets(c)
		case syntax.RuleMetadata:
			r.Metadata = ctx.metadata(c)
		}
	}
	return r
}

// targets distinguishes a bracketed list of one path from a bare path by
// the opening bracket, since both have a single scene path child.
func (ctx *loweringContext) targets(n syntax.Node) usd.Value {
	if text := n.Text(); len(text) > 0 && text[0] == '[' {
		paths := usd.List{}
		for c := range n.ChildrenOf(syntax.RuleScenePath) {
			paths = append(paths, scenePath(c))
		}
		return paths
	}
	c := n.Only()
	if c.Rule() == syntax.RuleNone {
		return usd.None{}
	}
	return scenePath(c)
}

func (ctx *loweringContext) variantSet(n syntax.Node) *usd.VariantSet {
	vs := &usd.VariantSet{}
	for c := range n.Children() {
		switch c.Rule() {
		case syntax.RuleString:
			vs.Name = ctx.str(c)
		case syntax.RuleVariant:
			vs.Variants = append(vs.Variants, ctx.variant(c))
		}
	}
	return vs
}

func (ctx *loweringContext) variant(n syntax.Node) *usd.Variant {
	v := &usd.Variant{}
	for c := range n.Children() {
		switch c.Rule() {
		case syntax.RuleString:
			v.Name = ctx.str(c)
		case syntax.RuleMetadata:
			v.Metadata = ctx.metadata(c)
		default:
			if s := ctx.statement(c); s != nil {
				v.Body = append(v.Body, s)
			}
		}
	}
	return v
}

// value converts a value node or one of its alternatives.
func (ctx *loweringContext) value(n syntax.Node) usd.Value {
	switch n.Rule() {
	case syntax.RuleValue:
		return ctx.value(n.Only())
	case syntax.RuleNone:
		return usd.None{}
	case syntax.RuleBool:
		return usd.Bool(n.Text() == "true")
	case syntax.RuleInt:
		i, err := strconv.ParseInt(n.Text(), 10, 64)
		if err != nil {
			ctx.fail(n, err)
		}
		return usd.Int(i)
	case syntax.RuleFloat:
		return usd.Float(ctx.float(n))
	case syntax.RuleString, syntax.RuleSingleQuotedString,
		syntax.RuleDoubleQuotedString, syntax.RuleTripleQuotedString:
		return usd.String(ctx.str(n))
	case syntax.RuleAssetRef:
		return assetRef(n)
	case syntax.RuleScenePath:
		return scenePath(n)
	case syntax.RuleReference:
		r := usd.Reference{}
		if a, ok := n.Child(syntax.RuleAssetRef); ok {
			r.Asset = assetRef(a)
		}
		if p, ok := n.Child(syntax.RuleScenePath); ok {
			r.Prim = scenePath(p)
		}
		return r
	case syntax.RuleTuple:
		return usd.Tuple(ctx.values(n))
	case syntax.RuleList:
		return usd.List(ctx.values(n))
	case syntax.RuleDictionary:
		return ctx.dict(n)
	default:
		ctx.fail(n, errNotValue(n))
		return nil
	}
}

func (ctx *loweringContext) values(n syntax.Node) []usd.Value {
	out := []usd.Value{}
	for c := range n.ChildrenOf(syntax.RuleValue) {
		out = append(out, ctx.value(c))
	}
	return out
}

func (ctx *loweringContext) dict(n syntax.Node) usd.Dict {
	d := usd.Dict{}
	for decl := range n.ChildrenOf(syntax.RuleTypedDecl) {
		var e usd.DictEntry
		for c := range decl.Children() {
			switch c.Rule() {
			case syntax.RuleTypeName:
				e.TypeName = c.Text()
			case syntax.RuleArrayMarker:
				e.IsArray = true
			case syntax.RuleNamespacedName:
				e.Key = c.Text()
			case syntax.RuleString:
				e.Key = ctx.str(c)
			case syntax.RuleValue:
				e.Value = ctx.value(c)
			}
		}
		d = append(d, e)
	}
	return d
}

func (ctx *loweringContext) float(n syntax.Node) float64 {
	f, err := strconv.ParseFloat(n.Text(), 64)
	if err != nil {
		ctx.fail(n, err)
	}
	return f
}

// str returns the content of a string node or one of its leaves.
func (ctx *loweringContext) str(n syntax.Node) string {
	if n.Rule() == syntax.RuleString {
		n = n.Only()
	}
	text := n.Text()
	switch n.Rule() {
	case syntax.RuleTripleQuotedString:
		return Unescape(text[3 : len(text)-3])
	case syntax.RuleSingleQuotedString, syntax.RuleDoubleQuotedString:
		return Unescape(text[1 : len(text)-1])
	default:
		ctx.fail(n, errNotValue(n))
		return ""
	}
}

func assetRef(n syntax.Node) usd.AssetRef {
	text := n.Text()
	return usd.AssetRef(text[1 : len(text)-1])
}

func scenePath(n syntax.Node) usd.ScenePath {
	text := n.Text()
	return usd.ScenePath(text[1 : len(text)-1])
}
