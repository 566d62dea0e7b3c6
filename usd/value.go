// Package usd holds the typed model of a parsed USDA layer.
//
// Every value in this package is built once by the parser and never
// mutated afterwards. Ordered collections keep source order, and
// duplicate keys are preserved as written.
package usd

import (
	"strconv"
	"strings"
)

// ValueKind identifies the concrete type behind a Value.
type ValueKind int

const (
	KindNone ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindAssetRef
	KindScenePath
	KindReference
	KindTuple
	KindList
	KindDict
)

func (k ValueKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindAssetRef:
		return "asset"
	case KindScenePath:
		return "path"
	case KindReference:
		return "reference"
	case KindTuple:
		return "tuple"
	case KindList:
		return "list"
	case KindDict:
		return "dictionary"
	default:
		return "ValueKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a literal from the source: a scalar, a path, or a container.
// The set of implementations is closed.
type Value interface {
	Kind() ValueKind
	// String renders the value in USDA syntax.
	String() string
	value()
}

// None is the None literal.
type None struct{}

// Bool is a true or false literal.
type Bool bool

// Int is an integer literal.
type Int int64

// Float is a literal with a decimal point.
type Float float64

// String is the unescaped content of a quoted string.
type String string

// AssetRef is the path between the '@' delimiters of an asset reference.
type AssetRef string

// Reference is an asset reference followed by a prim path.
type Reference struct {
	Asset AssetRef
	Prim  ScenePath
}

// Tuple is a parenthesized, fixed-shape value such as a vector.
type Tuple []Value

// List is a bracketed sequence of values.
type List []Value

// Dict is an ordered dictionary of typed entries.
type Dict []DictEntry

// TypedValue is a value declared with an explicit type, as in a dictionary
// entry. IsArray reflects the "[]" marker on the type, independent of the
// literal's own shape.
type TypedValue struct {
	TypeName string
	IsArray  bool
	Value    Value
}

// DictEntry is one "type key = value" declaration of a Dict.
type DictEntry struct {
	Key string
	TypedValue
}

func (None) Kind() ValueKind      { return KindNone }
func (Bool) Kind() ValueKind      { return KindBool }
func (Int) Kind() ValueKind       { return KindInt }
func (Float) Kind() ValueKind     { return KindFloat }
func (String) Kind() ValueKind    { return KindString }
func (AssetRef) Kind() ValueKind  { return KindAssetRef }
func (ScenePath) Kind() ValueKind { return KindScenePath }
func (Reference) Kind() ValueKind { return KindReference }
func (Tuple) Kind() ValueKind     { return KindTuple }
func (List) Kind() ValueKind      { return KindList }
func (Dict) Kind() ValueKind      { return KindDict }

func (None) value()      {}
func (Bool) value()      {}
func (Int) value()       {}
func (Float) value()     {}
func (String) value()    {}
func (AssetRef) value()  {}
func (ScenePath) value() {}
func (Reference) value() {}
func (Tuple) value()     {}
func (List) value()      {}
func (Dict) value()      {}

func (None) String() string { return "None" }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// String keeps a decimal point so the text reads back as a Float.
func (f Float) String() string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

func (s String) String() string { return strconv.Quote(string(s)) }

func (a AssetRef) String() string { return "@" + string(a) + "@" }

func (r Reference) String() string { return r.Asset.String() + r.Prim.String() }

func (t Tuple) String() string { return "(" + joinValues(t) + ")" }

func (l List) String() string { return "[" + joinValues(l) + "]" }

func (d Dict) String() string {
	if len(d) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{ ")
	for i, e := range d {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.TypeName)
		if e.IsArray {
			b.WriteString("[]")
		}
		b.WriteByte(' ')
		if isIdentifier(e.Key) {
			b.WriteString(e.Key)
		} else {
			b.WriteString(strconv.Quote(e.Key))
		}
		b.WriteString(" = ")
		b.WriteString(e.Value.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Get returns the value of the first entry named key.
func (d Dict) Get(key string) (TypedValue, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.TypedValue, true
		}
	}
	return TypedValue{}, false
}

// Keys returns the entry keys in source order.
func (d Dict) Keys() []string {
	keys := make([]string, len(d))
	for i, e := range d {
		keys[i] = e.Key
	}
	return keys
}

func joinValues(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

// isIdentifier reports whether s can be written as a bare namespaced name.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, seg := range strings.Split(s, ":") {
		if seg == "" || !(seg[0] == '_' || isLetter(seg[0])) {
			return false
		}
		for i := 1; i < len(seg); i++ {
			c := seg[i]
			if !(c == '_' || isLetter(c) || (c >= '0' && c <= '9')) {
				return false
			}
		}
	}
	return true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ValueAs returns v as type T if it has that concrete type.
func ValueAs[T Value](v Value) (T, bool) {
	t, ok := v.(T)
	return t, ok
}

// Interface converts v to plain Go data: nil, bool, int64, float64,
// string, []any, or an ordered []DictItem for dictionaries. Asset
// references and paths keep their delimiters so they stay distinguishable
// from strings.
func Interface(v Value) any {
	switch v := v.(type) {
	case nil, None:
		return nil
	case Bool:
		return bool(v)
	case Int:
		return int64(v)
	case Float:
		return float64(v)
	case String:
		return string(v)
	case AssetRef, ScenePath, Reference:
		return v.String()
	case Tuple:
		return interfaces(v)
	case List:
		return interfaces(v)
	case Dict:
		items := make([]DictItem, len(v))
		for i, e := range v {
			items[i] = DictItem{Key: e.Key, Value: Interface(e.Value)}
		}
		return items
	default:
		return v.String()
	}
}

// DictItem is one key of a dictionary converted by Interface.
type DictItem struct {
	Key   string
	Value any
}

func interfaces(vs []Value) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = Interface(v)
	}
	return out
}
