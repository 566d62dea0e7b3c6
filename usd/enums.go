package usd

import "strconv"

// Specifier is the keyword that opens a prim.
type Specifier int

const (
	SpecifierDef Specifier = iota
	SpecifierOver
	SpecifierClass
)

func (s Specifier) String() string {
	switch s {
	case SpecifierDef:
		return "def"
	case SpecifierOver:
		return "over"
	case SpecifierClass:
		return "class"
	default:
		return "Specifier(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseSpecifier maps a keyword to its Specifier.
func ParseSpecifier(s string) (Specifier, bool) {
	switch s {
	case "def":
		return SpecifierDef, true
	case "over":
		return SpecifierOver, true
	case "class":
		return SpecifierClass, true
	}
	return 0, false
}

// ListOp is the edit applied to an inherited list-valued field. The zero
// value means the field is set explicitly.
type ListOp int

const (
	ListOpExplicit ListOp = iota
	ListOpDelete
	ListOpAdd
	ListOpPrepend
	ListOpAppend
)

func (op ListOp) String() string {
	switch op {
	case ListOpExplicit:
		return ""
	case ListOpDelete:
		return "delete"
	case ListOpAdd:
		return "add"
	case ListOpPrepend:
		return "prepend"
	case ListOpAppend:
		return "append"
	default:
		return "ListOp(" + strconv.Itoa(int(op)) + ")"
	}
}

// ParseListOp maps a keyword to its ListOp.
func ParseListOp(s string) (ListOp, bool) {
	switch s {
	case "delete":
		return ListOpDelete, true
	case "add":
		return ListOpAdd, true
	case "prepend":
		return ListOpPrepend, true
	case "append":
		return ListOpAppend, true
	}
	return ListOpExplicit, false
}

// Qualifiers is the set of property qualifier keywords.
type Qualifiers uint8

const (
	QualifierCustom Qualifiers = 1 << iota
	QualifierUniform
	QualifierVarying
)

var qualifierNames = []struct {
	q    Qualifiers
	name string
}{
	{QualifierCustom, "custom"},
	{QualifierUniform, "uniform"},
	{QualifierVarying, "varying"},
}

// Has reports whether every qualifier in q2 is set.
func (q Qualifiers) Has(q2 Qualifiers) bool { return q&q2 == q2 }

// Names returns the set qualifiers in canonical order.
func (q Qualifiers) Names() []string {
	var names []string
	for _, qn := range qualifierNames {
		if q.Has(qn.q) {
			names = append(names, qn.name)
		}
	}
	return names
}

// String joins the qualifier names with spaces.
func (q Qualifiers) String() string {
	var s string
	for i, n := range q.Names() {
		if i > 0 {
			s += " "
		}
		s += n
	}
	return s
}

// ParseQualifier maps a keyword to its qualifier bit.
func ParseQualifier(s string) (Qualifiers, bool) {
	for _, qn := range qualifierNames {
		if qn.name == s {
			return qn.q, true
		}
	}
	return 0, false
}

// PropertyKind tells what an attribute's assignment holds.
type PropertyKind int

const (
	// PropertyDefault is a plain attribute, possibly with a default value.
	PropertyDefault PropertyKind = iota
	// PropertyConnect is a ".connect" assignment holding target paths.
	PropertyConnect
	// PropertyTimeSamples is a ".timeSamples" assignment.
	PropertyTimeSamples
)

func (k PropertyKind) String() string {
	switch k {
	case PropertyDefault:
		return "default"
	case PropertyConnect:
		return "connect"
	case PropertyTimeSamples:
		return "timeSamples"
	default:
		return "PropertyKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParsePropertySuffix maps ".connect" or ".timeSamples" to its kind.
func ParsePropertySuffix(s string) (PropertyKind, bool) {
	switch s {
	case ".connect":
		return PropertyConnect, true
	case ".timeSamples":
		return PropertyTimeSamples, true
	}
	return PropertyDefault, false
}
