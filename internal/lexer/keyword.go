package lexer

// Keyword groups. Order inside a group matters only for reporting; a
// keyword matches when the word is not immediately followed by another
// identifier byte.
var (
	// AttributeQualifiers may precede an attribute type.
	AttributeQualifiers = []string{"custom", "uniform", "varying"}
	// RelationshipQualifiers may precede the rel keyword.
	RelationshipQualifiers = []string{"custom", "varying"}
	// ListOps edit inherited list-valued fields.
	ListOps = []string{"delete", "add", "prepend", "append"}
	// Specifiers open a prim statement.
	Specifiers = []string{"def", "over", "class"}
	// Bools are the boolean literals.
	Bools = []string{"true", "false"}
	// PropertySuffixes follow an attribute name.
	PropertySuffixes = []string{".connect", ".timeSamples"}
)

// Keyword names used by the grammar outside the groups above.
const (
	KwRel        = "rel"
	KwVariantSet = "variantSet"
	KwNone       = "None"
	KwCustomData = "customData"
	KwHeader     = "#usda"
)

// reserved holds the words that cannot name a type.
var reserved = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, group := range [][]string{Specifiers, ListOps, AttributeQualifiers, {KwRel, KwVariantSet}} {
		for _, w := range group {
			set[w] = struct{}{}
		}
	}
	return set
}()

// IsReserved reports whether word is a grammar keyword that cannot be
// used as a type name.
func IsReserved(word string) bool {
	_, ok := reserved[word]
	return ok
}

// TypeName matches an identifier that is not a reserved word.
func TypeName(src []byte, pos int) int {
	end := Identifier(src, pos)
	if end == NoMatch || IsReserved(string(src[pos:end])) {
		return NoMatch
	}
	return end
}

// Keyword matches word when it is not followed by an identifier byte.
func Keyword(src []byte, pos int, word string) int {
	end := Literal(src, pos, word)
	if end == NoMatch || (end < len(src) && isIdentPart(src[end])) {
		return NoMatch
	}
	return end
}

// OneOf matches the first keyword of words found at pos.
func OneOf(src []byte, pos int, words []string) int {
	for _, w := range words {
		if end := Keyword(src, pos, w); end != NoMatch {
			return end
		}
	}
	return NoMatch
}

// PropertySuffix matches ".connect" or ".timeSamples" directly after an
// attribute name.
func PropertySuffix(src []byte, pos int) int {
	return OneOf(src, pos, PropertySuffixes)
}
