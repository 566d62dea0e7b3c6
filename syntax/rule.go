// Package syntax defines the concrete syntax tree produced by the USDA
// recognizer: grammar rule identities, the arena-backed Tree and its
// Node handles, source positions, and parse errors.
//
// The rule set and the order of each rule's children form a contract for
// downstream consumers. Qualifiers precede keywords, keywords precede
// names, and names precede values or targets.
package syntax

// Rule identifies a grammar production.
type Rule uint8

const (
	RuleInvalid Rule = iota // invalid

	// Lexical rules. Nodes of these rules have no children.

	RuleIdentifier           // identifier
	RuleNamespacedIdentifier // namespaced_identifier
	RuleNamespacedName       // namespaced_name
	RuleTypeName             // type_name
	RuleArrayMarker          // array_marker
	RuleSingleQuotedString   // single_quoted_string
	RuleDoubleQuotedString   // double_quoted_string
	RuleTripleQuotedString   // triple_quoted_string
	RuleInt                  // int
	RuleFloat                // float
	RuleBool                 // bool
	RuleNone                 // none
	RuleScenePath            // scene_path
	RuleAssetRef             // asset_reference
	RuleQualifier            // qualifier
	RuleListOp               // list_op
	RuleSpecifier            // specifier
	RulePropertySuffix       // property_suffix
	RuleVersion              // version

	// Value layer.

	RuleString      // string
	RuleReference   // reference
	RuleValue       // value
	RuleTuple       // tuple
	RuleList        // list
	RuleDictionary  // dictionary
	RuleTypedDecl   // typed_declaration
	RuleTimeSamples // time_samples
	RuleTimeSample  // time_sample

	// Metadata layer.

	RuleMetadata      // metadata
	RuleDocString     // doc_string
	RuleMetadataEntry // metadata_entry
	RuleCustomData    // custom_data

	// Statement layer.

	RuleAttribute    // attribute
	RuleRelationship // relationship
	RuleTargets      // targets

	// Composition layer.

	RulePrim       // prim
	RuleVariantSet // variant_set
	RuleVariant    // variant

	// Document layer.

	RuleVersionHeader // version_header
	RuleDocument      // document
	RuleEOI           // EOI

	ruleCount
)

var ruleNames = [ruleCount]string{
	RuleInvalid:              "invalid",
	RuleIdentifier:           "identifier",
	RuleNamespacedIdentifier: "namespaced_identifier",
	RuleNamespacedName:       "namespaced_name",
	RuleTypeName:             "type_name",
	RuleArrayMarker:          "array_marker",
	RuleSingleQuotedString:   "single_quoted_string",
	RuleDoubleQuotedString:   "double_quoted_string",
	RuleTripleQuotedString:   "triple_quoted_string",
	RuleInt:                  "int",
	RuleFloat:                "float",
	RuleBool:                 "bool",
	RuleNone:                 "none",
	RuleScenePath:            "scene_path",
	RuleAssetRef:             "asset_reference",
	RuleQualifier:            "qualifier",
	RuleListOp:               "list_op",
	RuleSpecifier:            "specifier",
	RulePropertySuffix:       "property_suffix",
	RuleVersion:              "version",
	RuleString:               "string",
	RuleReference:            "reference",
	RuleValue:                "value",
	RuleTuple:                "tuple",
	RuleList:                 "list",
	RuleDictionary:           "dictionary",
	RuleTypedDecl:            "typed_declaration",
	RuleTimeSamples:          "time_samples",
	RuleTimeSample:           "time_sample",
	RuleMetadata:             "metadata",
	RuleDocString:            "doc_string",
	RuleMetadataEntry:        "metadata_entry",
	RuleCustomData:           "custom_data",
	RuleAttribute:            "attribute",
	RuleRelationship:         "relationship",
	RuleTargets:              "targets",
	RulePrim:                 "prim",
	RuleVariantSet:           "variant_set",
	RuleVariant:              "variant",
	RuleVersionHeader:        "version_header",
	RuleDocument:             "document",
	RuleEOI:                  "EOI",
}

// String returns the rule name used in diagnostics and by RuleByName.
func (r Rule) String() string {
	if r < ruleCount {
		return ruleNames[r]
	}
	return "invalid"
}

// IsTerminal reports whether nodes of this rule are leaves of the
// lexical layer.
func (r Rule) IsTerminal() bool {
	return r >= RuleIdentifier && r <= RuleVersion
}

// Rules returns every invokable rule in declaration order.
func Rules() []Rule {
	rules := make([]Rule, 0, ruleCount-1)
	for r := RuleIdentifier; r < ruleCount; r++ {
		if r == RuleEOI {
			continue
		}
		rules = append(rules, r)
	}
	return rules
}

// RuleByName looks up a rule by its String name.
func RuleByName(name string) (Rule, bool) {
	for r := RuleIdentifier; r < ruleCount; r++ {
		if ruleNames[r] == name && r != RuleEOI {
			return r, true
		}
	}
	return RuleInvalid, false
}

// describe returns the phrase used for a rule in "expected ..." messages.
func (r Rule) describe() string {
	if r == RuleEOI {
		return "end of input"
	}
	return r.String()
}
