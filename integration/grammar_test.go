package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gousd/usda"
	"github.com/gousd/usda/syntax"
)

type grammarCase struct {
	rule   syntax.Rule
	input  string
	accept bool
}

// grammarCases are single-rule inputs with their expected outcome.
var grammarCases = []grammarCase{
	{syntax.RuleIdentifier, "abc_0123_abc", true},
	{syntax.RuleIdentifier, "SCREAMING_SNAKE_CASE", true},
	{syntax.RuleIdentifier, "0123abc", false},
	{syntax.RuleIdentifier, "kebab-case", false},
	{syntax.RuleIdentifier, "ab c", false},
	{syntax.RuleNamespacedIdentifier, "transform:position", true},
	{syntax.RuleNamespacedIdentifier, "position", false},
	{syntax.RuleNamespacedName, "position", true},
	{syntax.RuleNamespacedName, "primvars:st:indices", true},
	{syntax.RuleScenePath, "<../../a/b/c/d.usdc>", true},
	{syntax.RuleScenePath, "</World/Mat.outputs:surface>", true},
	{syntax.RuleAssetRef, "@a/b/c@", true},
	{syntax.RuleSingleQuotedString, `'456\'abc\'123'`, true},
	{syntax.RuleDoubleQuotedString, `"abc`, false},
	{syntax.RuleTripleQuotedString, "\"\"\"a\n\"b\"\n\"\"\"", true},
	{syntax.RuleInt, "-42", true},
	{syntax.RuleInt, "007", false},
	{syntax.RuleFloat, "1.5e-3", true},
	{syntax.RuleFloat, "1", false},
	{syntax.RuleValue, "[(1, 2), (3, 4),]", true},
	{syntax.RuleValue, "((1, 2), (3, 4))", true},
	{syntax.RuleValue, "()", false},
	{syntax.RuleValue, "[1 2]", false},
	{syntax.RuleAttribute, "uniform token[] xformOpOrder = []", true},
	{syntax.RuleAttribute, "float3 a.timeSample = {}", false},
	{syntax.RuleRelationship, "custom delete rel abc", true},
	{syntax.RuleRelationship, "delete delete rel abc", false},
	{syntax.RulePrim, `def "a" {}`, true},
	{syntax.RulePrim, `def a {}`, false},
	{syntax.RuleDocument, "", true},
	{syntax.RuleDocument, "#usda1.0", false},
	{syntax.RuleDocument, "#usda 1.0 (doc = \"x\")", false},
	{syntax.RuleDocument, "def \"a\" {\n    custom rel abc\n}", true},
	{syntax.RuleDocument, "def \"a\" {\n    uniform rel abc\n}", false},
	{syntax.RuleDocument, "def \"a\" {\n    uniform rel abc = </x>\n}", false},
	{syntax.RuleDocument, "(customData = {})", true},
	{syntax.RuleDocument, "(customData = 5)", false},
}

func TestGrammarCases(t *testing.T) {
	for _, tc := range grammarCases {
		t.Run(tc.rule.String()+"/"+tc.input, func(t *testing.T) {
			_, err := usda.ParseRule(tc.rule, []byte(tc.input))
			if tc.accept {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, usda.ErrSyntax)
			}
		})
	}
}
