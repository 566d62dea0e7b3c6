package parser

import (
	"github.com/gousd/usda/internal/lexer"
	"github.com/gousd/usda/syntax"
)

// --- Lexical leaves ---

func (p *Parser) namespacedName() bool {
	return p.leaf(syntax.RuleNamespacedName, lexer.NamespacedName)
}

// typeName matches an identifier that is not a grammar keyword, so that
// "uniform rel" is never read as an attribute of type rel.
func (p *Parser) typeName() bool {
	return p.leaf(syntax.RuleTypeName, lexer.TypeName)
}

func (p *Parser) integer() bool {
	return p.leaf(syntax.RuleInt, lexer.Int)
}

func (p *Parser) float() bool {
	return p.leaf(syntax.RuleFloat, lexer.Float)
}

func (p *Parser) boolean() bool {
	return p.leaf(syntax.RuleBool, func(src []byte, pos int) int {
		return lexer.OneOf(src, pos, lexer.Bools)
	})
}

func (p *Parser) none() bool {
	return p.leaf(syntax.RuleNone, func(src []byte, pos int) int {
		return lexer.Keyword(src, pos, lexer.KwNone)
	})
}

func (p *Parser) scenePath() bool {
	return p.leaf(syntax.RuleScenePath, lexer.ScenePath)
}

func (p *Parser) assetRef() bool {
	return p.leaf(syntax.RuleAssetRef, lexer.AssetRef)
}

func (p *Parser) singleQuoted() bool {
	return p.leaf(syntax.RuleSingleQuotedString, lexer.SingleQuoted)
}

func (p *Parser) doubleQuoted() bool {
	return p.leaf(syntax.RuleDoubleQuotedString, lexer.DoubleQuoted)
}

func (p *Parser) tripleQuoted() bool {
	return p.leaf(syntax.RuleTripleQuotedString, lexer.TripleQuoted)
}

// arrayMarker matches "[]", allowing trivia between the brackets.
func (p *Parser) arrayMarker() bool {
	return p.leaf(syntax.RuleArrayMarker, func(src []byte, pos int) int {
		if pos = lexer.Literal(src, pos, "["); pos == lexer.NoMatch {
			return lexer.NoMatch
		}
		return lexer.Literal(src, lexer.SkipTrivia(src, pos), "]")
	})
}

// --- Values ---

// str matches any of the three quoting conventions. Triple quotes are
// tried first because an empty single-line string is a prefix of them.
func (p *Parser) str() bool {
	return p.node(syntax.RuleString, func() bool {
		return p.choice(p.tripleQuoted, p.doubleQuoted, p.singleQuoted)
	})
}

// reference matches an asset reference followed by a prim path.
func (p *Parser) reference() bool {
	return p.node(syntax.RuleReference, func() bool {
		return p.assetRef() && p.scenePath()
	})
}

// value matches a scalar or composite literal. Float precedes Int so that
// the integer part of a float is not taken on its own, and Reference
// precedes AssetRef for the same reason.
func (p *Parser) value() bool {
	return p.node(syntax.RuleValue, func() bool {
		return p.choice(
			p.none,
			p.boolean,
			p.float,
			p.integer,
			p.str,
			p.reference,
			p.assetRef,
			p.scenePath,
			p.tuple,
			p.list,
			p.dictionary,
		)
	})
}

// tuple matches "(" value ("," value)* ","? ")".
func (p *Parser) tuple() bool {
	return p.node(syntax.RuleTuple, func() bool {
		return p.token("(") && p.deeper(syntax.RuleTuple, func() bool {
			return p.value() && p.commaList(p.value) && p.token(")")
		})
	})
}

// list matches "[" (value ("," value)* ","?)? "]".
func (p *Parser) list() bool {
	return p.node(syntax.RuleList, func() bool {
		return p.token("[") && p.deeper(syntax.RuleList, func() bool {
			return p.optional(func() bool {
				return p.value() && p.commaList(p.value)
			}) && p.token("]")
		})
	})
}

// commaList matches the tail of a comma-separated sequence whose first
// element has already been matched, including an optional trailing comma.
func (p *Parser) commaList(elem func() bool) bool {
	return p.many(func() bool {
		return p.token(",") && elem()
	}) && p.optional(func() bool { return p.token(",") })
}

// dictionary matches "{" (typed_declaration ";"?)* "}".
func (p *Parser) dictionary() bool {
	return p.node(syntax.RuleDictionary, func() bool {
		return p.token("{") && p.deeper(syntax.RuleDictionary, func() bool {
			return p.many(func() bool {
				return p.typedDecl() && p.optional(func() bool { return p.token(";") })
			}) && p.token("}")
		})
	})
}

// typedDecl matches type_name array_marker? key "=" value, where key is a
// namespaced name or a quoted string.
func (p *Parser) typedDecl() bool {
	return p.node(syntax.RuleTypedDecl, func() bool {
		return p.typeName() &&
			p.optional(p.arrayMarker) &&
			p.choice(p.namespacedName, p.str) &&
			p.token("=") &&
			p.value()
	})
}

// timeSamples matches "{" (time_sample ("," time_sample)* ","?)? "}".
func (p *Parser) timeSamples() bool {
	return p.node(syntax.RuleTimeSamples, func() bool {
		return p.token("{") && p.deeper(syntax.RuleTimeSamples, func() bool {
			return p.optional(func() bool {
				return p.timeSample() && p.commaList(p.timeSample)
			}) && p.token("}")
		})
	})
}

// timeSample matches (float | int) ":" value.
func (p *Parser) timeSample() bool {
	return p.node(syntax.RuleTimeSample, func() bool {
		return p.choice(p.float, p.integer) && p.token(":") && p.value()
	})
}
