package parser

import (
	"log/slog"

	"github.com/gousd/usda/internal/lexer"
	"github.com/gousd/usda/syntax"
)

func (p *Parser) specifier() bool {
	return p.leaf(syntax.RuleSpecifier, func(src []byte, pos int) int {
		return lexer.OneOf(src, pos, lexer.Specifiers)
	})
}

// prim matches
//
//	specifier type_name? string metadata? "{" body_statement* "}"
//
// The depth guard covers the whole prim so that the type name and the
// metadata block of a nested prim count toward its level.
func (p *Parser) prim() bool {
	start := p.pos
	ok := p.node(syntax.RulePrim, func() bool {
		return p.specifier() && p.deeper(syntax.RulePrim, func() bool {
			return p.optional(p.typeName) &&
				p.str() &&
				p.optional(p.metadata) &&
				p.token("{") &&
				p.body() &&
				p.token("}")
		})
	})
	if ok && p.TraceEnabled() {
		p.Trace("prim matched",
			slog.Int("offset", start),
			slog.Int("depth", p.depth))
	}
	return ok
}

// body matches the statements of a prim or variant. Nested prims and
// variant sets are tried before properties so that their leading keywords
// are never read as attribute type names.
func (p *Parser) body() bool {
	return p.many(func() bool {
		return p.choice(p.prim, p.variantSet, p.relationship, p.attribute)
	})
}

// variantSet matches "variantSet" string "=" "{" variant+ "}".
func (p *Parser) variantSet() bool {
	return p.node(syntax.RuleVariantSet, func() bool {
		return p.keyword(lexer.KwVariantSet) && p.deeper(syntax.RuleVariantSet, func() bool {
			return p.str() &&
				p.token("=") &&
				p.token("{") &&
				p.variant() &&
				p.many(p.variant) &&
				p.token("}")
		})
	})
}

// variant matches string metadata? "{" body_statement* "}".
func (p *Parser) variant() bool {
	return p.node(syntax.RuleVariant, func() bool {
		return p.str() &&
			p.optional(p.metadata) &&
			p.token("{") &&
			p.deeper(syntax.RuleVariant, p.body) &&
			p.token("}")
	})
}
