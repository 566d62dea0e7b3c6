package parser

import (
	"github.com/gousd/usda/internal/lexer"
	"github.com/gousd/usda/syntax"
)

func (p *Parser) attributeQualifier() bool {
	return p.leaf(syntax.RuleQualifier, func(src []byte, pos int) int {
		return lexer.OneOf(src, pos, lexer.AttributeQualifiers)
	})
}

func (p *Parser) relationshipQualifier() bool {
	return p.leaf(syntax.RuleQualifier, func(src []byte, pos int) int {
		return lexer.OneOf(src, pos, lexer.RelationshipQualifiers)
	})
}

// attribute matches
//
//	qualifier* type_name array_marker? namespaced_name property_suffix?
//	("=" value)? metadata?
//
// The property suffix must follow the name directly. After ".timeSamples"
// the assigned value is a time_samples block.
func (p *Parser) attribute() bool {
	return p.node(syntax.RuleAttribute, func() bool {
		if !(p.many(p.attributeQualifier) &&
			p.typeName() &&
			p.optional(p.arrayMarker) &&
			p.namespacedName()) {
			return false
		}
		suffix := len(p.nodes)
		if !p.optional(func() bool {
			return p.leafAdjacent(syntax.RulePropertySuffix, lexer.PropertySuffix)
		}) {
			return false
		}
		assigned := p.value
		if suffix < len(p.nodes) && p.text(suffix) == ".timeSamples" {
			assigned = p.timeSamples
		}
		return p.optional(func() bool {
			return p.token("=") && assigned()
		}) && p.optional(p.metadata)
	})
}

// relationship matches
//
//	list_op? qualifier* list_op? "rel" namespaced_name ("=" targets)? metadata?
//
// with at most one list op, before or after the qualifiers. Only custom
// and varying qualify a relationship.
func (p *Parser) relationship() bool {
	return p.node(syntax.RuleRelationship, func() bool {
		before := len(p.nodes)
		if !p.optional(p.listOp) {
			return false
		}
		hasOp := len(p.nodes) > before
		if !p.many(p.relationshipQualifier) {
			return false
		}
		if !hasOp && !p.optional(p.listOp) {
			return false
		}
		return p.keyword(lexer.KwRel) &&
			p.namespacedName() &&
			p.optional(func() bool {
				return p.token("=") && p.targets()
			}) &&
			p.optional(p.metadata)
	})
}

// targets matches None, a single scene path, or a bracketed, possibly
// empty, list of scene paths with an optional trailing comma.
func (p *Parser) targets() bool {
	return p.node(syntax.RuleTargets, func() bool {
		return p.choice(p.none, p.scenePath, func() bool {
			return p.token("[") && p.optional(func() bool {
				return p.scenePath() && p.commaList(p.scenePath)
			}) && p.token("]")
		})
	})
}
