package parser

import (
	"github.com/gousd/usda/internal/lexer"
	"github.com/gousd/usda/syntax"
)

// versionHeader matches "#usda" followed on the same line by a version.
// Only spaces or a line comment may follow the version on that line.
func (p *Parser) versionHeader() bool {
	return p.node(syntax.RuleVersionHeader, func() bool {
		if !p.token(lexer.KwHeader) {
			return false
		}
		end := lexer.InlineSpace(p.source, p.pos)
		if end == lexer.NoMatch {
			p.expect(syntax.RuleVersion, p.pos)
			return false
		}
		p.pos = end
		if !p.leafAdjacent(syntax.RuleVersion, lexer.Version) {
			return false
		}
		if lexer.LineEnd(p.source, p.pos) == lexer.NoMatch {
			at := p.pos
			if end := lexer.InlineSpace(p.source, at); end != lexer.NoMatch {
				at = end
			}
			p.fail.addLiteral("\n", at)
			return false
		}
		return true
	})
}

// document matches header? metadata? prim* EOI.
//
// The root node always spans the whole input, including leading and
// trailing trivia. Unlike other rules its failures are never collapsed,
// so diagnostics name what was expected inside it.
func (p *Parser) document() bool {
	id := len(p.nodes)
	p.nodes = append(p.nodes, syntax.Entry{Rule: syntax.RuleDocument})
	ok := p.optional(p.versionHeader) &&
		p.optional(p.metadata) &&
		p.many(p.prim) &&
		p.eoi()
	if !ok {
		p.nodes = p.nodes[:id]
		return false
	}
	e := &p.nodes[id]
	e.Span = p.span(0, len(p.source))
	e.Next = syntax.NodeID(len(p.nodes))
	return true
}
