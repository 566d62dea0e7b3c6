package parser

import (
	"github.com/gousd/usda/internal/lexer"
	"github.com/gousd/usda/syntax"
)

// metadata matches "(" doc_string? entry* ")". Entries may be terminated
// by ";" or separated only by line breaks; both styles mix freely.
func (p *Parser) metadata() bool {
	return p.node(syntax.RuleMetadata, func() bool {
		return p.token("(") && p.deeper(syntax.RuleMetadata, func() bool {
			return p.optional(func() bool {
				return p.docString() && p.separator()
			}) && p.many(func() bool {
				return p.choice(p.customData, p.metadataEntry) && p.separator()
			}) && p.token(")")
		})
	})
}

func (p *Parser) separator() bool {
	return p.optional(func() bool { return p.token(";") })
}

// docString matches the anonymous string entry of a metadata block.
func (p *Parser) docString() bool {
	return p.node(syntax.RuleDocString, p.str)
}

// metadataEntry matches list_op? identifier "=" value. The key is never
// customData, whose value must be a dictionary.
func (p *Parser) metadataEntry() bool {
	return p.node(syntax.RuleMetadataEntry, func() bool {
		return p.optional(p.listOp) &&
			p.leaf(syntax.RuleIdentifier, metadataKey) &&
			p.token("=") &&
			p.value()
	})
}

// customData matches "customData" "=" dictionary.
func (p *Parser) customData() bool {
	return p.node(syntax.RuleCustomData, func() bool {
		return p.keyword(lexer.KwCustomData) && p.token("=") && p.dictionary()
	})
}

func (p *Parser) listOp() bool {
	return p.leaf(syntax.RuleListOp, func(src []byte, pos int) int {
		return lexer.OneOf(src, pos, lexer.ListOps)
	})
}

func metadataKey(src []byte, pos int) int {
	if lexer.Keyword(src, pos, lexer.KwCustomData) != lexer.NoMatch {
		return lexer.NoMatch
	}
	return lexer.Identifier(src, pos)
}
