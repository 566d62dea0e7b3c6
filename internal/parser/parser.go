// Package parser recognizes USDA text and builds a concrete syntax tree.
//
// The grammar is applied as an ordered choice: alternatives are tried in a
// fixed order and the first match wins, with no longest-match or priority
// disambiguation. A failed alternative restores the input position and
// truncates the node arena, so a parse either yields one tree or fails as
// a whole. There is no error recovery.
//
// While backtracking, the parser keeps the furthest offset any alternative
// reached and the rules attempted there. That record becomes the
// SyntaxError when the invoked rule fails.
//
// A Parser holds only per-call state and must not be shared between
// goroutines; independent Parsers may run concurrently.
package parser

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/gousd/usda/internal/lexer"
	"github.com/gousd/usda/internal/types"
	"github.com/gousd/usda/syntax"
)

// Parser applies grammar rules to a single source buffer.
type Parser struct {
	source   []byte
	pos      int
	nodes    []syntax.Entry
	depth    int
	maxDepth int
	fail     failure
	abort    *syntax.DepthError
	used     bool
	types.Logger
}

// New returns a Parser over source. Pass nil for logger to disable
// logging. A maxDepth of zero or less selects syntax.DefaultMaxDepth.
func New(source []byte, logger *slog.Logger, maxDepth int) *Parser {
	if maxDepth <= 0 {
		maxDepth = syntax.DefaultMaxDepth
	}
	p := &Parser{
		source:   source,
		maxDepth: maxDepth,
		fail:     failure{pos: -1},
		Logger:   types.Logger{L: logger},
	}
	p.Log(slog.LevelDebug, "parser initialized", slog.Int("bytes", len(source)))
	return p
}

// Parse applies rule to the whole source. Leading and trailing trivia are
// allowed; any other unconsumed input is a syntax error. A Parser may be
// used for a single Parse call.
func (p *Parser) Parse(rule syntax.Rule) (*syntax.Tree, error) {
	if p.used {
		return nil, fmt.Errorf("parser: Parse called twice")
	}
	p.used = true

	fn := p.entry(rule)
	if fn == nil {
		return nil, fmt.Errorf("parser: rule %s is not invokable", rule)
	}
	p.nodes = make([]syntax.Entry, 0, max(len(p.source)/8, 16))

	ok := fn()
	if ok && rule != syntax.RuleDocument {
		ok = p.eoi()
	}
	if p.abort != nil {
		p.Log(slog.LevelDebug, "nesting limit exceeded",
			slog.Int("offset", p.abort.Offset),
			slog.Int("limit", p.maxDepth))
		return nil, p.abort
	}
	if !ok {
		err := p.syntaxError()
		p.Log(slog.LevelDebug, "parse failed",
			slog.String("rule", rule.String()),
			slog.Int("offset", err.Offset))
		return nil, err
	}

	tree := syntax.NewTree(p.source, p.nodes)
	p.Log(slog.LevelDebug, "parse complete",
		slog.String("rule", rule.String()),
		slog.Int("nodes", tree.Len()))
	return tree, nil
}

// entry maps an invokable rule to the function recognizing it.
func (p *Parser) entry(rule syntax.Rule) func() bool {
	switch rule {
	case syntax.RuleIdentifier:
		return func() bool { return p.leaf(rule, lexer.Identifier) }
	case syntax.RuleNamespacedIdentifier:
		return func() bool { return p.leaf(rule, lexer.NamespacedIdentifier) }
	case syntax.RuleNamespacedName:
		return p.namespacedName
	case syntax.RuleTypeName:
		return p.typeName
	case syntax.RuleArrayMarker:
		return p.arrayMarker
	case syntax.RuleSingleQuotedString:
		return p.singleQuoted
	case syntax.RuleDoubleQuotedString:
		return p.doubleQuoted
	case syntax.RuleTripleQuotedString:
		return p.tripleQuoted
	case syntax.RuleInt:
		return p.integer
	case syntax.RuleFloat:
		return p.float
	case syntax.RuleBool:
		return p.boolean
	case syntax.RuleNone:
		return p.none
	case syntax.RuleScenePath:
		return p.scenePath
	case syntax.RuleAssetRef:
		return p.assetRef
	case syntax.RuleQualifier:
		return p.attributeQualifier
	case syntax.RuleListOp:
		return p.listOp
	case syntax.RuleSpecifier:
		return p.specifier
	case syntax.RulePropertySuffix:
		return func() bool { return p.leaf(rule, lexer.PropertySuffix) }
	case syntax.RuleVersion:
		return func() bool { return p.leaf(rule, lexer.Version) }
	case syntax.RuleString:
		return p.str
	case syntax.RuleReference:
		return p.reference
	case syntax.RuleValue:
		return p.value
	case syntax.RuleTuple:
		return p.tuple
	case syntax.RuleList:
		return p.list
	case syntax.RuleDictionary:
		return p.dictionary
	case syntax.RuleTypedDecl:
		return p.typedDecl
	case syntax.RuleTimeSamples:
		return p.timeSamples
	case syntax.RuleTimeSample:
		return p.timeSample
	case syntax.RuleMetadata:
		return p.metadata
	case syntax.RuleDocString:
		return p.docString
	case syntax.RuleMetadataEntry:
		return p.metadataEntry
	case syntax.RuleCustomData:
		return p.customData
	case syntax.RuleAttribute:
		return p.attribute
	case syntax.RuleRelationship:
		return p.relationship
	case syntax.RuleTargets:
		return p.targets
	case syntax.RulePrim:
		return p.prim
	case syntax.RuleVariantSet:
		return p.variantSet
	case syntax.RuleVariant:
		return p.variant
	case syntax.RuleVersionHeader:
		return p.versionHeader
	case syntax.RuleDocument:
		return p.document
	default:
		return nil
	}
}

// --- Backtracking primitives ---

type mark struct {
	pos   int
	nodes int
}

func (p *Parser) mark() mark {
	return mark{pos: p.pos, nodes: len(p.nodes)}
}

func (p *Parser) reset(m mark) {
	p.pos = m.pos
	p.nodes = p.nodes[:m.nodes]
}

func (p *Parser) skipTrivia() {
	p.pos = lexer.SkipTrivia(p.source, p.pos)
}

func (p *Parser) span(start, end int) types.Span {
	return types.NewSpan(types.ByteOffset(start), types.ByteOffset(end))
}

// leaf matches a lexical rule after trivia and appends a childless node.
func (p *Parser) leaf(rule syntax.Rule, scan func([]byte, int) int) bool {
	if p.abort != nil {
		return false
	}
	save := p.pos
	p.skipTrivia()
	return p.leafHere(rule, scan, save)
}

// leafAdjacent matches a lexical rule at the current offset without
// skipping trivia.
func (p *Parser) leafAdjacent(rule syntax.Rule, scan func([]byte, int) int) bool {
	if p.abort != nil {
		return false
	}
	return p.leafHere(rule, scan, p.pos)
}

func (p *Parser) leafHere(rule syntax.Rule, scan func([]byte, int) int, save int) bool {
	end := scan(p.source, p.pos)
	if end == lexer.NoMatch {
		p.expect(rule, p.pos)
		p.pos = save
		return false
	}
	id := len(p.nodes)
	p.nodes = append(p.nodes, syntax.Entry{
		Rule: rule,
		Span: p.span(p.pos, end),
		Next: syntax.NodeID(id + 1),
	})
	p.pos = end
	return true
}

// node matches a non-terminal rule. body appends the children; on failure
// the input position and the arena are restored.
func (p *Parser) node(rule syntax.Rule, body func() bool) bool {
	if p.abort != nil {
		return false
	}
	m := p.mark()
	p.skipTrivia()
	start := p.pos
	fm := p.fail.markAt(start)
	id := len(p.nodes)
	p.nodes = append(p.nodes, syntax.Entry{Rule: rule})

	if !body() {
		p.reset(m)
		p.fail.collapse(rule, start, fm)
		return false
	}

	e := &p.nodes[id]
	e.Span = p.span(start, p.pos)
	e.Next = syntax.NodeID(len(p.nodes))
	return true
}

// token matches punctuation after trivia without producing a node.
func (p *Parser) token(lit string) bool {
	return p.match(lit, lexer.Literal)
}

// keyword matches a reserved word after trivia without producing a node.
func (p *Parser) keyword(word string) bool {
	return p.match(word, lexer.Keyword)
}

func (p *Parser) match(text string, scan func([]byte, int, string) int) bool {
	if p.abort != nil {
		return false
	}
	save := p.pos
	p.skipTrivia()
	end := scan(p.source, p.pos, text)
	if end == lexer.NoMatch {
		p.fail.addLiteral(text, p.pos)
		p.pos = save
		return false
	}
	p.pos = end
	return true
}

// choice tries alternatives in order; the first success wins.
func (p *Parser) choice(alts ...func() bool) bool {
	for _, alt := range alts {
		if alt() {
			return true
		}
		if p.abort != nil {
			return false
		}
	}
	return false
}

// optional applies fn and restores state if it fails. It always succeeds
// unless the parse was aborted.
func (p *Parser) optional(fn func() bool) bool {
	m := p.mark()
	if !fn() {
		p.reset(m)
	}
	return p.abort == nil
}

// many applies fn until it fails or stops consuming input. It always
// succeeds unless the parse was aborted.
func (p *Parser) many(fn func() bool) bool {
	for {
		m := p.mark()
		if !fn() {
			p.reset(m)
			break
		}
		if p.pos == m.pos {
			break
		}
	}
	return p.abort == nil
}

// deeper runs body one nesting level down and trips the depth guard when
// the configured limit is reached. Callers invoke it after the opening
// delimiter so that the guard fires only for real nesting.
func (p *Parser) deeper(rule syntax.Rule, body func() bool) bool {
	if p.depth >= p.maxDepth {
		if p.abort == nil {
			line, col := types.NewLineIndex(p.source).Position(p.pos)
			p.abort = &syntax.DepthError{
				Position: syntax.Position{Offset: p.pos, Line: line, Column: col},
				Rule:     rule,
				Limit:    p.maxDepth,
			}
		}
		return false
	}
	p.depth++
	ok := body()
	p.depth--
	return ok
}

// eoi succeeds when only trivia remains.
func (p *Parser) eoi() bool {
	save := p.pos
	p.skipTrivia()
	if p.pos == len(p.source) {
		return true
	}
	p.expect(syntax.RuleEOI, p.pos)
	p.pos = save
	return false
}

// expect records that rule was attempted and failed at pos.
func (p *Parser) expect(rule syntax.Rule, pos int) {
	p.fail.addRule(rule, pos)
}

func (p *Parser) text(id int) string {
	e := p.nodes[id]
	return string(p.source[e.Span.Start:e.Span.End])
}

// --- Furthest failure ---

// failure tracks the furthest offset reached by any failed alternative
// and what was expected there.
type failure struct {
	pos      int
	rules    []syntax.Rule
	literals []string
}

// at prepares the expectation sets for a failure at pos and reports
// whether pos is the furthest failure so far.
func (f *failure) at(pos int) bool {
	if pos > f.pos {
		f.pos = pos
		f.rules = f.rules[:0]
		f.literals = f.literals[:0]
	}
	return pos == f.pos
}

func (f *failure) addRule(rule syntax.Rule, pos int) {
	if f.at(pos) && !slices.Contains(f.rules, rule) {
		f.rules = append(f.rules, rule)
	}
}

func (f *failure) addLiteral(lit string, pos int) {
	if f.at(pos) && !slices.Contains(f.literals, lit) {
		f.literals = append(f.literals, lit)
	}
}

// failureMark remembers how many expectations existed at a rule's start
// offset. ok is false when the furthest failure already lies beyond it.
type failureMark struct {
	rules, literals int
	ok              bool
}

func (f *failure) markAt(start int) failureMark {
	switch {
	case f.pos < start:
		return failureMark{ok: true}
	case f.pos == start:
		return failureMark{rules: len(f.rules), literals: len(f.literals), ok: true}
	default:
		return failureMark{}
	}
}

// collapse replaces the expectations a failed rule produced at its own
// start offset with the rule itself, so diagnostics name the construct
// rather than its first token.
func (f *failure) collapse(rule syntax.Rule, start int, m failureMark) {
	if !m.ok || f.pos != start {
		return
	}
	f.rules = f.rules[:m.rules]
	f.literals = f.literals[:m.literals]
	if !slices.Contains(f.rules, rule) {
		f.rules = append(f.rules, rule)
	}
}

func (p *Parser) syntaxError() *syntax.SyntaxError {
	pos := max(p.fail.pos, 0)
	line, col := types.NewLineIndex(p.source).Position(pos)
	rules := slices.Clone(p.fail.rules)
	slices.Sort(rules)
	return &syntax.SyntaxError{
		Position: syntax.Position{Offset: pos, Line: line, Column: col},
		Expected: rules,
		Literals: slices.Clone(p.fail.literals),
		Found:    found(p.source, pos),
	}
}

// found returns a short excerpt of the input at pos for diagnostics.
func found(source []byte, pos int) string {
	if pos >= len(source) {
		return ""
	}
	end := pos
	for end < len(source) && end-pos < 16 {
		b := source[end]
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			break
		}
		end++
	}
	if end == pos {
		end = pos + 1
	}
	return string(source[pos:end])
}
