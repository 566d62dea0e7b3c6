package syntax

import (
	"iter"
	"sync"

	"github.com/gousd/usda/internal/types"
)

// ByteOffset is a byte position in source text.
type ByteOffset = types.ByteOffset

// Span is a half-open byte range [Start, End) in source text.
type Span = types.Span

// NodeID addresses a node inside its Tree's arena.
type NodeID int32

// Entry is one arena slot. Nodes are stored in pre-order; Next is the
// index just past the node's subtree, so the first child of node i is
// i+1 (when i+1 < Next) and each following sibling starts at the Next of
// the previous one.
type Entry struct {
	Rule Rule
	Span Span
	Next NodeID
}

// Tree is an immutable concrete syntax tree over a source buffer.
// Trees are safe for concurrent reads.
type Tree struct {
	source  []byte
	entries []Entry

	linesOnce sync.Once
	lines     *types.LineIndex
}

// NewTree wraps a pre-order arena. The parser is the only producer;
// entries must describe a single root at index 0.
func NewTree(source []byte, entries []Entry) *Tree {
	return &Tree{source: source, entries: entries}
}

// Source returns the buffer the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.source
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.entries)
}

// Root returns the node of the invoked rule.
func (t *Tree) Root() Node {
	return Node{tree: t, id: 0}
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) Node {
	return Node{tree: t, id: id}
}

// Position converts a byte offset into a line and column.
func (t *Tree) Position(offset int) Position {
	t.linesOnce.Do(func() {
		t.lines = types.NewLineIndex(t.source)
	})
	line, col := t.lines.Position(offset)
	return Position{Offset: offset, Line: line, Column: col}
}

// Walk visits every node in pre-order with its depth below the root.
// Returning false from fn skips the node's children.
func (t *Tree) Walk(fn func(n Node, depth int) bool) {
	if len(t.entries) == 0 {
		return
	}
	var visit func(n Node, depth int)
	visit = func(n Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for c := range n.Children() {
			visit(c, depth+1)
		}
	}
	visit(t.Root(), 0)
}

// Segment is a contiguous piece of the source. Rule is the rule of a
// childless node, or RuleInvalid for the text between nodes (whitespace,
// comments and punctuation).
type Segment struct {
	Rule Rule
	Span Span
}

// Segments yields the childless nodes in source order, interleaved with
// the gaps between them, covering the whole source. Concatenating the
// segment texts reproduces the source byte for byte.
func (t *Tree) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		var cursor ByteOffset
		for i := range t.entries {
			e := &t.entries[i]
			if e.Next != NodeID(i+1) {
				continue
			}
			if e.Span.Start > cursor {
				if !yield(Segment{Span: types.NewSpan(cursor, e.Span.Start)}) {
					return
				}
			}
			if !yield(Segment{Rule: e.Rule, Span: e.Span}) {
				return
			}
			cursor = e.Span.End
		}
		if end := ByteOffset(len(t.source)); end > cursor {
			yield(Segment{Span: types.NewSpan(cursor, end)})
		}
	}
}

// Text returns the source text covered by span.
func (t *Tree) Text(span Span) string {
	return string(t.source[span.Start:span.End])
}

// Node is a lightweight handle to a tree node. The zero Node is invalid.
type Node struct {
	tree *Tree
	id   NodeID
}

// Valid reports whether the handle refers to a node.
func (n Node) Valid() bool {
	return n.tree != nil && int(n.id) < len(n.tree.entries)
}

// ID returns the arena index of the node.
func (n Node) ID() NodeID { return n.id }

// Tree returns the tree owning the node.
func (n Node) Tree() *Tree { return n.tree }

func (n Node) entry() *Entry {
	return &n.tree.entries[n.id]
}

// Rule returns the production that matched this node.
func (n Node) Rule() Rule { return n.entry().Rule }

// Span returns the exact source range matched by the node.
func (n Node) Span() Span { return n.entry().Span }

// Text returns the matched source text.
func (n Node) Text() string {
	return n.tree.Text(n.entry().Span)
}

// Position returns the position of the first byte of the node.
func (n Node) Position() Position {
	return n.tree.Position(int(n.entry().Span.Start))
}

// HasChildren reports whether the node has at least one child.
func (n Node) HasChildren() bool {
	return n.entry().Next > n.id+1
}

// Children yields the direct children in source order.
func (n Node) Children() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		end := n.entry().Next
		for c := n.id + 1; c < end; c = n.tree.entries[c].Next {
			if !yield(Node{tree: n.tree, id: c}) {
				return
			}
		}
	}
}

// ChildList returns the direct children as a slice.
func (n Node) ChildList() []Node {
	var out []Node
	for c := range n.Children() {
		out = append(out, c)
	}
	return out
}

// Child returns the first direct child of the given rule.
func (n Node) Child(rule Rule) (Node, bool) {
	for c := range n.Children() {
		if c.Rule() == rule {
			return c, true
		}
	}
	return Node{}, false
}

// ChildrenOf yields the direct children of the given rule.
func (n Node) ChildrenOf(rule Rule) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for c := range n.Children() {
			if c.Rule() == rule && !yield(c) {
				return
			}
		}
	}
}

// Only returns the single child of a node that wraps exactly one child,
// such as a value or a string.
func (n Node) Only() Node {
	if !n.HasChildren() {
		return Node{}
	}
	return Node{tree: n.tree, id: n.id + 1}
}
