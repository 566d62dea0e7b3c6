package usda

import (
	"github.com/gousd/usda/syntax"
	"github.com/gousd/usda/usd"
)

// Type aliases for the public API. The model lives in package usd and the
// concrete syntax tree in package syntax.

// Document is a parsed layer.
type Document = usd.Document

// Prim is a node of the scene hierarchy.
type Prim = usd.Prim

// Attribute is a typed prim property.
type Attribute = usd.Attribute

// Relationship is a prim property targeting scene paths.
type Relationship = usd.Relationship

// VariantSet is a named set of alternative bodies.
type VariantSet = usd.VariantSet

// Metadata is a parenthesized metadata block.
type Metadata = usd.Metadata

// Value is a literal value.
type Value = usd.Value

// ScenePath is a path literal without its delimiters.
type ScenePath = usd.ScenePath

// Tree is a concrete syntax tree.
type Tree = syntax.Tree

// Node is a handle to a tree node.
type Node = syntax.Node

// Rule identifies a grammar production.
type Rule = syntax.Rule

// Position is a location in source text.
type Position = syntax.Position

// SyntaxError reports input that no grammar alternative accepts.
type SyntaxError = syntax.SyntaxError

// DepthError reports nesting beyond the configured limit.
type DepthError = syntax.DepthError

// LiteralError reports a literal that cannot be represented.
type LiteralError = syntax.LiteralError

// Sentinel errors, matched with errors.Is.
var (
	ErrSyntax  = syntax.ErrSyntax
	ErrTooDeep = syntax.ErrTooDeep
	ErrLiteral = syntax.ErrLiteral
)
