// Package usda parses USDA, the text form of a USD scene-description layer.
//
// Parsing is single-shot: a document either yields one concrete syntax
// tree and its typed model, or fails as a whole with a positioned error.
//
// Basic usage:
//
//	doc, err := usda.Parse(src)
//	if err != nil {
//	    var se *usda.SyntaxError
//	    if errors.As(err, &se) {
//	        fmt.Println(se.Line, se.Column, se.Expected)
//	    }
//	    return err
//	}
//	sphere := doc.Find("/World/Sphere")
//
// Many files can be parsed concurrently with ParseFiles.
package usda

import (
	"errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/gousd/usda/internal/lower"
	"github.com/gousd/usda/internal/parser"
	"github.com/gousd/usda/internal/types"
	"github.com/gousd/usda/syntax"
	"github.com/gousd/usda/usd"
)

// ErrNoSources is returned when ParseFiles is called without a source.
var ErrNoSources = errors.New("no USDA sources provided")

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (prims, files).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

// Option configures parsing.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	maxDepth    int
	concurrency int
}

func newConfig(opts []Option) config {
	cfg := config{
		maxDepth:    syntax.DefaultMaxDepth,
		concurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMaxDepth bounds the nesting of prims, variants, metadata blocks and
// container literals. Deeper input fails with ErrTooDeep. Values of zero
// or less select syntax.DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth <= 0 {
			depth = syntax.DefaultMaxDepth
		}
		c.maxDepth = depth
	}
}

// WithConcurrency sets how many files ParseFiles parses at once.
// Values of zero or less select runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		c.concurrency = n
	}
}

// Parse parses a whole document and builds its typed model.
func Parse(src []byte, opts ...Option) (*usd.Document, error) {
	cfg := newConfig(opts)
	tree, err := parseRule(syntax.RuleDocument, src, cfg)
	if err != nil {
		return nil, err
	}
	return lower.Lower(tree, types.ComponentLogger(cfg.logger, "lower"))
}

// ParseTree parses a whole document into its concrete syntax tree.
func ParseTree(src []byte, opts ...Option) (*Tree, error) {
	return parseRule(syntax.RuleDocument, src, newConfig(opts))
}

// ParseRule applies a single grammar rule to the whole input. Leading and
// trailing whitespace and comments are allowed; anything else left over
// is a syntax error.
func ParseRule(rule Rule, src []byte, opts ...Option) (*Tree, error) {
	return parseRule(rule, src, newConfig(opts))
}

// ParseValue parses a single value literal, such as "[(0, 1), (2, 3)]".
func ParseValue(src []byte, opts ...Option) (Value, error) {
	tree, err := parseRule(syntax.RuleValue, src, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return lower.Value(tree.Root())
}

func parseRule(rule syntax.Rule, src []byte, cfg config) (*syntax.Tree, error) {
	logger := types.Logger{L: cfg.logger}
	start := time.Now()
	p := parser.New(src, types.ComponentLogger(cfg.logger, "parser"), cfg.maxDepth)
	tree, err := p.Parse(rule)
	if logger.Enabled(slog.LevelDebug) {
		logger.Log(slog.LevelDebug, "parse finished",
			slog.String("rule", rule.String()),
			slog.Int("bytes", len(src)),
			slog.Duration("elapsed", time.Since(start)),
			slog.Bool("ok", err == nil))
	}
	return tree, err
}
