package usda

import (
	"bytes"
	"cmp"
	"context"
	"io"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/gousd/usda/internal/lower"
	"github.com/gousd/usda/internal/types"
	"github.com/gousd/usda/syntax"
	"github.com/gousd/usda/usd"
)

// FileResult is the outcome of parsing one file. Exactly one of Document
// and Err is set unless the file was skipped.
type FileResult struct {
	Path     string
	Document *usd.Document
	Tree     *syntax.Tree
	Err      error
	// Skipped is set for files that are not USDA text, such as binary
	// crate files sharing an extension.
	Skipped bool
}

// ParseFiles parses every file of source concurrently, one file per
// worker, and returns the results sorted by path. A file that fails to
// parse is reported in its FileResult and does not stop the others. The
// returned error is non-nil only when the source cannot be listed or ctx
// is cancelled.
//
// Example:
//
//	results, err := usda.ParseFiles(ctx, usda.MustDirTree("./assets"))
//	for _, r := range results {
//	    if r.Err != nil {
//	        log.Printf("%s: %v", r.Path, r.Err)
//	    }
//	}
func ParseFiles(ctx context.Context, source Source, opts ...Option) ([]FileResult, error) {
	if source == nil {
		return nil, ErrNoSources
	}
	cfg := newConfig(opts)
	logger := types.Logger{L: types.ComponentLogger(cfg.logger, "load")}

	files, err := source.ListFiles()
	if err != nil {
		return nil, err
	}
	logger.Log(slog.LevelInfo, "parallel parsing",
		slog.Int("files", len(files)),
		slog.Int("workers", cfg.concurrency))

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = parseFile(source, path, cfg)
			if logger.TraceEnabled() {
				logger.Trace("file parsed",
					slog.String("path", path),
					slog.Bool("ok", results[i].Err == nil))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b FileResult) int {
		return cmp.Compare(a.Path, b.Path)
	})

	logger.Log(slog.LevelInfo, "parallel parsing complete",
		slog.Int("files", len(results)))
	return results, nil
}

func parseFile(source Source, path string, cfg config) FileResult {
	res := FileResult{Path: path}
	r, err := source.Open(path)
	if err != nil {
		res.Err = err
		return res
	}
	content, err := io.ReadAll(r)
	_ = r.Close()
	if err != nil {
		res.Err = err
		return res
	}
	if !looksLikeText(content) {
		res.Skipped = true
		return res
	}

	tree, err := parseRule(syntax.RuleDocument, content, cfg)
	if err != nil {
		res.Err = err
		return res
	}
	res.Tree = tree
	res.Document, res.Err = lower.Lower(tree, types.ComponentLogger(cfg.logger, "lower"))
	return res
}

// crateMagic opens every binary USD file.
var crateMagic = []byte("PXR-USDC")

// binaryProbeSize bounds how much of a file is scanned for NUL bytes.
const binaryProbeSize = 1024

// looksLikeText rejects binary crate files and other content that cannot
// be USDA text.
func looksLikeText(content []byte) bool {
	if bytes.HasPrefix(content, crateMagic) {
		return false
	}
	probe := content[:min(len(content), binaryProbeSize)]
	return bytes.IndexByte(probe, 0) < 0
}
