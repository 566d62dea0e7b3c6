// Package integration provides end-to-end tests against the scene corpus.
//
// These tests parse every file under testdata/scenes/ and make assertions
// against the typed model and the concrete syntax tree. Each case mirrors
// something a real USDA layer writer emits.
//
// # File Organization
//
//   - corpus_test.go: shared infrastructure and the whole-corpus parse
//   - composition_test.go: prims, references, class prims, variant sets
//   - properties_test.go: attributes, time samples, connections, relationships
//   - grammar_test.go: accept/reject tables for single rules
package integration

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gousd/usda"
)

// corpus holds the shared parse results for all tests.
// Loaded once via loadCorpus().
var (
	corpus     map[string]usda.FileResult
	corpusOnce sync.Once
	corpusErr  error
)

// corpusPath returns the path to the scene corpus.
func corpusPath() string {
	return filepath.Join("..", "testdata", "scenes")
}

// loadCorpus parses the whole corpus once and caches the results keyed
// by path relative to the corpus root.
func loadCorpus(t *testing.T) map[string]usda.FileResult {
	t.Helper()

	corpusOnce.Do(func() {
		src, err := usda.DirTree(corpusPath())
		if err != nil {
			corpusErr = err
			return
		}
		results, err := usda.ParseFiles(context.Background(), src)
		if err != nil {
			corpusErr = err
			return
		}
		corpus = make(map[string]usda.FileResult, len(results))
		for _, r := range results {
			rel, err := filepath.Rel(corpusPath(), r.Path)
			if err != nil {
				corpusErr = err
				return
			}
			corpus[filepath.ToSlash(rel)] = r
		}
	})

	if corpusErr != nil {
		t.Fatalf("failed to load corpus: %v", corpusErr)
	}
	return corpus
}

// getDocument returns the parsed document of a corpus file and fails if
// the file is missing or did not parse.
func getDocument(t *testing.T, name string) *usda.Document {
	t.Helper()
	r, ok := loadCorpus(t)[name]
	if !ok {
		t.Fatalf("corpus file %s not found", name)
	}
	require.NoError(t, r.Err, name)
	require.NotNil(t, r.Document, name)
	return r.Document
}

// getPrim retrieves a prim by path and fails if not found.
func getPrim(t *testing.T, doc *usda.Document, path usda.ScenePath) *usda.Prim {
	t.Helper()
	p := doc.Find(path)
	if p == nil {
		t.Fatalf("prim %s not found", path)
	}
	return p
}

func TestCorpusParses(t *testing.T) {
	results := loadCorpus(t)
	require.Len(t, results, 4)
	for name, r := range results {
		assert.NoError(t, r.Err, name)
		assert.False(t, r.Skipped, name)
	}
}

func TestCorpusRoundTrip(t *testing.T) {
	for name, r := range loadCorpus(t) {
		t.Run(name, func(t *testing.T) {
			tree := r.Tree
			require.NotNil(t, tree)
			var rebuilt []byte
			for seg := range tree.Segments() {
				rebuilt = append(rebuilt, tree.Text(seg.Span)...)
			}
			assert.Equal(t, string(tree.Source()), string(rebuilt))
		})
	}
}

func TestCorpusVersions(t *testing.T) {
	for name := range loadCorpus(t) {
		assert.Equal(t, "1.0", getDocument(t, name).Version, name)
	}
}

func TestInvalidCorpus(t *testing.T) {
	src, err := usda.DirTree(filepath.Join("..", "testdata", "invalid"))
	require.NoError(t, err)
	results, err := usda.ParseFiles(context.Background(), src)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Error(t, r.Err, r.Path)
		assert.Nil(t, r.Document, r.Path)
		_, hasPos := positionOf(r.Err)
		assert.True(t, hasPos, "%s: error carries a position", r.Path)
	}
}
