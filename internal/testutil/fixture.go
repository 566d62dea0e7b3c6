package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gousd/usda/syntax"
)

// TestdataDir returns the absolute path of the repository testdata
// directory, independent of the calling package's working directory.
func TestdataDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata")
}

// LoadFixture reads a file below testdata.
func LoadFixture(t testing.TB, name string) []byte {
	t.Helper()
	path := filepath.Join(TestdataDir(), filepath.FromSlash(name))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", path, err)
	}
	return data
}

// Reconstruct concatenates the segments of a tree. For any successfully
// parsed tree the result equals the source.
func Reconstruct(tree *syntax.Tree) string {
	var b strings.Builder
	for seg := range tree.Segments() {
		b.WriteString(tree.Text(seg.Span))
	}
	return b.String()
}

// AssertRoundTrip fails the test unless the tree's segments reproduce its
// source byte for byte.
func AssertRoundTrip(t testing.TB, tree *syntax.Tree) {
	t.Helper()
	TextEqual(t, string(tree.Source()), Reconstruct(tree), "segment round trip")
}

// Outline renders a tree as one line per node, indented by depth, with
// the text of childless nodes. It gives tests a compact, stable view of
// the tree shape.
func Outline(tree *syntax.Tree) string {
	var b strings.Builder
	tree.Walk(func(n syntax.Node, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Rule().String())
		if !n.HasChildren() {
			b.WriteString(" ")
			b.WriteString(n.Text())
		}
		b.WriteByte('\n')
		return true
	})
	return b.String()
}
