// Package cliutil provides shared helpers for the usda command-line tool.
package cliutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/gousd/usda/syntax"
)

// Palette holds the colors used for terminal output. A disabled palette
// prints plain text.
type Palette struct {
	OK    *color.Color
	Fail  *color.Color
	Skip  *color.Color
	Rule  *color.Color
	Text  *color.Color
	Span  *color.Color
	Caret *color.Color
}

// NewPalette returns a palette with colors turned on or off.
func NewPalette(enabled bool) *Palette {
	p := &Palette{
		OK:    color.New(color.FgGreen),
		Fail:  color.New(color.FgRed, color.Bold),
		Skip:  color.New(color.FgYellow),
		Rule:  color.New(color.FgCyan),
		Text:  color.RGB(8, 196, 16),
		Span:  color.New(color.Faint),
		Caret: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.OK, p.Fail, p.Skip, p.Rule, p.Text, p.Span, p.Caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// ColorEnabled reports whether output written to w should be colored.
// Color is off when noColor is set, when NO_COLOR is present in the
// environment, or when w is not a terminal.
func ColorEnabled(w io.Writer, noColor bool) bool {
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ReadInput reads a file, or standard input when path is "-".
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// ErrorPosition extracts the source position carried by a parse error.
func ErrorPosition(err error) (syntax.Position, bool) {
	var se *syntax.SyntaxError
	if errors.As(err, &se) {
		return se.Position, true
	}
	var de *syntax.DepthError
	if errors.As(err, &de) {
		return de.Position, true
	}
	var le *syntax.LiteralError
	if errors.As(err, &le) {
		return le.Position, true
	}
	return syntax.Position{}, false
}

// WriteSnippet writes the source line containing pos followed by a caret
// under its column. Tabs before the column are kept so the caret lines up.
func WriteSnippet(w io.Writer, src []byte, pos syntax.Position, caret *color.Color) {
	if pos.Offset < 0 || pos.Offset > len(src) {
		return
	}
	start := bytes.LastIndexByte(src[:pos.Offset], '\n') + 1
	end := len(src)
	if i := bytes.IndexByte(src[pos.Offset:], '\n'); i >= 0 {
		end = pos.Offset + i
	}
	line := strings.TrimSuffix(string(src[start:end]), "\r")

	var pad strings.Builder
	for _, c := range src[start:pos.Offset] {
		if c == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	gutter := fmt.Sprintf("%4d | ", pos.Line)
	_, _ = fmt.Fprintf(w, "%s%s\n", gutter, line)
	_, _ = fmt.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", len(gutter)), pad.String(), caret.Sprint("^"))
}

// PrintError writes a formatted error message to w.
func PrintError(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "error: "+format+"\n", args...)
}
