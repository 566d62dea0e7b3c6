package types

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIndexPosition(t *testing.T) {
	src := []byte("ab\ncd\n\nefg")
	li := NewLineIndex(src)

	tests := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3}, // the newline itself
		{3, 2, 1},
		{6, 3, 1},
		{7, 4, 1},
		{9, 4, 3},
		{10, 4, 4}, // end of input
	}
	for _, tt := range tests {
		line, col := li.Position(tt.offset)
		assert.Equal(t, tt.line, line, "line of offset %d", tt.offset)
		assert.Equal(t, tt.col, col, "col of offset %d", tt.offset)
	}
	assert.Equal(t, 4, li.Lines())
}

func TestLineIndexEmpty(t *testing.T) {
	li := NewLineIndex(nil)
	line, col := li.Position(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
}

func TestSpan(t *testing.T) {
	s := NewSpan(3, 7)
	assert.Equal(t, ByteOffset(4), s.Len())
	assert.False(t, s.IsEmpty())
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(7))
	assert.True(t, NewSpan(5, 5).IsEmpty())
}

func TestLoggerNilSafe(t *testing.T) {
	var l Logger
	assert.False(t, l.Enabled(slog.LevelError))
	assert.False(t, l.TraceEnabled())
	l.Log(slog.LevelInfo, "dropped")
	l.Trace("dropped")
	assert.Nil(t, ComponentLogger(nil, "parser"))
}

func TestLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LevelTrace})
	l := Logger{L: ComponentLogger(slog.New(h), "lexer")}

	assert.True(t, l.TraceEnabled())
	l.Trace("token", slog.Int("start", 4))
	assert.Contains(t, buf.String(), "component=lexer")
	assert.Contains(t, buf.String(), "start=4")
}
