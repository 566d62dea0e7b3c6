// Package lexer recognizes the terminal symbols of USDA source text.
//
// Every recognizer is a pure function of the source bytes and a start
// offset. It returns the offset just past the match, or NoMatch when the
// input at that offset is not an instance of the terminal. Recognizers
// never skip leading trivia; callers decide where whitespace and comments
// are insignificant.
package lexer

import "bytes"

// NoMatch is returned by recognizers that do not match at the given offset.
const NoMatch = -1

// SkipTrivia skips whitespace, line comments and block comments.
// An unterminated block comment is left in place so that the caller
// reports a failure at its opening delimiter.
func SkipTrivia(src []byte, pos int) int {
	for pos < len(src) {
		switch b := src[pos]; {
		case isSpace(b):
			pos++
		case b == '/' && peekIs(src, pos+1, '/'):
			pos = skipLine(src, pos+2)
		case b == '/' && peekIs(src, pos+1, '*'):
			end := bytes.Index(src[pos+2:], []byte("*/"))
			if end < 0 {
				return pos
			}
			pos += 2 + end + 2
		default:
			return pos
		}
	}
	return pos
}

// InlineSpace skips spaces and tabs only. It returns NoMatch when there is
// not at least one such byte.
func InlineSpace(src []byte, pos int) int {
	start := pos
	for pos < len(src) && (src[pos] == ' ' || src[pos] == '\t') {
		pos++
	}
	if pos == start {
		return NoMatch
	}
	return pos
}

// LineEnd matches optional spaces and tabs that are followed by a line
// break, a line comment or the end of input. The break itself is not
// consumed.
func LineEnd(src []byte, pos int) int {
	for pos < len(src) && (src[pos] == ' ' || src[pos] == '\t') {
		pos++
	}
	switch {
	case pos == len(src), src[pos] == '\n', src[pos] == '\r':
		return pos
	case src[pos] == '/' && peekIs(src, pos+1, '/'):
		return pos
	}
	return NoMatch
}

// Literal matches the exact text s.
func Literal(src []byte, pos int, s string) int {
	if pos > len(src) || !bytes.HasPrefix(src[pos:], []byte(s)) {
		return NoMatch
	}
	return pos + len(s)
}

// Identifier matches a letter or underscore followed by letters, digits
// and underscores.
func Identifier(src []byte, pos int) int {
	if pos >= len(src) || !isIdentStart(src[pos]) {
		return NoMatch
	}
	pos++
	for pos < len(src) && isIdentPart(src[pos]) {
		pos++
	}
	return pos
}

// NamespacedIdentifier matches identifier (':' identifier)+. A bare
// identifier without any namespace separator does not match.
func NamespacedIdentifier(src []byte, pos int) int {
	end := NamespacedName(src, pos)
	if end == NoMatch || bytes.IndexByte(src[pos:end], ':') < 0 {
		return NoMatch
	}
	return end
}

// NamespacedName matches identifier (':' identifier)*. A bare identifier
// is accepted.
func NamespacedName(src []byte, pos int) int {
	end := Identifier(src, pos)
	if end == NoMatch {
		return NoMatch
	}
	for peekIs(src, end, ':') {
		next := Identifier(src, end+1)
		if next == NoMatch {
			break
		}
		end = next
	}
	return end
}

// Int matches an optionally negative decimal integer without redundant
// leading zeros. Only the longest valid prefix is consumed, so "0123"
// matches "0".
func Int(src []byte, pos int) int {
	if peekIs(src, pos, '-') {
		pos++
	}
	return unsignedInt(src, pos)
}

// Float matches an optionally negative decimal number with a mandatory
// decimal point, optional fraction digits and an optional exponent.
func Float(src []byte, pos int) int {
	if peekIs(src, pos, '-') {
		pos++
	}
	pos = unsignedInt(src, pos)
	if pos == NoMatch || !peekIs(src, pos, '.') {
		return NoMatch
	}
	pos = digits(src, pos+1)
	if pos < len(src) && (src[pos] == 'e' || src[pos] == 'E') {
		exp := pos + 1
		if exp < len(src) && (src[exp] == '+' || src[exp] == '-') {
			exp++
		}
		if end := digits(src, exp); end > exp {
			pos = end
		}
	}
	return pos
}

// Version matches the version number of a layer header, digits '.' digits.
func Version(src []byte, pos int) int {
	end := digits(src, pos)
	if end == pos || !peekIs(src, end, '.') {
		return NoMatch
	}
	frac := digits(src, end+1)
	if frac == end+1 {
		return NoMatch
	}
	return frac
}

// AssetRef matches '@' followed by any non-'@' text and a closing '@'.
func AssetRef(src []byte, pos int) int {
	if !peekIs(src, pos, '@') {
		return NoMatch
	}
	end := bytes.IndexByte(src[pos+1:], '@')
	if end < 0 {
		return NoMatch
	}
	return pos + 1 + end + 1
}

// ScenePath matches '<' path '>'. The path is an optional leading '/',
// then '/'-separated segments. A segment is "..", "." or an identifier,
// and an identifier segment may carry a '.'-separated suffix naming a
// file extension or a namespaced property. "</>" names the root.
func ScenePath(src []byte, pos int) int {
	if !peekIs(src, pos, '<') {
		return NoMatch
	}
	i := pos + 1
	if peekIs(src, i, '/') {
		i++
		if peekIs(src, i, '>') {
			return i + 1
		}
	}
	for {
		i = pathSegment(src, i)
		if i == NoMatch {
			return NoMatch
		}
		if !peekIs(src, i, '/') {
			break
		}
		i++
	}
	if !peekIs(src, i, '>') {
		return NoMatch
	}
	return i + 1
}

func pathSegment(src []byte, pos int) int {
	if end := Literal(src, pos, ".."); end != NoMatch {
		return end
	}
	if peekIs(src, pos, '.') && (peekIs(src, pos+1, '/') || peekIs(src, pos+1, '>')) {
		return pos + 1
	}
	end := Identifier(src, pos)
	if end == NoMatch {
		return NoMatch
	}
	if peekIs(src, end, '.') {
		if suffix := NamespacedName(src, end+1); suffix != NoMatch {
			end = suffix
		}
	}
	return end
}

// SingleQuoted matches a single-line string delimited by '\''.
func SingleQuoted(src []byte, pos int) int {
	return quoted(src, pos, '\'')
}

// DoubleQuoted matches a single-line string delimited by '"'.
func DoubleQuoted(src []byte, pos int) int {
	return quoted(src, pos, '"')
}

// quoted matches a single-line string. A backslash escapes the next byte,
// which may be the delimiter but never a line break.
func quoted(src []byte, pos int, delim byte) int {
	if !peekIs(src, pos, delim) {
		return NoMatch
	}
	for i := pos + 1; i < len(src); i++ {
		switch src[i] {
		case delim:
			return i + 1
		case '\n', '\r':
			return NoMatch
		case '\\':
			if i+1 >= len(src) || src[i+1] == '\n' || src[i+1] == '\r' {
				return NoMatch
			}
			i++
		}
	}
	return NoMatch
}

// TripleQuoted matches a string opened and closed by three identical
// delimiters ('"' or '\''). The body may span lines and contain single or
// paired delimiters; the first unescaped run of three closes the string.
func TripleQuoted(src []byte, pos int) int {
	if pos >= len(src) || (src[pos] != '"' && src[pos] != '\'') {
		return NoMatch
	}
	fence := bytes.Repeat(src[pos:pos+1], 3)
	if !bytes.HasPrefix(src[pos:], fence) {
		return NoMatch
	}
	for i := pos + 3; i < len(src); i++ {
		if src[i] == '\\' {
			i++
			continue
		}
		if bytes.HasPrefix(src[i:], fence) {
			return i + 3
		}
	}
	return NoMatch
}

func unsignedInt(src []byte, pos int) int {
	if pos >= len(src) {
		return NoMatch
	}
	switch b := src[pos]; {
	case b == '0':
		return pos + 1
	case b >= '1' && b <= '9':
		return digits(src, pos+1)
	default:
		return NoMatch
	}
}

func digits(src []byte, pos int) int {
	for pos < len(src) && isDigit(src[pos]) {
		pos++
	}
	return pos
}

func skipLine(src []byte, pos int) int {
	if i := bytes.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(src)
}

func peekIs(src []byte, pos int, b byte) bool {
	return pos >= 0 && pos < len(src) && src[pos] == b
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentStart(b byte) bool {
	return isAlpha(b) || b == '_'
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}
