package lower

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gousd/usda/syntax"
)

// Unescape resolves backslash escapes in a string body. The common C
// escapes map to their control characters; any other escaped byte,
// including a quote, stands for itself.
func Unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

var errNotVal = errors.New("not a value")

func errNotValue(n syntax.Node) error {
	return fmt.Errorf("%w: %s", errNotVal, n.Rule())
}

func errNotDocument(n syntax.Node) error {
	if !n.Valid() {
		return errors.New("lower: empty tree")
	}
	return fmt.Errorf("lower: root is %s, not document", n.Rule())
}
