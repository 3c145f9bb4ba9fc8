package treesitter

import (
	"fmt"

	"github.com/corey/apistub/internal/ports"
)

// ErrGrammarUnavailable is ports.ErrGrammarUnavailable; cgo-free builds,
// which cannot link this package, report the same sentinel.
var ErrGrammarUnavailable = ports.ErrGrammarUnavailable

// ParseError reports the first syntax error tree-sitter recovered from.
// Line and Column are 1-based.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Missing bool // the parser inserted a token instead of skipping input
}

func (e *ParseError) Error() string {
	what := "syntax error"
	if e.Missing {
		what = "missing token"
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, what)
}
