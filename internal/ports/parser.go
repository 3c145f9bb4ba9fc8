package ports

import (
	"errors"

	"github.com/corey/apistub/internal/domain/javasrc"
)

// ErrGrammarUnavailable is returned when neither a compiled-in nor a
// dynamically loadable Java grammar is available to this build.
var ErrGrammarUnavailable = errors.New("java grammar unavailable")

// TreeLoader parses one Java compilation unit into a mutable syntax tree.
// The concrete implementation (tree-sitter) lives in internal/adapters/treesitter.
// Each Load returns a fresh tree owned by the caller, so a loader can be
// shared between workers.
type TreeLoader interface {
	// Load parses source read from path. Malformed input is reported as an
	// error; no partial tree is ever returned.
	Load(path string, source []byte) (*javasrc.SourceUnit, error)
}
