//go:build !cgo

package cmd

import (
	"fmt"

	"github.com/corey/apistub/internal/app"
	"github.com/corey/apistub/internal/ports"
)

// newLoader fails in pure Go builds: tree-sitter needs CGo.
func newLoader(_ *app.Config) (ports.TreeLoader, string, error) {
	return nil, "", fmt.Errorf("%w: apistub was built without cgo", ports.ErrGrammarUnavailable)
}
