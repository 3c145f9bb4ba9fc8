//go:build cgo

package cmd

import (
	"github.com/corey/apistub/internal/adapters/treesitter"
	"github.com/corey/apistub/internal/app"
	"github.com/corey/apistub/internal/ports"
)

// newLoader resolves the Java grammar once and returns a loader sharing it.
// The second result tells where the grammar came from.
func newLoader(c *app.Config) (ports.TreeLoader, string, error) {
	tc, err := treesitter.NewConfig(treesitter.DefaultGrammarPaths(c.GrammarDir, projectRoot()))
	if err != nil {
		return nil, "", err
	}
	return treesitter.NewLoader(tc), tc.Source, nil
}
