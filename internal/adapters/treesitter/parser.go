// Package treesitter implements the ports.TreeLoader interface for Java
// using tree-sitter. It parses a compilation unit and converts the concrete
// syntax tree into the javasrc model, keeping raw source spans for
// everything the stubbing pass does not rewrite.
//
// The Java grammar is compiled in via CGo by default. Builds with -tags lean
// load it at runtime from a shared library via purego instead.
package treesitter

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/apistub/internal/domain/javasrc"
)

// Config is the parser configuration. It is built once at startup and
// shared read-only by every Load call.
type Config struct {
	Language *tree_sitter.Language
	// Source tells where the grammar came from: "builtin" or a library path.
	Source string
}

// NewConfig resolves the Java grammar, preferring the compiled-in one and
// falling back to a shared library found in grammarPaths.
func NewConfig(grammarPaths []string) (Config, error) {
	if lang := builtinJava(); lang != nil {
		return Config{Language: lang, Source: "builtin"}, nil
	}

	lib := NewGrammarLibrary(grammarPaths)
	lang, err := lib.Load()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrGrammarUnavailable, err)
	}
	return Config{Language: lang, Source: lib.Path()}, nil
}

// Loader parses Java sources into javasrc trees.
type Loader struct {
	cfg Config
}

// NewLoader creates a loader bound to cfg.
func NewLoader(cfg Config) *Loader {
	return &Loader{cfg: cfg}
}

// Load parses source and converts it. Any ERROR or MISSING node in the
// tree is reported as a *ParseError.
func (l *Loader) Load(path string, source []byte) (*javasrc.SourceUnit, error) {
	if l.cfg.Language == nil {
		return nil, ErrGrammarUnavailable
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(l.cfg.Language); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%s: parse returned no tree", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, firstError(root, path)
	}

	c := &converter{src: source}
	u := c.unit(root)
	u.Path = path
	return u, nil
}

// firstError locates the first ERROR or MISSING node in document order.
func firstError(n *tree_sitter.Node, path string) *ParseError {
	if n.IsError() || n.IsMissing() {
		pos := n.StartPosition()
		return &ParseError{
			Path:    path,
			Line:    int(pos.Row) + 1,
			Column:  int(pos.Column) + 1,
			Missing: n.IsMissing(),
		}
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.HasError() || child.IsMissing() {
			if pe := firstError(child, path); pe != nil {
				return pe
			}
		}
	}
	pos := n.StartPosition()
	return &ParseError{Path: path, Line: int(pos.Row) + 1, Column: int(pos.Column) + 1}
}
