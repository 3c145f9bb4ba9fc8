//go:build !lean

package treesitter

// This file compiles the Java grammar in. It is included in the default
// build (go build / go install) but excluded when building with -tags lean,
// which produces a binary that loads the grammar from a .so/.dylib file.

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	ts_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// builtinJava returns the compiled-in Java grammar.
func builtinJava() *tree_sitter.Language {
	return tree_sitter.NewLanguage(ts_java.Language())
}
