//go:build lean

package treesitter

import tree_sitter "github.com/tree-sitter/go-tree-sitter"

// This file is included only when building with -tags lean.
// No grammar is compiled in; the Java grammar is loaded dynamically from a
// .so/.dylib file by GrammarLibrary (purego).
//
// Build with: go build -tags lean ./cmd/apistub/

// builtinJava returns nil in lean builds.
func builtinJava() *tree_sitter.Language {
	return nil
}
