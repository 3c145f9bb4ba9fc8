package treesitter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// javaSymbol is the entry point every tree-sitter-java build exports.
const javaSymbol = "tree_sitter_java"

// GrammarLibrary locates the Java grammar as a shared library (java.so on
// Linux, java.dylib on macOS) and loads it through purego. The library is
// opened at most once and stays mapped for the life of the process.
type GrammarLibrary struct {
	dirs []string

	once sync.Once
	path string
	lang *tree_sitter.Language
	err  error
}

// NewGrammarLibrary creates a library that searches dirs in order.
func NewGrammarLibrary(dirs []string) *GrammarLibrary {
	return &GrammarLibrary{dirs: dirs}
}

// DefaultGrammarPaths returns the directories searched for the grammar:
// the configured one, then the project-local .apistub/grammars/, then
// ~/.apistub/grammars/.
func DefaultGrammarPaths(configured, projectRoot string) []string {
	var paths []string
	if configured != "" {
		paths = append(paths, configured)
	}
	if projectRoot != "" {
		paths = append(paths, filepath.Join(projectRoot, ".apistub", "grammars"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".apistub", "grammars"))
	}
	return paths
}

// LibExtension returns the shared library extension for the current platform.
func LibExtension() string {
	if runtime.GOOS == "darwin" {
		return ".dylib"
	}
	return ".so"
}

func libName() string {
	return "java" + LibExtension()
}

// Find returns the first candidate library in the search directories, or "".
func (g *GrammarLibrary) Find() string {
	for _, dir := range g.dirs {
		candidate := filepath.Join(dir, libName())
		if fi, err := os.Stat(candidate); err == nil && fi.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}

// Load opens the library and resolves its language. Later calls return
// the first result, success or failure.
func (g *GrammarLibrary) Load() (*tree_sitter.Language, error) {
	g.once.Do(func() {
		g.lang, g.err = g.open()
	})
	return g.lang, g.err
}

// Path returns the library Load opened, or "" if none was.
func (g *GrammarLibrary) Path() string {
	if g.lang == nil {
		return ""
	}
	return g.path
}

func (g *GrammarLibrary) open() (*tree_sitter.Language, error) {
	g.path = g.Find()
	if g.path == "" {
		return nil, fmt.Errorf("%s not found in %s", libName(), strings.Join(g.dirs, ", "))
	}

	handle, err := purego.Dlopen(g.path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("dlopen %s: %w", g.path, err)
	}
	sym, err := purego.Dlsym(handle, javaSymbol)
	if err != nil {
		purego.Dlclose(handle)
		return nil, fmt.Errorf("%s: %w", g.path, err)
	}

	var language func() uintptr
	purego.RegisterFunc(&language, sym)
	ptr := language()
	if ptr == 0 {
		purego.Dlclose(handle)
		return nil, fmt.Errorf("%s: %s() returned null", g.path, javaSymbol)
	}

	// ptr is a static TSLanguage* owned by the library, not Go memory.
	return tree_sitter.NewLanguage(*(*unsafe.Pointer)(unsafe.Pointer(&ptr))), nil
}
