package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corey/apistub/internal/domain/javasrc"
)

// fakeLoader builds units from the file's first line instead of parsing:
// "public Name" yields a public class, "hidden Name" a package-private one,
// and "broken" fails.
type fakeLoader struct{}

var errBroken = errors.New("syntax error")

func (fakeLoader) Load(path string, source []byte) (*javasrc.SourceUnit, error) {
	vis, name, ok := strings.Cut(strings.TrimSpace(string(source)), " ")
	if !ok {
		return nil, &os.PathError{Op: "parse", Path: path, Err: errBroken}
	}

	mods := javasrc.NewModifiers("public")
	head := "public class " + name + " {"
	if vis == "hidden" {
		mods = javasrc.NewModifiers()
		head = "class " + name + " {"
	}
	sig := "    public void run() "
	return &javasrc.SourceUnit{
		Path:    path,
		Prelude: "package p;",
		Imports: []*javasrc.ImportDeclaration{
			{Name: "com.sun.faces.util.Util", Text: "import com.sun.faces.util.Util;"},
			{Name: "java.util.List", Text: "import java.util.List;"},
		},
		Types: []*javasrc.TypeDeclaration{{
			Kind:      javasrc.KindClass,
			Name:      name,
			Modifiers: mods,
			Head:      head,
			Members: []*javasrc.Member{{
				Kind:      javasrc.MemberMethod,
				Name:      "run",
				Modifiers: javasrc.NewModifiers("public"),
				Signature: sig,
				Text:      sig + "{ work(); }",
				Indent:    "    ",
				Body:      &javasrc.Block{Raw: "{ work(); }"},
			}},
		}},
	}, nil
}

// memEmitter is an in-memory ports.Emitter and ports.StubReader.
type memEmitter struct {
	mu    sync.Mutex
	files map[string]string
	fail  map[string]error
}

func newMemEmitter() *memEmitter {
	return &memEmitter{files: make(map[string]string), fail: make(map[string]error)}
}

func (m *memEmitter) Emit(rel string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail[rel]; err != nil {
		return err
	}
	m.files[filepath.ToSlash(rel)] = string(content)
	return nil
}

func (m *memEmitter) ReadStub(rel string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.files[filepath.ToSlash(rel)]
	if !ok {
		return nil, false, nil
	}
	return []byte(s), true, nil
}

func (m *memEmitter) get(rel string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.files[rel]
	return s, ok
}

// writeTree creates files under root; keys are slash-separated.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.SourceRoot = t.TempDir()
	cfg.DestRoot = t.TempDir()
	cfg.Workers = 4
	return &cfg
}

const wantRunStub = `package p;

import java.util.List;

public class %s {
    public void run() {
        throw new java.lang.UnsupportedOperationException("This is API for compile only purposes.");
    }
}
`
