package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter_CreatesMirroredPath(t *testing.T) {
	root := t.TempDir()
	e := NewEmitter(root)

	rel := filepath.Join("javax", "faces", "component", "UIInput.java")
	require.NoError(t, e.Emit(rel, []byte("package javax.faces.component;\n")))

	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	assert.Equal(t, "package javax.faces.component;\n", string(data))

	info, err := os.Stat(filepath.Join(root, rel))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestEmitter_Overwrites(t *testing.T) {
	root := t.TempDir()
	e := NewEmitter(root)

	require.NoError(t, e.Emit("A.java", []byte("old")))
	require.NoError(t, e.Emit("A.java", []byte("new")))

	data, ok, err := e.ReadStub("A.java")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", string(data))
}

func TestEmitter_ReadMissing(t *testing.T) {
	e := NewEmitter(t.TempDir())
	data, ok, err := e.ReadStub(filepath.Join("no", "such", "File.java"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestEmitter_WriteFailure(t *testing.T) {
	root := t.TempDir()
	// A regular file where a directory is expected.
	require.NoError(t, os.WriteFile(filepath.Join(root, "javax"), []byte("x"), 0o644))

	e := NewEmitter(root)
	err := e.Emit(filepath.Join("javax", "A.java"), []byte("class A {}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
}
