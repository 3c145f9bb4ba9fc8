// Package filesystem implements ports.Emitter and ports.StubReader on top of
// a destination directory that mirrors the source tree.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Emitter writes stubs under Root, mirroring each source-relative path.
type Emitter struct {
	Root string
}

// NewEmitter returns an emitter rooted at root.
func NewEmitter(root string) *Emitter {
	return &Emitter{Root: root}
}

// Path returns the destination path for a source-relative path.
func (e *Emitter) Path(rel string) string {
	return filepath.Join(e.Root, rel)
}

// Emit writes content to the mirrored path, creating parent directories.
func (e *Emitter) Emit(rel string, content []byte) error {
	dst := e.Path(rel)
	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}
	if err := os.WriteFile(dst, content, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}

// ReadStub reads a previously emitted stub. A missing file is not an error.
func (e *Emitter) ReadStub(rel string) ([]byte, bool, error) {
	data, err := os.ReadFile(e.Path(rel))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", e.Path(rel), err)
	}
	return data, true, nil
}
