package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/corey/apistub/internal/ports"
)

// Regenerate re-stubs one source-relative path and emits the result.
// A source that no longer exists is reported but not treated as an error;
// its previously written stub is left in place.
func (g *Generator) Regenerate(rel string) FileResult {
	r := FileResult{Path: rel}
	if _, err := os.Stat(filepath.Join(g.cfg.SourceRoot, rel)); errors.Is(err, fs.ErrNotExist) {
		g.log.Info("source removed", "path", rel)
		return r
	}
	return g.processOne(rel, true, g.emit)
}

// Watch regenerates stubs as sources change until ctx is cancelled.
// Changes are handled one at a time in arrival order; per-file failures
// are logged and watching continues. onResult, when non-nil, sees every
// handled change.
func (g *Generator) Watch(ctx context.Context, w ports.Watcher, onResult func(FileResult)) error {
	root, err := filepath.Abs(g.cfg.SourceRoot)
	if err != nil {
		return err
	}

	changes := make(chan string)
	err = w.Watch(root, func(path string) {
		select {
		case changes <- path:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	g.log.Info("watching", "root", root)

	for {
		select {
		case <-ctx.Done():
			return w.Stop()
		case path := <-changes:
			rel, err := filepath.Rel(root, path)
			if err != nil || !g.cfg.Selects(rel) {
				continue
			}
			r := g.Regenerate(rel)
			if onResult != nil {
				onResult(r)
			}
		}
	}
}
