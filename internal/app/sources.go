package app

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// Selects reports whether a source-relative path is a stubbing candidate:
// under one of the include prefixes, with the configured extension, and not
// a metadata-only file such as package-info.java.
//
// Include entries are plain prefixes of the slash-separated relative path,
// so "javax" also admits "javax.annotation/...".
func (c *Config) Selects(rel string) bool {
	rel = filepath.ToSlash(rel)
	if !strings.HasSuffix(rel, c.Extension) {
		return false
	}
	if slices.Contains(c.SkipFiles, filepath.Base(rel)) {
		return false
	}
	if len(c.Include) == 0 {
		return true
	}
	for _, p := range c.Include {
		if strings.HasPrefix(rel, filepath.ToSlash(p)) {
			return true
		}
	}
	return false
}

// Discover walks the source root and returns every selected file as a
// source-relative path, sorted.
func Discover(cfg *Config) ([]string, error) {
	var files []string
	err := filepath.WalkDir(cfg.SourceRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(cfg.SourceRoot, path)
		if err != nil {
			return err
		}
		if cfg.Selects(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", cfg.SourceRoot, err)
	}
	sort.Strings(files)
	return files, nil
}
