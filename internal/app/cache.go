package app

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/corey/apistub/internal/ports"
)

// cacheFormat changes whenever the stub output changes for the same input.
const cacheFormat = "apistub/1"

// Fingerprint identifies the settings that shape stub output. Cached
// results are only valid under the fingerprint they were stored with.
func (c *Config) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%q\x00%q", cacheFormat, c.DenyImports, c.Indent)
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// UseCache enables the incremental cache for Run and Regenerate. A hit
// also needs the emitted stub to read back unchanged, so the emitter must
// implement ports.StubReader; otherwise the cache stays off.
func (g *Generator) UseCache(c ports.StubCache) {
	r, ok := g.emitter.(ports.StubReader)
	if !ok || c == nil {
		g.log.Warn("cache disabled", "reason", "emitter cannot read stubs back")
		return
	}
	g.cache, g.stubs = c, r
}

// lookup reports whether rel can be skipped: its source is unchanged since
// the cached run and its stub, if any, is still on disk as written.
func (g *Generator) lookup(rel, sourceSum string) (ports.CacheEntry, bool) {
	e, ok, err := g.cache.Get(rel)
	if err != nil {
		g.log.Warn("cache read failed", "path", rel, "err", err)
		return e, false
	}
	if !ok || e.SourceSum != sourceSum {
		return e, false
	}
	if e.StubSum == "" {
		return e, true
	}
	have, found, err := g.stubs.ReadStub(rel)
	if err != nil || !found || digest(have) != e.StubSum {
		return e, false
	}
	return e, true
}

func (g *Generator) remember(rel, sourceSum string, content []byte) {
	e := ports.CacheEntry{SourceSum: sourceSum}
	if content != nil {
		e.StubSum = digest(content)
		e.Bytes = len(content)
	}
	if err := g.cache.Put(rel, e); err != nil {
		g.log.Warn("cache write failed", "path", rel, "err", err)
	}
}
