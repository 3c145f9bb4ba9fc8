package app

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/apistub/internal/domain/javasrc"
	"github.com/corey/apistub/internal/ports"
)

// memCache is an in-memory ports.StubCache.
type memCache struct {
	mu      sync.Mutex
	entries map[string]ports.CacheEntry
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]ports.CacheEntry)}
}

func (c *memCache) Get(rel string) (ports.CacheEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[filepath.ToSlash(rel)]
	return e, ok, nil
}

func (c *memCache) Put(rel string, e ports.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[filepath.ToSlash(rel)] = e
	return nil
}

// countingLoader counts parses.
type countingLoader struct {
	fakeLoader
	loads atomic.Int32
}

func (l *countingLoader) Load(path string, source []byte) (*javasrc.SourceUnit, error) {
	l.loads.Add(1)
	return l.fakeLoader.Load(path, source)
}

// emitOnly hides memEmitter's StubReader.
type emitOnly struct{ m *memEmitter }

func (e emitOnly) Emit(rel string, content []byte) error { return e.m.Emit(rel, content) }

func cachedGenerator(t *testing.T, files map[string]string) (*Generator, *countingLoader, *memEmitter, *Config) {
	t.Helper()
	cfg := testConfig(t)
	writeTree(t, cfg.SourceRoot, files)
	loader := &countingLoader{}
	em := newMemEmitter()
	g := NewGenerator(cfg, loader, em, nil)
	g.UseCache(newMemCache())
	return g, loader, em, cfg
}

func TestCache_SecondRunSkipsUnchanged(t *testing.T) {
	g, loader, em, _ := cachedGenerator(t, map[string]string{
		"javax/A.java": "public A",
		"javax/H.java": "hidden H",
	})

	first, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, first.Cached)
	require.EqualValues(t, 2, loader.loads.Load())
	stub, _ := em.get("javax/A.java")

	second, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, loader.loads.Load(), "nothing is parsed again")
	assert.Equal(t, 2, second.Cached)
	assert.Equal(t, 1, second.Written)
	assert.Equal(t, 1, second.Skipped)
	assert.Equal(t, int64(len(stub)), second.Bytes)
	assert.Zero(t, second.Totals.BodiesErased, "cached files contribute no counts")
}

func TestCache_ChangedSourceIsRestubbed(t *testing.T) {
	g, loader, em, cfg := cachedGenerator(t, map[string]string{
		"javax/A.java": "public A",
		"javax/B.java": "public B",
	})
	_, err := g.Run(context.Background())
	require.NoError(t, err)

	writeTree(t, cfg.SourceRoot, map[string]string{"javax/A.java": "public Renamed"})
	sum, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 3, loader.loads.Load())
	assert.Equal(t, 1, sum.Cached)
	got, _ := em.get("javax/A.java")
	assert.Contains(t, got, "public class Renamed")
}

func TestCache_TamperedStubIsRewritten(t *testing.T) {
	g, loader, em, _ := cachedGenerator(t, map[string]string{
		"javax/A.java": "public A",
		"javax/B.java": "public B",
	})
	_, err := g.Run(context.Background())
	require.NoError(t, err)
	want, _ := em.get("javax/A.java")

	em.mu.Lock()
	em.files["javax/A.java"] = "edited by hand"
	delete(em.files, "javax/B.java")
	em.mu.Unlock()

	sum, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 4, loader.loads.Load())
	assert.Zero(t, sum.Cached)

	got, _ := em.get("javax/A.java")
	assert.Equal(t, want, got)
	_, ok := em.get("javax/B.java")
	assert.True(t, ok)
}

func TestCache_FailuresAreNotRemembered(t *testing.T) {
	g, loader, _, _ := cachedGenerator(t, map[string]string{
		"javax/A.java": "broken",
	})
	g.cfg.KeepGoing = true

	_, err := g.Run(context.Background())
	require.Error(t, err)
	_, err = g.Run(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 2, loader.loads.Load())
}

func TestCache_CheckIgnoresCache(t *testing.T) {
	g, loader, em, _ := cachedGenerator(t, map[string]string{
		"javax/A.java": "public A",
	})
	_, err := g.Run(context.Background())
	require.NoError(t, err)

	report, err := g.Check(context.Background(), em)
	require.NoError(t, err)
	assert.Empty(t, report.Drifts)
	assert.EqualValues(t, 2, loader.loads.Load())
}

func TestCache_RegenerateUsesCache(t *testing.T) {
	g, loader, _, _ := cachedGenerator(t, map[string]string{
		"javax/A.java": "public A",
	})
	_, err := g.Run(context.Background())
	require.NoError(t, err)

	r := g.Regenerate(filepath.FromSlash("javax/A.java"))
	require.NoError(t, r.Err)
	assert.True(t, r.Cached)
	assert.True(t, r.Emitted)
	assert.EqualValues(t, 1, loader.loads.Load())
}

func TestCache_NeedsStubReader(t *testing.T) {
	cfg := testConfig(t)
	writeTree(t, cfg.SourceRoot, map[string]string{"javax/A.java": "public A"})
	loader := &countingLoader{}
	g := NewGenerator(cfg, loader, emitOnly{newMemEmitter()}, nil)
	g.UseCache(newMemCache())

	for range 2 {
		sum, err := g.Run(context.Background())
		require.NoError(t, err)
		assert.Zero(t, sum.Cached)
	}
	assert.EqualValues(t, 2, loader.loads.Load())
}

func TestConfig_Fingerprint(t *testing.T) {
	base := DefaultConfig()
	same := DefaultConfig()
	same.SourceRoot = "elsewhere"
	same.Workers = 1
	assert.Equal(t, base.Fingerprint(), same.Fingerprint(), "roots and workers do not shape output")
	assert.Len(t, base.Fingerprint(), 16)

	deny := DefaultConfig()
	deny.DenyImports = append(deny.DenyImports, "org.acme.")
	assert.NotEqual(t, base.Fingerprint(), deny.Fingerprint())

	indent := DefaultConfig()
	indent.Indent = "\t"
	assert.NotEqual(t, base.Fingerprint(), indent.Fingerprint())
}
