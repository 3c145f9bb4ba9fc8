package fsnotify

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan string, timeout time.Duration) (string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return "", false
	}
}

func startWatcher(t *testing.T, dir string) (*Watcher, <-chan string) {
	t.Helper()
	w, err := NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	changed := make(chan string, 10)
	require.NoError(t, w.Watch(dir, func(path string) {
		changed <- path
	}))

	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)
	return w, changed
}

func TestWatcher_DetectsFileChange(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "UIInput.java")
	require.NoError(t, os.WriteFile(src, []byte("public class UIInput {}"), 0644))

	_, changed := startWatcher(t, dir)
	require.NoError(t, os.WriteFile(src, []byte("public class UIInput { }"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for file change")
	assert.Equal(t, src, path)
}

func TestWatcher_DetectsNewFile(t *testing.T) {
	dir := t.TempDir()
	_, changed := startWatcher(t, dir)

	src := filepath.Join(dir, "Converter.java")
	require.NoError(t, os.WriteFile(src, []byte("public interface Converter {}"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for new file")
	assert.Equal(t, src, path)
}

func TestWatcher_DetectsDeletedFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Gone.java")
	require.NoError(t, os.WriteFile(src, []byte("class Gone {}"), 0644))

	_, changed := startWatcher(t, dir)
	require.NoError(t, os.Remove(src))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for deleted file")
	assert.Equal(t, src, path)
}

func TestWatcher_WatchesNewPackageDirectory(t *testing.T) {
	dir := t.TempDir()
	_, changed := startWatcher(t, dir)

	pkg := filepath.Join(dir, "javax", "faces")
	require.NoError(t, os.MkdirAll(pkg, 0755))
	time.Sleep(100 * time.Millisecond)

	src := filepath.Join(pkg, "FacesException.java")
	require.NoError(t, os.WriteFile(src, []byte("public class FacesException {}"), 0644))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case path := <-changed:
			if path == src {
				return
			}
		case <-deadline:
			t.Fatal("expected callback for file in new package directory")
		}
	}
}

func TestWatcher_IgnoresNoise(t *testing.T) {
	dir := t.TempDir()
	gitDir := filepath.Join(dir, ".git")
	require.NoError(t, os.MkdirAll(gitDir, 0755))
	metaDir := filepath.Join(dir, "META-INF")
	require.NoError(t, os.MkdirAll(metaDir, 0755))

	_, changed := startWatcher(t, dir)

	os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte("ref"), 0644)
	os.WriteFile(filepath.Join(metaDir, "MANIFEST.MF"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, ".DS_Store"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "A.java.swp"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "A.class"), []byte("x"), 0644)

	_, ok := waitForCallback(changed, 500*time.Millisecond)
	assert.False(t, ok, "should not have received callback for ignored files")

	src := filepath.Join(dir, "A.java")
	require.NoError(t, os.WriteFile(src, []byte("public class A {}"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for source file")
	assert.Equal(t, src, path)
}

func TestWatcher_RootUnderBuildDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "target", "classes", "mojarra")
	require.NoError(t, os.MkdirAll(root, 0755))

	_, changed := startWatcher(t, root)

	src := filepath.Join(root, "A.java")
	require.NoError(t, os.WriteFile(src, []byte("public class A {}"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "a root below target/ must still be watched")
	assert.Equal(t, src, path)
}

func TestWatcher_MissingRoot(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	err = w.Watch(filepath.Join(t.TempDir(), "absent"), func(string) {})
	assert.Error(t, err)
}

func TestWatcher_StopCleanup(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher()
	require.NoError(t, err)

	callCount := 0
	var mu sync.Mutex
	err = w.Watch(dir, func(path string) {
		mu.Lock()
		callCount++
		mu.Unlock()
	})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Stop())

	mu.Lock()
	countAfterStop := callCount
	mu.Unlock()

	os.WriteFile(filepath.Join(dir, "AfterStop.java"), []byte("class X {}"), 0644)
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	countAfterWrite := callCount
	mu.Unlock()

	assert.Equal(t, countAfterStop, countAfterWrite, "no callbacks after Stop")
	assert.NoError(t, w.Stop(), "second Stop is a no-op")
}

func TestWatcher_CoalescesBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Burst.java")
	require.NoError(t, os.WriteFile(path, []byte("class"), 0644))
	_, changed := startWatcher(t, dir)

	for _, part := range []string{"class Burst", "class Burst {", "class Burst {}"} {
		require.NoError(t, os.WriteFile(path, []byte(part), 0644))
		time.Sleep(5 * time.Millisecond)
	}

	got, ok := waitForCallback(changed, 2*time.Second)
	require.True(t, ok)
	assert.Equal(t, path, got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "class Burst {}", string(content), "callback sees the final write")

	_, again := waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, again, "one callback per burst")
}
