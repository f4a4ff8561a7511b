package watcher_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stellarforge/ubuild/internal/adapters/watcher"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestHashCache_FirstSightingIsChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Foo.cpp")
	writeFile(t, path, "int main() {}")

	cache := watcher.NewHashCache()
	assert.Equal(t, []string{path}, cache.Changed([]string{path}))
}

func TestHashCache_UnchangedContentSuppressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Foo.cpp")
	writeFile(t, path, "int main() {}")

	cache := watcher.NewHashCache()
	cache.Changed([]string{path})

	// Touch without changing content: a no-op write.
	writeFile(t, path, "int main() {}")
	assert.Empty(t, cache.Changed([]string{path}))
}

func TestHashCache_ModifiedContentDetected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Foo.cpp")
	writeFile(t, path, "int main() {}")

	cache := watcher.NewHashCache()
	cache.Changed([]string{path})

	writeFile(t, path, "int main() { return 1; }")
	assert.Equal(t, []string{path}, cache.Changed([]string{path}))
}

func TestHashCache_DeletedFileIsChanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Foo.cpp")
	writeFile(t, path, "int main() {}")

	cache := watcher.NewHashCache()
	cache.Changed([]string{path})

	require.NoError(t, os.Remove(path))
	assert.Equal(t, []string{path}, cache.Changed([]string{path}))

	// Recreating with the original content counts as changed again: the
	// deletion evicted the digest.
	writeFile(t, path, "int main() {}")
	assert.Equal(t, []string{path}, cache.Changed([]string{path}))
}

func TestHashCache_MixedBatch(t *testing.T) {
	dir := t.TempDir()
	same := filepath.Join(dir, "Same.cpp")
	changed := filepath.Join(dir, "Changed.cpp")
	writeFile(t, same, "aaa")
	writeFile(t, changed, "bbb")

	cache := watcher.NewHashCache()
	cache.Changed([]string{same, changed})

	writeFile(t, changed, "ccc")
	assert.Equal(t, []string{changed}, cache.Changed([]string{same, changed}))
}

func TestHashCache_Forget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Foo.cpp")
	writeFile(t, path, "aaa")

	cache := watcher.NewHashCache()
	cache.Changed([]string{path})
	cache.Forget()

	assert.Equal(t, []string{path}, cache.Changed([]string{path}))
}
