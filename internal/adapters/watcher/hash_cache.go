package watcher

import (
	"os"
	"sync"
	"unique"

	"github.com/cespare/xxhash/v2"
)

// HashCache remembers the content digest of watched files so that no-op
// writes (editor save without changes, touch, atomic-save renames) do not
// trigger a rebuild.
type HashCache struct {
	mu      sync.Mutex
	digests map[unique.Handle[string]]uint64
}

// NewHashCache creates an empty hash cache.
func NewHashCache() *HashCache {
	return &HashCache{
		digests: make(map[unique.Handle[string]]uint64),
	}
}

// Changed filters paths down to those whose content actually differs from
// the last observed digest. Unreadable paths (deleted files) always count
// as changed and are evicted from the cache.
func (h *HashCache) Changed(paths []string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	changed := make([]string, 0, len(paths))
	for _, path := range paths {
		handle := unique.Make(path)

		data, err := os.ReadFile(path)
		if err != nil {
			delete(h.digests, handle)
			changed = append(changed, path)
			continue
		}

		digest := xxhash.Sum64(data)
		if prev, ok := h.digests[handle]; ok && prev == digest {
			continue
		}
		h.digests[handle] = digest
		changed = append(changed, path)
	}
	return changed
}

// Forget drops all cached digests.
func (h *HashCache) Forget() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.digests = make(map[unique.Handle[string]]uint64)
}
