package capture

import (
	"sync"

	"github.com/framepeek-cli/framepeek/filesystem"
	"github.com/framepeek-cli/framepeek/log"
)

// Handle is an owned reference to a rasterized frame: the encoded JPEG bytes
// plus a revocable temp file holding the same payload for external viewers.
//
// The preview cache is the sole owner of handles it stores and releases each
// one exactly once on eviction or clear. Release is idempotent: later calls
// are no-ops.
type Handle struct {
	data    []byte
	path    string
	width   int
	height  int
	release sync.Once
}

// Bytes returns the encoded JPEG payload.
func (h *Handle) Bytes() []byte {
	return h.data
}

// Path returns the temp file backing the handle, empty after release.
func (h *Handle) Path() string {
	return h.path
}

// Size returns the pixel dimensions of the rasterized frame.
func (h *Handle) Size() (width, height int) {
	return h.width, h.height
}

// Release reclaims the handle's backing file. Safe to call multiple times;
// only the first call performs the removal.
func (h *Handle) Release() {
	h.release.Do(func() {
		if h.path == "" {
			return
		}
		if err := filesystem.API().Remove(h.path); err != nil {
			log.Warnf("release thumbnail %s: %v", h.path, err)
		}
		h.path = ""
	})
}
