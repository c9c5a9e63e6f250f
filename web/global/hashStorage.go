package global

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"sync"
	"time"
)

// Telegram caps callback data at 64 bytes, which is exactly the length of
// a hex sha256 digest.
var hashPattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type hashEntry struct {
	value   string
	addedAt time.Time
}

// HashStorage maps sha256 digests back to the long callback payloads they
// stand in for. Entries expire after the configured TTL.
type HashStorage struct {
	mu      sync.RWMutex
	entries map[string]hashEntry
	ttl     time.Duration
}

func NewHashStorage(ttl time.Duration) *HashStorage {
	return &HashStorage{
		entries: make(map[string]hashEntry),
		ttl:     ttl,
	}
}

// Put stores the value and returns the digest to send as callback data.
func (h *HashStorage) Put(value string) string {
	sum := sha256.Sum256([]byte(value))
	digest := hex.EncodeToString(sum[:])

	h.mu.Lock()
	h.entries[digest] = hashEntry{value: value, addedAt: time.Now()}
	h.mu.Unlock()

	return digest
}

// Get resolves a digest back to the stored value.
func (h *HashStorage) Get(digest string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	entry, ok := h.entries[digest]
	return entry.value, ok
}

// IsHash reports whether s looks like a digest produced by Put.
func (h *HashStorage) IsHash(s string) bool {
	return hashPattern.MatchString(s)
}

// SweepExpired drops entries older than the TTL.
func (h *HashStorage) SweepExpired() {
	h.mu.Lock()
	defer h.mu.Unlock()

	cutoff := time.Now().Add(-h.ttl)
	for digest, entry := range h.entries {
		if entry.addedAt.Before(cutoff) {
			delete(h.entries, digest)
		}
	}
}

// Reset drops everything, used when the bot restarts.
func (h *HashStorage) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = make(map[string]hashEntry)
}
