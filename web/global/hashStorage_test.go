package global

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashStorage(t *testing.T) {
	h := NewHashStorage(time.Minute)

	payload := "voice_select:moss_audio_a1b2c3:with a very long payload tail"
	digest := h.Put(payload)
	assert.Len(t, digest, 64)
	assert.True(t, h.IsHash(digest))
	assert.False(t, h.IsHash("voice_select:short"))

	got, ok := h.Get(digest)
	assert.True(t, ok)
	assert.Equal(t, payload, got)

	_, ok = h.Get("0000000000000000000000000000000000000000000000000000000000000000")
	assert.False(t, ok)

	h.Reset()
	_, ok = h.Get(digest)
	assert.False(t, ok)
}

func TestHashStorageSweepExpired(t *testing.T) {
	h := NewHashStorage(10 * time.Millisecond)

	digest := h.Put("stale payload")
	time.Sleep(20 * time.Millisecond)
	fresh := h.Put("fresh payload")

	h.SweepExpired()

	_, ok := h.Get(digest)
	assert.False(t, ok)
	_, ok = h.Get(fresh)
	assert.True(t, ok)
}
