package service

import (
	"sync"
	"testing"
	"time"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTelegram struct {
	mu   sync.Mutex
	msgs []string
}

func (f *fakeTelegram) SendMessage(msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeTelegram) IsRunning() bool {
	return true
}

func (f *fakeTelegram) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

func waitForMessages(t *testing.T, fake *fakeTelegram, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if fake.count() >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d forwarded messages, got %d", want, fake.count())
}

func TestLogForwarder_ForwardsErrors(t *testing.T) {
	fake := &fakeTelegram{}
	lf := NewLogForwarder(fake)

	require.NoError(t, lf.Start())
	defer func() { _ = lf.Stop() }()
	assert.True(t, lf.IsEnabled())

	lf.OnLog(logging.ERROR, "disk almost full", "formatted")
	waitForMessages(t, fake, 1)

	// records below the forward level stay local
	lf.OnLog(logging.INFO, "routine note", "formatted")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, fake.count())
}

func TestLogForwarder_ForwardsAfterRestart(t *testing.T) {
	fake := &fakeTelegram{}
	lf := NewLogForwarder(fake)

	require.NoError(t, lf.Start())
	require.NoError(t, lf.Stop())
	require.NoError(t, lf.Start())
	defer func() { _ = lf.Stop() }()

	require.NotNil(t, lf.ctx)
	assert.NoError(t, lf.ctx.Err())

	lf.OnLog(logging.ERROR, "disk almost full", "formatted")
	waitForMessages(t, fake, 1)
}
