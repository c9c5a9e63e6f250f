package job

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeJob struct {
	name     string
	started  atomic.Int32
	stopped  atomic.Int32
	startErr error
	onStop   func(name string)
}

func (j *fakeJob) Start() error {
	j.started.Add(1)
	return j.startErr
}

func (j *fakeJob) Stop() error {
	j.stopped.Add(1)
	if j.onStop != nil {
		j.onStop(j.name)
	}
	return nil
}

func (j *fakeJob) Name() string {
	return j.name
}

func TestManagerStartStopAll(t *testing.T) {
	m := NewManager()

	a := &fakeJob{name: "a"}
	b := &fakeJob{name: "b"}
	m.Register(a)
	m.Register(b)

	m.StartAll()
	assert.Equal(t, int32(1), a.started.Load())
	assert.Equal(t, int32(1), b.started.Load())

	m.StopAll()
	assert.Equal(t, int32(1), a.stopped.Load())
	assert.Equal(t, int32(1), b.stopped.Load())
}

func TestManagerLifecycleGuards(t *testing.T) {
	m := NewManager()
	a := &fakeJob{name: "a"}
	m.Register(a)

	// stop before start is a no-op
	m.StopAll()
	assert.Equal(t, int32(0), a.stopped.Load())

	m.StartAll()
	m.StartAll()
	assert.Equal(t, int32(1), a.started.Load())

	// a full stop/start cycle runs the jobs again
	m.StopAll()
	m.StartAll()
	assert.Equal(t, int32(2), a.started.Load())

	m.StopAll()
	assert.Equal(t, int32(2), a.stopped.Load())
}

func TestManagerStopsInReverseOrder(t *testing.T) {
	m := NewManager()

	var order []string
	record := func(name string) { order = append(order, name) }
	m.Register(&fakeJob{name: "first", onStop: record})
	m.Register(&fakeJob{name: "second", onStop: record})

	m.StartAll()
	m.StopAll()
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestManagerStartErrorDoesNotBlockOthers(t *testing.T) {
	m := NewManager()

	failing := &fakeJob{name: "failing", startErr: assert.AnError}
	ok := &fakeJob{name: "ok"}
	m.Register(failing)
	m.Register(ok)

	m.StartAll()
	assert.Equal(t, int32(1), ok.started.Load())
}
