package job

import (
	"sync"

	"github.com/Shaanadrian1/AuthAudioBot/logger"
)

// Manager owns the long-running background jobs and starts or stops them
// as a group. Jobs are stopped in reverse registration order, so watchers
// that depend on earlier ones go down first.
type Manager struct {
	mu      sync.Mutex
	jobs    []Job
	started bool
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Register(job Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
	logger.Debugf("job %s registered", job.Name())
}

// StartAll starts every registered job. A failing job is logged and
// skipped, the rest still come up.
func (m *Manager) StartAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.started = true

	for _, j := range m.jobs {
		if err := j.Start(); err != nil {
			logger.Errorf("start job %s failed: %v", j.Name(), err)
			continue
		}
		logger.Infof("job %s started", j.Name())
	}
}

// StopAll stops the jobs in reverse registration order and waits for each
// one to finish before moving on.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return
	}
	m.started = false

	for i := len(m.jobs) - 1; i >= 0; i-- {
		j := m.jobs[i]
		if err := j.Stop(); err != nil {
			logger.Errorf("stop job %s failed: %v", j.Name(), err)
			continue
		}
		logger.Infof("job %s stopped", j.Name())
	}
}
