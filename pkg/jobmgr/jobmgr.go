// Package jobmgr runs named background jobs with cancellation and in-memory
// tracking. A job is a function that works until its context is cancelled;
// starting a second job under the same name is an error. Used for the
// per-guild inactivity watchers.
package jobmgr

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// Job is a running unit of work. Jobs are tracked and removed by the Manager.
type Job struct {
	Name   string
	Cancel context.CancelFunc
}

// Manager starts, stops and tracks jobs. Safe for concurrent use.
type Manager struct {
	mu   sync.Mutex
	jobs map[string]*Job
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{jobs: make(map[string]*Job)}
}

// StartAsync runs a job in its own goroutine and returns immediately.
// Jobs remove themselves on completion, success or failure.
func (m *Manager) StartAsync(name string, runner func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(context.Background())
	job := &Job{Name: name, Cancel: cancel}

	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		cancel()
		return fmt.Errorf("job %q is already running", name)
	}
	m.jobs[name] = job
	m.mu.Unlock()

	go func() {
		if err := runner(ctx); err != nil && ctx.Err() == nil {
			log.Warn().Err(err).Str("job", name).Msg("job finished with error")
		}

		m.mu.Lock()
		delete(m.jobs, name)
		m.mu.Unlock()
	}()

	return nil
}

// Stop cancels a running job by name. Stopping an unknown job is a no-op so
// teardown paths don't need to track what they started.
func (m *Manager) Stop(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if job, ok := m.jobs[name]; ok {
		job.Cancel()
		delete(m.jobs, name)
	}
}

// IsRunning reports whether a job with the given name is active.
func (m *Manager) IsRunning(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.jobs[name]
	return ok
}

// List returns the sorted names of active jobs.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for k := range m.jobs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
