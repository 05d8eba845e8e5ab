package manager

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"policyd/internal/policy"
	"policyd/internal/runtime"
)

type Manager struct {
	mu        sync.RWMutex
	state     State
	err       string
	lastActAt time.Time

	adapter *policy.InputAdapter
	decoder *policy.OutputDecoder
	rt      runtime.Runtime

	// Queue config
	maxQueueDepth int
	maxWait       time.Duration
	inferTimeout  time.Duration
	drainTimeout  time.Duration
	genCh         chan struct{} // size 1: single in-flight runtime call
	queueCh       chan struct{} // buffered: queue slots

	publisher EventPublisher
	startTime time.Time

	requestsTotal    atomic.Uint64
	failuresTotal    atomic.Uint64
	shapeErrorsTotal atomic.Uint64
}

// New builds a Manager with package defaults for queueing.
func New(cfg policy.Config, rt runtime.Runtime) (*Manager, error) {
	return NewWithConfig(ManagerConfig{Policy: cfg, Runtime: rt})
}

// SetEventPublisher replaces the event publisher; nil restores the no-op.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p == nil {
		p = noopPublisher{}
	}
	m.publisher = p
}

func (m *Manager) publish(e Event) {
	m.mu.RLock()
	p := m.publisher
	m.mu.RUnlock()
	p.Publish(e)
}

// PolicyConfig returns the frozen adapter/decoder configuration.
func (m *Manager) PolicyConfig() policy.Config { return m.adapter.Config() }

// Ready reports whether the runtime is reachable and the manager accepts work.
// A manager in StateError stays ready as long as the runtime is healthy.
func (m *Manager) Ready(ctx context.Context) bool {
	m.mu.RLock()
	st := m.state
	m.mu.RUnlock()
	if st == StateDraining || m.rt == nil {
		return false
	}
	ok := m.rt.Healthy(ctx)
	m.mu.Lock()
	switch {
	case m.state == StateDraining:
	case !ok:
		m.state = StateLoading
	case m.state != StateError:
		// StateError sticks until the next successful Act.
		m.state = StateReady
	}
	m.mu.Unlock()
	return ok
}
