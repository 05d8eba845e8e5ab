package manager

import "time"

// Drain stops admitting new calls and waits up to the drain timeout for
// queued and in-flight calls to finish. It is safe to call more than once.
func (m *Manager) Drain() {
	m.mu.Lock()
	m.state = StateDraining
	m.mu.Unlock()
	m.publish(Event{Name: "drain_start"})

	deadline := time.Now().Add(m.drainTimeout)
	for {
		qlen := len(m.queueCh)
		inflight := len(m.genCh)
		if inflight == 0 && qlen == 0 {
			break
		}
		if time.Now().After(deadline) {
			m.publish(Event{Name: "drain_timeout", Fields: map[string]any{"inflight": inflight, "queue": qlen}})
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	m.publish(Event{Name: "drain_done"})
}
