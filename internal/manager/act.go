package manager

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"policyd/internal/policy"
)

// Adapt runs only the input adapter. It does not touch the runtime or the
// request counters.
func (m *Manager) Adapt(obs policy.Observation) (policy.ModelInput, error) {
	return m.adapter.Adapt(obs)
}

// Act adapts obs, runs the model runtime and decodes the bounded action
// sequence. Shape errors on either side abort the call; nothing is retried.
func (m *Manager) Act(ctx context.Context, obs policy.Observation) (Result, error) {
	m.requestsTotal.Add(1)
	id := uuid.New()
	if m.rt == nil {
		return Result{}, m.fail(id, "act_error", ErrDependencyUnavailable("model runtime not configured"))
	}

	in, err := m.adapter.Adapt(obs)
	if err != nil {
		return Result{}, m.fail(id, "adapt_error", err)
	}

	// Admission: FIFO queue, single in-flight runtime call
	release, err := m.beginInference(ctx)
	if err != nil {
		return Result{}, m.fail(id, "admission_error", err)
	}
	defer release()

	ictx := ctx
	if m.inferTimeout > 0 {
		var cancel context.CancelFunc
		ictx, cancel = context.WithTimeout(ctx, m.inferTimeout)
		defer cancel()
	}
	m.publish(Event{Name: "infer_start", SequenceID: id.String()})
	start := time.Now()
	out, err := m.rt.Infer(ictx, in)
	dur := time.Since(start)
	if err != nil {
		return Result{}, m.fail(id, "infer_error", err)
	}

	seq, err := m.decoder.Decode(out)
	if err != nil {
		return Result{}, m.fail(id, "decode_error", err)
	}

	m.mu.Lock()
	m.lastActAt = time.Now()
	if m.state != StateDraining {
		m.state = StateReady
	}
	m.mu.Unlock()
	rows, cols := seq.Dims()
	m.publish(Event{Name: "act_done", SequenceID: id.String(), Fields: map[string]any{
		"infer_ms": float64(dur.Microseconds()) / 1000,
		"horizon":  rows,
		"width":    cols,
	}})
	return Result{ID: id, Actions: seq, InferDuration: dur}, nil
}

func (m *Manager) fail(id uuid.UUID, event string, err error) error {
	m.failuresTotal.Add(1)
	if policy.IsShapeError(err) {
		m.shapeErrorsTotal.Add(1)
	}
	m.mu.Lock()
	m.err = err.Error()
	// Runtime and output failures mark the manager unhealthy; caller
	// cancellations and bad observations do not.
	if (event == "infer_error" || event == "decode_error") &&
		m.state != StateDraining && !errors.Is(err, context.Canceled) {
		m.state = StateError
	}
	m.mu.Unlock()
	m.publish(Event{Name: event, SequenceID: id.String(), Fields: map[string]any{"error": err.Error()}})
	return err
}
