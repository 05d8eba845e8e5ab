package manager

import (
	"time"

	"github.com/google/uuid"

	"policyd/internal/policy"
)

// State represents the lifecycle state of the manager.
type State string

const (
	StateReady    State = "ready"
	StateLoading  State = "loading"
	StateError    State = "error"
	StateDraining State = "draining"
)

// Result is the outcome of one Act call.
type Result struct {
	ID      uuid.UUID
	Actions policy.ActionSequence
	// InferDuration covers only the runtime call.
	InferDuration time.Duration
}
