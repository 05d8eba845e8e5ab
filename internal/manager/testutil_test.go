package manager

import (
	"context"
	"testing"

	"policyd/internal/policy"
	"policyd/internal/runtime"
)

// newTestManager builds a manager over a fake runtime producing (50, 32)
// outputs with action_dim 32.
func newTestManager(t *testing.T, cfg ManagerConfig) (*Manager, *runtime.Fake) {
	t.Helper()
	fake := runtime.NewFake(50, 32)
	if cfg.Runtime == nil {
		cfg.Runtime = fake
	}
	if cfg.Policy.ActionDim == 0 {
		cfg.Policy = policy.DefaultConfig(32)
	}
	m, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	return m, fake
}

// blockingRuntime holds every Infer call until release is closed or the
// context ends.
type blockingRuntime struct {
	entered chan struct{}
	release chan struct{}
}

func newBlockingRuntime() *blockingRuntime {
	return &blockingRuntime{entered: make(chan struct{}, 16), release: make(chan struct{})}
}

func (b *blockingRuntime) Infer(ctx context.Context, in policy.ModelInput) (policy.ModelOutput, error) {
	b.entered <- struct{}{}
	select {
	case <-b.release:
		return runtime.NewFake(16, 10).Infer(ctx, in)
	case <-ctx.Done():
		return policy.ModelOutput{}, ctx.Err()
	}
}

func (b *blockingRuntime) Healthy(context.Context) bool { return true }
