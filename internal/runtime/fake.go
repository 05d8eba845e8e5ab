package runtime

import (
	"context"
	"sync"

	"gonum.org/v1/gonum/mat"

	"policyd/internal/policy"
)

// Fake is a deterministic in-process runtime. Infer returns a Rows x Cols
// matrix with element (t, a) = t*100 + a.
type Fake struct {
	Rows, Cols int
	// Err, when set, is returned by Infer.
	Err       error
	Unhealthy bool

	mu    sync.Mutex
	calls int
	last  policy.ModelInput
}

// NewFake returns a Fake producing (rows, cols) outputs.
func NewFake(rows, cols int) *Fake { return &Fake{Rows: rows, Cols: cols} }

func (f *Fake) Infer(ctx context.Context, in policy.ModelInput) (policy.ModelOutput, error) {
	if err := ctx.Err(); err != nil {
		return policy.ModelOutput{}, err
	}
	f.mu.Lock()
	f.calls++
	f.last = in
	f.mu.Unlock()
	if f.Err != nil {
		return policy.ModelOutput{}, f.Err
	}
	if f.Rows <= 0 || f.Cols <= 0 {
		return policy.ModelOutput{}, nil
	}
	m := mat.NewDense(f.Rows, f.Cols, nil)
	for t := 0; t < f.Rows; t++ {
		for a := 0; a < f.Cols; a++ {
			m.Set(t, a, float64(t*100+a))
		}
	}
	return policy.ModelOutput{Actions: m}, nil
}

func (f *Fake) Healthy(context.Context) bool { return !f.Unhealthy }

// Calls returns the number of Infer invocations.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Last returns the most recent input passed to Infer.
func (f *Fake) Last() policy.ModelInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}
