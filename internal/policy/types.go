package policy

import "gonum.org/v1/gonum/mat"

// Slot names one of the three fixed camera inputs of the model.
type Slot string

const (
	SlotBase       Slot = "base_0_rgb"
	SlotLeftWrist  Slot = "left_wrist_0_rgb"
	SlotRightWrist Slot = "right_wrist_0_rgb"
)

// Slots lists every image slot in model order.
var Slots = [...]Slot{SlotBase, SlotLeftWrist, SlotRightWrist}

// Observation is one raw record from the sensor/state source.
// State and WristImage are required; everything else is optional.
type Observation struct {
	State        []float64
	PrimaryImage *Image
	WristImage   *Image
	// Prompt takes precedence over Tasks when both are set.
	Prompt *string
	Tasks  *string
	// Actions is only present for training/evaluation records, shape (T, A).
	Actions *mat.Dense
}

// ModelInput is the fixed schema consumed by the model runtime.
type ModelInput struct {
	State     []float64
	Images    map[Slot]Image
	ImageMask map[Slot]bool
	// Actions is nil unless the observation carried actions.
	Actions   *mat.Dense
	Prompt    string
	HasPrompt bool
}

// ModelOutput is the raw runtime result; Actions may be larger than the
// configured horizon and action width.
type ModelOutput struct {
	Actions *mat.Dense
}

// ActionSequence is a bounded (Horizon, ActionWidth) batch for the controller.
type ActionSequence struct {
	Actions *mat.Dense
}

// Dims returns (timesteps, action width).
func (s ActionSequence) Dims() (int, int) {
	if s.Actions == nil {
		return 0, 0
	}
	return s.Actions.Dims()
}

// Rows returns the sequence as row slices, one per timestep.
func (s ActionSequence) Rows() [][]float64 {
	r, _ := s.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, s.Actions)
	}
	return out
}
