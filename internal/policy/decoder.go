package policy

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// OutputDecoder trims raw model output to the controller's horizon.
type OutputDecoder struct {
	horizon int
	width   int
}

// NewOutputDecoder returns a decoder keeping the first horizon rows and
// width columns. Zero values select the defaults.
func NewOutputDecoder(horizon, width int) (*OutputDecoder, error) {
	if horizon == 0 {
		horizon = DefaultHorizon
	}
	if width == 0 {
		width = DefaultActionWidth
	}
	if horizon < 0 || width < 0 {
		return nil, fmt.Errorf("decoder: horizon and action_width must be > 0, got %d, %d", horizon, width)
	}
	return &OutputDecoder{horizon: horizon, width: width}, nil
}

// Horizon returns the number of timesteps kept.
func (d *OutputDecoder) Horizon() int { return d.horizon }

// ActionWidth returns the number of action dimensions kept.
func (d *OutputDecoder) ActionWidth() int { return d.width }

// Decode returns a fresh copy of out.Actions[:horizon, :width]. Output
// smaller than that is a ShapeError; the decoder never pads.
func (d *OutputDecoder) Decode(out ModelOutput) (ActionSequence, error) {
	if out.Actions == nil {
		return ActionSequence{}, &ShapeError{Op: "decode", Field: "actions", Got: nil, Want: fmt.Sprintf("at least (%d, %d)", d.horizon, d.width)}
	}
	r, c := out.Actions.Dims()
	if r < d.horizon || c < d.width {
		return ActionSequence{}, &ShapeError{Op: "decode", Field: "actions", Got: []int{r, c}, Want: fmt.Sprintf("at least (%d, %d)", d.horizon, d.width)}
	}
	trimmed := mat.DenseCopyOf(out.Actions.Slice(0, d.horizon, 0, d.width))
	return ActionSequence{Actions: trimmed}, nil
}
