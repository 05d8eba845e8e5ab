package policy

import "fmt"

// Defaults of the reference policy.
const (
	DefaultHorizon     = 16
	DefaultActionWidth = 10
)

// ModelType selects the model family. It only matters for the default
// camera masking mode.
type ModelType string

const (
	ModelPi0     ModelType = "pi0"
	ModelPi0Fast ModelType = "pi0_fast"
)

// MasksPadding reports whether the model family supports image masks.
// pi0 does; the autoregressive pi0_fast variant expects padded slots to be
// flagged as real.
func (t ModelType) MasksPadding() bool { return t != ModelPi0Fast }

// Config is fixed for the lifetime of an adapter/decoder pair.
type Config struct {
	// ActionDim is the width state and actions are padded to.
	ActionDim int
	// Horizon and ActionWidth bound the decoded action sequence.
	Horizon     int
	ActionWidth int
	// MaskUnusedCameras marks zero-filled image slots as absent (false mask).
	MaskUnusedCameras bool
	// UsePrimaryCamera feeds a supplied primary image into base_0_rgb. The
	// reference policy was trained without it and leaves the slot padded.
	UsePrimaryCamera bool
}

// DefaultConfig returns the reference configuration for actionDim.
func DefaultConfig(actionDim int) Config {
	return Config{
		ActionDim:         actionDim,
		Horizon:           DefaultHorizon,
		ActionWidth:       DefaultActionWidth,
		MaskUnusedCameras: true,
	}
}

// withDefaults fills zero Horizon/ActionWidth.
func (c Config) withDefaults() Config {
	if c.Horizon == 0 {
		c.Horizon = DefaultHorizon
	}
	if c.ActionWidth == 0 {
		c.ActionWidth = DefaultActionWidth
	}
	return c
}

// Validate checks that all dimensions are positive.
func (c Config) Validate() error {
	c = c.withDefaults()
	if c.ActionDim <= 0 {
		return fmt.Errorf("action_dim must be > 0, got %d", c.ActionDim)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be > 0, got %d", c.Horizon)
	}
	if c.ActionWidth <= 0 {
		return fmt.Errorf("action_width must be > 0, got %d", c.ActionWidth)
	}
	return nil
}
