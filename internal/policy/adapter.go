package policy

// InputAdapter converts observations into ModelInput records.
type InputAdapter struct {
	cfg Config
}

// NewInputAdapter validates cfg and returns an adapter bound to it.
func NewInputAdapter(cfg Config) (*InputAdapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &InputAdapter{cfg: cfg.withDefaults()}, nil
}

// Config returns the adapter configuration.
func (a *InputAdapter) Config() Config { return a.cfg }

// Adapt builds the model input for obs. It does not modify obs.
func (a *InputAdapter) Adapt(obs Observation) (ModelInput, error) {
	if obs.State == nil {
		return ModelInput{}, &MissingFieldError{Field: "state"}
	}
	if obs.WristImage == nil {
		return ModelInput{}, &MissingFieldError{Field: "wrist_image"}
	}
	state, err := PadToDim("state", obs.State, a.cfg.ActionDim)
	if err != nil {
		return ModelInput{}, err
	}
	wrist, err := normalizeImage("wrist_image", *obs.WristImage)
	if err != nil {
		return ModelInput{}, err
	}

	padMask := !a.cfg.MaskUnusedCameras
	in := ModelInput{
		State: state,
		Images: map[Slot]Image{
			SlotBase:       ZerosLike(wrist),
			SlotLeftWrist:  wrist,
			SlotRightWrist: ZerosLike(wrist),
		},
		ImageMask: map[Slot]bool{
			SlotBase:       padMask,
			SlotLeftWrist:  true,
			SlotRightWrist: padMask,
		},
	}
	if a.cfg.UsePrimaryCamera && obs.PrimaryImage != nil {
		base, err := normalizeImage("primary_image", *obs.PrimaryImage)
		if err != nil {
			return ModelInput{}, err
		}
		in.Images[SlotBase] = base
		in.ImageMask[SlotBase] = true
	}

	if obs.Actions != nil {
		actions, err := PadColumns("actions", obs.Actions, a.cfg.ActionDim)
		if err != nil {
			return ModelInput{}, err
		}
		in.Actions = actions
	}

	switch {
	case obs.Prompt != nil:
		in.Prompt, in.HasPrompt = *obs.Prompt, true
	case obs.Tasks != nil:
		in.Prompt, in.HasPrompt = *obs.Tasks, true
	}
	return in, nil
}
