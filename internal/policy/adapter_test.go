package policy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"
)

func newAdapter(t *testing.T, cfg Config) *InputAdapter {
	t.Helper()
	a, err := NewInputAdapter(cfg)
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	return a
}

func strp(s string) *string { return &s }

func smallObs() Observation {
	wrist := NewImageU8([]int{4, 4, 3}, make([]uint8, 48))
	for i := range wrist.U8 {
		wrist.U8[i] = 200
	}
	return Observation{State: []float64{1, 2, 3}, WristImage: &wrist}
}

func TestNewInputAdapterValidates(t *testing.T) {
	if _, err := NewInputAdapter(Config{}); err == nil {
		t.Fatalf("expected error for zero action_dim")
	}
	a := newAdapter(t, Config{ActionDim: 8})
	if a.Config().Horizon != DefaultHorizon || a.Config().ActionWidth != DefaultActionWidth {
		t.Fatalf("defaults not applied: %+v", a.Config())
	}
}

func TestAdaptExampleScenario(t *testing.T) {
	for _, mask := range []bool{true, false} {
		cfg := DefaultConfig(32)
		cfg.MaskUnusedCameras = mask
		in, err := newAdapter(t, cfg).Adapt(MakeExample())
		if err != nil {
			t.Fatalf("adapt: %v", err)
		}
		if len(in.State) != 32 {
			t.Fatalf("state len=%d", len(in.State))
		}
		for i := 9; i < 32; i++ {
			if in.State[i] != 0 {
				t.Fatalf("state[%d]=%v", i, in.State[i])
			}
		}
		if len(in.Images) != 3 || len(in.ImageMask) != 3 {
			t.Fatalf("slots=%d masks=%d", len(in.Images), len(in.ImageMask))
		}
		for _, s := range Slots {
			if diff := cmp.Diff([]int{256, 256, 3}, in.Images[s].Shape); diff != "" {
				t.Fatalf("%s shape: %s", s, diff)
			}
		}
		if !in.ImageMask[SlotLeftWrist] {
			t.Fatalf("wrist mask must be true")
		}
		if in.ImageMask[SlotBase] != !mask || in.ImageMask[SlotRightWrist] != !mask {
			t.Fatalf("mask=%v: got %v", mask, in.ImageMask)
		}
		if !in.HasPrompt || in.Prompt != ExamplePrompt {
			t.Fatalf("prompt=%q has=%v", in.Prompt, in.HasPrompt)
		}
		if in.Actions != nil {
			t.Fatalf("unexpected actions")
		}
	}
}

func TestAdaptPaddedSlotsAreZeroLikeWrist(t *testing.T) {
	obs := smallObs()
	in, err := newAdapter(t, DefaultConfig(4)).Adapt(obs)
	if err != nil {
		t.Fatalf("adapt: %v", err)
	}
	for _, s := range []Slot{SlotBase, SlotRightWrist} {
		im := in.Images[s]
		if !im.IsZero() {
			t.Fatalf("%s not zero", s)
		}
		if im.DType != Uint8 {
			t.Fatalf("%s dtype=%s", s, im.DType)
		}
		if diff := cmp.Diff(in.Images[SlotLeftWrist].Shape, im.Shape); diff != "" {
			t.Fatalf("%s shape: %s", s, diff)
		}
		if in.ImageMask[s] {
			t.Fatalf("%s should be masked", s)
		}
	}
	if diff := cmp.Diff(obs.WristImage.U8, in.Images[SlotLeftWrist].U8); diff != "" {
		t.Fatalf("wrist changed: %s", diff)
	}
}

func TestAdaptPrimaryCameraOptIn(t *testing.T) {
	obs := smallObs()
	primary := NewImageF32([]int{3, 4, 4}, make([]float32, 48))
	for i := range primary.F32 {
		primary.F32[i] = 1
	}
	obs.PrimaryImage = &primary

	in, err := newAdapter(t, DefaultConfig(4)).Adapt(obs)
	if err != nil {
		t.Fatalf("adapt: %v", err)
	}
	if !in.Images[SlotBase].IsZero() || in.ImageMask[SlotBase] {
		t.Fatalf("primary should be ignored by default")
	}

	cfg := DefaultConfig(4)
	cfg.UsePrimaryCamera = true
	in, err = newAdapter(t, cfg).Adapt(obs)
	if err != nil {
		t.Fatalf("adapt: %v", err)
	}
	base := in.Images[SlotBase]
	if !in.ImageMask[SlotBase] {
		t.Fatalf("primary mask should be true")
	}
	if diff := cmp.Diff([]int{4, 4, 3}, base.Shape); diff != "" {
		t.Fatalf("base shape: %s", diff)
	}
	if base.U8[0] != 255 {
		t.Fatalf("base not normalized: %d", base.U8[0])
	}
	if !in.Images[SlotRightWrist].IsZero() || in.ImageMask[SlotRightWrist] {
		t.Fatalf("right wrist must stay padded")
	}
}

func TestAdaptPromptPrecedence(t *testing.T) {
	a := newAdapter(t, DefaultConfig(4))
	obs := smallObs()
	obs.Prompt, obs.Tasks = strp("A"), strp("B")
	in, err := a.Adapt(obs)
	if err != nil || in.Prompt != "A" {
		t.Fatalf("prompt=%q err=%v", in.Prompt, err)
	}

	obs.Prompt = nil
	in, _ = a.Adapt(obs)
	if !in.HasPrompt || in.Prompt != "B" {
		t.Fatalf("tasks fallback: %q", in.Prompt)
	}

	obs.Tasks = nil
	in, _ = a.Adapt(obs)
	if in.HasPrompt || in.Prompt != "" {
		t.Fatalf("expected no prompt, got %q", in.Prompt)
	}
}

func TestAdaptActionsPadded(t *testing.T) {
	obs := smallObs()
	obs.Actions = mat.NewDense(5, 2, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	in, err := newAdapter(t, DefaultConfig(4)).Adapt(obs)
	if err != nil {
		t.Fatalf("adapt: %v", err)
	}
	r, c := in.Actions.Dims()
	if r != 5 || c != 4 {
		t.Fatalf("dims=(%d,%d)", r, c)
	}
	if in.Actions.At(4, 1) != 10 || in.Actions.At(4, 3) != 0 {
		t.Fatalf("unexpected values %v", mat.Formatted(in.Actions))
	}
}

func TestAdaptErrors(t *testing.T) {
	a := newAdapter(t, DefaultConfig(2))

	obs := smallObs()
	if _, err := a.Adapt(obs); !IsShapeError(err) {
		t.Fatalf("state too long: %v", err)
	}

	obs = smallObs()
	obs.State = nil
	if _, err := a.Adapt(obs); !IsMissingField(err) {
		t.Fatalf("missing state: %v", err)
	}

	obs = smallObs()
	obs.WristImage = nil
	if _, err := a.Adapt(obs); !IsMissingField(err) {
		t.Fatalf("missing wrist: %v", err)
	}

	obs = smallObs()
	obs.State = []float64{1}
	obs.Actions = mat.NewDense(1, 3, nil)
	if _, err := a.Adapt(obs); !IsShapeError(err) {
		t.Fatalf("actions too wide: %v", err)
	}
}

func TestAdaptRejectsOverflowingWristShape(t *testing.T) {
	wrist := NewImageU8([]int{1 << 62, 4, 3}, nil)
	_, err := newAdapter(t, DefaultConfig(8)).Adapt(Observation{State: []float64{1}, WristImage: &wrist})
	if !IsShapeError(err) {
		t.Fatalf("expected ShapeError, got %v", err)
	}
}
