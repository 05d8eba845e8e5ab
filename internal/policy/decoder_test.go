package policy

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func rawOutput(r, c int) *mat.Dense {
	m := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, float64(i*100+j))
		}
	}
	return m
}

func TestDecodeTrims(t *testing.T) {
	d, err := NewOutputDecoder(16, 10)
	if err != nil {
		t.Fatalf("new decoder: %v", err)
	}
	raw := rawOutput(50, 32)
	seq, err := d.Decode(ModelOutput{Actions: raw})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, c := seq.Dims(); r != 16 || c != 10 {
		t.Fatalf("dims=(%d,%d)", r, c)
	}
	if !mat.Equal(seq.Actions, raw.Slice(0, 16, 0, 10)) {
		t.Fatalf("values differ")
	}

	// The result is a copy.
	raw.Set(0, 0, -1)
	if seq.Actions.At(0, 0) != 0 {
		t.Fatalf("sequence aliases raw output")
	}
	if rows := seq.Rows(); len(rows) != 16 || len(rows[15]) != 10 || rows[15][9] != 1509 {
		t.Fatalf("rows: %v", rows[15])
	}
}

func TestDecodeExactShape(t *testing.T) {
	d, _ := NewOutputDecoder(0, 0)
	if d.Horizon() != DefaultHorizon || d.ActionWidth() != DefaultActionWidth {
		t.Fatalf("defaults: %d %d", d.Horizon(), d.ActionWidth())
	}
	if _, err := d.Decode(ModelOutput{Actions: rawOutput(16, 10)}); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestDecodeRejectsShortOutput(t *testing.T) {
	d, _ := NewOutputDecoder(16, 10)
	cases := []*mat.Dense{rawOutput(10, 32), rawOutput(50, 8), nil}
	for _, raw := range cases {
		if _, err := d.Decode(ModelOutput{Actions: raw}); !IsShapeError(err) {
			t.Fatalf("expected ShapeError, got %v", err)
		}
	}
}

func TestNewOutputDecoderRejectsNegative(t *testing.T) {
	if _, err := NewOutputDecoder(-1, 10); err == nil {
		t.Fatalf("expected error")
	}
}
