package runtime

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"policyd/internal/policy"
)

// wireImage carries a normalized uint8 HWC image; Data is base64 in JSON.
type wireImage struct {
	Shape []int  `json:"shape"`
	DType string `json:"dtype"`
	Data  []byte `json:"data"`
}

// wireInput mirrors the model's input dictionary.
type wireInput struct {
	State     []float64            `json:"state"`
	Image     map[string]wireImage `json:"image"`
	ImageMask map[string]bool      `json:"image_mask"`
	Actions   [][]float64          `json:"actions,omitempty"`
	Prompt    *string              `json:"prompt,omitempty"`
}

type wireOutput struct {
	Actions [][]float64 `json:"actions"`
}

func encodeInput(in policy.ModelInput) wireInput {
	w := wireInput{
		State:     in.State,
		Image:     make(map[string]wireImage, len(in.Images)),
		ImageMask: make(map[string]bool, len(in.ImageMask)),
	}
	for slot, im := range in.Images {
		w.Image[string(slot)] = wireImage{Shape: im.Shape, DType: string(im.DType), Data: im.U8}
	}
	for slot, ok := range in.ImageMask {
		w.ImageMask[string(slot)] = ok
	}
	if in.Actions != nil {
		w.Actions = DenseRows(in.Actions)
	}
	if in.HasPrompt {
		p := in.Prompt
		w.Prompt = &p
	}
	return w
}

func decodeOutput(w wireOutput) (policy.ModelOutput, error) {
	if len(w.Actions) == 0 {
		return policy.ModelOutput{}, nil
	}
	m, err := DenseFromRows(w.Actions)
	if err != nil {
		return policy.ModelOutput{}, err
	}
	return policy.ModelOutput{Actions: m}, nil
}

// DenseRows flattens m into row slices.
func DenseRows(m mat.Matrix) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}

// DenseFromRows builds a matrix from equal-length, non-empty rows.
func DenseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("matrix must be non-empty")
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("ragged matrix: row %d has %d columns, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}
