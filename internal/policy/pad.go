package policy

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PadToDim zero-extends v at the tail to exactly dim entries. It never
// truncates: len(v) > dim is a ShapeError.
func PadToDim(field string, v []float64, dim int) ([]float64, error) {
	if len(v) > dim {
		return nil, &ShapeError{Op: "adapt", Field: field, Got: []int{len(v)}, Want: fmt.Sprintf("length <= %d", dim)}
	}
	out := make([]float64, dim)
	copy(out, v)
	return out, nil
}

// PadColumns zero-extends the trailing dimension of m to dim columns, keeping
// the row count.
func PadColumns(field string, m mat.Matrix, dim int) (*mat.Dense, error) {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, &ShapeError{Op: "adapt", Field: field, Got: []int{r, c}, Want: "non-empty (T, A)"}
	}
	if c > dim {
		return nil, &ShapeError{Op: "adapt", Field: field, Got: []int{r, c}, Want: fmt.Sprintf("(T, <= %d)", dim)}
	}
	out := mat.NewDense(r, dim, nil)
	out.Slice(0, r, 0, c).(*mat.Dense).Copy(m)
	return out, nil
}
