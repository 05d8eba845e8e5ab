package policy

import (
	"fmt"
	"math"
)

// DType is the element type of an Image.
type DType string

const (
	Uint8   DType = "uint8"
	Float32 DType = "float32"
)

// Layout tags the channel position of an Image.
type Layout string

const (
	// LayoutAuto treats a tensor whose leading dimension is 3 as channel-first.
	// A channel-last image exactly 3 pixels tall is indistinguishable and
	// will be transposed; tag it LayoutHWC to avoid that.
	LayoutAuto Layout = ""
	LayoutHWC  Layout = "hwc"
	LayoutCHW  Layout = "chw"
)

// MaxImageDim bounds every image dimension; it keeps the element count
// far from integer overflow.
const MaxImageDim = 1 << 16

// Image is a dense rank-3 tensor. Exactly one of U8 or F32 holds the data,
// selected by DType, stored row-major over Shape.
type Image struct {
	Shape  []int
	DType  DType
	Layout Layout
	U8     []uint8
	F32    []float32
}

// NewImageU8 wraps row-major uint8 data.
func NewImageU8(shape []int, data []uint8) Image {
	return Image{Shape: append([]int(nil), shape...), DType: Uint8, U8: data}
}

// NewImageF32 wraps row-major float32 data, expected in [0,1].
func NewImageF32(shape []int, data []float32) Image {
	return Image{Shape: append([]int(nil), shape...), DType: Float32, F32: data}
}

// Len is the element count implied by Shape, or -1 if a dimension is
// negative or the product overflows int.
func (im Image) Len() int {
	n, ok := elements(im.Shape)
	if !ok {
		return -1
	}
	return n
}

func elements(shape []int) (int, bool) {
	if len(shape) == 0 {
		return 0, true
	}
	n := 1
	for _, d := range shape {
		if d < 0 || (d > 0 && n > math.MaxInt/d) {
			return 0, false
		}
		n *= d
	}
	return n, true
}

// ZerosLike returns an all-zero uint8 image with im's shape.
func ZerosLike(im Image) Image {
	return Image{
		Shape:  append([]int(nil), im.Shape...),
		DType:  Uint8,
		Layout: LayoutHWC,
		U8:     make([]uint8, im.Len()),
	}
}

// IsZero reports whether every element is zero.
func (im Image) IsZero() bool {
	for _, v := range im.U8 {
		if v != 0 {
			return false
		}
	}
	for _, v := range im.F32 {
		if v != 0 {
			return false
		}
	}
	return true
}

func (im Image) validate(field string) error {
	if len(im.Shape) != 3 {
		return &ShapeError{Op: "adapt", Field: field, Got: im.Shape, Want: "rank 3"}
	}
	for _, d := range im.Shape {
		if d <= 0 {
			return &ShapeError{Op: "adapt", Field: field, Got: im.Shape, Want: "positive dimensions"}
		}
		if d > MaxImageDim {
			return &ShapeError{Op: "adapt", Field: field, Got: im.Shape, Want: fmt.Sprintf("dimensions <= %d", MaxImageDim)}
		}
	}
	want, ok := elements(im.Shape)
	if !ok {
		return &ShapeError{Op: "adapt", Field: field, Got: im.Shape, Want: "element count within int range"}
	}
	var have int
	switch im.DType {
	case Uint8:
		have = len(im.U8)
	case Float32:
		have = len(im.F32)
	default:
		return fmt.Errorf("adapt: %s has unsupported dtype %q", field, im.DType)
	}
	if have != want {
		return &ShapeError{Op: "adapt", Field: field, Got: im.Shape, Want: fmt.Sprintf("%d elements, have %d", want, have)}
	}
	return nil
}

func (im Image) channelFirst() bool {
	switch im.Layout {
	case LayoutCHW:
		return true
	case LayoutHWC:
		return false
	default:
		return im.Shape[0] == 3
	}
}

// NormalizeImage converts im to uint8 channel-last (H, W, 3).
//
// Floating-point data is scaled by 255 and truncated; values outside [0,1]
// saturate and NaN becomes 0. uint8 data keeps its values. Channel-first
// input is transposed. A uint8 channel-last image is returned as is.
func NormalizeImage(im Image) (Image, error) {
	return normalizeImage("image", im)
}

func normalizeImage(field string, im Image) (Image, error) {
	if err := im.validate(field); err != nil {
		return Image{}, err
	}
	data := im.U8
	if im.DType == Float32 {
		data = make([]uint8, len(im.F32))
		for i, v := range im.F32 {
			data[i] = floatToU8(v)
		}
	}
	shape := im.Shape
	if im.channelFirst() {
		data = chwToHWC(data, shape[0], shape[1], shape[2])
		shape = []int{shape[1], shape[2], shape[0]}
	}
	if shape[2] != 3 {
		return Image{}, &ShapeError{Op: "adapt", Field: field, Got: shape, Want: "(H, W, 3)"}
	}
	if im.DType == Uint8 && !im.channelFirst() {
		im.Layout = LayoutHWC
		return im, nil
	}
	return Image{Shape: append([]int(nil), shape...), DType: Uint8, Layout: LayoutHWC, U8: data}, nil
}

func floatToU8(v float32) uint8 {
	x := 255 * float64(v)
	switch {
	case math.IsNaN(x), x <= 0:
		return 0
	case x >= 255:
		return 255
	}
	return uint8(x)
}

func chwToHWC(src []uint8, c, h, w int) []uint8 {
	dst := make([]uint8, len(src))
	for ci := 0; ci < c; ci++ {
		for y := 0; y < h; y++ {
			row := src[(ci*h+y)*w : (ci*h+y+1)*w]
			for x, v := range row {
				dst[(y*w+x)*c+ci] = v
			}
		}
	}
	return dst
}
