package policy

// ExamplePrompt is the instruction carried by MakeExample.
const ExamplePrompt = "Grasp and place an object."

// Example fixture shapes.
const (
	exampleStateLen = 9
	exampleImageSz  = 256
)

// MakeExample returns a synthetic observation with the calling convention of
// the reference robot: a 9-entry TCP pose state, primary and wrist 256x256x3
// uint8 images and a fixed prompt. Values are deterministic.
func MakeExample() Observation {
	state := make([]float64, exampleStateLen)
	for i := range state {
		state[i] = float64(i+1) / 10
	}
	shape := []int{exampleImageSz, exampleImageSz, 3}
	primary := NewImageU8(shape, exampleFill(exampleImageSz*exampleImageSz*3, 0))
	wrist := NewImageU8(shape, exampleFill(exampleImageSz*exampleImageSz*3, 128))
	prompt := ExamplePrompt
	return Observation{
		State:        state,
		PrimaryImage: &primary,
		WristImage:   &wrist,
		Prompt:       &prompt,
	}
}

func exampleFill(n int, offset int) []uint8 {
	b := make([]uint8, n)
	for i := range b {
		b[i] = uint8((i + offset) % 251)
	}
	return b
}
