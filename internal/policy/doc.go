// Package policy holds the data contract between robot observations and the
// control-policy model:
//
//   - config.go: frozen adapter/decoder configuration and defaults.
//   - types.go: Observation, ModelInput, ModelOutput, ActionSequence.
//   - image.go: Image tensors and NormalizeImage.
//   - pad.go: zero padding for state vectors and action matrices.
//   - adapter.go: InputAdapter (observation -> model input).
//   - decoder.go: OutputDecoder (raw model output -> action sequence).
//   - example.go: MakeExample fixture.
//   - errors.go: ShapeError, MissingFieldError and helpers.
//
// Nothing in this package blocks or holds state between calls; adapters and
// decoders may be shared across goroutines.
package policy
