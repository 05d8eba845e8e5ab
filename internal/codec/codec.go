// Package codec converts between the JSON wire types in pkg/types and the
// typed records of internal/policy.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"policyd/internal/policy"
	"policyd/internal/runtime"
	"policyd/pkg/types"
)

// DecodeError reports a request that could not be turned into an observation.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string { return "decode " + e.Field + ": " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError reports whether err is a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// Observation converts a wire request. The plain keys win over their
// observation/* aliases.
func Observation(req types.ObservationRequest) (policy.Observation, error) {
	obs := policy.Observation{
		State:  req.State,
		Prompt: req.Prompt,
		Tasks:  req.Tasks,
	}
	if obs.State == nil {
		obs.State = req.LegacyState
	}
	var err error
	if obs.WristImage, err = tensorField("wrist_image", req.WristImage, req.LegacyWristImage); err != nil {
		return policy.Observation{}, err
	}
	if obs.PrimaryImage, err = tensorField("primary_image", req.PrimaryImage, req.LegacyImage); err != nil {
		return policy.Observation{}, err
	}
	if req.Actions != nil {
		m, err := runtime.DenseFromRows(req.Actions)
		if err != nil {
			return policy.Observation{}, &DecodeError{Field: "actions", Err: err}
		}
		obs.Actions = m
	}
	return obs, nil
}

func tensorField(field string, t, legacy *types.Tensor) (*policy.Image, error) {
	if t == nil {
		t = legacy
	}
	if t == nil {
		return nil, nil
	}
	im, err := Image(*t)
	if err != nil {
		return nil, &DecodeError{Field: field, Err: err}
	}
	return &im, nil
}

// Image converts a wire tensor. Encoded PNG/JPEG data is decoded to an
// RGB channel-last uint8 image; alpha is dropped.
func Image(t types.Tensor) (policy.Image, error) {
	layout, err := parseLayout(t.Layout)
	if err != nil {
		return policy.Image{}, err
	}
	if len(t.Encoded) > 0 {
		return decodeEncoded(t.Encoded)
	}
	var im policy.Image
	switch strings.ToLower(t.DType) {
	case "", "uint8":
		if t.Values != nil && t.Data == nil {
			return policy.Image{}, fmt.Errorf("uint8 tensor carries values; use data or dtype float32")
		}
		im = policy.NewImageU8(t.Shape, t.Data)
	case "float32", "float":
		im = policy.NewImageF32(t.Shape, t.Values)
	default:
		return policy.Image{}, fmt.Errorf("unsupported dtype %q", t.DType)
	}
	im.Layout = layout
	return im, nil
}

func parseLayout(s string) (policy.Layout, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return policy.LayoutAuto, nil
	case "hwc":
		return policy.LayoutHWC, nil
	case "chw":
		return policy.LayoutCHW, nil
	}
	return "", fmt.Errorf("unknown layout %q", s)
}

func decodeEncoded(b []byte) (policy.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return policy.Image{}, err
	}
	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
	h, w := bounds.Dy(), bounds.Dx()
	data := make([]uint8, 0, h*w*3)
	for i := 0; i < len(rgba.Pix); i += 4 {
		data = append(data, rgba.Pix[i], rgba.Pix[i+1], rgba.Pix[i+2])
	}
	im := policy.NewImageU8([]int{h, w, 3}, data)
	im.Layout = policy.LayoutHWC
	return im, nil
}

// Request converts an observation back to wire form. Images are sent as raw
// data with an explicit layout.
func Request(obs policy.Observation) types.ObservationRequest {
	req := types.ObservationRequest{
		State:        obs.State,
		PrimaryImage: tensor(obs.PrimaryImage),
		WristImage:   tensor(obs.WristImage),
		Prompt:       obs.Prompt,
		Tasks:        obs.Tasks,
	}
	if obs.Actions != nil {
		req.Actions = runtime.DenseRows(obs.Actions)
	}
	return req
}

func tensor(im *policy.Image) *types.Tensor {
	if im == nil {
		return nil
	}
	t := &types.Tensor{
		Shape:  im.Shape,
		DType:  string(im.DType),
		Layout: string(im.Layout),
		Data:   im.U8,
		Values: im.F32,
	}
	if t.Layout == "" {
		t.Layout = "auto"
	}
	return t
}

// AdaptSummary describes an adapted model input without pixel data.
func AdaptSummary(in policy.ModelInput) types.AdaptResponse {
	resp := types.AdaptResponse{
		State:     in.State,
		Images:    make(map[string]types.ImageSummary, len(in.Images)),
		ImageMask: make(map[string]bool, len(in.ImageMask)),
	}
	for slot, im := range in.Images {
		resp.Images[string(slot)] = types.ImageSummary{Shape: im.Shape, DType: string(im.DType), Zero: im.IsZero()}
	}
	for slot, ok := range in.ImageMask {
		resp.ImageMask[string(slot)] = ok
	}
	if in.Actions != nil {
		r, c := in.Actions.Dims()
		resp.ActionsShape = []int{r, c}
	}
	if in.HasPrompt {
		p := in.Prompt
		resp.Prompt = &p
	}
	return resp
}
