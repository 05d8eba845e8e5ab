package types

// Tensor is the wire form of an image. Exactly one of Data, Values or
// Encoded should be set.
type Tensor struct {
	// Dimensions, either (H, W, 3) or (3, H, W). Ignored for Encoded images.
	// example: [256,256,3]
	Shape []int `json:"shape,omitempty" example:"256,256,3"`
	// Element type of Data/Values: uint8 or float32.
	// example: uint8
	DType string `json:"dtype,omitempty" example:"uint8"`
	// Channel layout: auto (leading dim 3 means channel-first), hwc or chw.
	// example: hwc
	Layout string `json:"layout,omitempty" example:"hwc"`
	// Raw row-major uint8 pixels, base64 encoded.
	Data []byte `json:"data,omitempty" swaggertype:"string" format:"base64"`
	// Row-major float32 pixels in [0,1].
	Values []float32 `json:"values,omitempty"`
	// PNG or JPEG file bytes, base64 encoded.
	Encoded []byte `json:"encoded,omitempty" swaggertype:"string" format:"base64"`
}

// ObservationRequest is one observation record posted to /act or /adapt.
// The observation/* keys are accepted as aliases for older clients.
type ObservationRequest struct {
	// Joint/Cartesian state, at most action_dim entries.
	// example: [0.1,0.2,0.3,0.4,0.5,0.6,0.7,0.8,0.9]
	State []float64 `json:"state,omitempty"`
	// Optional primary (scene) camera.
	PrimaryImage *Tensor `json:"primary_image,omitempty"`
	// Required wrist camera.
	WristImage *Tensor `json:"wrist_image,omitempty"`
	// Task instruction. Takes precedence over tasks.
	// example: Grasp and place an object.
	Prompt *string `json:"prompt,omitempty" example:"Grasp and place an object."`
	// Alternate key for the task instruction.
	Tasks *string `json:"tasks,omitempty"`
	// Optional (T, A) action chunk for evaluation calls.
	Actions [][]float64 `json:"actions,omitempty"`

	LegacyState      []float64 `json:"observation/state,omitempty" swaggerignore:"true"`
	LegacyImage      *Tensor   `json:"observation/image,omitempty" swaggerignore:"true"`
	LegacyWristImage *Tensor   `json:"observation/wrist_image,omitempty" swaggerignore:"true"`
}

// ActionResponse is returned by POST /act.
type ActionResponse struct {
	// Unique id of this action sequence.
	// example: 3f1c2a9e-5d7b-4c11-9a53-7c0b1d2e4f60
	ID string `json:"id" example:"3f1c2a9e-5d7b-4c11-9a53-7c0b1d2e4f60"`
	// Number of timesteps.
	// example: 16
	Horizon int `json:"horizon" example:"16"`
	// Action dimensions per timestep.
	// example: 10
	ActionWidth int `json:"action_width" example:"10"`
	// Actions indexed [timestep][dimension].
	Actions [][]float64 `json:"actions"`
	// Time spent in the model runtime, in milliseconds.
	// example: 84.2
	InferMS float64 `json:"infer_ms" example:"84.2"`
}

// ImageSummary describes one adapted image slot.
type ImageSummary struct {
	// example: [256,256,3]
	Shape []int `json:"shape" example:"256,256,3"`
	// example: uint8
	DType string `json:"dtype" example:"uint8"`
	// True when the slot is a zero-filled placeholder.
	Zero bool `json:"zero"`
}

// AdaptResponse is returned by POST /adapt and shows the model input
// without calling the runtime.
type AdaptResponse struct {
	State     []float64               `json:"state"`
	Images    map[string]ImageSummary `json:"image"`
	ImageMask map[string]bool         `json:"image_mask"`
	// Shape of the padded action chunk, when actions were supplied.
	ActionsShape []int   `json:"actions_shape,omitempty"`
	Prompt       *string `json:"prompt,omitempty"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall state: ready, loading (runtime unreachable), error (last runtime
	// call failed; cleared by the next success) or draining.
	// example: ready
	State string `json:"state" example:"ready"`
	// Whether the model runtime answered its health check.
	RuntimeReady bool `json:"runtime_ready"`
	// example: 32
	ActionDim int `json:"action_dim" example:"32"`
	// example: 16
	Horizon int `json:"horizon" example:"16"`
	// example: 10
	ActionWidth int `json:"action_width" example:"10"`
	// example: true
	MaskUnusedCameras bool `json:"mask_unused_cameras" example:"true"`
	// Requests waiting for the runtime.
	// example: 0
	QueueLen int `json:"queue_len" example:"0"`
	// Requests currently inside the runtime (0 or 1).
	// example: 1
	Inflight int `json:"inflight" example:"1"`
	// example: 32
	MaxQueueDepth int `json:"max_queue_depth" example:"32"`
	// example: 120
	RequestsTotal uint64 `json:"requests_total" example:"120"`
	// example: 3
	FailuresTotal uint64 `json:"failures_total" example:"3"`
	// example: 1
	ShapeErrorsTotal uint64 `json:"shape_errors_total" example:"1"`
	// Last error observed by the manager (if any).
	LastError string `json:"last_error,omitempty"`
	// Last successful action sequence (unix seconds).
	// example: 1700000000
	LastActUnix int64 `json:"last_act_unix,omitempty" example:"1700000000"`
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
