package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"policyd/internal/policy"
)

const healthTimeout = 2 * time.Second

// HTTPRuntime calls a remote policy server that exposes POST /infer and
// GET /healthz.
type HTTPRuntime struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPRuntime returns a runtime for baseURL (e.g. http://127.0.0.1:8000).
func NewHTTPRuntime(baseURL string) *HTTPRuntime {
	// Timeout=0: every request carries its own context deadline.
	return &HTTPRuntime{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: 0},
	}
}

// Infer posts the model input and parses the raw action matrix.
func (r *HTTPRuntime) Infer(ctx context.Context, in policy.ModelInput) (policy.ModelOutput, error) {
	body, err := json.Marshal(encodeInput(in))
	if err != nil {
		return policy.ModelOutput{}, fmt.Errorf("encode model input: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/infer", bytes.NewReader(body))
	if err != nil {
		return policy.ModelOutput{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return policy.ModelOutput{}, ctx.Err()
		}
		return policy.ModelOutput{}, ErrUnavailable(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return policy.ModelOutput{}, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	var out wireOutput
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return policy.ModelOutput{}, &ProtocolError{Err: fmt.Errorf("decode model output: %w", err)}
	}
	mo, err := decodeOutput(out)
	if err != nil {
		return policy.ModelOutput{}, &ProtocolError{Err: err}
	}
	return mo, nil
}

// Healthy checks GET /healthz with a short timeout.
func (r *HTTPRuntime) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/healthz", nil)
	if err != nil {
		return false
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
