package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"policyd/internal/manager"
	"policyd/internal/policy"
	"policyd/internal/runtime"
	"policyd/pkg/types"
)

// TestEndToEnd_ActWithFakeRuntime exercises decode, adapt, infer and
// decode-output through a real manager.
func TestEndToEnd_ActWithFakeRuntime(t *testing.T) {
	fake := runtime.NewFake(50, 32)
	mgr, err := manager.New(policy.DefaultConfig(32), fake)
	require.NoError(t, err)
	srv := httptest.NewServer(NewMux(mgr))
	defer srv.Close()

	w := postJSON(NewMux(mgr), "/act", exampleBody(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.ActionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, policy.DefaultHorizon, resp.Horizon)
	assert.Equal(t, policy.DefaultActionWidth, resp.ActionWidth)
	require.Len(t, resp.Actions, 16)
	for ti, row := range resp.Actions {
		require.Len(t, row, 10)
		for a, v := range row {
			assert.Equal(t, float64(ti*100+a), v)
		}
	}

	in := fake.Last()
	assert.Len(t, in.State, 32)
	assert.True(t, in.HasPrompt)
	assert.Equal(t, policy.ExamplePrompt, in.Prompt)
	assert.True(t, in.ImageMask[policy.SlotLeftWrist])
	assert.False(t, in.ImageMask[policy.SlotBase])
	assert.False(t, in.ImageMask[policy.SlotRightWrist])

	res, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err = http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer res.Body.Close()
	var st types.StatusResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&st))
	assert.EqualValues(t, 1, st.RequestsTotal)
	assert.Equal(t, 32, st.ActionDim)
	assert.True(t, st.RuntimeReady)
}

func TestEndToEnd_UndersizedOutput(t *testing.T) {
	mgr, err := manager.New(policy.DefaultConfig(32), runtime.NewFake(8, 32))
	require.NoError(t, err)

	w := postJSON(NewMux(mgr), "/act", exampleBody(t))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}

func TestEndToEnd_RuntimeUnhealthy(t *testing.T) {
	fake := runtime.NewFake(16, 32)
	fake.Unhealthy = true
	mgr, err := manager.New(policy.DefaultConfig(32), fake)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	NewMux(mgr).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
