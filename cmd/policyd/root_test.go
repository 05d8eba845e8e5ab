package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"policyd/pkg/types"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	root := buildRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestExampleCommand(t *testing.T) {
	out, err := runRoot(t, "example")
	require.NoError(t, err)
	var req types.ObservationRequest
	require.NoError(t, json.Unmarshal([]byte(out), &req))
	assert.Len(t, req.State, 9)
	require.NotNil(t, req.WristImage)
	assert.Equal(t, []int{256, 256, 3}, req.WristImage.Shape)
	require.NotNil(t, req.Prompt)
	assert.Equal(t, "Grasp and place an object.", *req.Prompt)
}

func TestSmokeCommand_Fake(t *testing.T) {
	out, err := runRoot(t, "smoke", "--fake", "--action-dim", "32", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "input state shape: [9]")
	assert.Contains(t, out, "slot left_wrist_0_rgb: shape=[256 256 3] mask=true")
	assert.Contains(t, out, "slot base_0_rgb: shape=[256 256 3] mask=false")
	assert.Contains(t, out, "output actions shape: [16 10]")
	assert.Contains(t, out, "step 15: [1500 1501 1502 1503 1504 1505 1506 1507 1508 1509]")
}

func TestSmokeCommand_Pi0FastKeepsMasks(t *testing.T) {
	out, err := runRoot(t, "smoke", "--fake", "--action-dim", "32", "--model-type", "pi0_fast", "--horizon", "4", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "slot base_0_rgb: shape=[256 256 3] mask=true")
	assert.Contains(t, out, "output actions shape: [4 10]")
}

func TestSmokeCommand_RequiresActionDim(t *testing.T) {
	t.Setenv("POLICYD_ACTION_DIM", "")
	_, err := runRoot(t, "smoke", "--fake")
	require.Error(t, err)
}

func TestResolveConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policyd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("action_dim: 8\nhorizon: 5\nruntime_url: http://file:1\n"), 0o644))
	t.Setenv("POLICYD_HORIZON", "6")

	var got struct {
		dim, horizon int
		url          string
	}
	root := buildRootCmd()
	probe := &cobra.Command{Use: "probe", RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		got.dim, got.horizon, got.url = cfg.ActionDim, cfg.Horizon, cfg.RuntimeURL
		return nil
	}}
	root.AddCommand(probe)
	root.SetArgs([]string{"probe", "--config", path, "--runtime-url", "http://flag:2"})
	require.NoError(t, root.Execute())

	assert.Equal(t, 8, got.dim)           // file
	assert.Equal(t, 6, got.horizon)       // env beats file
	assert.Equal(t, "http://flag:2", got.url) // flag beats env and file
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("warn", "json", &buf)
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.Contains(t, out, `"service":"policyd"`)
}
