package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"policyd/internal/manager"
	"policyd/internal/policy"
	"policyd/internal/runtime"
)

// fakeRawHorizon is the row count the fake runtime emits, wider than any
// decoder horizon so truncation is visible.
const fakeRawHorizon = 50

func newSmokeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run the example observation through adapter, runtime and decoder once",
		Example: "  policyd smoke --fake --action-dim 32\n" +
			"  policyd smoke --runtime-url http://gpu-box:8000 --action-dim 32",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			pc, err := cfg.Policy()
			if err != nil {
				return err
			}
			useFake, _ := cmd.Flags().GetBool("fake")
			var rt runtime.Runtime = runtime.NewHTTPRuntime(cfg.RuntimeURL)
			if useFake {
				rt = runtime.NewFake(fakeRawHorizon, pc.ActionDim)
			}
			logger := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			mgr, err := manager.NewWithConfig(manager.ManagerConfig{
				Policy:       pc,
				Runtime:      rt,
				InferTimeout: cfg.InferTimeout(),
				Publisher:    manager.NewLogPublisher(logger),
			})
			if err != nil {
				return err
			}
			return runSmoke(cmd, mgr)
		},
	}
	cmd.Flags().Bool("fake", false, "Use the deterministic in-process runtime instead of --runtime-url")
	return cmd
}

func runSmoke(cmd *cobra.Command, mgr *manager.Manager) error {
	out := cmd.OutOrStdout()
	pc := mgr.PolicyConfig()
	fmt.Fprintf(out, "action_dim: %d\nhorizon: %d\naction_width: %d\n", pc.ActionDim, pc.Horizon, pc.ActionWidth)

	obs := policy.MakeExample()
	fmt.Fprintf(out, "\ninput state shape: [%d]\n", len(obs.State))
	fmt.Fprintf(out, "input image shape: %v\n", obs.PrimaryImage.Shape)
	fmt.Fprintf(out, "input wrist image shape: %v\n", obs.WristImage.Shape)
	fmt.Fprintf(out, "input prompt: %s\n", *obs.Prompt)

	in, err := mgr.Adapt(obs)
	if err != nil {
		return err
	}
	for _, slot := range policy.Slots {
		fmt.Fprintf(out, "slot %s: shape=%v mask=%v\n", slot, in.Images[slot].Shape, in.ImageMask[slot])
	}

	res, err := mgr.Act(cmd.Context(), obs)
	if err != nil {
		return fmt.Errorf("inference: %w", err)
	}
	printActions(out, res)
	return nil
}

func printActions(w io.Writer, res manager.Result) {
	rows, cols := res.Actions.Dims()
	fmt.Fprintf(w, "\nsequence id: %s\n", res.ID)
	fmt.Fprintf(w, "output actions shape: [%d %d]\n", rows, cols)
	fmt.Fprintf(w, "infer time: %s\n", res.InferDuration)
	for i, row := range res.Actions.Rows() {
		fmt.Fprintf(w, "step %d: %v\n", i, row)
	}
}
