package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"policyd/internal/config"
)

// buildRootCmd constructs the policyd command tree.
func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "policyd",
		Short:         "Observation adapter and action decoder for pi0-style control policies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (.yaml, .json or .toml); defaults to the first of "+strings.Join(config.SearchPaths, ", "))
	pf.String("runtime-url", "", "Model runtime base URL (defaults POLICYD_RUNTIME_URL or "+config.DefaultRuntimeURL+")")
	pf.Int("action-dim", 0, "Model action dimension; state and actions are padded to this width")
	pf.Int("horizon", 0, "Timesteps returned per action sequence (default 16)")
	pf.Int("action-width", 0, "Action dimensions returned per timestep (default 10)")
	pf.String("model-type", "", "pi0 or pi0_fast; selects camera masking when mask-unused-cameras is unset")
	pf.Bool("mask-unused-cameras", true, "Mark zero-filled camera slots invalid")
	pf.Bool("use-primary-camera", false, "Feed the primary camera into base_0_rgb instead of a zero image")
	pf.String("log-level", "", "Log level: debug|info|warn|error")
	pf.String("log-format", "", "Log format: console|json")

	root.AddCommand(newServeCmd(), newSmokeCmd(), newExampleCmd())
	return root
}

// resolveConfig layers the config file, POLICYD_* env and explicitly set flags.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	var cfg config.Config
	path, _ := flags.GetString("config")
	if path == "" {
		path = config.Discover()
	}
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	flags.Visit(func(f *pflag.Flag) { applyFlag(&cfg, flags, f.Name) })
	return cfg.WithDefaults(), nil
}

func applyFlag(cfg *config.Config, flags *pflag.FlagSet, name string) {
	switch name {
	case "runtime-url":
		cfg.RuntimeURL, _ = flags.GetString(name)
	case "action-dim":
		cfg.ActionDim, _ = flags.GetInt(name)
	case "horizon":
		cfg.Horizon, _ = flags.GetInt(name)
	case "action-width":
		cfg.ActionWidth, _ = flags.GetInt(name)
	case "model-type":
		cfg.ModelType, _ = flags.GetString(name)
	case "mask-unused-cameras":
		v, _ := flags.GetBool(name)
		cfg.MaskUnusedCameras = &v
	case "use-primary-camera":
		cfg.UsePrimaryCamera, _ = flags.GetBool(name)
	case "log-level":
		cfg.LogLevel, _ = flags.GetString(name)
	case "log-format":
		cfg.LogFormat, _ = flags.GetString(name)
	case "addr":
		cfg.Addr, _ = flags.GetString(name)
	case "max-queue-depth":
		cfg.MaxQueueDepth, _ = flags.GetInt(name)
	case "infer-timeout":
		d, _ := flags.GetDuration(name)
		cfg.InferTimeoutMS = int(d / time.Millisecond)
	case "cors-origins":
		s, _ := flags.GetString(name)
		cfg.CORSOrigins = splitCSV(s)
		cfg.CORSEnabled = len(cfg.CORSOrigins) > 0
	}
}

// newLogger returns a console logger unless format is "json".
func newLogger(level, format string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if w == nil {
		w = os.Stderr
	}
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "policyd").Logger()
}

// splitCSV splits a comma-separated list, dropping blanks.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
