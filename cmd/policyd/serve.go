package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"policyd/internal/config"
	"policyd/internal/httpapi"
	"policyd/internal/manager"
	"policyd/internal/runtime"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve /act, /adapt and friends over HTTP",
		Example: "  policyd serve --action-dim 32 --runtime-url http://127.0.0.1:8000\n" +
			"  POLICYD_ACTION_DIM=32 policyd serve --config policyd.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.LogFormat == "" {
				cfg.LogFormat = "json"
			}
			return serve(cmd.Context(), cfg)
		},
	}
	f := cmd.Flags()
	f.String("addr", "", "HTTP listen address (defaults POLICYD_ADDR or "+config.DefaultAddr+")")
	f.Int("max-queue-depth", 0, "Requests allowed to wait for the runtime before 429")
	f.Duration("infer-timeout", 0, "Upper bound on one runtime call (0 = none)")
	f.String("cors-origins", "", "Comma-separated CORS origins; enables CORS when set")
	return cmd
}

func serve(parent context.Context, cfg config.Config) error {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, nil)
	pc, err := cfg.Policy()
	if err != nil {
		return err
	}
	mgr, err := manager.NewWithConfig(manager.ManagerConfig{
		Policy:        pc,
		Runtime:       runtime.NewHTTPRuntime(cfg.RuntimeURL),
		MaxQueueDepth: cfg.MaxQueueDepth,
		MaxWait:       cfg.MaxWait(),
		InferTimeout:  cfg.InferTimeout(),
		DrainTimeout:  cfg.DrainTimeout(),
		Publisher:     manager.NewLogPublisher(logger),
	})
	if err != nil {
		return err
	}

	httpapi.SetLogger(logger)
	httpapi.SetDefaultLogLevel(cfg.HTTPLogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, nil, nil)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", cfg.Addr).
			Str("runtime_url", cfg.RuntimeURL).
			Int("action_dim", pc.ActionDim).
			Int("horizon", pc.Horizon).
			Int("action_width", pc.ActionWidth).
			Bool("mask_unused_cameras", pc.MaskUnusedCameras).
			Msg("policyd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	if mgr.Ready(ctx) {
		logger.Info().Msg("model runtime ready")
	} else {
		logger.Warn().Str("runtime_url", cfg.RuntimeURL).Msg("model runtime not reachable yet")
	}

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	// Graceful shutdown: stop admitting, let queued calls finish, then close.
	logger.Info().Msg("shutting down")
	mgr.Drain()
	cancelBase()
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	return nil
}
