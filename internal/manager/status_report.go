package manager

import (
	"context"
	"time"

	"policyd/pkg/types"
)

// Status builds a detailed status response for /status. It probes the
// runtime health with ctx.
func (m *Manager) Status(ctx context.Context) types.StatusResponse {
	ready := m.Ready(ctx)
	cfg := m.adapter.Config()
	m.mu.RLock()
	defer m.mu.RUnlock()
	resp := types.StatusResponse{
		State:             string(m.state),
		RuntimeReady:      ready,
		ActionDim:         cfg.ActionDim,
		Horizon:           m.decoder.Horizon(),
		ActionWidth:       m.decoder.ActionWidth(),
		MaskUnusedCameras: cfg.MaskUnusedCameras,
		QueueLen:          len(m.queueCh),
		Inflight:          len(m.genCh),
		MaxQueueDepth:     cap(m.queueCh),
		RequestsTotal:     m.requestsTotal.Load(),
		FailuresTotal:     m.failuresTotal.Load(),
		ShapeErrorsTotal:  m.shapeErrorsTotal.Load(),
		LastError:         m.err,
		UptimeSeconds:     int64(time.Since(m.startTime).Seconds()),
		ServerTimeUnix:    time.Now().Unix(),
	}
	if !m.lastActAt.IsZero() {
		resp.LastActUnix = m.lastActAt.Unix()
	}
	return resp
}
