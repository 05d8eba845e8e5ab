package manager

import (
	"time"

	"policyd/internal/policy"
	"policyd/internal/runtime"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultMaxQueueDepth = 32
	defaultMaxWait       = 30 * time.Second
	defaultDrainTimeout  = 10 * time.Second
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	Policy  policy.Config
	Runtime runtime.Runtime
	// Queue config
	MaxQueueDepth int
	MaxWait       time.Duration
	// InferTimeout bounds each runtime call; zero leaves it to the caller.
	InferTimeout time.Duration
	DrainTimeout time.Duration
	Publisher    EventPublisher
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) (*Manager, error) {
	adapter, err := policy.NewInputAdapter(cfg.Policy)
	if err != nil {
		return nil, err
	}
	decoder, err := policy.NewOutputDecoder(cfg.Policy.Horizon, cfg.Policy.ActionWidth)
	if err != nil {
		return nil, err
	}
	m := &Manager{
		state:        StateLoading,
		adapter:      adapter,
		decoder:      decoder,
		rt:           cfg.Runtime,
		inferTimeout: cfg.InferTimeout,
		publisher:    cfg.Publisher,
	}
	// Apply defaults if unset
	if cfg.MaxQueueDepth <= 0 {
		m.maxQueueDepth = defaultMaxQueueDepth
	} else {
		m.maxQueueDepth = cfg.MaxQueueDepth
	}
	if cfg.MaxWait <= 0 {
		m.maxWait = defaultMaxWait
	} else {
		m.maxWait = cfg.MaxWait
	}
	if cfg.DrainTimeout <= 0 {
		m.drainTimeout = defaultDrainTimeout
	} else {
		m.drainTimeout = cfg.DrainTimeout
	}
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	m.genCh = make(chan struct{}, 1)
	m.queueCh = make(chan struct{}, m.maxQueueDepth)
	m.startTime = time.Now()
	return m, nil
}
