package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"policyd/internal/common/fsutil"
	"policyd/internal/policy"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by defaults.
type Config struct {
	Addr       string `json:"addr" yaml:"addr" toml:"addr" env:"POLICYD_ADDR"`
	RuntimeURL string `json:"runtime_url" yaml:"runtime_url" toml:"runtime_url" env:"POLICYD_RUNTIME_URL"`

	ActionDim   int    `json:"action_dim" yaml:"action_dim" toml:"action_dim" env:"POLICYD_ACTION_DIM"`
	Horizon     int    `json:"horizon" yaml:"horizon" toml:"horizon" env:"POLICYD_HORIZON"`
	ActionWidth int    `json:"action_width" yaml:"action_width" toml:"action_width" env:"POLICYD_ACTION_WIDTH"`
	ModelType   string `json:"model_type" yaml:"model_type" toml:"model_type" env:"POLICYD_MODEL_TYPE"`
	// Unset means "derive from model_type".
	MaskUnusedCameras *bool `json:"mask_unused_cameras" yaml:"mask_unused_cameras" toml:"mask_unused_cameras" env:"POLICYD_MASK_UNUSED_CAMERAS"`
	UsePrimaryCamera  bool  `json:"use_primary_camera" yaml:"use_primary_camera" toml:"use_primary_camera" env:"POLICYD_USE_PRIMARY_CAMERA"`

	MaxQueueDepth  int   `json:"max_queue_depth" yaml:"max_queue_depth" toml:"max_queue_depth" env:"POLICYD_MAX_QUEUE_DEPTH"`
	MaxWaitMS      int   `json:"max_wait_ms" yaml:"max_wait_ms" toml:"max_wait_ms" env:"POLICYD_MAX_WAIT_MS"`
	InferTimeoutMS int   `json:"infer_timeout_ms" yaml:"infer_timeout_ms" toml:"infer_timeout_ms" env:"POLICYD_INFER_TIMEOUT_MS"`
	DrainTimeoutMS int   `json:"drain_timeout_ms" yaml:"drain_timeout_ms" toml:"drain_timeout_ms" env:"POLICYD_DRAIN_TIMEOUT_MS"`
	MaxBodyBytes   int64 `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"POLICYD_MAX_BODY_BYTES"`

	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level" env:"POLICYD_LOG_LEVEL"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format" env:"POLICYD_LOG_FORMAT"`
	// Per-request HTTP logging: off, error, info or debug.
	HTTPLogLevel string `json:"http_log_level" yaml:"http_log_level" toml:"http_log_level" env:"POLICYD_HTTP_LOG_LEVEL"`

	CORSEnabled bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled" env:"POLICYD_CORS_ENABLED"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins" env:"POLICYD_CORS_ORIGINS" envSeparator:","`
}

// Defaults for fields left unset.
const (
	DefaultAddr       = ":8080"
	DefaultRuntimeURL = "http://127.0.0.1:8000"
	DefaultLogLevel   = "info"
)

// SearchPaths lists the config files tried by Discover, in order.
var SearchPaths = []string{"policyd.yaml", "policyd.toml", "policyd.json", "~/.config/policyd/config.yaml"}

// Discover returns the first existing file from SearchPaths, or "".
func Discover() string {
	p, _ := fsutil.FirstExisting(SearchPaths...)
	return p
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any POLICYD_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// WithDefaults fills unset service fields.
func (c Config) WithDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.RuntimeURL == "" {
		c.RuntimeURL = DefaultRuntimeURL
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.ModelType == "" {
		c.ModelType = string(policy.ModelPi0)
	}
	return c
}

// Policy resolves the adapter/decoder configuration. An unset
// mask_unused_cameras follows the model type.
func (c Config) Policy() (policy.Config, error) {
	mt := policy.ModelType(c.ModelType)
	switch mt {
	case "":
		mt = policy.ModelPi0
	case policy.ModelPi0, policy.ModelPi0Fast:
	default:
		return policy.Config{}, fmt.Errorf("unknown model_type %q", c.ModelType)
	}
	pc := policy.DefaultConfig(c.ActionDim)
	if c.Horizon != 0 {
		pc.Horizon = c.Horizon
	}
	if c.ActionWidth != 0 {
		pc.ActionWidth = c.ActionWidth
	}
	pc.MaskUnusedCameras = mt.MasksPadding()
	if c.MaskUnusedCameras != nil {
		pc.MaskUnusedCameras = *c.MaskUnusedCameras
	}
	pc.UsePrimaryCamera = c.UsePrimaryCamera
	if err := pc.Validate(); err != nil {
		return policy.Config{}, err
	}
	return pc, nil
}

// MaxWait is the admission wait limit.
func (c Config) MaxWait() time.Duration { return time.Duration(c.MaxWaitMS) * time.Millisecond }

// InferTimeout bounds a single runtime call; zero disables it.
func (c Config) InferTimeout() time.Duration {
	return time.Duration(c.InferTimeoutMS) * time.Millisecond
}

func (c Config) DrainTimeout() time.Duration {
	return time.Duration(c.DrainTimeoutMS) * time.Millisecond
}
