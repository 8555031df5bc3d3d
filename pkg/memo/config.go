package memo

// config.go defines Space's functional options: an unexported config
// struct, a defaultConfig() constructor, and a set of With* options applied
// in applyOptions(). There are no capacity/TTL/shard knobs to validate —
// applyOptions here only sets the logger, metrics registry and name.
//
// © 2025 memoscope authors. MIT License.

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type config struct {
	name     string
	logger   *zap.Logger
	registry *prometheus.Registry
}

func defaultConfig() *config {
	return &config{
		name:   "default",
		logger: zap.NewNop(),
	}
}

// Option configures a Space at construction time.
type Option func(*config)

// WithLogger plugs an external zap.Logger. memoscope never logs on the hot
// path (a cache hit in Wrapper.Call); only scope lifecycle and shadow
// cascades (Debug), invalid argument keys (Warn), and attempted root-scope
// exits (Error) are emitted.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics enables Prometheus metrics collection for the Space. Passing
// nil disables metrics (the default).
func WithMetrics(reg *prometheus.Registry) Option {
	return func(c *config) {
		c.registry = reg
	}
}

// WithName labels the Space's metrics and log lines, useful when a process
// runs more than one independent Space.
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

func applyOptions(cfg *config, opts []Option) {
	for _, opt := range opts {
		opt(cfg)
	}
}
