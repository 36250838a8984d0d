// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr configures the Prometheus metrics listen address.
	MetricsAddr string `koanf:"metrics_addr"`

	// JobQueueSize bounds the in-memory job-experience queue.
	JobQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of profile update workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the job idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ShardCount configures the number of shards in the profile store.
	ShardCount int `koanf:"shard_count"`

	// OccupationDataPath points at the occupation element table JSON file.
	OccupationDataPath string `koanf:"occupation_data_path"`

	// DefaultSource is the provenance source stamped on updates when the
	// caller does not supply one.
	DefaultSource string `koanf:"default_source"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		MetricsAddr:        ":9090",
		JobQueueSize:       10_000,
		WorkerCount:        runtime.NumCPU() * 2,
		DedupeSize:         50_000,
		ShardCount:         8,
		OccupationDataPath: "",
		DefaultSource:      "resume",
	}
}
