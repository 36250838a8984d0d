// Package worker defines worker contracts for asynchronous attribute
// updates.
package worker

import (
	"github.com/careerhq/attribute-engine/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(logger logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithUnrecorder sets the deduper hook used to release failed job ids.
func WithUnrecorder(u Unrecorder) Option {
	return func(w *InMemoryWorker) {
		if u != nil {
			w.unrecorder = u
		}
	}
}

// PoolOption applies a configuration option to the Pool.
type PoolOption func(*Pool)

// WithPoolUnrecorder sets the deduper hook handed to every worker in the
// pool.
func WithPoolUnrecorder(u Unrecorder) PoolOption {
	return func(p *Pool) {
		if u != nil {
			p.unrecorder = u
		}
	}
}

// WithPoolLogger sets a custom logger for the pool.
func WithPoolLogger(logger logger.Logger) PoolOption {
	return func(p *Pool) {
		if logger != nil {
			p.logger = logger
		}
	}
}
