// Package worker defines worker contracts for asynchronous attribute
// updates.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/careerhq/attribute-engine/internal/domain/classify"
	"github.com/careerhq/attribute-engine/internal/domain/engine"
	"github.com/careerhq/attribute-engine/internal/domain/model"
	"github.com/careerhq/attribute-engine/pkg/logger"
	"github.com/careerhq/attribute-engine/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second

	maxAttributeValue = 100.0
)

// Job abstracts what workers read off the queue.
// Using the model.JobExperience type for consistency.
type Job = model.JobExperience

// Catalog resolves an occupation code to its element table.
type Catalog interface {
	Elements(occupationCode string) ([]model.OccupationElement, error)
}

// Updater applies an attribute update for one user. The function receives
// the user's current attribute state and returns the attributes to merge;
// implementations must serialize calls per user.
type Updater interface {
	Update(ctx context.Context, userID string, fn func(prior map[string]model.UserAttribute) (map[string]model.UserAttribute, error)) error
}

// Unrecorder releases a job id recorded by the deduper, so a failed job
// can be resubmitted.
type Unrecorder interface {
	Unrecord(ctx context.Context, id string)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes job experiences and writes attribute updates using the
// provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining jobs before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing job experiences.
type InMemoryWorker struct {
	queue      Queue
	catalog    Catalog
	updater    Updater
	unrecorder Unrecorder
	name       string

	// Shutdown control
	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, catalog Catalog, updater Updater, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		catalog:  catalog,
		updater:  updater,
		name:     "worker", // default name
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "error processing job", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.signalShutdown()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *InMemoryWorker) signalShutdown() {
	w.shutdownOnce.Do(func() { close(w.shutdown) })
}

// processJob scores one job experience against its occupation's element
// table and merges the resulting attribute deltas into the user's profile.
// A job that fails is released from the deduper so it can be resubmitted.
func (w *InMemoryWorker) processJob(ctx context.Context, job Job) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerLatency(float64(time.Since(start).Milliseconds()))
	}()

	elements, err := w.catalog.Elements(job.OccupationCode)
	if err != nil {
		metrics.RecordJobRejected()
		metrics.RecordWorkerError()
		w.unrecord(ctx, job.JobID)
		w.logger.Warn(ctx, "no element table for occupation",
			logger.String("jobID", job.JobID),
			logger.String("occupationCode", job.OccupationCode),
			logger.Error(err),
		)
		return fmt.Errorf("failed to resolve occupation %s: %w", job.OccupationCode, err)
	}

	prov := model.Provenance{
		Source:      job.Source,
		ExtractedAt: time.Now().UTC(),
	}

	engineStart := time.Now()
	var updated map[string]model.UserAttribute
	err = w.updater.Update(ctx, job.UserID, func(prior map[string]model.UserAttribute) (map[string]model.UserAttribute, error) {
		var computeErr error
		updated, computeErr = engine.ComputeAttributeDeltasWithProvenance(job, elements, prior, prov)
		return updated, computeErr
	})
	metrics.RecordEngineLatency(float64(time.Since(engineStart).Milliseconds()))

	if err != nil {
		metrics.RecordWorkerError()
		if errors.Is(err, engine.ErrNegativeDuration) || errors.Is(err, engine.ErrScaleOutOfRange) {
			metrics.RecordJobRejected()
		}
		w.unrecord(ctx, job.JobID)
		w.logger.Error(ctx, "attribute update failed for job",
			logger.String("jobID", job.JobID),
			logger.String("userID", job.UserID),
			logger.Error(err),
		)
		return fmt.Errorf("attribute update failed for job %s: %w", job.JobID, err)
	}

	w.recordScoringMetrics(elements, updated)
	metrics.RecordJobProcessed()

	return nil
}

func (w *InMemoryWorker) unrecord(ctx context.Context, jobID string) {
	if w.unrecorder != nil {
		w.unrecorder.Unrecord(ctx, jobID)
	}
}

func (w *InMemoryWorker) recordScoringMetrics(elements []model.OccupationElement, updated map[string]model.UserAttribute) {
	metrics.RecordElementsScored(len(elements))
	metrics.RecordAttributesUpdated(len(updated))
	for _, e := range elements {
		metrics.RecordScoreByFamily(classify.Element(e).String())
		if attr, ok := updated[e.ElementID]; ok && attr.Capability >= maxAttributeValue {
			metrics.RecordCapabilityClamped()
		}
	}
}

// Pool manages multiple workers.
type Pool struct {
	workers    []*InMemoryWorker
	queue      Queue
	catalog    Catalog
	updater    Updater
	unrecorder Unrecorder

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, catalog Catalog, updater Updater, opts ...PoolOption) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
		catalog: catalog,
		updater: updater,
		logger:  logger.Get().Named("worker-pool"),
	}

	for _, opt := range opts {
		opt(pool)
	}

	for i := 0; i < workerCount; i++ {
		workerOpts := []Option{WithName("worker-" + strconv.Itoa(i))}
		if pool.unrecorder != nil {
			workerOpts = append(workerOpts, WithUnrecorder(pool.unrecorder))
		}
		pool.workers[i] = NewInMemoryWorker(queue, catalog, updater, workerOpts...)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	for _, worker := range p.workers {
		worker.signalShutdown()
	}

	for _, worker := range p.workers {
		select {
		case <-worker.done:
			// Worker finished
		case <-time.After(workerShutdownTimeout):
			// Worker timeout
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// First close the queue to stop new jobs
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	for _, worker := range p.workers {
		worker.signalShutdown()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
