// Package service wires the attribute update pipeline together: the
// occupation catalog, the job queue, the worker pool, the deduper, and
// the profile store.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/careerhq/attribute-engine/internal/adapters/mq/queue"
	workerpool "github.com/careerhq/attribute-engine/internal/adapters/mq/worker"
	repository "github.com/careerhq/attribute-engine/internal/adapters/repository"
	"github.com/careerhq/attribute-engine/internal/domain/dedupe"
	"github.com/careerhq/attribute-engine/internal/domain/model"
	"github.com/careerhq/attribute-engine/internal/domain/types"
	"github.com/careerhq/attribute-engine/pkg/logger"
	"github.com/careerhq/attribute-engine/pkg/metrics"
)

// Catalog resolves occupation codes to element tables. Satisfied by
// refdata.FileCatalog.
type Catalog interface {
	Elements(occupationCode string) ([]model.OccupationElement, error)
	Occupations() int
}

// Service runs the attribute update pipeline.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog    Catalog
	store      repository.Store
	deduper    dedupe.Deduper
	jobQueue   jobqueue.Queue
	workerPool *workerpool.Pool

	// Configuration
	workerCount   int
	queueSize     int
	dedupeSize    int
	shardCount    int
	defaultSource string

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalog sets the occupation catalog. Required before Start.
func WithCatalog(c Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithShardCount sets the number of profile store shards.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithDefaultSource sets the provenance source stamped on jobs submitted
// without one.
func WithDefaultSource(source string) Option {
	return func(s *Service) {
		if source != "" {
			s.defaultSource = source
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:   runtime.NumCPU() * 2,
		queueSize:     10000,
		dedupeSize:    50000,
		shardCount:    8,
		defaultSource: "resume",
		stopCh:        make(chan struct{}),
		logger:        nil, // replaced when the service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.catalog == nil {
		return ErrNoCatalog
	}

	s.logger.Info(ctx, "starting attribute engine service...")

	s.store = repository.NewShardedStore(ctx, repository.WithShardCount(s.shardCount))
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s.catalog, s.store,
		workerpool.WithPoolUnrecorder(s.deduper),
	)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "attribute engine service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("shards", s.shardCount),
		logger.Int("occupations", s.catalog.Occupations()),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping attribute engine service...")

	// Close the queue first so workers drain and exit
	if q, ok := s.jobQueue.(*jobqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	select {
	case <-s.stopCh:
		// already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(ctx, "attribute engine service stopped")
}

// Submit queues a job experience for asynchronous attribute processing.
// A job without a JobID gets a generated one; a job without a Source gets
// the service default. Duplicate job ids are acknowledged without being
// re-enqueued.
func (s *Service) Submit(ctx context.Context, job model.JobExperience) (string, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	if !started {
		return "", ErrNotStarted
	}

	if job.UserID == "" {
		return "", ErrMissingUserID
	}
	if job.OccupationCode == "" {
		return "", ErrMissingOccupationCode
	}

	if job.JobID == "" {
		job.JobID = uuid.New().String()
	}
	if job.Source == "" {
		job.Source = s.defaultSource
	}

	if s.deduper.SeenAndRecord(ctx, job.JobID) {
		metrics.RecordJobDuplicate()
		s.logger.Debug(ctx, "duplicate job detected, skipping",
			logger.String("jobID", job.JobID),
			logger.String("userID", job.UserID),
		)
		return job.JobID, nil
	}

	if !s.jobQueue.Enqueue(ctx, job) {
		// Release the id so the caller can retry
		s.deduper.Unrecord(ctx, job.JobID)
		return "", ErrQueueFull
	}

	s.logger.Debug(ctx, "job enqueued",
		logger.String("jobID", job.JobID),
		logger.String("userID", job.UserID),
		logger.String("occupationCode", job.OccupationCode),
	)

	return job.JobID, nil
}

// Profile returns a user's accumulated attribute profile ordered by
// element id.
func (s *Service) Profile(ctx context.Context, userID string) (types.Profile, error) {
	return s.store.Profile(ctx, userID)
}

// Attributes returns a copy of a user's accumulated attributes keyed by
// element id.
func (s *Service) Attributes(ctx context.Context, userID string) (map[string]model.UserAttribute, error) {
	return s.store.Attributes(ctx, userID)
}

// QueueLen returns the current number of queued jobs.
func (s *Service) QueueLen(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return 0
	}
	return s.jobQueue.Len(ctx)
}

// Drain waits until the job queue is empty or the context expires. Test
// and shutdown helper; it does not guarantee in-flight jobs finished.
func (s *Service) Drain(ctx context.Context) error {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if s.QueueLen(ctx) == 0 {
				return nil
			}
		}
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"shardCount":  s.shardCount,
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		users := s.store.Users(ctx)
		attributes := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalUsers"] = users
		stats["totalAttributes"] = attributes
		stats["occupations"] = s.catalog.Occupations()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStoreUsers(users)
		metrics.UpdateStoreAttributes(attributes)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
