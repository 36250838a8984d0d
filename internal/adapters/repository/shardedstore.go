package repository

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/careerhq/attribute-engine/internal/domain/model"
	"github.com/careerhq/attribute-engine/internal/domain/types"
	"github.com/careerhq/attribute-engine/pkg/metrics"
)

// Sharded, in-memory Store implementation.
//
// User profiles are spread across shards by a hash of the user id; each
// shard holds its users' attribute maps behind one mutex. Update runs the
// whole read-modify-write cycle under that mutex, so all writes for a
// given user are serialized while unrelated users proceed in parallel.

// Default store configuration constants.
const (
	defaultShardCount            = 8
	defaultMetricsUpdateInterval = 10 * time.Second
)

type shard struct {
	mu    sync.RWMutex
	users map[string]map[string]model.UserAttribute
}

// ShardedStore implements Store with per-shard locking.
type ShardedStore struct {
	shards                []*shard
	metricsUpdateInterval time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewShardedStore creates a sharded profile store and starts its
// background metrics updater.
func NewShardedStore(ctx context.Context, opts ...Option) *ShardedStore {
	s := &ShardedStore{
		metricsUpdateInterval: defaultMetricsUpdateInterval,
		stopCh:                make(chan struct{}),
	}

	shardCount := defaultShardCount
	for _, opt := range opts {
		opt(s)
	}
	if s.shards == nil {
		s.shards = makeShards(shardCount)
	}

	metrics.UpdateStoreShards(len(s.shards))
	go s.startMetricsUpdater(ctx)

	return s
}

func makeShards(n int) []*shard {
	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = &shard{users: make(map[string]map[string]model.UserAttribute)}
	}
	return shards
}

func (s *ShardedStore) shardFor(userID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

// Update implements Store.
func (s *ShardedStore) Update(ctx context.Context, userID string, fn UpdateFunc) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreLatency(float64(time.Since(start).Milliseconds()))
	}()

	sh := s.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	prior := copyAttributes(sh.users[userID])
	updated, err := fn(prior)
	if err != nil {
		return err
	}
	if len(updated) == 0 {
		return nil
	}

	current := sh.users[userID]
	if current == nil {
		current = make(map[string]model.UserAttribute, len(updated))
		sh.users[userID] = current
	}
	for id, attr := range updated {
		current[id] = attr
	}
	return nil
}

// Attributes implements Store.
func (s *ShardedStore) Attributes(ctx context.Context, userID string) (map[string]model.UserAttribute, error) {
	sh := s.shardFor(userID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	attrs, ok := sh.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return copyAttributes(attrs), nil
}

// Profile implements Store.
func (s *ShardedStore) Profile(ctx context.Context, userID string) (types.Profile, error) {
	attrs, err := s.Attributes(ctx, userID)
	if err != nil {
		return types.Profile{}, err
	}

	snapshots := make([]types.AttributeSnapshot, 0, len(attrs))
	for id, attr := range attrs {
		snapshots = append(snapshots, types.AttributeSnapshot{
			ElementID:  id,
			Capability: attr.Capability,
			Preference: attr.Preference,
			Binary:     attr.Binary,
			Source:     attr.Source,
		})
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ElementID < snapshots[j].ElementID
	})

	return types.Profile{UserID: userID, Attributes: snapshots}, nil
}

// Users implements Store.
func (s *ShardedStore) Users(ctx context.Context) int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.users)
		sh.mu.RUnlock()
	}
	return total
}

// Count implements Store.
func (s *ShardedStore) Count(ctx context.Context) int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, attrs := range sh.users {
			total += len(attrs)
		}
		sh.mu.RUnlock()
	}
	return total
}

// Close stops the background metrics updater.
func (s *ShardedStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopCh) })
	return nil
}

func (s *ShardedStore) startMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(s.metricsUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			metrics.UpdateStoreUsers(s.Users(ctx))
			metrics.UpdateStoreAttributes(s.Count(ctx))
		}
	}
}

func copyAttributes(attrs map[string]model.UserAttribute) map[string]model.UserAttribute {
	out := make(map[string]model.UserAttribute, len(attrs))
	for id, attr := range attrs {
		out[id] = attr
	}
	return out
}
