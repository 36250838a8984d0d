package repository

import "time"

// Option configures a ShardedStore.
type Option func(*ShardedStore)

// WithShardCount sets the number of shards user profiles are spread
// across. Values below one leave the default in place.
func WithShardCount(n int) Option {
	return func(s *ShardedStore) {
		if n > 0 {
			s.shards = makeShards(n)
		}
	}
}

// WithMetricsUpdateInterval sets how often the store publishes its size
// gauges.
func WithMetricsUpdateInterval(d time.Duration) Option {
	return func(s *ShardedStore) {
		if d > 0 {
			s.metricsUpdateInterval = d
		}
	}
}
