package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CAREERHQ_CONFIG is set
//  3. env (prefix CAREERHQ_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CAREERHQ_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: CAREERHQ_WORKER_COUNT -> worker_count.
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("CAREERHQ_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "careerhq_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if cfg.MetricsAddr == "" {
		return nil, fmt.Errorf("%w: metrics_addr must not be empty", ErrInvalidConfig)
	}
	if cfg.ShardCount <= 0 {
		return nil, fmt.Errorf("%w: shard_count must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
