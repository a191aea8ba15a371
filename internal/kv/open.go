package kv

import (
	"context"
	"fmt"
	"io"

	"github.com/mohammad-safakhou/technote/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the configured backend. The returned closer releases connections.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, io.Closer, error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		return NewMemory(), nopCloser{}, nil
	case config.BackendRedis:
		r, err := DialRedis(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Timeout, cfg.Redis.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil
	case config.BackendPostgres:
		p, err := OpenPostgres(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	default:
		return nil, nil, fmt.Errorf("storage backend %q is not supported", cfg.Backend)
	}
}
