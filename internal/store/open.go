package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AngelCh415/creator-payout/internal/config"
	"github.com/AngelCh415/creator-payout/internal/utils"
)

// OpenBackend builds the backend named by cfg. The returned close func is never nil.
func OpenBackend(ctx context.Context, cfg config.Store, log *slog.Logger) (Backend, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(cfg.Backend) {
	case "memory":
		return NewMemoryBackend(), noop, nil
	case "file", "":
		b, err := NewFileBackend(cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		return b, noop, nil
	case "sqlite":
		b, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return b, b.Close, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		b := NewRedisBackend(client, cfg.RedisPrefix)
		err := utils.NewBackoff(200*time.Millisecond, 3).Do(ctx, func(i int) error {
			err := b.Ping(ctx)
			if err != nil {
				log.Warn("redis not ready", slog.Int("attempt", i+1), slog.String("err", err.Error()))
			}
			return err
		})
		if err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("connect redis: %w", err)
		}
		return b, b.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
