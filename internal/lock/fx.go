package lock

import (
	"github.com/aurumly/treasury/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewManager picks the redis-backed manager when REDIS_ADDR is configured,
// falling back to the in-process manager for single-instance deployments.
func NewManager(cfg config.Config, log *zap.Logger) Manager {
	if cfg.RedisAddr == "" {
		return NewLocalManager()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	log.Named("lock").Info("using redis lock manager", zap.String("addr", cfg.RedisAddr))
	return NewRedisManager(client)
}

// Module wires the per-account lock manager.
var Module = fx.Module("lock",
	fx.Provide(NewManager),
)
