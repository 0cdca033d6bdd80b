package ratelimit

import (
	"context"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/backoffice/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewClient returns the shared redis client, or nil when rate limiting is
// disabled. Consumers treat a nil client as "limits off".
func NewClient(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) *redis.Client {
	limitCfg := cfg.RateLimit
	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if !limitCfg.Enabled || addr == "" {
		log.Info("rate limiting disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Warn("redis ping failed", zap.String("addr", addr), zap.Error(err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client
}
