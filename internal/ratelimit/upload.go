package ratelimit

import (
	"context"
	"fmt"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/backoffice/internal/config"
)

const keyUploadClient = "backoffice:upload:client:%s"

// UploadLimiter throttles asset uploads per client.
type UploadLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewUploadLimiter(client *redis.Client, cfg config.Config) *UploadLimiter {
	rate, burst := cfg.RateLimit.UploadRate, cfg.RateLimit.UploadBurst
	if client == nil || rate <= 0 || burst <= 0 {
		return nil
	}
	return &UploadLimiter{
		bucket: NewTokenBucket(client),
		rate:   rate,
		burst:  burst,
	}
}

func (l *UploadLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *UploadLimiter) Allow(ctx context.Context, clientKey string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyUploadClient, clientKey), l.rate, l.burst)
}
