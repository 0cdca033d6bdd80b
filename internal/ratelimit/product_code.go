package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/backoffice/internal/config"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
	"go.uber.org/zap"
)

const (
	keyProductCodeLock = "backoffice:product:code:lock"
	lockPollInterval   = 25 * time.Millisecond
	lockReleaseTimeout = time.Second
)

// releaseIfHeld deletes the lock key only while it still carries the
// holder's token, so an allocator whose lease expired cannot free the lock
// of the next holder.
var releaseIfHeld = redis.NewScript(`
if redis.call("GET", KEYS[1]) ~= ARGV[1] then
  return 0
end
return redis.call("DEL", KEYS[1])
`)

var ErrLockTimeout = errors.New("product code lock timeout")

// ProductCodeLocker serializes product code allocation across instances with
// a leased redis key. The lease is one ttl long and bounds how long a crashed
// holder can block other allocators.
type ProductCodeLocker struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	log    *zap.Logger
}

// NewProductCodeLocker returns nil when redis is not configured, in which
// case allocation relies on the database sequence alone.
func NewProductCodeLocker(client *redis.Client, cfg config.Config, log *zap.Logger) productdomain.CodeLocker {
	ttl := cfg.RateLimit.ProductCodeLock
	if client == nil || ttl <= 0 {
		return nil
	}
	return &ProductCodeLocker{
		client: client,
		key:    keyProductCodeLock,
		ttl:    ttl,
		log:    log.Named("ratelimit.product_code"),
	}
}

// Acquire polls until the lease is taken, ctx is done or one ttl elapses.
// The returned func gives the lease back.
func (p *ProductCodeLocker) Acquire(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(p.ttl)
	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()

	for {
		taken, err := p.client.SetNX(ctx, p.key, token, p.ttl).Result()
		if err != nil {
			return nil, err
		}
		if taken {
			return func() { p.release(ctx, token) }, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// release runs even when the request context is already cancelled.
func (p *ProductCodeLocker) release(ctx context.Context, token string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lockReleaseTimeout)
	defer cancel()

	if err := releaseIfHeld.Run(ctx, p.client, []string{p.key}, token).Err(); err != nil {
		p.log.Warn("failed to release product code lock", zap.Error(err))
	}
}
