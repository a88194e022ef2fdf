package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/jewelry_ledger/internal/middleware"
)

const invoiceKeyPrefix = "jewelry_ledger:invoice:"

// RedisLocker holds invoice locks in Redis so that every instance of the
// service sees the same lock.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	retry  redislock.RetryStrategy
}

// NewRedisLocker creates a locker on top of an existing Redis client. A
// waiting caller retries for roughly ttl before giving up.
func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration) *RedisLocker {
	backoff := 50 * time.Millisecond
	attempts := int(ttl / backoff)
	if attempts < 1 {
		attempts = 1
	}
	return &RedisLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
		retry:  redislock.LimitRetry(redislock.LinearBackoff(backoff), attempts),
	}
}

var _ portsrepo.InvoiceLocker = (*RedisLocker)(nil)

// Lock obtains the invoice's lock or fails with apperrors.ErrConcurrentModification.
func (l *RedisLocker) Lock(ctx context.Context, invoiceID string) (func(), error) {
	key := invoiceKeyPrefix + invoiceID
	lock, err := l.client.Obtain(ctx, key, l.ttl, &redislock.Options{RetryStrategy: l.retry})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("invoice %s is locked by another request: %w", invoiceID, apperrors.ErrConcurrentModification)
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to obtain invoice lock", err)
	}

	release := func() {
		// The request context may already be cancelled; the lock still has to go.
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			middleware.GetLoggerFromCtx(ctx).Warn("Failed to release invoice lock",
				slog.String("invoice_id", invoiceID),
				slog.String("error", err.Error()))
		}
	}
	return release, nil
}
