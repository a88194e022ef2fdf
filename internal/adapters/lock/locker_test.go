package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
)

// setupTestRedis creates a miniredis server for testing
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLocker_LockAndRelease(t *testing.T) {
	mr, client := setupTestRedis(t)
	locker := NewRedisLocker(client, time.Second)
	ctx := context.Background()

	release, err := locker.Lock(ctx, "inv-1")
	require.NoError(t, err)
	assert.True(t, mr.Exists(invoiceKeyPrefix+"inv-1"), "lock key should exist while held")

	release()
	assert.False(t, mr.Exists(invoiceKeyPrefix+"inv-1"), "lock key should be gone after release")
}

func TestRedisLocker_ContendedLockTimesOut(t *testing.T) {
	_, client := setupTestRedis(t)
	holder := NewRedisLocker(client, 5*time.Second)
	ctx := context.Background()

	release, err := holder.Lock(ctx, "inv-1")
	require.NoError(t, err)
	defer release()

	// A short ttl means only a couple of retries.
	waiter := NewRedisLocker(client, 100*time.Millisecond)
	_, err = waiter.Lock(ctx, "inv-1")
	assert.ErrorIs(t, err, apperrors.ErrConcurrentModification)

	// Other invoices are unaffected.
	releaseOther, err := waiter.Lock(ctx, "inv-2")
	require.NoError(t, err)
	releaseOther()
}

func TestRedisLocker_SerialisesHolders(t *testing.T) {
	_, client := setupTestRedis(t)
	testSerialises(t, NewRedisLocker(client, 5*time.Second))
}

func TestLocalLocker_SerialisesHolders(t *testing.T) {
	locker := NewLocalLocker()
	testSerialises(t, locker)

	locker.mu.Lock()
	defer locker.mu.Unlock()
	assert.Empty(t, locker.locks, "idle keys are forgotten")
}

func TestLocalLocker_CancelledWait(t *testing.T) {
	locker := NewLocalLocker()
	release, err := locker.Lock(context.Background(), "inv-1")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "inv-1")
	assert.ErrorIs(t, err, apperrors.ErrConcurrentModification)
}

func testSerialises(t *testing.T, locker portsrepo.InvoiceLocker) {
	t.Helper()
	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Lock(context.Background(), "inv-1")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen, "at most one holder at a time")
}
