package lock

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
)

// LocalLocker serialises invoice mutations within one process. It is used
// when no Redis is configured.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch      chan struct{}
	waiters int
}

// NewLocalLocker creates an in-process locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*keyLock)}
}

var _ portsrepo.InvoiceLocker = (*LocalLocker)(nil)

// Lock waits for the invoice's lock. A cancelled context gives up with
// apperrors.ErrConcurrentModification.
func (l *LocalLocker) Lock(ctx context.Context, invoiceID string) (func(), error) {
	l.mu.Lock()
	kl, ok := l.locks[invoiceID]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[invoiceID] = kl
	}
	kl.waiters++
	l.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		l.drop(invoiceID, kl)
		return nil, fmt.Errorf("waiting for invoice %s: %v: %w", invoiceID, ctx.Err(), apperrors.ErrConcurrentModification)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-kl.ch
			l.drop(invoiceID, kl)
		})
	}, nil
}

// drop forgets the key once nobody holds or waits for it.
func (l *LocalLocker) drop(invoiceID string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl.waiters--
	if kl.waiters == 0 {
		delete(l.locks, invoiceID)
	}
}
