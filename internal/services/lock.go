package services

import (
	"context"
	"time"

	"shmirascheduler/internal/domain"
)

// CapacityLock is the single named mutex guarding the shift capacity ledger.
// Both the interactive signup path and the batch shift reconciler hold it
// across their check-then-act sequences, so a reconciler delete can never race
// a signup's counter increment.
//
// Acquire waits up to the configured timeout and then fails with
// domain.ErrLockTimeout instead of blocking the caller indefinitely.
type CapacityLock struct {
	ch      chan struct{}
	timeout time.Duration
}

// NewCapacityLock returns a CapacityLock with the given acquire timeout.
func NewCapacityLock(timeout time.Duration) *CapacityLock {
	return &CapacityLock{
		ch:      make(chan struct{}, 1),
		timeout: timeout,
	}
}

// Acquire takes the lock, honoring both the context and the acquire timeout.
func (l *CapacityLock) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.timeout)
	defer timer.Stop()
	select {
	case l.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return domain.ErrLockTimeout
	}
}

// Release releases the lock. It must only be called after a successful Acquire.
func (l *CapacityLock) Release() {
	<-l.ch
}
