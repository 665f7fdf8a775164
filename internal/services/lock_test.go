package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"shmirascheduler/internal/domain"
)

func TestCapacityLock_AcquireRelease(t *testing.T) {
	ctx := context.Background()
	lock := NewCapacityLock(time.Second)

	if err := lock.Acquire(ctx); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	lock.Release()
	if err := lock.Acquire(ctx); err != nil {
		t.Fatalf("reacquire after release failed: %v", err)
	}
	lock.Release()
}

func TestCapacityLock_Timeout(t *testing.T) {
	ctx := context.Background()
	lock := NewCapacityLock(20 * time.Millisecond)

	if err := lock.Acquire(ctx); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	defer lock.Release()

	err := lock.Acquire(ctx)
	if !errors.Is(err, domain.ErrLockTimeout) {
		t.Fatalf("expected ErrLockTimeout, got %v", err)
	}
}

func TestCapacityLock_ContextCancel(t *testing.T) {
	lock := NewCapacityLock(time.Minute)

	if err := lock.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	defer lock.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := lock.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCapacityLock_Serializes(t *testing.T) {
	ctx := context.Background()
	lock := NewCapacityLock(time.Second)

	counter := 0
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			if err := lock.Acquire(ctx); err != nil {
				return
			}
			defer lock.Release()
			counter++
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	if counter != 10 {
		t.Fatalf("expected all holders to run, got %d", counter)
	}
}
