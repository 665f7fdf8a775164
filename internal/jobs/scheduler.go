package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"shmirascheduler/internal/domain"
)

// Scheduler drives the periodic batch pass: shift reconciliation, then mapping
// reconciliation, then notification dispatch, always in that order and always
// against the same event source. At most one pass runs at a time; a failed
// pass is abandoned and retried whole on the next tick.
type Scheduler struct {
	interval   time.Duration
	shiftSync  domain.ShiftSynchronizer
	mapSync    domain.MappingSynchronizer
	dispatcher domain.NotificationDispatcher
	logger     *slog.Logger

	mu      sync.Mutex
	running bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler returns a stopped Scheduler.
func NewScheduler(
	interval time.Duration,
	shiftSync domain.ShiftSynchronizer,
	mapSync domain.MappingSynchronizer,
	dispatcher domain.NotificationDispatcher,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		interval:   interval,
		shiftSync:  shiftSync,
		mapSync:    mapSync,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Start launches the ticker goroutine. Calling Start on a running scheduler is
// a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.done = make(chan struct{})

	s.wg.Add(1)
	go s.loop(s.done)
	s.logger.Info("batch scheduler started", "interval", s.interval)
}

// Stop halts the ticker and waits for an in-flight pass to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.done)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("batch scheduler stopped")
}

func (s *Scheduler) loop(done <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := s.RunOnce(context.Background()); err != nil {
				s.logger.Error("batch pass aborted; will retry on next tick", "err", err)
			}
		}
	}
}

// RunOnce executes a single full pass. The first failing stage aborts the
// pass: a reconciliation built on a failed read must not feed the dispatcher.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	start := time.Now()

	if _, err := s.shiftSync.SyncShifts(ctx); err != nil {
		return err
	}
	if _, err := s.mapSync.SyncMappings(ctx); err != nil {
		return err
	}
	if _, err := s.dispatcher.DispatchPending(ctx); err != nil {
		return err
	}

	s.logger.Info("batch pass complete", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
