// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tour-catalog-service/internal/app/service"
	"tour-catalog-service/pkg/locker"
)

// SyncScheduler runs periodic feed synchronization. A distributed lock
// keeps duplicate syncs from running when several instances of the
// service are deployed behind a load balancer.
type SyncScheduler struct {
	syncService *service.SyncService
	interval    time.Duration
	timeout     time.Duration
	logger      *zap.Logger
	locker      locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// SyncConfig holds sync scheduler configuration.
type SyncConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewSyncScheduler creates a new SyncScheduler.
func NewSyncScheduler(
	syncSvc *service.SyncService,
	cfg SyncConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *SyncScheduler {
	return &SyncScheduler{
		syncService: syncSvc,
		interval:    cfg.Interval,
		timeout:     cfg.Timeout,
		logger:      logger,
		locker:      locker,
	}
}

// Start begins the background sync job.
func (s *SyncScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting sync scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *SyncScheduler) Stop() {
	s.logger.Info("stopping sync scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("sync scheduler stopped")
}

func (s *SyncScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.executeSync()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeSync()
		}
	}
}

// executeSync runs one sync round under the distributed lock.
//
// The lock TTL equals the sync interval: after a clean sync the lock is
// left to expire so no other instance re-syncs within the cooldown.
// After a failed sync the lock is released immediately so any instance
// may retry.
func (s *SyncScheduler) executeSync() {
	const lockKey = "sync:scheduler:lock"

	acquired, err := s.locker.Acquire(s.ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance is running sync, skipping execution")

		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	results := s.syncService.SyncAll(ctx)

	totalSynced := 0
	totalErrors := 0
	for _, r := range results {
		if r.Error != nil {
			totalErrors++
			s.logger.Warn("feed sync failed",
				zap.String("feed", r.Feed),
				zap.Error(r.Error),
			)
		} else {
			totalSynced += r.Count
		}
	}

	if totalErrors > 0 {
		if err := s.locker.Release(s.ctx, lockKey); err != nil {
			s.logger.Error("failed to release lock after sync error", zap.Error(err))
		}
		s.logger.Info("sync completed with errors, lock released for retry",
			zap.Int("total_synced", totalSynced),
			zap.Int("feeds_failed", totalErrors),
		)

		return
	}

	s.logger.Info("sync completed successfully, lock held for cooldown",
		zap.Int("total_synced", totalSynced),
		zap.Duration("cooldown", s.interval),
	)
}
