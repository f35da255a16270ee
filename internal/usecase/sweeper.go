package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/linksnip/linksnip/internal/entity"
)

// sweepBatchSize caps how many candidates a single pass processes.
const sweepBatchSize = 500

type sweeperStore interface {
	ListExpiredOrStale(ctx context.Context, now, retentionCutoff, graceCutoff time.Time, limit int) ([]*entity.Link, error)
	Remove(ctx context.Context, shortCode string) error
}

type sweeperCache interface {
	Invalidate(ctx context.Context, shortCode string) error
}

// Sweeper periodically deletes links that are expired or have been unused
// beyond the retention window, and evicts their cache entries. It runs as a
// single background task independent of request traffic. Failures are
// contained per candidate: one bad link never aborts the pass.
type Sweeper struct {
	store       sweeperStore
	cache       sweeperCache
	logger      *slog.Logger
	interval    time.Duration
	retention   time.Duration
	gracePeriod time.Duration
	passTimeout time.Duration
}

func NewSweeper(store sweeperStore, cache sweeperCache, logger *slog.Logger, interval, retention, gracePeriod, passTimeout time.Duration) *Sweeper {
	return &Sweeper{
		store:       store,
		cache:       cache,
		logger:      logger,
		interval:    interval,
		retention:   retention,
		gracePeriod: gracePeriod,
		passTimeout: passTimeout,
	}
}

// Run executes sweep passes on a fixed interval until ctx is cancelled.
// It always returns nil: sweep failures are logged and retried next tick.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			passCtx, cancel := context.WithTimeout(ctx, s.passTimeout)
			swept, err := s.Sweep(passCtx)
			cancel()

			if err != nil {
				s.logger.Error("cleanup pass failed", slog.Any("err", err))
				continue
			}

			s.logger.Info("cleanup pass finished", slog.Int("swept", swept))
		}
	}
}

// Sweep runs a single bounded cleanup pass and returns how many links it
// removed. Candidates are expired links, or links whose last access (or
// creation, if never accessed) predates the retention window; the grace
// period keeps freshly created links out of the stale set.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	const op = "usecase.Sweeper.Sweep"

	now := time.Now()
	retentionCutoff := now.Add(-s.retention)
	graceCutoff := now.Add(-s.gracePeriod)

	candidates, err := s.store.ListExpiredOrStale(ctx, now, retentionCutoff, graceCutoff, sweepBatchSize)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to list candidates: %w", op, err)
	}

	swept := 0

	for _, link := range candidates {
		// Store deletion must commit before cache invalidation: the
		// other order leaves a window where the stale cache entry is
		// repopulated from a store row about to disappear.
		if err := s.store.Remove(ctx, link.ShortCode); err != nil {
			s.logger.Warn("failed to remove link, skipping",
				slog.String("short_code", link.ShortCode), slog.Any("err", err))
			continue
		}

		if err := s.cache.Invalidate(ctx, link.ShortCode); err != nil {
			// The entry stays cached until its TTL runs out, which is
			// an accepted bounded-staleness window.
			s.logger.Warn("failed to evict cache entry after removal",
				slog.String("short_code", link.ShortCode), slog.Any("err", err))
		}

		swept++
	}

	return swept, nil
}
