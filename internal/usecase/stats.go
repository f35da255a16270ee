package usecase

import (
	"context"
	"log/slog"
	"time"
)

// persistTimeout bounds a single stat write so a slow store cannot back up
// the reconciliation worker indefinitely.
const persistTimeout = 2 * time.Second

type statStore interface {
	RecordAccess(ctx context.Context, shortCode string, accessedAt time.Time) error
}

type statCache interface {
	IncrementAccess(ctx context.Context, shortCode string) error
}

type statUpdate struct {
	shortCode  string
	accessedAt time.Time
}

// StatRecorder persists access statistics asynchronously. Redirects enqueue
// updates on a bounded queue and never wait for the writes; a dedicated
// worker reconciles them into the store and bumps the approximate cache
// counter. When the queue is full the newest update is dropped: stats are
// explicitly approximate and a full queue means the store is already behind.
type StatRecorder struct {
	store  statStore
	cache  statCache
	logger *slog.Logger
	queue  chan statUpdate
}

func NewStatRecorder(store statStore, cache statCache, logger *slog.Logger, queueSize int) *StatRecorder {
	return &StatRecorder{
		store:  store,
		cache:  cache,
		logger: logger,
		queue:  make(chan statUpdate, queueSize),
	}
}

// Record enqueues an access for asynchronous persistence. It reports whether
// the update was accepted; a false return means the queue was full and the
// update was dropped.
func (r *StatRecorder) Record(shortCode string, accessedAt time.Time) bool {
	select {
	case r.queue <- statUpdate{shortCode: shortCode, accessedAt: accessedAt}:
		return true
	default:
		r.logger.Debug("stat queue full, dropping update", slog.String("short_code", shortCode))
		return false
	}
}

// Run drives the reconciliation worker until ctx is cancelled, then drains
// whatever is still queued so accepted updates survive a graceful shutdown.
// It always returns nil: stat persistence failures are logged, never fatal.
func (r *StatRecorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			r.drain()
			return nil
		case update := <-r.queue:
			r.persist(update)
		}
	}
}

func (r *StatRecorder) persist(update statUpdate) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := r.store.RecordAccess(ctx, update.shortCode, update.accessedAt); err != nil {
		r.logger.Warn("failed to persist access stats",
			slog.String("short_code", update.shortCode), slog.Any("err", err))
	}

	if err := r.cache.IncrementAccess(ctx, update.shortCode); err != nil {
		r.logger.Debug("failed to increment cache access counter",
			slog.String("short_code", update.shortCode), slog.Any("err", err))
	}
}

func (r *StatRecorder) drain() {
	for {
		select {
		case update := <-r.queue:
			r.persist(update)
		default:
			return
		}
	}
}
