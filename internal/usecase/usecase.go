// Package usecase contains the business logic of the link shortener: the
// cache-first redirect resolver, short code generation, link management with
// ownership checks, asynchronous access recording and the cleanup sweeper.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linksnip/linksnip/internal/entity"
)

// ErrMaxRetriesExceeded is returned when the maximum number of retries for generating a short code is exceeded.
var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating short code")

// asyncOpTimeout bounds cache operations issued off the request path.
const asyncOpTimeout = time.Second

type linkRepository interface {
	Save(ctx context.Context, link *entity.Link) (*entity.Link, error)
	RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.Link, error)
	Update(ctx context.Context, shortCode, originalURL string, expiresAt *time.Time) (*entity.Link, error)
	Remove(ctx context.Context, shortCode string) error
	SearchByOriginalURL(ctx context.Context, originalURL, ownerID string) ([]*entity.Link, error)
}

type linkCache interface {
	Get(ctx context.Context, shortCode string) (*entity.CacheEntry, error)
	Put(ctx context.Context, shortCode, originalURL string, expiresAt *time.Time) error
	Invalidate(ctx context.Context, shortCode string) error
}

type accessRecorder interface {
	Record(shortCode string, accessedAt time.Time) bool
}

// ShortenParams carries the inputs of a link creation.
type ShortenParams struct {
	OriginalURL string
	CustomAlias string
	ExpiresAt   *time.Time
	OwnerID     string
}

// LinkUseCase provides the link shortening operations. Cache faults never
// escape it: every cache error is logged and resolution falls back to the
// authoritative store.
type LinkUseCase struct {
	repo            linkRepository
	cache           linkCache
	stats           accessRecorder
	logger          *slog.Logger
	shortCodeLength int
	maxRetries      int
}

func NewLinkUseCase(repo linkRepository, cache linkCache, stats accessRecorder, logger *slog.Logger, shortCodeLength, maxRetries int) *LinkUseCase {
	return &LinkUseCase{
		repo:            repo,
		cache:           cache,
		stats:           stats,
		logger:          logger,
		shortCodeLength: shortCodeLength,
		maxRetries:      maxRetries,
	}
}

// Resolve returns the destination URL for a short code. The cache is tried
// first; on a miss the store is consulted and the cache repopulated. A cache
// backend failure degrades to a store lookup without repopulation. Store
// failures surface as entity.ErrStorageUnavailable, never as a not-found.
func (uc *LinkUseCase) Resolve(ctx context.Context, shortCode string) (string, error) {
	const op = "usecase.LinkUseCase.Resolve"

	now := time.Now()

	entry, cacheErr := uc.cache.Get(ctx, shortCode)
	if cacheErr == nil {
		if entry.Expired(now) {
			uc.invalidateAsync(shortCode)
			return "", fmt.Errorf("%s: %w", op, entity.ErrLinkExpired)
		}

		uc.stats.Record(shortCode, now)

		return entry.OriginalURL, nil
	}

	if !errors.Is(cacheErr, entity.ErrCacheMiss) {
		uc.logger.Warn("cache unavailable, falling back to store",
			slog.String("short_code", shortCode), slog.Any("err", cacheErr))
	}

	link, err := uc.repo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, entity.ErrLinkNotFound) {
			return "", fmt.Errorf("%s: %w", op, err)
		}

		return "", fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	if link.ExpiredAt(now) {
		uc.invalidateAsync(shortCode)
		return "", fmt.Errorf("%s: %w", op, entity.ErrLinkExpired)
	}

	// Only a real miss justifies repopulation: after a backend fault the
	// cache state is unknown and writing to it could resurrect stale data.
	if errors.Is(cacheErr, entity.ErrCacheMiss) {
		if err := uc.cache.Put(ctx, shortCode, link.OriginalURL, link.ExpiresAt); err != nil {
			uc.logger.Warn("failed to populate cache",
				slog.String("short_code", shortCode), slog.Any("err", err))
		}
	}

	uc.stats.Record(shortCode, now)

	return link.OriginalURL, nil
}

// Shorten creates a link under a custom alias or a generated short code.
// Generated codes retry on collision up to the configured bound; the store's
// unique constraint decides races between concurrent attempts.
func (uc *LinkUseCase) Shorten(ctx context.Context, params ShortenParams) (*entity.Link, error) {
	const op = "usecase.LinkUseCase.Shorten"

	if params.CustomAlias != "" {
		return uc.shortenWithAlias(ctx, params)
	}

	for i := 0; i < uc.maxRetries; i++ {
		shortCode, err := generateShortCode(uc.shortCodeLength)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		link, err := uc.repo.Save(ctx, &entity.Link{
			ShortCode:   shortCode,
			OriginalURL: params.OriginalURL,
			OwnerID:     params.OwnerID,
			ExpiresAt:   params.ExpiresAt,
		})
		if err != nil {
			if errors.Is(err, entity.ErrShortCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		uc.populateCache(ctx, link)

		return link, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrMaxRetriesExceeded)
}

func (uc *LinkUseCase) shortenWithAlias(ctx context.Context, params ShortenParams) (*entity.Link, error) {
	const op = "usecase.LinkUseCase.shortenWithAlias"

	if err := validateAlias(params.CustomAlias); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	link, err := uc.repo.Save(ctx, &entity.Link{
		ShortCode:   params.CustomAlias,
		OriginalURL: params.OriginalURL,
		CustomAlias: true,
		OwnerID:     params.OwnerID,
		ExpiresAt:   params.ExpiresAt,
	})
	if err != nil {
		if errors.Is(err, entity.ErrShortCodeExists) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
	}

	uc.populateCache(ctx, link)

	return link, nil
}

// Modify updates the destination and expiration of a link after an ownership
// check. The cache entry is invalidated before the call returns, so a client
// observing success never races its own update against a guaranteed-stale
// entry; the fresh value is then written through.
func (uc *LinkUseCase) Modify(ctx context.Context, shortCode, originalURL string, expiresAt *time.Time, principal string) (*entity.Link, error) {
	const op = "usecase.LinkUseCase.Modify"

	if err := uc.checkOwnership(ctx, shortCode, principal); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	link, err := uc.repo.Update(ctx, shortCode, originalURL, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to modify link: %w", op, err)
	}

	if err := uc.cache.Invalidate(ctx, shortCode); err != nil {
		uc.logger.Warn("failed to invalidate cache entry, ttl bounds staleness",
			slog.String("short_code", shortCode), slog.Any("err", err))
	}

	uc.populateCache(ctx, link)

	return link, nil
}

// Deactivate deletes a link after an ownership check and evicts its cache
// entry before returning.
func (uc *LinkUseCase) Deactivate(ctx context.Context, shortCode, principal string) error {
	const op = "usecase.LinkUseCase.Deactivate"

	if err := uc.checkOwnership(ctx, shortCode, principal); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := uc.repo.Remove(ctx, shortCode); err != nil {
		return fmt.Errorf("%s: failed to deactivate link: %w", op, err)
	}

	if err := uc.cache.Invalidate(ctx, shortCode); err != nil {
		uc.logger.Warn("failed to invalidate cache entry, ttl bounds staleness",
			slog.String("short_code", shortCode), slog.Any("err", err))
	}

	return nil
}

// GetStats reads statistics through the store only. The approximate cache
// counters are reconciliation internals and are not exposed, which avoids
// double counting against the durable counter.
func (uc *LinkUseCase) GetStats(ctx context.Context, shortCode string) (*entity.Link, error) {
	const op = "usecase.LinkUseCase.GetStats"

	link, err := uc.repo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get link stats: %w", op, err)
	}

	return link, nil
}

// Search returns links whose original URL contains the given fragment,
// optionally restricted to a single owner.
func (uc *LinkUseCase) Search(ctx context.Context, originalURL, ownerID string) ([]*entity.Link, error) {
	const op = "usecase.LinkUseCase.Search"

	links, err := uc.repo.SearchByOriginalURL(ctx, originalURL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to search links: %w", op, err)
	}

	return links, nil
}

func (uc *LinkUseCase) checkOwnership(ctx context.Context, shortCode, principal string) error {
	link, err := uc.repo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return err
	}

	if !link.IsOwnedBy(principal) {
		return entity.ErrPermissionDenied
	}

	return nil
}

// populateCache proactively caches a freshly written link. Failures are
// logged and swallowed: the next read miss repopulates the entry.
func (uc *LinkUseCase) populateCache(ctx context.Context, link *entity.Link) {
	if err := uc.cache.Put(ctx, link.ShortCode, link.OriginalURL, link.ExpiresAt); err != nil {
		uc.logger.Warn("failed to populate cache",
			slog.String("short_code", link.ShortCode), slog.Any("err", err))
	}
}

// invalidateAsync evicts an entry off the request path, used when a redirect
// observes an expired link. The response does not wait on the eviction.
func (uc *LinkUseCase) invalidateAsync(shortCode string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncOpTimeout)
		defer cancel()

		if err := uc.cache.Invalidate(ctx, shortCode); err != nil {
			uc.logger.Warn("failed to invalidate expired cache entry",
				slog.String("short_code", shortCode), slog.Any("err", err))
		}
	}()
}
