// Package entity defines the entities and errors used in the application.
// It includes the Link struct, which represents a shortened link, along with
// its associated metadata, and any relevant error definitions.
package entity

import (
	"errors"
	"time"
)

var (
	// ErrShortCodeExists is returned when attempting to create a link with a short code that already exists.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrLinkNotFound is returned when a link with the specified short code cannot be found.
	ErrLinkNotFound = errors.New("link not found")
	// ErrLinkExpired is returned when a link exists but its expiration time has passed.
	ErrLinkExpired = errors.New("link expired")
	// ErrAliasInvalid is returned when a custom alias fails charset, length or denylist validation.
	ErrAliasInvalid = errors.New("alias invalid")
	// ErrPermissionDenied is returned when a principal tries to mutate a link it does not own.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrStorageUnavailable is returned when the authoritative store cannot be reached.
	// It is distinct from ErrLinkNotFound so callers never mistake an outage for a missing link.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrCacheMiss is returned when a short code is not present in the cache.
	// A miss justifies repopulation; any other cache error does not.
	ErrCacheMiss = errors.New("cache miss")
)

// CacheEntry is the denormalized, non-authoritative projection of a link kept
// in the cache. The store remains the source of truth for existence checks.
type CacheEntry struct {
	OriginalURL string     `json:"original_url"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the cached entry is past the link's expiration time.
func (e *CacheEntry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && now.After(*e.ExpiresAt)
}

// Link represents a shortened link.
type Link struct {
	ID             int64      // ID is the unique identifier of the link in the database.
	ShortCode      string     // ShortCode is the code used to shorten the original URL, immutable once assigned.
	OriginalURL    string     // OriginalURL is the full URL that the short code resolves to.
	CustomAlias    bool       // CustomAlias reports whether the short code was chosen by the owner.
	OwnerID        string     // OwnerID identifies the principal that created the link, empty for anonymous links.
	LinkStats                 // LinkStats contains access statistics about the link.
	CreatedAt      time.Time  // CreatedAt is the timestamp when the link was created.
	UpdatedAt      time.Time  // UpdatedAt is the timestamp when the link was last updated.
	ExpiresAt      *time.Time // ExpiresAt is the optional expiration time; nil means the link never expires.
}

// LinkStats contains statistics related to a shortened link.
type LinkStats struct {
	AccessCount    int64      // AccessCount is the number of times the link has been accessed.
	LastAccessedAt *time.Time // LastAccessedAt is the timestamp of the most recent access, nil if never accessed.
}

// ExpiredAt reports whether the link is past its expiration time at the given moment.
// Links without an expiration time never expire.
func (l *Link) ExpiredAt(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}

// IsOwnedBy reports whether the given principal may mutate the link.
// Owned links are mutable only by their owner. Anonymous links have no owner
// and may be mutated by any authenticated principal, but never anonymously:
// an unauthenticated caller holds no identity to claim them with.
func (l *Link) IsOwnedBy(principal string) bool {
	if l.OwnerID == "" {
		return principal != ""
	}

	return l.OwnerID == principal
}
