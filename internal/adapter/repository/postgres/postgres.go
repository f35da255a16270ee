// Package postgres implements the authoritative link store on top of sqlx.
// The store is the only system of record: uniqueness of short codes is
// enforced here by a database constraint, not by the code generator.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/linksnip/linksnip/internal/entity"
)

const uniqueViolationErrCode = "23505"

func isUniqueViolationError(err error) bool {
	pgErr, ok := err.(*pgconn.PgError)
	return ok && pgErr.SQLState() == uniqueViolationErrCode
}

// storageErr pairs the driver error with entity.ErrStorageUnavailable so
// callers can distinguish an outage from a missing row with errors.Is.
func storageErr(err error) error {
	return errors.Join(entity.ErrStorageUnavailable, err)
}

type linkDB struct {
	ID             int64      `db:"id"`
	ShortCode      string     `db:"short_code"`
	OriginalURL    string     `db:"original_url"`
	CustomAlias    bool       `db:"custom_alias"`
	OwnerID        string     `db:"owner_id"`
	AccessCount    int64      `db:"access_count"`
	LastAccessedAt *time.Time `db:"last_accessed_at"`
	ExpiresAt      *time.Time `db:"expires_at"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

func (l *linkDB) toEntity() *entity.Link {
	return &entity.Link{
		ID:          l.ID,
		ShortCode:   l.ShortCode,
		OriginalURL: l.OriginalURL,
		CustomAlias: l.CustomAlias,
		OwnerID:     l.OwnerID,
		LinkStats: entity.LinkStats{
			AccessCount:    l.AccessCount,
			LastAccessedAt: l.LastAccessedAt,
		},
		ExpiresAt: l.ExpiresAt,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

type LinkRepository struct {
	db *sqlx.DB
}

func NewLinkRepository(db *sqlx.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

func (r *LinkRepository) Save(ctx context.Context, link *entity.Link) (*entity.Link, error) {
	const op = "adapter.repository.postgres.LinkRepository.Save"
	const query = `INSERT INTO links(short_code, original_url, custom_alias, owner_id, expires_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING *`

	var row linkDB

	err := r.db.GetContext(ctx, &row, query,
		link.ShortCode, link.OriginalURL, link.CustomAlias, link.OwnerID, link.ExpiresAt)
	if err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrShortCodeExists)
		}

		return nil, fmt.Errorf("%s: failed to insert into links table: %w", op, storageErr(err))
	}

	return row.toEntity(), nil
}

func (r *LinkRepository) RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.Link, error) {
	const op = "adapter.repository.postgres.LinkRepository.RetrieveByShortCode"
	const query = `SELECT * FROM links WHERE short_code = $1`

	var row linkDB

	if err := r.db.GetContext(ctx, &row, query, shortCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from links table: %w", op, storageErr(err))
	}

	return row.toEntity(), nil
}

func (r *LinkRepository) Update(ctx context.Context, shortCode, originalURL string, expiresAt *time.Time) (*entity.Link, error) {
	const op = "adapter.repository.postgres.LinkRepository.Update"
	const query = `UPDATE links SET original_url = $1, expires_at = $2, updated_at = now()
		WHERE short_code = $3 RETURNING *`

	var row linkDB

	if err := r.db.GetContext(ctx, &row, query, originalURL, expiresAt, shortCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
		}

		return nil, fmt.Errorf("%s: failed to update links table row: %w", op, storageErr(err))
	}

	return row.toEntity(), nil
}

func (r *LinkRepository) Remove(ctx context.Context, shortCode string) error {
	const op = "adapter.repository.postgres.LinkRepository.Remove"
	const query = `DELETE FROM links WHERE short_code = $1`

	res, err := r.db.ExecContext(ctx, query, shortCode)
	if err != nil {
		return fmt.Errorf("%s: failed to delete from links table: %w", op, storageErr(err))
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get number of affected rows: %w", op, err)
	}

	if rowsAffected != 1 {
		return fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
	}

	return nil
}

// RecordAccess bumps the access counter and last access time for a resolved
// link. It runs off the redirect's critical path, so a missing row is not an
// error worth surfacing: the link may have been deleted since resolution.
func (r *LinkRepository) RecordAccess(ctx context.Context, shortCode string, accessedAt time.Time) error {
	const op = "adapter.repository.postgres.LinkRepository.RecordAccess"
	const query = `UPDATE links SET access_count = access_count + 1, last_accessed_at = $1
		WHERE short_code = $2`

	if _, err := r.db.ExecContext(ctx, query, accessedAt, shortCode); err != nil {
		return fmt.Errorf("%s: failed to record link access: %w", op, storageErr(err))
	}

	return nil
}

// likeEscaper neutralizes ILIKE wildcards in user-supplied search fragments
// so they match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *LinkRepository) SearchByOriginalURL(ctx context.Context, originalURL, ownerID string) ([]*entity.Link, error) {
	const op = "adapter.repository.postgres.LinkRepository.SearchByOriginalURL"
	const query = `SELECT * FROM links
		WHERE original_url ILIKE '%' || $1 || '%' AND ($2 = '' OR owner_id = $2)
		ORDER BY created_at DESC`

	var rows []linkDB

	if err := r.db.SelectContext(ctx, &rows, query, likeEscaper.Replace(originalURL), ownerID); err != nil {
		return nil, fmt.Errorf("%s: failed to search links table: %w", op, storageErr(err))
	}

	links := make([]*entity.Link, 0, len(rows))
	for i := range rows {
		links = append(links, rows[i].toEntity())
	}

	return links, nil
}

// ListExpiredOrStale returns cleanup candidates: links past their expiration
// time, or links unused for longer than the retention cutoff. The grace cutoff
// keeps freshly created, never-accessed links out of the stale set.
func (r *LinkRepository) ListExpiredOrStale(ctx context.Context, now, retentionCutoff, graceCutoff time.Time, limit int) ([]*entity.Link, error) {
	const op = "adapter.repository.postgres.LinkRepository.ListExpiredOrStale"
	const query = `SELECT * FROM links
		WHERE (expires_at IS NOT NULL AND expires_at < $1)
		   OR (COALESCE(last_accessed_at, created_at) < $2 AND created_at < $3)
		ORDER BY id
		LIMIT $4`

	var rows []linkDB

	if err := r.db.SelectContext(ctx, &rows, query, now, retentionCutoff, graceCutoff, limit); err != nil {
		return nil, fmt.Errorf("%s: failed to list cleanup candidates: %w", op, storageErr(err))
	}

	links := make([]*entity.Link, 0, len(rows))
	for i := range rows {
		links = append(links, rows[i].toEntity())
	}

	return links, nil
}
