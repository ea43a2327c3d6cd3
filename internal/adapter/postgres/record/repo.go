// Package record implements the QR record store backed by PostgreSQL.
// Both record kinds live in one table; check constraints keep the columns of
// the inactive kind NULL, and scanning rebuilds the domain sum type.
package record

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mexxdev/qrdirect/internal/adapter/postgres"
	"github.com/mexxdev/qrdirect/internal/domain"
)

// Repo provides QR record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new record repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const recordColumns = `id, slug, kind, status, owner_id, created_at,
	target_url, fallback_urls, description, scan_count, scan_limit, pin_hash,
	first_name, last_name, company, title, phone, email, website, address`

const getBySlugSQL = `
SELECT ` + recordColumns + `
FROM qr_records
WHERE slug = $1`

// incrementScanSQL is the admission primitive for link records: the increment
// succeeds only while scan_count is below scan_limit (or unlimited), so under
// concurrent scans at most scan_limit increments ever commit.
const incrementScanSQL = `
UPDATE qr_records
SET scan_count = scan_count + 1
WHERE id = $1
  AND kind = 'LINK'
  AND (scan_limit IS NULL OR scan_count < scan_limit)
RETURNING scan_count`

const setStatusSQL = `
UPDATE qr_records
SET status = $3
WHERE id = $1 AND status = $2`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// GetBySlug returns the record identified by slug (case-sensitive exact match).
// Returns domain.ErrNotFound if no record exists; store failures map to
// domain.ErrStoreUnavailable.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (domain.Record, error) {
	row := r.pool.QueryRow(ctx, getBySlugSQL, slug)

	rec, err := scanRecord(row)
	if err != nil {
		return nil, postgres.MapError(err, "record", slug)
	}

	return rec, nil
}

// IncrementScan atomically increments the scan counter of a link record,
// capped at scan_limit. It returns the new count and whether the increment was
// admitted; admitted == false means the cap was already consumed.
func (r *Repo) IncrementScan(ctx context.Context, id uuid.UUID) (int64, bool, error) {
	var count int64
	err := r.pool.QueryRow(ctx, incrementScanSQL, id).Scan(&count)
	if err != nil {
		mapped := postgres.MapError(err, "record", id.String())
		if errors.Is(mapped, domain.ErrNotFound) {
			// Row exists but the cap condition failed (or the record vanished
			// between lookup and increment): either way, not admitted.
			return 0, false, nil
		}
		return 0, false, mapped
	}

	return count, true, nil
}

// SetStatus performs a compare-and-swap on the record status. It returns true
// when this call performed the transition; false means another writer won or
// the record was not in the expected status.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, expected, next domain.RecordStatus) (bool, error) {
	ct, err := r.pool.Exec(ctx, setStatusSQL, id, string(expected), string(next))
	if err != nil {
		return false, postgres.MapError(err, "record", id.String())
	}

	return ct.RowsAffected() > 0, nil
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (domain.Record, error) {
	var (
		meta      domain.RecordMeta
		kind      string
		status    string
		createdAt time.Time

		targetURL    *string
		fallbackURLs []string
		description  *string
		scanCount    *int64
		scanLimit    *int64
		pinHash      *string

		firstName *string
		lastName  *string
		company   *string
		title     *string
		phone     *string
		email     *string
		website   *string
		address   *string
	)

	err := row.Scan(
		&meta.ID, &meta.Slug, &kind, &status, &meta.OwnerID, &createdAt,
		&targetURL, &fallbackURLs, &description, &scanCount, &scanLimit, &pinHash,
		&firstName, &lastName, &company, &title, &phone, &email, &website, &address,
	)
	if err != nil {
		return nil, err
	}

	meta.Status = domain.RecordStatus(status)
	meta.CreatedAt = createdAt

	switch domain.RecordKind(kind) {
	case domain.RecordKindLink:
		rec := &domain.LinkRecord{
			RecordMeta:   meta,
			FallbackURLs: fallbackURLs,
			ScanLimit:    scanLimit,
			PINHash:      pinHash,
		}
		if targetURL != nil {
			rec.TargetURL = *targetURL
		}
		if description != nil {
			rec.Description = *description
		}
		if scanCount != nil {
			rec.ScanCount = *scanCount
		}
		return rec, nil

	case domain.RecordKindContact:
		rec := &domain.ContactRecord{RecordMeta: meta}
		rec.Contact = domain.ContactDetails{
			FirstName: deref(firstName),
			LastName:  deref(lastName),
			Company:   deref(company),
			Title:     deref(title),
			Phone:     deref(phone),
			Email:     deref(email),
			Website:   deref(website),
			Address:   deref(address),
		}
		return rec, nil
	}

	return nil, domain.ErrValidation
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
