package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mexxdev/qrdirect/internal/domain"
)

// LinkOpts tweaks a seeded link record. Zero values keep the defaults of an
// unrestricted active link.
type LinkOpts struct {
	Status       domain.RecordStatus
	FallbackURLs []string
	ScanCount    int64
	ScanLimit    *int64
	PINHash      *string
}

// SeedLinkRecord inserts a link record with a unique slug and returns it.
func SeedLinkRecord(t *testing.T, pool *pgxpool.Pool, targetURL string, opts LinkOpts) *domain.LinkRecord {
	t.Helper()

	if opts.Status == "" {
		opts.Status = domain.RecordStatusActive
	}

	rec := &domain.LinkRecord{
		RecordMeta: domain.RecordMeta{
			ID:        uuid.New(),
			Slug:      "link-" + uuid.New().String()[:8],
			Status:    opts.Status,
			OwnerID:   uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		TargetURL:    targetURL,
		FallbackURLs: opts.FallbackURLs,
		ScanCount:    opts.ScanCount,
		ScanLimit:    opts.ScanLimit,
		PINHash:      opts.PINHash,
	}

	const insertSQL = `
INSERT INTO qr_records (id, slug, kind, status, owner_id, created_at,
	target_url, fallback_urls, scan_count, scan_limit, pin_hash)
VALUES ($1, $2, 'LINK', $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := pool.Exec(context.Background(), insertSQL,
		rec.ID, rec.Slug, string(rec.Status), rec.OwnerID, rec.CreatedAt,
		rec.TargetURL, rec.FallbackURLs, rec.ScanCount, rec.ScanLimit, rec.PINHash,
	)
	if err != nil {
		t.Fatalf("testhelper: seed link record: %v", err)
	}

	return rec
}

// SeedContactRecord inserts a contact record with a unique slug and returns it.
func SeedContactRecord(t *testing.T, pool *pgxpool.Pool, contact domain.ContactDetails) *domain.ContactRecord {
	t.Helper()

	rec := &domain.ContactRecord{
		RecordMeta: domain.RecordMeta{
			ID:        uuid.New(),
			Slug:      "card-" + uuid.New().String()[:8],
			Status:    domain.RecordStatusActive,
			OwnerID:   uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		Contact: contact,
	}

	const insertSQL = `
INSERT INTO qr_records (id, slug, kind, status, owner_id, created_at,
	first_name, last_name, company, title, phone, email, website, address)
VALUES ($1, $2, 'CONTACT', $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := pool.Exec(context.Background(), insertSQL,
		rec.ID, rec.Slug, string(rec.Status), rec.OwnerID, rec.CreatedAt,
		contact.FirstName, contact.LastName,
		nullable(contact.Company), nullable(contact.Title), nullable(contact.Phone),
		nullable(contact.Email), nullable(contact.Website), nullable(contact.Address),
	)
	if err != nil {
		t.Fatalf("testhelper: seed contact record: %v", err)
	}

	return rec
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
