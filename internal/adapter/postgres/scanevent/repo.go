// Package scanevent implements the append-only scan event sink backed by
// PostgreSQL. Events are immutable once written; the repo offers an insert and
// a filtered listing for analytics, nothing else.
package scanevent

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mexxdev/qrdirect/internal/adapter/postgres"
	"github.com/mexxdev/qrdirect/internal/domain"
)

// Repo provides scan event persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new scan event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const appendSQL = `
INSERT INTO scan_events (id, record_id, user_agent, remote_addr, scanned_at)
VALUES ($1, $2, $3, $4, $5)`

// Append writes one scan event. The event is immutable after this call.
func (r *Repo) Append(ctx context.Context, recordID uuid.UUID, meta domain.ScanMetadata, at time.Time) error {
	id := uuid.New()

	_, err := r.pool.Exec(ctx, appendSQL,
		id, recordID, meta.UserAgent, meta.RemoteAddr, at.UTC().Truncate(time.Microsecond),
	)
	if err != nil {
		return postgres.MapError(err, "scan_event", recordID.String())
	}

	return nil
}

// List returns scan events matching the filter, newest first. Zero filter
// fields are ignored; Limit == 0 means no limit.
func (r *Repo) List(ctx context.Context, filter domain.ScanEventFilter) ([]domain.ScanEvent, error) {
	q := psql.
		Select("id", "record_id", "user_agent", "remote_addr", "scanned_at").
		From("scan_events").
		OrderBy("scanned_at DESC")

	if filter.RecordID != uuid.Nil {
		q = q.Where(sq.Eq{"record_id": filter.RecordID})
	}
	if !filter.From.IsZero() {
		q = q.Where(sq.GtOrEq{"scanned_at": filter.From})
	}
	if !filter.To.IsZero() {
		q = q.Where(sq.Lt{"scanned_at": filter.To})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build scan_events query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, postgres.MapError(err, "scan_event", filter.RecordID.String())
	}
	defer rows.Close()

	var events []domain.ScanEvent
	for rows.Next() {
		var ev domain.ScanEvent
		if err := rows.Scan(&ev.ID, &ev.RecordID, &ev.UserAgent, &ev.RemoteAddr, &ev.ScannedAt); err != nil {
			return nil, fmt.Errorf("scan scan_event row: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "scan_event", filter.RecordID.String())
	}

	return events, nil
}
