package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mexxdev/qrdirect/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped — they pass through.
//
// A missing row becomes domain.ErrNotFound; anything that looks like the
// database being unreachable becomes domain.ErrStoreUnavailable so callers can
// keep the two apart (a dead store must never read as "no such record").
func MapError(err error, entity string, key string) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, key, err)
	}

	// pgx.ErrNoRows → domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
	}

	// Network-level failures → domain.ErrStoreUnavailable
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%s %s: %v: %w", entity, key, err, domain.ErrStoreUnavailable)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrAlreadyExists)
		case pgErr.Code == "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
		case pgErr.Code == "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrValidation)
		case len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08": // connection_exception class
			return fmt.Errorf("%s %s: %v: %w", entity, key, err, domain.ErrStoreUnavailable)
		case pgErr.Code == "57P01", pgErr.Code == "57P02", pgErr.Code == "57P03": // shutdown / crash / cannot_connect_now
			return fmt.Errorf("%s %s: %v: %w", entity, key, err, domain.ErrStoreUnavailable)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s %s: %w", entity, key, err)
}
