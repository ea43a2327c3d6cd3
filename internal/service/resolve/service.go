package resolve

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mexxdev/qrdirect/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type recordStore interface {
	GetBySlug(ctx context.Context, slug string) (domain.Record, error)
	// IncrementScan bumps the counter iff the stored count is still under the
	// limit, returning the new count and whether the scan was admitted.
	IncrementScan(ctx context.Context, recordID uuid.UUID) (newCount int64, admitted bool, err error)
	SetStatus(ctx context.Context, recordID uuid.UUID, expected, next domain.RecordStatus) (bool, error)
}

type scanRecorder interface {
	Record(recordID uuid.UUID, meta domain.ScanMetadata)
}

type prober interface {
	Probe(ctx context.Context, url string) error
}

type fallbackChooser interface {
	Choose(ctx context.Context, primaryURL string, candidates []string, reason string) (string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config tunes the resolution pipeline. Zero timeouts are rejected by config
// validation before a Service is ever built.
type Config struct {
	ProbeTimeout    time.Duration
	SelectorTimeout time.Duration

	// PinFeedback controls whether a failed PIN attempt is acknowledged as
	// wrong or answered with the same neutral prompt as a missing PIN.
	PinFeedback     bool
	WrongPinMessage string
}

// Service resolves slugs into outcomes. It is the only entry point the
// transport layer talks to; everything it returns is safe to show a visitor.
type Service struct {
	log     *slog.Logger
	records recordStore
	scans   scanRecorder
	prober  prober
	chooser fallbackChooser // nil when the selector is disabled
	cfg     Config
}

// NewService creates a new resolution service. chooser may be nil, in which
// case fallback selection degrades to the first candidate.
func NewService(
	logger *slog.Logger,
	records recordStore,
	scans scanRecorder,
	prober prober,
	chooser fallbackChooser,
	cfg Config,
) *Service {
	return &Service{
		log:     logger.With("service", "resolve"),
		records: records,
		scans:   scans,
		prober:  prober,
		chooser: chooser,
		cfg:     cfg,
	}
}

// ---------------------------------------------------------------------------
// Resolve
// ---------------------------------------------------------------------------

// Resolve runs the full pipeline for one scan: lookup, policy gates, the
// authoritative scan-count admission, destination resolution, and async scan
// recording. It never returns an error; failures surface as Unavailable.
func (s *Service) Resolve(ctx context.Context, slug string, creds Credentials, meta domain.ScanMetadata) Outcome {
	if err := domain.ValidateSlug(slug); err != nil {
		s.log.DebugContext(ctx, "rejected malformed slug", "slug", slug)
		return Unavailable{}
	}

	rec, err := s.records.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.InfoContext(ctx, "slug not found", "slug", slug)
		} else {
			s.log.ErrorContext(ctx, "record lookup failed", "slug", slug, "error", err)
		}
		return Unavailable{}
	}

	res := evaluatePolicy(rec, creds)
	switch res.decision {
	case decisionDeny:
		if res.expire {
			s.expireLazily(ctx, rec.Meta().ID)
		}
		return Unavailable{}
	case decisionNeedPin:
		return NeedPin{}
	case decisionWrongPin:
		if !s.cfg.PinFeedback {
			return NeedPin{}
		}
		return WrongPin{Message: s.cfg.WrongPinMessage}
	}

	switch r := rec.(type) {
	case *domain.ContactRecord:
		s.scans.Record(r.ID, meta)
		return ContactPayload{Slug: r.Slug, Card: renderVCard(r.Contact)}
	case *domain.LinkRecord:
		return s.resolveLink(ctx, r, meta)
	default:
		s.log.ErrorContext(ctx, "unhandled record kind", "slug", slug, "kind", rec.Kind())
		return Unavailable{}
	}
}

// resolveLink admits the scan against the stored counter, then computes the
// destination. The store-side conditional increment, not the snapshot checked
// by evaluatePolicy, is what makes a limit of N admit exactly N scans under
// concurrency.
func (s *Service) resolveLink(ctx context.Context, link *domain.LinkRecord, meta domain.ScanMetadata) Outcome {
	count, admitted, err := s.records.IncrementScan(ctx, link.ID)
	if err != nil {
		s.log.ErrorContext(ctx, "scan admission failed", "slug", link.Slug, "error", err)
		return Unavailable{}
	}
	if !admitted {
		// Another scan consumed the last slot between lookup and admission.
		s.expireLazily(ctx, link.ID)
		return Unavailable{}
	}
	if link.ScanLimit != nil && count >= *link.ScanLimit {
		// This scan took the final slot; it is still served.
		s.expireLazily(ctx, link.ID)
	}

	s.scans.Record(link.ID, meta)

	return s.resolveDestination(ctx, link)
}

// expireLazily flips ACTIVE to EXPIRED best-effort. Losing the race to
// another request is fine; a store failure is only logged because the
// snapshot check will keep denying regardless.
func (s *Service) expireLazily(ctx context.Context, recordID uuid.UUID) {
	won, err := s.records.SetStatus(ctx, recordID, domain.RecordStatusActive, domain.RecordStatusExpired)
	if err != nil {
		s.log.ErrorContext(ctx, "lazy expiry failed", "record_id", recordID, "error", err)
		return
	}
	if won {
		s.log.InfoContext(ctx, "record expired", "record_id", recordID)
	}
}
