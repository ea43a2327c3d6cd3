package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecordMeta holds the fields common to both record kinds.
type RecordMeta struct {
	ID        uuid.UUID
	Slug      string
	Status    RecordStatus
	OwnerID   uuid.UUID
	CreatedAt time.Time
}

// Record is the closed set of resolvable record variants. Consumers must
// type-switch on *LinkRecord and *ContactRecord; a record is never both.
type Record interface {
	Kind() RecordKind
	Meta() RecordMeta

	sealed()
}

// LinkRecord redirects scanners to a target URL, optionally gated by a scan
// limit and a PIN.
type LinkRecord struct {
	RecordMeta

	TargetURL    string
	FallbackURLs []string
	Description  string
	ScanCount    int64
	ScanLimit    *int64
	PINHash      *string
}

func (r *LinkRecord) Kind() RecordKind { return RecordKindLink }
func (r *LinkRecord) Meta() RecordMeta { return r.RecordMeta }
func (r *LinkRecord) sealed()          {}

// Protected reports whether the link requires a PIN.
func (r *LinkRecord) Protected() bool {
	return r.PINHash != nil && *r.PINHash != ""
}

// LimitReached reports whether the scan limit, if any, has been consumed.
func (r *LinkRecord) LimitReached() bool {
	return r.ScanLimit != nil && r.ScanCount >= *r.ScanLimit
}

// ContactRecord resolves to a downloadable contact card. Contact records have
// no scan-limit or PIN semantics.
type ContactRecord struct {
	RecordMeta

	Contact ContactDetails
}

func (r *ContactRecord) Kind() RecordKind { return RecordKindContact }
func (r *ContactRecord) Meta() RecordMeta { return r.RecordMeta }
func (r *ContactRecord) sealed()          {}

// ContactDetails is the bundle synthesized into a vCard. FirstName and
// LastName are required; everything else is omitted from the card when empty.
type ContactDetails struct {
	FirstName string
	LastName  string
	Company   string
	Title     string
	Phone     string
	Email     string
	Website   string
	Address   string
}
