package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScanEvent is an append-only analytics event. Events are immutable once
// written; there is no update or delete lifecycle.
type ScanEvent struct {
	ID         uuid.UUID
	RecordID   uuid.UUID
	UserAgent  string
	RemoteAddr string
	ScannedAt  time.Time
}

// ScanMetadata is the opaque client context captured with each scan.
type ScanMetadata struct {
	UserAgent  string
	RemoteAddr string
}

// ScanEventFilter narrows scan-event listings. Zero values mean "no filter".
type ScanEventFilter struct {
	RecordID uuid.UUID
	From     time.Time
	To       time.Time
	Limit    int
}
