package scanlog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mexxdev/qrdirect/internal/domain"
)

// appendTimeout bounds a single write so a stuck store cannot wedge the
// worker forever.
const appendTimeout = 5 * time.Second

type sink interface {
	Append(ctx context.Context, recordID uuid.UUID, meta domain.ScanMetadata, at time.Time) error
}

type event struct {
	recordID uuid.UUID
	meta     domain.ScanMetadata
	at       time.Time
}

// Recorder journals scan events off the request path. Record never blocks the
// caller: events queue into a bounded channel drained by a single worker, and
// a full queue drops the event with a warning rather than stalling a
// redirect.
type Recorder struct {
	log  *slog.Logger
	sink sink
	ch   chan event
	done chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewRecorder starts the drain worker. queueSize must be positive.
func NewRecorder(logger *slog.Logger, s sink, queueSize int) *Recorder {
	r := &Recorder{
		log:  logger.With("component", "scanlog"),
		sink: s,
		ch:   make(chan event, queueSize),
		done: make(chan struct{}),
	}
	go r.drain()
	return r
}

// Record enqueues one scan event. Calls after Close are ignored.
func (r *Recorder) Record(recordID uuid.UUID, meta domain.ScanMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	select {
	case r.ch <- event{recordID: recordID, meta: meta, at: time.Now().UTC()}:
	default:
		r.log.Warn("scan event dropped, queue full", "record_id", recordID)
	}
}

// Close stops intake and waits for every queued event to be written, or for
// ctx to expire, whichever comes first.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.ch)
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Recorder) drain() {
	defer close(r.done)

	for ev := range r.ch {
		ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
		err := r.sink.Append(ctx, ev.recordID, ev.meta, ev.at)
		cancel()
		if err != nil {
			r.log.Error("failed to persist scan event", "record_id", ev.recordID, "error", err)
		}
	}
}
