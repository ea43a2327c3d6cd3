package resolve

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/mexxdev/qrdirect/internal/domain"
)

var _ recordStore = &recordStoreMock{}

type recordStoreMock struct {
	GetBySlugFunc     func(ctx context.Context, slug string) (domain.Record, error)
	IncrementScanFunc func(ctx context.Context, recordID uuid.UUID) (int64, bool, error)
	SetStatusFunc     func(ctx context.Context, recordID uuid.UUID, expected, next domain.RecordStatus) (bool, error)

	calls struct {
		GetBySlug []struct {
			Slug string
		}
		IncrementScan []struct {
			RecordID uuid.UUID
		}
		SetStatus []struct {
			RecordID uuid.UUID
			Expected domain.RecordStatus
			Next     domain.RecordStatus
		}
	}
	lockGetBySlug     sync.RWMutex
	lockIncrementScan sync.RWMutex
	lockSetStatus     sync.RWMutex
}

func (mock *recordStoreMock) GetBySlug(ctx context.Context, slug string) (domain.Record, error) {
	if mock.GetBySlugFunc == nil {
		panic("recordStoreMock.GetBySlugFunc: method is nil but recordStore.GetBySlug was just called")
	}
	callInfo := struct{ Slug string }{Slug: slug}
	mock.lockGetBySlug.Lock()
	mock.calls.GetBySlug = append(mock.calls.GetBySlug, callInfo)
	mock.lockGetBySlug.Unlock()
	return mock.GetBySlugFunc(ctx, slug)
}

func (mock *recordStoreMock) GetBySlugCalls() []struct {
	Slug string
} {
	mock.lockGetBySlug.RLock()
	calls := mock.calls.GetBySlug
	mock.lockGetBySlug.RUnlock()
	return calls
}

func (mock *recordStoreMock) IncrementScan(ctx context.Context, recordID uuid.UUID) (int64, bool, error) {
	if mock.IncrementScanFunc == nil {
		panic("recordStoreMock.IncrementScanFunc: method is nil but recordStore.IncrementScan was just called")
	}
	callInfo := struct{ RecordID uuid.UUID }{RecordID: recordID}
	mock.lockIncrementScan.Lock()
	mock.calls.IncrementScan = append(mock.calls.IncrementScan, callInfo)
	mock.lockIncrementScan.Unlock()
	return mock.IncrementScanFunc(ctx, recordID)
}

func (mock *recordStoreMock) IncrementScanCalls() []struct {
	RecordID uuid.UUID
} {
	mock.lockIncrementScan.RLock()
	calls := mock.calls.IncrementScan
	mock.lockIncrementScan.RUnlock()
	return calls
}

func (mock *recordStoreMock) SetStatus(ctx context.Context, recordID uuid.UUID, expected, next domain.RecordStatus) (bool, error) {
	if mock.SetStatusFunc == nil {
		panic("recordStoreMock.SetStatusFunc: method is nil but recordStore.SetStatus was just called")
	}
	callInfo := struct {
		RecordID uuid.UUID
		Expected domain.RecordStatus
		Next     domain.RecordStatus
	}{RecordID: recordID, Expected: expected, Next: next}
	mock.lockSetStatus.Lock()
	mock.calls.SetStatus = append(mock.calls.SetStatus, callInfo)
	mock.lockSetStatus.Unlock()
	return mock.SetStatusFunc(ctx, recordID, expected, next)
}

func (mock *recordStoreMock) SetStatusCalls() []struct {
	RecordID uuid.UUID
	Expected domain.RecordStatus
	Next     domain.RecordStatus
} {
	mock.lockSetStatus.RLock()
	calls := mock.calls.SetStatus
	mock.lockSetStatus.RUnlock()
	return calls
}

var _ scanRecorder = &scanRecorderMock{}

type scanRecorderMock struct {
	RecordFunc func(recordID uuid.UUID, meta domain.ScanMetadata)

	calls struct {
		Record []struct {
			RecordID uuid.UUID
			Meta     domain.ScanMetadata
		}
	}
	lockRecord sync.RWMutex
}

func (mock *scanRecorderMock) Record(recordID uuid.UUID, meta domain.ScanMetadata) {
	callInfo := struct {
		RecordID uuid.UUID
		Meta     domain.ScanMetadata
	}{RecordID: recordID, Meta: meta}
	mock.lockRecord.Lock()
	mock.calls.Record = append(mock.calls.Record, callInfo)
	mock.lockRecord.Unlock()
	if mock.RecordFunc != nil {
		mock.RecordFunc(recordID, meta)
	}
}

func (mock *scanRecorderMock) RecordCalls() []struct {
	RecordID uuid.UUID
	Meta     domain.ScanMetadata
} {
	mock.lockRecord.RLock()
	calls := mock.calls.Record
	mock.lockRecord.RUnlock()
	return calls
}

var _ prober = &proberMock{}

type proberMock struct {
	ProbeFunc func(ctx context.Context, url string) error

	calls struct {
		Probe []struct {
			URL string
		}
	}
	lockProbe sync.RWMutex
}

func (mock *proberMock) Probe(ctx context.Context, url string) error {
	if mock.ProbeFunc == nil {
		panic("proberMock.ProbeFunc: method is nil but prober.Probe was just called")
	}
	callInfo := struct{ URL string }{URL: url}
	mock.lockProbe.Lock()
	mock.calls.Probe = append(mock.calls.Probe, callInfo)
	mock.lockProbe.Unlock()
	return mock.ProbeFunc(ctx, url)
}

func (mock *proberMock) ProbeCalls() []struct {
	URL string
} {
	mock.lockProbe.RLock()
	calls := mock.calls.Probe
	mock.lockProbe.RUnlock()
	return calls
}

var _ fallbackChooser = &fallbackChooserMock{}

type fallbackChooserMock struct {
	ChooseFunc func(ctx context.Context, primaryURL string, candidates []string, reason string) (string, error)

	calls struct {
		Choose []struct {
			PrimaryURL string
			Candidates []string
			Reason     string
		}
	}
	lockChoose sync.RWMutex
}

func (mock *fallbackChooserMock) Choose(ctx context.Context, primaryURL string, candidates []string, reason string) (string, error) {
	if mock.ChooseFunc == nil {
		panic("fallbackChooserMock.ChooseFunc: method is nil but fallbackChooser.Choose was just called")
	}
	callInfo := struct {
		PrimaryURL string
		Candidates []string
		Reason     string
	}{PrimaryURL: primaryURL, Candidates: candidates, Reason: reason}
	mock.lockChoose.Lock()
	mock.calls.Choose = append(mock.calls.Choose, callInfo)
	mock.lockChoose.Unlock()
	return mock.ChooseFunc(ctx, primaryURL, candidates, reason)
}

func (mock *fallbackChooserMock) ChooseCalls() []struct {
	PrimaryURL string
	Candidates []string
	Reason     string
} {
	mock.lockChoose.RLock()
	calls := mock.calls.Choose
	mock.lockChoose.RUnlock()
	return calls
}
