package practice

import (
	"context"
	"sync"

	"github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/domain"
)

var _ historyRecorder = &historyRecorderMock{}

type historyRecorderMock struct {
	RecordFunc func(ctx context.Context, summary domain.PracticeSummary) error

	calls struct {
		Record []struct {
			Ctx     context.Context
			Summary domain.PracticeSummary
		}
	}
	lockRecord sync.RWMutex
}

func (mock *historyRecorderMock) Record(ctx context.Context, summary domain.PracticeSummary) error {
	if mock.RecordFunc == nil {
		panic("historyRecorderMock.RecordFunc: method is nil but historyRecorder.Record was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Summary domain.PracticeSummary
	}{Ctx: ctx, Summary: summary}
	mock.lockRecord.Lock()
	mock.calls.Record = append(mock.calls.Record, callInfo)
	mock.lockRecord.Unlock()
	return mock.RecordFunc(ctx, summary)
}

func (mock *historyRecorderMock) RecordCalls() []struct {
	Ctx     context.Context
	Summary domain.PracticeSummary
} {
	mock.lockRecord.RLock()
	calls := mock.calls.Record
	mock.lockRecord.RUnlock()
	return calls
}
