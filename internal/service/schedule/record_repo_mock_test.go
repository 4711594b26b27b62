package schedule

import (
	"context"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
	"sync"
)

var _ recordRepo = &recordRepoMock{}

type recordRepoMock struct {
	InsertFunc func(ctx context.Context, rec *domain.GeneratedRecord) error

	calls struct {
		Insert []struct {
			Ctx context.Context
			Rec *domain.GeneratedRecord
		}
	}
	lockInsert sync.RWMutex
}

func (mock *recordRepoMock) Insert(ctx context.Context, rec *domain.GeneratedRecord) error {
	if mock.InsertFunc == nil {
		panic("recordRepoMock.InsertFunc: method is nil but recordRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec *domain.GeneratedRecord
	}{
		Ctx: ctx,
		Rec: rec,
	}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, rec)
}

func (mock *recordRepoMock) InsertCalls() []struct {
	Ctx context.Context
	Rec *domain.GeneratedRecord
} {
	mock.lockInsert.RLock()
	calls := mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}
