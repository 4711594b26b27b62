package calendar

import (
	"context"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
	"sync"
)

var _ vaccineRepo = &vaccineRepoMock{}

type vaccineRepoMock struct {
	ListActiveDosesFunc func(ctx context.Context) ([]domain.VaccineDose, error)

	calls struct {
		ListActiveDoses []struct {
			Ctx context.Context
		}
	}
	lockListActiveDoses sync.RWMutex
}

func (mock *vaccineRepoMock) ListActiveDoses(ctx context.Context) ([]domain.VaccineDose, error) {
	if mock.ListActiveDosesFunc == nil {
		panic("vaccineRepoMock.ListActiveDosesFunc: method is nil but vaccineRepo.ListActiveDoses was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockListActiveDoses.Lock()
	mock.calls.ListActiveDoses = append(mock.calls.ListActiveDoses, callInfo)
	mock.lockListActiveDoses.Unlock()
	return mock.ListActiveDosesFunc(ctx)
}

func (mock *vaccineRepoMock) ListActiveDosesCalls() []struct {
	Ctx context.Context
} {
	mock.lockListActiveDoses.RLock()
	calls := mock.calls.ListActiveDoses
	mock.lockListActiveDoses.RUnlock()
	return calls
}
