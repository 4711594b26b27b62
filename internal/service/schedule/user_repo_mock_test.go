package schedule

import (
	"context"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
	"sync"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	ListActiveFunc func(ctx context.Context) ([]domain.User, error)

	calls struct {
		ListActive []struct {
			Ctx context.Context
		}
	}
	lockListActive sync.RWMutex
}

func (mock *userRepoMock) ListActive(ctx context.Context) ([]domain.User, error) {
	if mock.ListActiveFunc == nil {
		panic("userRepoMock.ListActiveFunc: method is nil but userRepo.ListActive was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockListActive.Lock()
	mock.calls.ListActive = append(mock.calls.ListActive, callInfo)
	mock.lockListActive.Unlock()
	return mock.ListActiveFunc(ctx)
}

func (mock *userRepoMock) ListActiveCalls() []struct {
	Ctx context.Context
} {
	mock.lockListActive.RLock()
	calls := mock.calls.ListActive
	mock.lockListActive.RUnlock()
	return calls
}
