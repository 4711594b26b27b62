package calendar

import (
	"context"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
	"github.com/google/uuid"
	"sync"
)

var _ pregnancyRepo = &pregnancyRepoMock{}

type pregnancyRepoMock struct {
	ListByUserFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Pregnancy, error)

	calls struct {
		ListByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockListByUser sync.RWMutex
}

func (mock *pregnancyRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Pregnancy, error) {
	if mock.ListByUserFunc == nil {
		panic("pregnancyRepoMock.ListByUserFunc: method is nil but pregnancyRepo.ListByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockListByUser.Lock()
	mock.calls.ListByUser = append(mock.calls.ListByUser, callInfo)
	mock.lockListByUser.Unlock()
	return mock.ListByUserFunc(ctx, userID)
}

func (mock *pregnancyRepoMock) ListByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockListByUser.RLock()
	calls := mock.calls.ListByUser
	mock.lockListByUser.RUnlock()
	return calls
}
