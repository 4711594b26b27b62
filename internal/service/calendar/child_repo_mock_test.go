package calendar

import (
	"context"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
	"github.com/google/uuid"
	"sync"
)

var _ childRepo = &childRepoMock{}

type childRepoMock struct {
	ListByUserFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Child, error)

	calls struct {
		ListByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockListByUser sync.RWMutex
}

func (mock *childRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Child, error) {
	if mock.ListByUserFunc == nil {
		panic("childRepoMock.ListByUserFunc: method is nil but childRepo.ListByUser was just called")
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

func (mock *childRepoMock) ListByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockListByUser.RLock()
	calls := mock.calls.ListByUser
	mock.lockListByUser.RUnlock()
	return calls
}
