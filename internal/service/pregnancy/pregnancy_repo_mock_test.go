package pregnancy

import (
	"context"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
	"github.com/google/uuid"
	"sync"
	"time"
)

var _ pregnancyRepo = &pregnancyRepoMock{}

type pregnancyRepoMock struct {
	CreateFunc    func(ctx context.Context, p *domain.Pregnancy) (*domain.Pregnancy, error)
	GetActiveFunc func(ctx context.Context, userID uuid.UUID, today time.Time) (*domain.Pregnancy, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			P   *domain.Pregnancy
		}
		GetActive []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Today  time.Time
		}
	}
	lockCreate    sync.RWMutex
	lockGetActive sync.RWMutex
}

func (mock *pregnancyRepoMock) Create(ctx context.Context, p *domain.Pregnancy) (*domain.Pregnancy, error) {
	if mock.CreateFunc == nil {
		panic("pregnancyRepoMock.CreateFunc: method is nil but pregnancyRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   *domain.Pregnancy
	}{
		Ctx: ctx,
		P:   p,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, p)
}

func (mock *pregnancyRepoMock) CreateCalls() []struct {
	Ctx context.Context
	P   *domain.Pregnancy
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *pregnancyRepoMock) GetActive(ctx context.Context, userID uuid.UUID, today time.Time) (*domain.Pregnancy, error) {
	if mock.GetActiveFunc == nil {
		panic("pregnancyRepoMock.GetActiveFunc: method is nil but pregnancyRepo.GetActive was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Today  time.Time
	}{
		Ctx:    ctx,
		UserID: userID,
		Today:  today,
	}
	mock.lockGetActive.Lock()
	mock.calls.GetActive = append(mock.calls.GetActive, callInfo)
	mock.lockGetActive.Unlock()
	return mock.GetActiveFunc(ctx, userID, today)
}

func (mock *pregnancyRepoMock) GetActiveCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Today  time.Time
} {
	mock.lockGetActive.RLock()
	calls := mock.calls.GetActive
	mock.lockGetActive.RUnlock()
	return calls
}
