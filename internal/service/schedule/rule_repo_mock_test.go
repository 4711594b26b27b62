package schedule

import (
	"context"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
	"sync"
)

var _ ruleRepo = &ruleRepoMock{}

type ruleRepoMock struct {
	ListByKindFunc func(ctx context.Context, kind domain.RecordKind) ([]domain.ScheduleRule, error)

	calls struct {
		ListByKind []struct {
			Ctx  context.Context
			Kind domain.RecordKind
		}
	}
	lockListByKind sync.RWMutex
}

func (mock *ruleRepoMock) ListByKind(ctx context.Context, kind domain.RecordKind) ([]domain.ScheduleRule, error) {
	if mock.ListByKindFunc == nil {
		panic("ruleRepoMock.ListByKindFunc: method is nil but ruleRepo.ListByKind was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Kind domain.RecordKind
	}{
		Ctx:  ctx,
		Kind: kind,
	}
	mock.lockListByKind.Lock()
	mock.calls.ListByKind = append(mock.calls.ListByKind, callInfo)
	mock.lockListByKind.Unlock()
	return mock.ListByKindFunc(ctx, kind)
}

func (mock *ruleRepoMock) ListByKindCalls() []struct {
	Ctx  context.Context
	Kind domain.RecordKind
} {
	mock.lockListByKind.RLock()
	calls := mock.calls.ListByKind
	mock.lockListByKind.RUnlock()
	return calls
}
