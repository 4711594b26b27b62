package schedule

import (
	"context"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
	"github.com/google/uuid"
	"iter"
	"sync"
)

var _ calendarDeriver = &calendarDeriverMock{}

type calendarDeriverMock struct {
	DeriveCalendarEventsFunc func(ctx context.Context, userID uuid.UUID) (iter.Seq[domain.CalendarEvent], error)

	calls struct {
		DeriveCalendarEvents []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockDeriveCalendarEvents sync.RWMutex
}

func (mock *calendarDeriverMock) DeriveCalendarEvents(ctx context.Context, userID uuid.UUID) (iter.Seq[domain.CalendarEvent], error) {
	if mock.DeriveCalendarEventsFunc == nil {
		panic("calendarDeriverMock.DeriveCalendarEventsFunc: method is nil but calendarDeriver.DeriveCalendarEvents was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockDeriveCalendarEvents.Lock()
	mock.calls.DeriveCalendarEvents = append(mock.calls.DeriveCalendarEvents, callInfo)
	mock.lockDeriveCalendarEvents.Unlock()
	return mock.DeriveCalendarEventsFunc(ctx, userID)
}

func (mock *calendarDeriverMock) DeriveCalendarEventsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockDeriveCalendarEvents.RLock()
	calls := mock.calls.DeriveCalendarEvents
	mock.lockDeriveCalendarEvents.RUnlock()
	return calls
}
