package survey

import (
	"context"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
	"github.com/google/uuid"
	"sync"
	"time"
)

var _ surveyRepo = &surveyRepoMock{}

type surveyRepoMock struct {
	GetSurveyFunc         func(ctx context.Context, userID uuid.UUID, surveyID uuid.UUID) (*domain.Survey, error)
	SetSurveyResponseFunc func(ctx context.Context, userID uuid.UUID, surveyID uuid.UUID, response string, at time.Time) error

	calls struct {
		GetSurvey []struct {
			Ctx      context.Context
			UserID   uuid.UUID
			SurveyID uuid.UUID
		}
		SetSurveyResponse []struct {
			Ctx      context.Context
			UserID   uuid.UUID
			SurveyID uuid.UUID
			Response string
			At       time.Time
		}
	}
	lockGetSurvey         sync.RWMutex
	lockSetSurveyResponse sync.RWMutex
}

func (mock *surveyRepoMock) GetSurvey(ctx context.Context, userID uuid.UUID, surveyID uuid.UUID) (*domain.Survey, error) {
	if mock.GetSurveyFunc == nil {
		panic("surveyRepoMock.GetSurveyFunc: method is nil but surveyRepo.GetSurvey was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		UserID   uuid.UUID
		SurveyID uuid.UUID
	}{
		Ctx:      ctx,
		UserID:   userID,
		SurveyID: surveyID,
	}
	mock.lockGetSurvey.Lock()
	mock.calls.GetSurvey = append(mock.calls.GetSurvey, callInfo)
	mock.lockGetSurvey.Unlock()
	return mock.GetSurveyFunc(ctx, userID, surveyID)
}

func (mock *surveyRepoMock) GetSurveyCalls() []struct {
	Ctx      context.Context
	UserID   uuid.UUID
	SurveyID uuid.UUID
} {
	mock.lockGetSurvey.RLock()
	calls := mock.calls.GetSurvey
	mock.lockGetSurvey.RUnlock()
	return calls
}

func (mock *surveyRepoMock) SetSurveyResponse(ctx context.Context, userID uuid.UUID, surveyID uuid.UUID, response string, at time.Time) error {
	if mock.SetSurveyResponseFunc == nil {
		panic("surveyRepoMock.SetSurveyResponseFunc: method is nil but surveyRepo.SetSurveyResponse was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		UserID   uuid.UUID
		SurveyID uuid.UUID
		Response string
		At       time.Time
	}{
		Ctx:      ctx,
		UserID:   userID,
		SurveyID: surveyID,
		Response: response,
		At:       at,
	}
	mock.lockSetSurveyResponse.Lock()
	mock.calls.SetSurveyResponse = append(mock.calls.SetSurveyResponse, callInfo)
	mock.lockSetSurveyResponse.Unlock()
	return mock.SetSurveyResponseFunc(ctx, userID, surveyID, response, at)
}

func (mock *surveyRepoMock) SetSurveyResponseCalls() []struct {
	Ctx      context.Context
	UserID   uuid.UUID
	SurveyID uuid.UUID
	Response string
	At       time.Time
} {
	mock.lockSetSurveyResponse.RLock()
	calls := mock.calls.SetSurveyResponse
	mock.lockSetSurveyResponse.RUnlock()
	return calls
}
