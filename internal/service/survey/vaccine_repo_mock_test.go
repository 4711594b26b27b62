package survey

import (
	"context"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
	"github.com/google/uuid"
	"sync"
)

var _ vaccineRepo = &vaccineRepoMock{}

type vaccineRepoMock struct {
	GetDoseFunc               func(ctx context.Context, doseID uuid.UUID) (*domain.VaccineDose, error)
	CreatePastVaccinationFunc func(ctx context.Context, pv *domain.PastVaccination) error

	calls struct {
		GetDose []struct {
			Ctx    context.Context
			DoseID uuid.UUID
		}
		CreatePastVaccination []struct {
			Ctx context.Context
			Pv  *domain.PastVaccination
		}
	}
	lockGetDose               sync.RWMutex
	lockCreatePastVaccination sync.RWMutex
}

func (mock *vaccineRepoMock) GetDose(ctx context.Context, doseID uuid.UUID) (*domain.VaccineDose, error) {
	if mock.GetDoseFunc == nil {
		panic("vaccineRepoMock.GetDoseFunc: method is nil but vaccineRepo.GetDose was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		DoseID uuid.UUID
	}{
		Ctx:    ctx,
		DoseID: doseID,
	}
	mock.lockGetDose.Lock()
	mock.calls.GetDose = append(mock.calls.GetDose, callInfo)
	mock.lockGetDose.Unlock()
	return mock.GetDoseFunc(ctx, doseID)
}

func (mock *vaccineRepoMock) GetDoseCalls() []struct {
	Ctx    context.Context
	DoseID uuid.UUID
} {
	mock.lockGetDose.RLock()
	calls := mock.calls.GetDose
	mock.lockGetDose.RUnlock()
	return calls
}

func (mock *vaccineRepoMock) CreatePastVaccination(ctx context.Context, pv *domain.PastVaccination) error {
	if mock.CreatePastVaccinationFunc == nil {
		panic("vaccineRepoMock.CreatePastVaccinationFunc: method is nil but vaccineRepo.CreatePastVaccination was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Pv  *domain.PastVaccination
	}{
		Ctx: ctx,
		Pv:  pv,
	}
	mock.lockCreatePastVaccination.Lock()
	mock.calls.CreatePastVaccination = append(mock.calls.CreatePastVaccination, callInfo)
	mock.lockCreatePastVaccination.Unlock()
	return mock.CreatePastVaccinationFunc(ctx, pv)
}

func (mock *vaccineRepoMock) CreatePastVaccinationCalls() []struct {
	Ctx context.Context
	Pv  *domain.PastVaccination
} {
	mock.lockCreatePastVaccination.RLock()
	calls := mock.calls.CreatePastVaccination
	mock.lockCreatePastVaccination.RUnlock()
	return calls
}
