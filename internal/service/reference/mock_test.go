package reference

import (
	"context"
	"sync"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

var _ referenceRepo = &referenceRepoMock{}

type referenceRepoMock struct {
	CountriesFunc     func(ctx context.Context) ([]domain.Country, error)
	FuelSourcesFunc   func(ctx context.Context) ([]domain.FuelSource, error)
	VehicleModelsFunc func(ctx context.Context) ([]domain.VehicleModel, error)
	ReplaceFunc       func(ctx context.Context, data domain.ReferenceData) error

	calls struct {
		Countries     []struct{}
		FuelSources   []struct{}
		VehicleModels []struct{}
		Replace       []struct {
			Data domain.ReferenceData
		}
	}
	lockCountries     sync.RWMutex
	lockFuelSources   sync.RWMutex
	lockVehicleModels sync.RWMutex
	lockReplace       sync.RWMutex
}

func (mock *referenceRepoMock) Countries(ctx context.Context) ([]domain.Country, error) {
	if mock.CountriesFunc == nil {
		panic("referenceRepoMock.CountriesFunc: method is nil but referenceRepo.Countries was just called")
	}
	mock.lockCountries.Lock()
	mock.calls.Countries = append(mock.calls.Countries, struct{}{})
	mock.lockCountries.Unlock()
	return mock.CountriesFunc(ctx)
}

func (mock *referenceRepoMock) CountriesCalls() []struct{} {
	mock.lockCountries.RLock()
	calls := mock.calls.Countries
	mock.lockCountries.RUnlock()
	return calls
}

func (mock *referenceRepoMock) FuelSources(ctx context.Context) ([]domain.FuelSource, error) {
	if mock.FuelSourcesFunc == nil {
		panic("referenceRepoMock.FuelSourcesFunc: method is nil but referenceRepo.FuelSources was just called")
	}
	mock.lockFuelSources.Lock()
	mock.calls.FuelSources = append(mock.calls.FuelSources, struct{}{})
	mock.lockFuelSources.Unlock()
	return mock.FuelSourcesFunc(ctx)
}

func (mock *referenceRepoMock) FuelSourcesCalls() []struct{} {
	mock.lockFuelSources.RLock()
	calls := mock.calls.FuelSources
	mock.lockFuelSources.RUnlock()
	return calls
}

func (mock *referenceRepoMock) VehicleModels(ctx context.Context) ([]domain.VehicleModel, error) {
	if mock.VehicleModelsFunc == nil {
		panic("referenceRepoMock.VehicleModelsFunc: method is nil but referenceRepo.VehicleModels was just called")
	}
	mock.lockVehicleModels.Lock()
	mock.calls.VehicleModels = append(mock.calls.VehicleModels, struct{}{})
	mock.lockVehicleModels.Unlock()
	return mock.VehicleModelsFunc(ctx)
}

func (mock *referenceRepoMock) VehicleModelsCalls() []struct{} {
	mock.lockVehicleModels.RLock()
	calls := mock.calls.VehicleModels
	mock.lockVehicleModels.RUnlock()
	return calls
}

func (mock *referenceRepoMock) Replace(ctx context.Context, data domain.ReferenceData) error {
	if mock.ReplaceFunc == nil {
		panic("referenceRepoMock.ReplaceFunc: method is nil but referenceRepo.Replace was just called")
	}
	callInfo := struct {
		Data domain.ReferenceData
	}{Data: data}
	mock.lockReplace.Lock()
	mock.calls.Replace = append(mock.calls.Replace, callInfo)
	mock.lockReplace.Unlock()
	return mock.ReplaceFunc(ctx, data)
}

func (mock *referenceRepoMock) ReplaceCalls() []struct {
	Data domain.ReferenceData
} {
	mock.lockReplace.RLock()
	calls := mock.calls.Replace
	mock.lockReplace.RUnlock()
	return calls
}

// txManagerMock runs fn inline.
type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		return fn(ctx)
	}
	return mock.RunInTxFunc(ctx, fn)
}
