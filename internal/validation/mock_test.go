package validation

import (
	"context"
	"sync"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

var _ referenceLookup = &referenceLookupMock{}

type referenceLookupMock struct {
	CountriesFunc func(ctx context.Context) ([]domain.Country, error)

	FuelUnitsFunc func(ctx context.Context, sourceType string) ([]string, error)

	calls struct {
		Countries []struct {
			Ctx context.Context
		}
		FuelUnits []struct {
			Ctx        context.Context
			SourceType string
		}
	}
	lockCountries sync.RWMutex
	lockFuelUnits sync.RWMutex
}

func (mock *referenceLookupMock) Countries(ctx context.Context) ([]domain.Country, error) {
	if mock.CountriesFunc == nil {
		panic("referenceLookupMock.CountriesFunc: method is nil but referenceLookup.Countries was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockCountries.Lock()
	mock.calls.Countries = append(mock.calls.Countries, callInfo)
	mock.lockCountries.Unlock()
	return mock.CountriesFunc(ctx)
}

func (mock *referenceLookupMock) CountriesCalls() []struct {
	Ctx context.Context
} {
	mock.lockCountries.RLock()
	calls := mock.calls.Countries
	mock.lockCountries.RUnlock()
	return calls
}

func (mock *referenceLookupMock) FuelUnits(ctx context.Context, sourceType string) ([]string, error) {
	if mock.FuelUnitsFunc == nil {
		panic("referenceLookupMock.FuelUnitsFunc: method is nil but referenceLookup.FuelUnits was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		SourceType string
	}{Ctx: ctx, SourceType: sourceType}
	mock.lockFuelUnits.Lock()
	mock.calls.FuelUnits = append(mock.calls.FuelUnits, callInfo)
	mock.lockFuelUnits.Unlock()
	return mock.FuelUnitsFunc(ctx, sourceType)
}

func (mock *referenceLookupMock) FuelUnitsCalls() []struct {
	Ctx        context.Context
	SourceType string
} {
	mock.lockFuelUnits.RLock()
	calls := mock.calls.FuelUnits
	mock.lockFuelUnits.RUnlock()
	return calls
}
