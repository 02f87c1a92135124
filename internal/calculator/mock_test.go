package calculator

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/carbontrack-backend/internal/adapter/provider/carboninterface"
)

var _ estimator = &estimatorMock{}

type estimatorMock struct {
	EstimateFunc func(ctx context.Context, req carboninterface.Request) (decimal.Decimal, error)

	calls struct {
		Estimate []struct {
			Ctx context.Context
			Req carboninterface.Request
		}
	}
	lockEstimate sync.RWMutex
}

func (mock *estimatorMock) Estimate(ctx context.Context, req carboninterface.Request) (decimal.Decimal, error) {
	if mock.EstimateFunc == nil {
		panic("estimatorMock.EstimateFunc: method is nil but estimator.Estimate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req carboninterface.Request
	}{Ctx: ctx, Req: req}
	mock.lockEstimate.Lock()
	mock.calls.Estimate = append(mock.calls.Estimate, callInfo)
	mock.lockEstimate.Unlock()
	return mock.EstimateFunc(ctx, req)
}

func (mock *estimatorMock) EstimateCalls() []struct {
	Ctx context.Context
	Req carboninterface.Request
} {
	mock.lockEstimate.RLock()
	calls := mock.calls.Estimate
	mock.lockEstimate.RUnlock()
	return calls
}

var _ fuelResolver = &fuelResolverMock{}

type fuelResolverMock struct {
	FuelAPINameFunc func(ctx context.Context, sourceType, unit string) (string, error)

	calls struct {
		FuelAPIName []struct {
			Ctx        context.Context
			SourceType string
			Unit       string
		}
	}
	lockFuelAPIName sync.RWMutex
}

func (mock *fuelResolverMock) FuelAPIName(ctx context.Context, sourceType, unit string) (string, error) {
	if mock.FuelAPINameFunc == nil {
		panic("fuelResolverMock.FuelAPINameFunc: method is nil but fuelResolver.FuelAPIName was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		SourceType string
		Unit       string
	}{Ctx: ctx, SourceType: sourceType, Unit: unit}
	mock.lockFuelAPIName.Lock()
	mock.calls.FuelAPIName = append(mock.calls.FuelAPIName, callInfo)
	mock.lockFuelAPIName.Unlock()
	return mock.FuelAPINameFunc(ctx, sourceType, unit)
}

func (mock *fuelResolverMock) FuelAPINameCalls() []struct {
	Ctx        context.Context
	SourceType string
	Unit       string
} {
	mock.lockFuelAPIName.RLock()
	calls := mock.calls.FuelAPIName
	mock.lockFuelAPIName.RUnlock()
	return calls
}
