package rest

import (
	"context"
	"io"
	"sync"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/internal/service/emission"
	"github.com/heartmarshall/carbontrack-backend/internal/service/settings"
)

var _ emissionService = &emissionServiceMock{}

type emissionServiceMock struct {
	CalculateFunc func(ctx context.Context, in domain.ActivityInput) (*domain.EmissionRecord, error)
	ReportFunc    func(ctx context.Context, in emission.ReportInput) (*emission.Report, error)
	ExportCSVFunc func(ctx context.Context, in emission.ReportInput, w io.Writer) error

	calls struct {
		Calculate []struct {
			In domain.ActivityInput
		}
		Report []struct {
			In emission.ReportInput
		}
		ExportCSV []struct {
			In emission.ReportInput
		}
	}
	lockCalculate sync.RWMutex
	lockReport    sync.RWMutex
	lockExportCSV sync.RWMutex
}

func (mock *emissionServiceMock) Calculate(ctx context.Context, in domain.ActivityInput) (*domain.EmissionRecord, error) {
	if mock.CalculateFunc == nil {
		panic("emissionServiceMock.CalculateFunc: method is nil but emissionService.Calculate was just called")
	}
	mock.lockCalculate.Lock()
	mock.calls.Calculate = append(mock.calls.Calculate, struct{ In domain.ActivityInput }{In: in})
	mock.lockCalculate.Unlock()
	return mock.CalculateFunc(ctx, in)
}

func (mock *emissionServiceMock) CalculateCalls() []struct{ In domain.ActivityInput } {
	mock.lockCalculate.RLock()
	calls := mock.calls.Calculate
	mock.lockCalculate.RUnlock()
	return calls
}

func (mock *emissionServiceMock) Report(ctx context.Context, in emission.ReportInput) (*emission.Report, error) {
	if mock.ReportFunc == nil {
		panic("emissionServiceMock.ReportFunc: method is nil but emissionService.Report was just called")
	}
	mock.lockReport.Lock()
	mock.calls.Report = append(mock.calls.Report, struct{ In emission.ReportInput }{In: in})
	mock.lockReport.Unlock()
	return mock.ReportFunc(ctx, in)
}

func (mock *emissionServiceMock) ReportCalls() []struct{ In emission.ReportInput } {
	mock.lockReport.RLock()
	calls := mock.calls.Report
	mock.lockReport.RUnlock()
	return calls
}

func (mock *emissionServiceMock) ExportCSV(ctx context.Context, in emission.ReportInput, w io.Writer) error {
	if mock.ExportCSVFunc == nil {
		panic("emissionServiceMock.ExportCSVFunc: method is nil but emissionService.ExportCSV was just called")
	}
	mock.lockExportCSV.Lock()
	mock.calls.ExportCSV = append(mock.calls.ExportCSV, struct{ In emission.ReportInput }{In: in})
	mock.lockExportCSV.Unlock()
	return mock.ExportCSVFunc(ctx, in, w)
}

func (mock *emissionServiceMock) ExportCSVCalls() []struct{ In emission.ReportInput } {
	mock.lockExportCSV.RLock()
	calls := mock.calls.ExportCSV
	mock.lockExportCSV.RUnlock()
	return calls
}

var _ settingsService = &settingsServiceMock{}

type settingsServiceMock struct {
	GetFunc         func(ctx context.Context) (*domain.UserSettings, error)
	UpdateFunc      func(ctx context.Context, in settings.UpdateInput) (*domain.UserSettings, error)
	SubscribeFunc   func(ctx context.Context, in settings.SubscribeInput) (*domain.UserSettings, error)
	UnsubscribeFunc func(ctx context.Context) (*domain.UserSettings, error)

	calls struct {
		Update []struct {
			In settings.UpdateInput
		}
		Subscribe []struct {
			In settings.SubscribeInput
		}
	}
	lockUpdate    sync.RWMutex
	lockSubscribe sync.RWMutex
}

func (mock *settingsServiceMock) Get(ctx context.Context) (*domain.UserSettings, error) {
	if mock.GetFunc == nil {
		panic("settingsServiceMock.GetFunc: method is nil but settingsService.Get was just called")
	}
	return mock.GetFunc(ctx)
}

func (mock *settingsServiceMock) Update(ctx context.Context, in settings.UpdateInput) (*domain.UserSettings, error) {
	if mock.UpdateFunc == nil {
		panic("settingsServiceMock.UpdateFunc: method is nil but settingsService.Update was just called")
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, struct{ In settings.UpdateInput }{In: in})
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, in)
}

func (mock *settingsServiceMock) UpdateCalls() []struct{ In settings.UpdateInput } {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *settingsServiceMock) Subscribe(ctx context.Context, in settings.SubscribeInput) (*domain.UserSettings, error) {
	if mock.SubscribeFunc == nil {
		panic("settingsServiceMock.SubscribeFunc: method is nil but settingsService.Subscribe was just called")
	}
	mock.lockSubscribe.Lock()
	mock.calls.Subscribe = append(mock.calls.Subscribe, struct{ In settings.SubscribeInput }{In: in})
	mock.lockSubscribe.Unlock()
	return mock.SubscribeFunc(ctx, in)
}

func (mock *settingsServiceMock) SubscribeCalls() []struct{ In settings.SubscribeInput } {
	mock.lockSubscribe.RLock()
	calls := mock.calls.Subscribe
	mock.lockSubscribe.RUnlock()
	return calls
}

func (mock *settingsServiceMock) Unsubscribe(ctx context.Context) (*domain.UserSettings, error) {
	if mock.UnsubscribeFunc == nil {
		panic("settingsServiceMock.UnsubscribeFunc: method is nil but settingsService.Unsubscribe was just called")
	}
	return mock.UnsubscribeFunc(ctx)
}

// fakeReference serves fixed lists; err, when set, is returned by every call.
type fakeReference struct {
	err error
}

func (f fakeReference) Countries(context.Context) ([]domain.Country, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Country{{Code: "CA", Name: "Canada"}, {Code: "US", Name: "United States"}}, nil
}

func (f fakeReference) FuelSourceTypes(context.Context) ([]string, error) {
	return []string{"ng", "dfo"}, f.err
}

func (f fakeReference) FuelUnits(_ context.Context, sourceType string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if sourceType != "ng" {
		return nil, domain.ErrNotFound
	}
	return []string{"btu", "thousand_cubic_feet"}, nil
}

func (f fakeReference) VehicleMakes(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}

func (f fakeReference) VehicleModels(_ context.Context, vehicleMake string) ([]domain.VehicleModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	if vehicleMake != "Toyota" {
		return nil, domain.ErrNotFound
	}
	return []domain.VehicleModel{{ID: "7268a9b7-17e8-4c8d-acca-57059252afe9", Name: "Corolla", Year: 1993, Make: "Toyota"}}, nil
}
