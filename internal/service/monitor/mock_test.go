package monitor

import (
	"context"
	"sync"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

var _ settingsLister = &settingsListerMock{}

type settingsListerMock struct {
	ListSubscribedFunc func(ctx context.Context, freq domain.CheckFrequency) ([]domain.UserSettings, error)

	calls struct {
		ListSubscribed []struct {
			Freq domain.CheckFrequency
		}
	}
	lockListSubscribed sync.RWMutex
}

func (mock *settingsListerMock) ListSubscribed(ctx context.Context, freq domain.CheckFrequency) ([]domain.UserSettings, error) {
	if mock.ListSubscribedFunc == nil {
		panic("settingsListerMock.ListSubscribedFunc: method is nil but settingsLister.ListSubscribed was just called")
	}
	mock.lockListSubscribed.Lock()
	mock.calls.ListSubscribed = append(mock.calls.ListSubscribed, struct{ Freq domain.CheckFrequency }{Freq: freq})
	mock.lockListSubscribed.Unlock()
	return mock.ListSubscribedFunc(ctx, freq)
}

func (mock *settingsListerMock) ListSubscribedCalls() []struct{ Freq domain.CheckFrequency } {
	mock.lockListSubscribed.RLock()
	calls := mock.calls.ListSubscribed
	mock.lockListSubscribed.RUnlock()
	return calls
}

var _ recordQuerier = &recordQuerierMock{}

type recordQuerierMock struct {
	QueryFunc func(ctx context.Context, userID string, rng domain.TimeRange) ([]domain.EmissionRecord, error)

	calls struct {
		Query []struct {
			UserID string
			Rng    domain.TimeRange
		}
	}
	lockQuery sync.RWMutex
}

func (mock *recordQuerierMock) Query(ctx context.Context, userID string, rng domain.TimeRange) ([]domain.EmissionRecord, error) {
	if mock.QueryFunc == nil {
		panic("recordQuerierMock.QueryFunc: method is nil but recordQuerier.Query was just called")
	}
	callInfo := struct {
		UserID string
		Rng    domain.TimeRange
	}{UserID: userID, Rng: rng}
	mock.lockQuery.Lock()
	mock.calls.Query = append(mock.calls.Query, callInfo)
	mock.lockQuery.Unlock()
	return mock.QueryFunc(ctx, userID, rng)
}

func (mock *recordQuerierMock) QueryCalls() []struct {
	UserID string
	Rng    domain.TimeRange
} {
	mock.lockQuery.RLock()
	calls := mock.calls.Query
	mock.lockQuery.RUnlock()
	return calls
}

var _ publisher = &publisherMock{}

type publisherMock struct {
	PublishFunc func(ctx context.Context, alert domain.Alert) error

	calls struct {
		Publish []struct {
			Alert domain.Alert
		}
	}
	lockPublish sync.RWMutex
}

func (mock *publisherMock) Publish(ctx context.Context, alert domain.Alert) error {
	if mock.PublishFunc == nil {
		panic("publisherMock.PublishFunc: method is nil but publisher.Publish was just called")
	}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, struct{ Alert domain.Alert }{Alert: alert})
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, alert)
}

func (mock *publisherMock) PublishCalls() []struct{ Alert domain.Alert } {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
