package settings

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

var _ settingsRepo = &settingsRepoMock{}

type settingsRepoMock struct {
	GetFunc             func(ctx context.Context, userID string) (*domain.UserSettings, error)
	UpsertFunc          func(ctx context.Context, s *domain.UserSettings) (*domain.UserSettings, error)
	SetSubscriptionFunc func(ctx context.Context, userID string, subscribed bool, email *string, now time.Time) error

	calls struct {
		Get []struct {
			UserID string
		}
		Upsert []struct {
			S *domain.UserSettings
		}
		SetSubscription []struct {
			UserID     string
			Subscribed bool
			Email      *string
			Now        time.Time
		}
	}
	lockGet             sync.RWMutex
	lockUpsert          sync.RWMutex
	lockSetSubscription sync.RWMutex
}

func (mock *settingsRepoMock) Get(ctx context.Context, userID string) (*domain.UserSettings, error) {
	if mock.GetFunc == nil {
		panic("settingsRepoMock.GetFunc: method is nil but settingsRepo.Get was just called")
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, struct{ UserID string }{UserID: userID})
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID)
}

func (mock *settingsRepoMock) GetCalls() []struct{ UserID string } {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *settingsRepoMock) Upsert(ctx context.Context, s *domain.UserSettings) (*domain.UserSettings, error) {
	if mock.UpsertFunc == nil {
		panic("settingsRepoMock.UpsertFunc: method is nil but settingsRepo.Upsert was just called")
	}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, struct{ S *domain.UserSettings }{S: s})
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, s)
}

func (mock *settingsRepoMock) UpsertCalls() []struct{ S *domain.UserSettings } {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

func (mock *settingsRepoMock) SetSubscription(ctx context.Context, userID string, subscribed bool, email *string, now time.Time) error {
	if mock.SetSubscriptionFunc == nil {
		panic("settingsRepoMock.SetSubscriptionFunc: method is nil but settingsRepo.SetSubscription was just called")
	}
	callInfo := struct {
		UserID     string
		Subscribed bool
		Email      *string
		Now        time.Time
	}{UserID: userID, Subscribed: subscribed, Email: email, Now: now}
	mock.lockSetSubscription.Lock()
	mock.calls.SetSubscription = append(mock.calls.SetSubscription, callInfo)
	mock.lockSetSubscription.Unlock()
	return mock.SetSubscriptionFunc(ctx, userID, subscribed, email, now)
}

func (mock *settingsRepoMock) SetSubscriptionCalls() []struct {
	UserID     string
	Subscribed bool
	Email      *string
	Now        time.Time
} {
	mock.lockSetSubscription.RLock()
	calls := mock.calls.SetSubscription
	mock.lockSetSubscription.RUnlock()
	return calls
}

var _ subscriber = &subscriberMock{}

type subscriberMock struct {
	SubscribeFunc   func(ctx context.Context, userID, email string) error
	UnsubscribeFunc func(ctx context.Context, email string) error

	calls struct {
		Subscribe []struct {
			UserID string
			Email  string
		}
		Unsubscribe []struct {
			Email string
		}
	}
	lockSubscribe   sync.RWMutex
	lockUnsubscribe sync.RWMutex
}

func (mock *subscriberMock) Subscribe(ctx context.Context, userID, email string) error {
	if mock.SubscribeFunc == nil {
		panic("subscriberMock.SubscribeFunc: method is nil but subscriber.Subscribe was just called")
	}
	callInfo := struct {
		UserID string
		Email  string
	}{UserID: userID, Email: email}
	mock.lockSubscribe.Lock()
	mock.calls.Subscribe = append(mock.calls.Subscribe, callInfo)
	mock.lockSubscribe.Unlock()
	return mock.SubscribeFunc(ctx, userID, email)
}

func (mock *subscriberMock) SubscribeCalls() []struct {
	UserID string
	Email  string
} {
	mock.lockSubscribe.RLock()
	calls := mock.calls.Subscribe
	mock.lockSubscribe.RUnlock()
	return calls
}

func (mock *subscriberMock) Unsubscribe(ctx context.Context, email string) error {
	if mock.UnsubscribeFunc == nil {
		panic("subscriberMock.UnsubscribeFunc: method is nil but subscriber.Unsubscribe was just called")
	}
	mock.lockUnsubscribe.Lock()
	mock.calls.Unsubscribe = append(mock.calls.Unsubscribe, struct{ Email string }{Email: email})
	mock.lockUnsubscribe.Unlock()
	return mock.UnsubscribeFunc(ctx, email)
}

func (mock *subscriberMock) UnsubscribeCalls() []struct{ Email string } {
	mock.lockUnsubscribe.RLock()
	calls := mock.calls.Unsubscribe
	mock.lockUnsubscribe.RUnlock()
	return calls
}
