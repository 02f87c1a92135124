package emission

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// recordRepoMock
// ---------------------------------------------------------------------------

var _ recordRepo = &recordRepoMock{}

type recordRepoMock struct {
	AppendFunc func(ctx context.Context, rec domain.EmissionRecord) error
	QueryFunc  func(ctx context.Context, userID string, rng domain.TimeRange) ([]domain.EmissionRecord, error)

	calls struct {
		Append []struct {
			Rec domain.EmissionRecord
		}
		Query []struct {
			UserID string
			Rng    domain.TimeRange
		}
	}
	lockAppend sync.RWMutex
	lockQuery  sync.RWMutex
}

func (mock *recordRepoMock) Append(ctx context.Context, rec domain.EmissionRecord) error {
	if mock.AppendFunc == nil {
		panic("recordRepoMock.AppendFunc: method is nil but recordRepo.Append was just called")
	}
	callInfo := struct {
		Rec domain.EmissionRecord
	}{Rec: rec}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, rec)
}

func (mock *recordRepoMock) AppendCalls() []struct {
	Rec domain.EmissionRecord
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *recordRepoMock) Query(ctx context.Context, userID string, rng domain.TimeRange) ([]domain.EmissionRecord, error) {
	if mock.QueryFunc == nil {
		panic("recordRepoMock.QueryFunc: method is nil but recordRepo.Query was just called")
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

func (mock *recordRepoMock) QueryCalls() []struct {
	UserID string
	Rng    domain.TimeRange
} {
	mock.lockQuery.RLock()
	calls := mock.calls.Query
	mock.lockQuery.RUnlock()
	return calls
}

// ---------------------------------------------------------------------------
// validatorMock
// ---------------------------------------------------------------------------

var _ validator = &validatorMock{}

type validatorMock struct {
	ValidateFunc func(ctx context.Context, in domain.ActivityInput) error

	calls struct {
		Validate []struct {
			In domain.ActivityInput
		}
	}
	lockValidate sync.RWMutex
}

func (mock *validatorMock) Validate(ctx context.Context, in domain.ActivityInput) error {
	if mock.ValidateFunc == nil {
		panic("validatorMock.ValidateFunc: method is nil but validator.Validate was just called")
	}
	callInfo := struct {
		In domain.ActivityInput
	}{In: in}
	mock.lockValidate.Lock()
	mock.calls.Validate = append(mock.calls.Validate, callInfo)
	mock.lockValidate.Unlock()
	return mock.ValidateFunc(ctx, in)
}

func (mock *validatorMock) ValidateCalls() []struct {
	In domain.ActivityInput
} {
	mock.lockValidate.RLock()
	calls := mock.calls.Validate
	mock.lockValidate.RUnlock()
	return calls
}

// ---------------------------------------------------------------------------
// calculatorMock
// ---------------------------------------------------------------------------

var _ calculator = &calculatorMock{}

type calculatorMock struct {
	CalculateFunc func(ctx context.Context, in domain.ActivityInput) (decimal.Decimal, bool)

	calls struct {
		Calculate []struct {
			In domain.ActivityInput
		}
	}
	lockCalculate sync.RWMutex
}

func (mock *calculatorMock) Calculate(ctx context.Context, in domain.ActivityInput) (decimal.Decimal, bool) {
	if mock.CalculateFunc == nil {
		panic("calculatorMock.CalculateFunc: method is nil but calculator.Calculate was just called")
	}
	callInfo := struct {
		In domain.ActivityInput
	}{In: in}
	mock.lockCalculate.Lock()
	mock.calls.Calculate = append(mock.calls.Calculate, callInfo)
	mock.lockCalculate.Unlock()
	return mock.CalculateFunc(ctx, in)
}

func (mock *calculatorMock) CalculateCalls() []struct {
	In domain.ActivityInput
} {
	mock.lockCalculate.RLock()
	calls := mock.calls.Calculate
	mock.lockCalculate.RUnlock()
	return calls
}

// ---------------------------------------------------------------------------
// memRepo is an in-memory record store for scenario tests.
// ---------------------------------------------------------------------------

type memRepo struct {
	mu      sync.Mutex
	records []domain.EmissionRecord
}

func (r *memRepo) Append(_ context.Context, rec domain.EmissionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.UserID == rec.UserID && existing.Timestamp.Equal(rec.Timestamp) {
			return domain.ErrAlreadyExists
		}
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *memRepo) Query(_ context.Context, userID string, rng domain.TimeRange) ([]domain.EmissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EmissionRecord, 0)
	for _, rec := range r.records {
		if rec.UserID != userID || !rng.Contains(rec.Timestamp) {
			continue
		}
		if rng.Activity != nil && rec.ActivityType != *rng.Activity {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
