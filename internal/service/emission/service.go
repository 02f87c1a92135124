// Package emission records activity emissions and reports them back.
package emission

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type recordRepo interface {
	Append(ctx context.Context, rec domain.EmissionRecord) error
	Query(ctx context.Context, userID string, rng domain.TimeRange) ([]domain.EmissionRecord, error)
}

type validator interface {
	Validate(ctx context.Context, in domain.ActivityInput) error
}

type calculator interface {
	Calculate(ctx context.Context, in domain.ActivityInput) (decimal.Decimal, bool)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements calculate, report and export.
type Service struct {
	log        *slog.Logger
	records    recordRepo
	validator  validator
	calculator calculator
	now        func() time.Time
}

// NewService creates a new emission Service.
func NewService(
	logger *slog.Logger,
	records recordRepo,
	validator validator,
	calculator calculator,
) *Service {
	return &Service{
		log:        logger.With("service", "emission"),
		records:    records,
		validator:  validator,
		calculator: calculator,
		now:        time.Now,
	}
}
