package emission

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/pkg/ctxutil"
)

// Report is the filtered record list with its total, both at 2 dp.
type Report struct {
	Records []domain.EmissionRecord
	TotalKg decimal.Decimal
}

// Report returns the user's records matching in.
func (s *Service) Report(ctx context.Context, in ReportInput) (*Report, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	rng, err := in.Validate()
	if err != nil {
		return nil, err
	}

	records, err := s.records.Query(ctx, userID, rng)
	if err != nil {
		s.log.ErrorContext(ctx, "query emission records failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("query records: %w: %w", domain.ErrStorage, err)
	}

	if in.descending() {
		slices.Reverse(records)
	}

	return &Report{
		Records: records,
		TotalKg: domain.RoundKg(domain.TotalKg(records)),
	}, nil
}
