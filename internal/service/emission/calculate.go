package emission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/pkg/ctxutil"
)

// Two requests from one user can land on the same microsecond; the key is
// (user_id, recorded_at), so the stamp is nudged forward and retried.
const maxStampAttempts = 3

// Calculate validates in, estimates it and appends one record for the
// user in ctx. The estimator is never called for invalid input.
func (s *Service) Calculate(ctx context.Context, in domain.ActivityInput) (*domain.EmissionRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if in == nil {
		return nil, domain.NewValidationError("activity", "input is required")
	}

	in = domain.NormalizeInput(in)

	if err := s.validator.Validate(ctx, in); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		s.log.ErrorContext(ctx, "validation lookup failed",
			slog.String("user_id", userID),
			slog.String("activity_type", in.Activity().String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("validate input: %w: %w", domain.ErrStorage, err)
	}

	kg, ok := s.calculator.Calculate(ctx, in)
	if !ok {
		return nil, fmt.Errorf("%s: %w", in.Activity(), domain.ErrCalculationFailed)
	}

	rec := domain.EmissionRecord{
		UserID:       userID,
		ActivityType: in.Activity(),
		Params:       in,
		CarbonKg:     domain.RoundKg(kg),
		Timestamp:    s.now().UTC().Truncate(time.Microsecond),
	}

	if err := s.append(ctx, &rec); err != nil {
		s.log.ErrorContext(ctx, "store emission record failed",
			slog.String("user_id", userID),
			slog.String("activity_type", rec.ActivityType.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("store record: %w: %w", domain.ErrStorage, err)
	}

	s.log.InfoContext(ctx, "emission recorded",
		slog.String("user_id", userID),
		slog.String("activity_type", rec.ActivityType.String()),
		slog.String("carbon_kg", domain.FormatKg(rec.CarbonKg)),
	)

	return &rec, nil
}

func (s *Service) append(ctx context.Context, rec *domain.EmissionRecord) error {
	var err error
	for range maxStampAttempts {
		err = s.records.Append(ctx, *rec)
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return err
		}
		rec.Timestamp = rec.Timestamp.Add(time.Microsecond)
	}
	return err
}
