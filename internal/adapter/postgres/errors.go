package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// sqlStateErrors maps the SQLSTATE codes the schema can raise.
var sqlStateErrors = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation: same user and recorded_at
	"23503": domain.ErrNotFound,      // foreign_key_violation
	"23514": domain.ErrValidation,    // check_violation: lowercase country code, negative threshold
	"22P02": domain.ErrValidation,    // invalid_text_representation
	"22003": domain.ErrValidation,    // numeric_value_out_of_range: carbon_kg overflow
}

// MapError wraps err as "<entity> <key>: <cause>" where cause is a domain
// sentinel when one applies. Context errors pass through unmapped so
// callers can still tell a timeout from a storage fault.
func MapError(err error, entity, key string) error {
	if err == nil {
		return nil
	}

	cause := err
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
	case errors.Is(err, pgx.ErrNoRows):
		cause = domain.ErrNotFound
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if mapped, ok := sqlStateErrors[pgErr.Code]; ok {
				cause = mapped
			}
		}
	}

	return fmt.Errorf("%s %s: %w", entity, key, cause)
}
