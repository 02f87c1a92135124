// Package emission implements the append-only emission record store using
// PostgreSQL. Rows are keyed by (user_id, recorded_at); carbon_kg crosses
// the driver boundary as a decimal string.
package emission

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

const table = "emission_records"

// Repo provides emission record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new emission record repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write
// ---------------------------------------------------------------------------

// Append writes one record. The caller stamps and rounds it; Append stores
// it as given in a single INSERT.
func (r *Repo) Append(ctx context.Context, rec domain.EmissionRecord) error {
	params, err := json.Marshal(rec.Params)
	if err != nil {
		return fmt.Errorf("encode input params: %w", err)
	}

	insert := postgres.Builder.
		Insert(table).
		Columns("user_id", "recorded_at", "activity_type", "input_params", "carbon_kg").
		Values(
			rec.UserID,
			rec.Timestamp.UTC(),
			rec.ActivityType.String(),
			sq.Expr("?::jsonb", string(params)),
			sq.Expr("?::numeric", rec.CarbonKg.String()),
		)

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := postgres.Exec(ctx, q, insert); err != nil {
		return postgres.MapError(err, "emission_record", rec.UserID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Read
// ---------------------------------------------------------------------------

// Query returns the user's records inside rng, oldest first. Returns an
// empty slice (not nil) when nothing matches.
func (r *Repo) Query(ctx context.Context, userID string, rng domain.TimeRange) ([]domain.EmissionRecord, error) {
	query := postgres.Builder.
		Select("recorded_at", "activity_type", "input_params::text", "carbon_kg::text").
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("recorded_at ASC")

	if rng.Start != nil {
		query = query.Where(sq.GtOrEq{"recorded_at": rng.Start.UTC()})
	}
	if rng.End != nil {
		if rng.EndExclusive {
			query = query.Where(sq.Lt{"recorded_at": rng.End.UTC()})
		} else {
			query = query.Where(sq.LtOrEq{"recorded_at": rng.End.UTC()})
		}
	}
	if rng.Activity != nil {
		query = query.Where(sq.Eq{"activity_type": rng.Activity.String()})
	}

	rows, err := postgres.Query(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "emission_record", userID)
	}
	defer rows.Close()

	records, err := scanRecords(rows, userID)
	if err != nil {
		return nil, postgres.MapError(err, "emission_record", userID)
	}

	return records, nil
}

func scanRecords(rows pgx.Rows, userID string) ([]domain.EmissionRecord, error) {
	records := make([]domain.EmissionRecord, 0)

	for rows.Next() {
		var (
			ts       time.Time
			activity string
			params   string
			kg       string
		)
		if err := rows.Scan(&ts, &activity, &params, &kg); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		rec, err := toDomain(userID, ts, activity, params, kg)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return records, nil
}

func toDomain(userID string, ts time.Time, activity, params, kg string) (domain.EmissionRecord, error) {
	at := domain.ActivityType(activity)

	in, err := domain.DecodeActivityInput(at, []byte(params))
	if err != nil {
		return domain.EmissionRecord{}, err
	}

	carbon, err := decimal.NewFromString(kg)
	if err != nil {
		return domain.EmissionRecord{}, fmt.Errorf("parse carbon_kg %q: %w", kg, err)
	}

	return domain.EmissionRecord{
		UserID:       userID,
		ActivityType: at,
		Params:       in,
		CarbonKg:     carbon,
		Timestamp:    ts.UTC(),
	}, nil
}
