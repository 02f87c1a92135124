// Package settings implements the user settings repository using PostgreSQL.
package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

const table = "user_settings"

// Repo provides user settings persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func thresholdColumn(a domain.ActivityType) string {
	return a.String() + "_threshold"
}

func selectColumns() []string {
	cols := []string{"user_id"}
	for _, a := range domain.ActivityTypes {
		cols = append(cols, thresholdColumn(a)+"::text")
	}
	return append(cols, "emission_check_frequency", "subscribed", "email", "updated_at")
}

// ---------------------------------------------------------------------------
// Read
// ---------------------------------------------------------------------------

// Get returns the stored settings for userID, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, userID string) (*domain.UserSettings, error) {
	query := postgres.Builder.
		Select(selectColumns()...).
		From(table).
		Where(sq.Eq{"user_id": userID})

	s, err := scanSettings(postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), query))
	if err != nil {
		return nil, postgres.MapError(err, "user_settings", userID)
	}

	return s, nil
}

// ListSubscribed returns every subscribed user whose check frequency is
// freq, ordered by user id.
func (r *Repo) ListSubscribed(ctx context.Context, freq domain.CheckFrequency) ([]domain.UserSettings, error) {
	query := postgres.Builder.
		Select(selectColumns()...).
		From(table).
		Where(sq.Eq{"emission_check_frequency": string(freq), "subscribed": true}).
		OrderBy("user_id")

	rows, err := postgres.Query(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "user_settings", string(freq))
	}
	defer rows.Close()

	result := make([]domain.UserSettings, 0)
	for rows.Next() {
		s, err := scanSettings(rows)
		if err != nil {
			return nil, postgres.MapError(err, "user_settings", string(freq))
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "user_settings", string(freq))
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Write
// ---------------------------------------------------------------------------

// Upsert stores thresholds and frequency, creating the row on first write.
// Subscription columns are left untouched on update.
func (r *Repo) Upsert(ctx context.Context, s *domain.UserSettings) (*domain.UserSettings, error) {
	cols := []string{"user_id"}
	vals := []any{s.UserID}
	sets := make([]string, 0, len(domain.ActivityTypes)+2)

	for _, a := range domain.ActivityTypes {
		col := thresholdColumn(a)
		cols = append(cols, col)
		vals = append(vals, sq.Expr("?::numeric", s.Threshold(a).String()))
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	cols = append(cols, "emission_check_frequency", "updated_at")
	vals = append(vals, string(s.Frequency), s.UpdatedAt.UTC())
	sets = append(sets,
		"emission_check_frequency = EXCLUDED.emission_check_frequency",
		"updated_at = EXCLUDED.updated_at",
	)

	insert := postgres.Builder.
		Insert(table).
		Columns(cols...).
		Values(vals...).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET " + strings.Join(sets, ", ")).
		Suffix("RETURNING " + strings.Join(selectColumns(), ", "))

	saved, err := scanSettings(postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), insert))
	if err != nil {
		return nil, postgres.MapError(err, "user_settings", s.UserID)
	}

	return saved, nil
}

// SetSubscription records the subscription flag and address, creating the
// row with default thresholds if the user has none yet.
func (r *Repo) SetSubscription(ctx context.Context, userID string, subscribed bool, email *string, now time.Time) error {
	insert := postgres.Builder.
		Insert(table).
		Columns("user_id", "subscribed", "email", "updated_at").
		Values(userID, subscribed, email, now.UTC()).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			subscribed = EXCLUDED.subscribed,
			email = EXCLUDED.email,
			updated_at = EXCLUDED.updated_at`)

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), insert); err != nil {
		return postgres.MapError(err, "user_settings", userID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func scanSettings(row pgx.Row) (*domain.UserSettings, error) {
	var (
		s          domain.UserSettings
		thresholds = make([]string, len(domain.ActivityTypes))
		freq       string
	)

	dest := []any{&s.UserID}
	for i := range thresholds {
		dest = append(dest, &thresholds[i])
	}
	dest = append(dest, &freq, &s.Subscribed, &s.Email, &s.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	s.Thresholds = make(map[domain.ActivityType]decimal.Decimal, len(domain.ActivityTypes))
	for i, a := range domain.ActivityTypes {
		v, err := decimal.NewFromString(thresholds[i])
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", thresholdColumn(a), err)
		}
		s.Thresholds[a] = v
	}
	s.Frequency = domain.CheckFrequency(freq)
	s.UpdatedAt = s.UpdatedAt.UTC()

	return &s, nil
}
