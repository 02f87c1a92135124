package emission

import (
	"strings"
	"time"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// Sort orders for reports.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ReportInput selects records for a report or export. Dates are
// YYYY-MM-DD in UTC; an empty date leaves that side of the range open.
// EndDate covers the whole day.
type ReportInput struct {
	StartDate    string
	EndDate      string
	ActivityType string
	Order        string
}

// Validate parses the input into a range. It collects every error.
func (i ReportInput) Validate() (domain.TimeRange, error) {
	var (
		errs []domain.FieldError
		rng  domain.TimeRange
	)

	if s := strings.TrimSpace(i.StartDate); s != "" {
		start, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "start_date", Message: "must be a date in YYYY-MM-DD format"})
		} else {
			rng.Start = &start
		}
	}

	if s := strings.TrimSpace(i.EndDate); s != "" {
		end, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "end_date", Message: "must be a date in YYYY-MM-DD format"})
		} else {
			endExclusive := end.AddDate(0, 0, 1)
			rng.End = &endExclusive
			rng.EndExclusive = true
		}
	}

	if rng.Start != nil && rng.End != nil && !rng.Start.Before(*rng.End) {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "must not be before start_date"})
	}

	if s := strings.TrimSpace(i.ActivityType); s != "" {
		a := domain.ActivityType(strings.ToLower(s))
		if !a.IsValid() {
			errs = append(errs, domain.FieldError{Field: "activity_type", Message: "unknown activity type"})
		} else {
			rng.Activity = &a
		}
	}

	switch strings.ToLower(strings.TrimSpace(i.Order)) {
	case "", OrderAsc, OrderDesc:
	default:
		errs = append(errs, domain.FieldError{Field: "order", Message: "must be asc or desc"})
	}

	if len(errs) > 0 {
		return domain.TimeRange{}, domain.NewValidationErrors(errs)
	}
	return rng, nil
}

func (i ReportInput) descending() bool {
	return strings.EqualFold(strings.TrimSpace(i.Order), OrderDesc)
}
