package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// KgPlaces is the number of fractional digits kept for carbon_kg.
const KgPlaces = 2

// EmissionRecord is one stored calculation result. Records are immutable.
type EmissionRecord struct {
	UserID       string
	ActivityType ActivityType
	Params       ActivityInput
	CarbonKg     decimal.Decimal
	Timestamp    time.Time
}

// RoundKg rounds half away from zero to two places, which for the
// non-negative masses stored here is round-half-up: 15.255 -> 15.26.
func RoundKg(d decimal.Decimal) decimal.Decimal {
	return d.Round(KgPlaces)
}

// FormatKg renders a mass with exactly two fractional digits.
func FormatKg(d decimal.Decimal) string {
	return d.StringFixed(KgPlaces)
}

// TimeRange restricts a record query. Nil bounds are open. The interval is
// closed unless EndExclusive is set.
type TimeRange struct {
	Start        *time.Time
	End          *time.Time
	EndExclusive bool
	Activity     *ActivityType
}

// Contains reports whether t falls inside the range.
func (r TimeRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil {
		if r.EndExclusive && !t.Before(*r.End) {
			return false
		}
		if t.After(*r.End) {
			return false
		}
	}
	return true
}

// Period is a half-open reporting window [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// Range converts the period into a half-open TimeRange.
func (p Period) Range() TimeRange {
	start, end := p.Start, p.End
	return TimeRange{Start: &start, End: &end, EndExclusive: true}
}

// TotalKg sums carbon_kg over records.
func TotalKg(records []EmissionRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.CarbonKg)
	}
	return total
}

// SumByActivity sums carbon_kg per activity type.
func SumByActivity(records []EmissionRecord) map[ActivityType]decimal.Decimal {
	sums := make(map[ActivityType]decimal.Decimal)
	for _, r := range records {
		sums[r.ActivityType] = sums[r.ActivityType].Add(r.CarbonKg)
	}
	return sums
}
