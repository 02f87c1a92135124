package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// AlertSubject is the subject line of every threshold alert.
const AlertSubject = "Carbon Emission Alert"

var tips = map[domain.ActivityType][]string{
	domain.ActivityElectricity: {
		"Switch to LED lighting and unplug idle devices.",
		"Consider a renewable energy tariff from your supplier.",
	},
	domain.ActivityFlight: {
		"Prefer rail for short trips and combine journeys where possible.",
		"Fly economy; premium seats carry a larger share of emissions.",
	},
	domain.ActivityShipping: {
		"Consolidate shipments and choose ship or rail over air freight.",
	},
	domain.ActivityFuelCombustion: {
		"Service boilers and furnaces regularly and improve insulation.",
	},
	domain.ActivityVehicle: {
		"Car-pool, use public transport, or keep tyres properly inflated.",
	},
}

// PreviousMonth returns the calendar month before now, in UTC.
func PreviousMonth(now time.Time) domain.Period {
	now = now.UTC()
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return domain.Period{Start: end.AddDate(0, -1, 0), End: end}
}

// BuildAlert renders one alert listing every exceeded activity with its
// total, threshold and reduction tips.
func BuildAlert(userID string, period domain.Period, exceeded []domain.ExceededActivity) domain.Alert {
	var b strings.Builder

	fmt.Fprintf(&b, "Carbon emission alert for %s to %s:\n",
		period.Start.Format("2006-01-02"),
		period.End.Add(-time.Nanosecond).Format("2006-01-02"),
	)
	for _, e := range exceeded {
		fmt.Fprintf(&b, "  %s: %s kg (Threshold: %s kg)\n",
			e.Activity.Label(), domain.FormatKg(e.Total), domain.FormatKg(e.Threshold))
	}

	b.WriteString("\nTips to reduce your footprint:\n")
	for _, e := range exceeded {
		for _, tip := range tips[e.Activity] {
			fmt.Fprintf(&b, "  - %s\n", tip)
		}
	}

	return domain.Alert{
		UserID:   userID,
		Period:   period,
		Exceeded: exceeded,
		Subject:  AlertSubject,
		Message:  b.String(),
	}
}
