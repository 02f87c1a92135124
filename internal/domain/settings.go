package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserSettings holds a user's alerting preferences. One row per user,
// created on first write and never deleted.
type UserSettings struct {
	UserID     string
	Thresholds map[ActivityType]decimal.Decimal
	Frequency  CheckFrequency
	Subscribed bool
	Email      *string
	UpdatedAt  time.Time
}

// DefaultSettings is what a user sees before saving anything.
func DefaultSettings(userID string) *UserSettings {
	thresholds := make(map[ActivityType]decimal.Decimal, len(ActivityTypes))
	for _, a := range ActivityTypes {
		thresholds[a] = decimal.Zero
	}
	return &UserSettings{
		UserID:     userID,
		Thresholds: thresholds,
		Frequency:  CheckNever,
	}
}

// Threshold returns the limit for activity, zero when unset.
func (s *UserSettings) Threshold(activity ActivityType) decimal.Decimal {
	if s.Thresholds == nil {
		return decimal.Zero
	}
	return s.Thresholds[activity]
}

// ExceededActivity is one line of a threshold alert.
type ExceededActivity struct {
	Activity  ActivityType
	Total     decimal.Decimal
	Threshold decimal.Decimal
}

// Alert is the message published to a user when thresholds are exceeded.
type Alert struct {
	UserID   string
	Period   Period
	Exceeded []ExceededActivity
	Subject  string
	Message  string
}
