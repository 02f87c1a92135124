package settings

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// UpdateInput changes thresholds and the check frequency. Activities
// missing from Thresholds keep their current value; an empty Frequency
// keeps the current one.
type UpdateInput struct {
	Thresholds map[string]decimal.Decimal
	Frequency  string
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() (domain.CheckFrequency, error) {
	var errs []domain.FieldError

	for activity, v := range i.Thresholds {
		if !domain.ActivityType(activity).IsValid() {
			errs = append(errs, domain.FieldError{Field: "thresholds", Message: fmt.Sprintf("unknown activity type %q", activity)})
			continue
		}
		if v.IsNegative() {
			errs = append(errs, domain.FieldError{Field: "thresholds." + activity, Message: "must not be negative"})
		}
	}

	var freq domain.CheckFrequency
	if f := strings.TrimSpace(i.Frequency); f != "" {
		parsed, ok := domain.ParseCheckFrequency(f)
		if !ok {
			errs = append(errs, domain.FieldError{Field: "emission_check_frequency", Message: "must be Never or Monthly"})
		}
		freq = parsed
	}

	if len(errs) > 0 {
		return "", domain.NewValidationErrors(errs)
	}
	return freq, nil
}

// SubscribeInput is the address alerts are sent to.
type SubscribeInput struct {
	Email string
}

// Validate returns the bare address.
func (i SubscribeInput) Validate() (string, error) {
	raw := strings.TrimSpace(i.Email)
	if raw == "" {
		return "", domain.NewValidationError("email", "required")
	}

	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", domain.NewValidationError("email", "must be a valid email address")
	}
	return addr.Address, nil
}
