// Package validation rejects malformed activity input before any estimate
// is requested. Every rule that fails is reported; nothing is coerced.
package validation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

type referenceLookup interface {
	Countries(ctx context.Context) ([]domain.Country, error)
	FuelUnits(ctx context.Context, sourceType string) ([]string, error)
}

// Validator checks activity input. The country and fuel-source rules
// consult reference data; the rest are pure.
type Validator struct {
	reference referenceLookup
}

// New creates a Validator backed by the reference lookups.
func New(reference referenceLookup) *Validator {
	return &Validator{reference: reference}
}

// Validate dispatches on the input variant. Input is normalized first, so
// "kWh" and "kwh" are the same unit.
func (v *Validator) Validate(ctx context.Context, in domain.ActivityInput) error {
	if in == nil {
		return domain.NewValidationError("activity", "input is required")
	}

	switch x := domain.NormalizeInput(in).(type) {
	case domain.ElectricityInput:
		return v.ValidateElectricity(ctx, x)
	case domain.FlightInput:
		return v.ValidateFlight(ctx, x)
	case domain.ShippingInput:
		return v.ValidateShipping(ctx, x)
	case domain.FuelCombustionInput:
		return v.ValidateFuelCombustion(ctx, x)
	case domain.VehicleInput:
		return v.ValidateVehicle(ctx, x)
	}

	return domain.NewValidationError("activity", fmt.Sprintf("unsupported activity type %q", in.Activity()))
}

// ValidateElectricity checks country, unit and value. A failed country
// lookup is returned as is, not as a validation error.
func (v *Validator) ValidateElectricity(ctx context.Context, in domain.ElectricityInput) error {
	var errs []domain.FieldError

	code := strings.ToUpper(strings.TrimSpace(in.Country))
	if code == "" {
		errs = append(errs, domain.FieldError{Field: "country", Message: "required"})
	} else {
		ok, err := v.countrySupported(ctx, code)
		if err != nil {
			return err
		}
		if !ok {
			errs = append(errs, domain.FieldError{Field: "country", Message: fmt.Sprintf("unsupported country %q", in.Country)})
		}
	}

	if !domain.ElectricityUnit(domain.NormalizeUnit(string(in.Unit))).IsValid() {
		errs = append(errs, domain.FieldError{Field: "unit", Message: "must be one of kWh, MWh"})
	}
	errs = checkPositive(errs, "value", in.Value)

	return result(errs)
}

// ValidateFlight checks passengers and legs.
func (v *Validator) ValidateFlight(_ context.Context, in domain.FlightInput) error {
	var errs []domain.FieldError

	if in.Passengers < 1 {
		errs = append(errs, domain.FieldError{Field: "passengers", Message: "must be at least 1"})
	}

	if len(in.Legs) == 0 {
		errs = append(errs, domain.FieldError{Field: "legs", Message: "at least one leg is required"})
	}
	for i, leg := range in.Legs {
		prefix := fmt.Sprintf("legs[%d]", i)
		if !isAirportCode(leg.DepartureAirport) {
			errs = append(errs, domain.FieldError{Field: prefix + ".departure_airport", Message: "must be a 3-letter airport code"})
		}
		if !isAirportCode(leg.DestinationAirport) {
			errs = append(errs, domain.FieldError{Field: prefix + ".destination_airport", Message: "must be a 3-letter airport code"})
		}
		if leg.CabinClass != "" && !domain.CabinClass(domain.NormalizeUnit(string(leg.CabinClass))).IsValid() {
			errs = append(errs, domain.FieldError{Field: prefix + ".cabin_class", Message: "must be one of economy, premium"})
		}
	}

	if in.DistanceUnit != "" && !domain.DistanceUnit(domain.NormalizeUnit(string(in.DistanceUnit))).IsValid() {
		errs = append(errs, domain.FieldError{Field: "distance_unit", Message: "must be one of km, mi"})
	}

	return result(errs)
}

// ValidateShipping checks units, transport method and both quantities.
func (v *Validator) ValidateShipping(_ context.Context, in domain.ShippingInput) error {
	var errs []domain.FieldError

	if !domain.WeightUnit(domain.NormalizeUnit(string(in.WeightUnit))).IsValid() {
		errs = append(errs, domain.FieldError{Field: "weight_unit", Message: "must be one of kg, mt"})
	}
	if !domain.DistanceUnit(domain.NormalizeUnit(string(in.DistanceUnit))).IsValid() {
		errs = append(errs, domain.FieldError{Field: "distance_unit", Message: "must be one of km, mi"})
	}
	if !domain.TransportMethod(domain.NormalizeUnit(string(in.TransportMethod))).IsValid() {
		errs = append(errs, domain.FieldError{Field: "transport_method", Message: "must be one of ship, train, truck, plane"})
	}
	errs = checkPositive(errs, "weight_value", in.WeightValue)
	errs = checkPositive(errs, "distance_value", in.DistanceValue)

	return result(errs)
}

// ValidateFuelCombustion checks the amount and that the (type, unit) pair
// is seeded. As with countries, a failed lookup is returned as is.
func (v *Validator) ValidateFuelCombustion(ctx context.Context, in domain.FuelCombustionInput) error {
	var errs []domain.FieldError

	sourceType, unit := strings.TrimSpace(in.SourceType), strings.TrimSpace(in.Unit)
	if sourceType == "" {
		errs = append(errs, domain.FieldError{Field: "fuel_source_type", Message: "required"})
	}
	if unit == "" {
		errs = append(errs, domain.FieldError{Field: "unit", Message: "required"})
	}

	if sourceType != "" {
		units, err := v.reference.FuelUnits(ctx, sourceType)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			errs = append(errs, domain.FieldError{Field: "fuel_source_type", Message: fmt.Sprintf("unsupported fuel source %q", in.SourceType)})
		case err != nil:
			return fmt.Errorf("load fuel units: %w", err)
		case unit != "" && !slices.ContainsFunc(units, func(u string) bool { return strings.EqualFold(u, unit) }):
			errs = append(errs, domain.FieldError{Field: "unit", Message: "must be one of " + strings.Join(units, ", ")})
		}
	}

	errs = checkPositive(errs, "value", in.Value)

	return result(errs)
}

// ValidateVehicle checks distance and model id.
func (v *Validator) ValidateVehicle(_ context.Context, in domain.VehicleInput) error {
	var errs []domain.FieldError

	if !domain.DistanceUnit(domain.NormalizeUnit(string(in.DistanceUnit))).IsValid() {
		errs = append(errs, domain.FieldError{Field: "distance_unit", Message: "must be one of km, mi"})
	}
	if strings.TrimSpace(in.ModelID) == "" {
		errs = append(errs, domain.FieldError{Field: "vehicle_model_id", Message: "required"})
	}
	errs = checkPositive(errs, "distance_value", in.DistanceValue)

	return result(errs)
}

func (v *Validator) countrySupported(ctx context.Context, code string) (bool, error) {
	countries, err := v.reference.Countries(ctx)
	if err != nil {
		return false, fmt.Errorf("load supported countries: %w", err)
	}
	for _, c := range countries {
		if c.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func checkPositive(errs []domain.FieldError, field string, d decimal.Decimal) []domain.FieldError {
	if !d.IsPositive() {
		return append(errs, domain.FieldError{Field: field, Message: "must be a positive number"})
	}
	return errs
}

func isAirportCode(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

func result(errs []domain.FieldError) error {
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
