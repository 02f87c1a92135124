package validation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

func newTestValidator() (*Validator, *referenceLookupMock) {
	mock := &referenceLookupMock{
		CountriesFunc: func(context.Context) ([]domain.Country, error) {
			return []domain.Country{
				{Code: "US", Name: "United States Of America"},
				{Code: "CA", Name: "Canada"},
			}, nil
		},
		FuelUnitsFunc: func(_ context.Context, sourceType string) ([]string, error) {
			if strings.EqualFold(sourceType, "Natural Gas") {
				return []string{"btu", "native"}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	return New(mock), mock
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// assertFields checks err is a ValidationError naming exactly the given fields.
func assertFields(t *testing.T, err error, fields ...string) {
	t.Helper()

	if len(fields) == 0 {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T: %v", err, err)
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatal("ValidationError must match domain.ErrValidation")
	}

	got := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		got[i] = fe.Field
	}
	if strings.Join(got, ",") != strings.Join(fields, ",") {
		t.Fatalf("fields = %v, want %v", got, fields)
	}
}

func TestValidateElectricity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     domain.ElectricityInput
		fields []string
	}{
		{"valid", domain.ElectricityInput{Country: "US", Value: dec("100"), Unit: "kWh"}, nil},
		{"valid lowercase country", domain.ElectricityInput{Country: "ca", Value: dec("0.5"), Unit: "MWH"}, nil},
		{"unsupported country", domain.ElectricityInput{Country: "ZZ", Value: dec("1"), Unit: "kwh"}, []string{"country"}},
		{"missing country", domain.ElectricityInput{Value: dec("1"), Unit: "kwh"}, []string{"country"}},
		{"bad unit", domain.ElectricityInput{Country: "US", Value: dec("1"), Unit: "gwh"}, []string{"unit"}},
		{"zero value", domain.ElectricityInput{Country: "US", Value: dec("0"), Unit: "kwh"}, []string{"value"}},
		{"negative value", domain.ElectricityInput{Country: "US", Value: dec("-3"), Unit: "kwh"}, []string{"value"}},
		{"everything wrong", domain.ElectricityInput{Country: "ZZ", Value: dec("0"), Unit: "x"}, []string{"country", "unit", "value"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, _ := newTestValidator()
			assertFields(t, v.ValidateElectricity(context.Background(), tt.in), tt.fields...)
		})
	}
}

func TestValidateElectricity_LookupFailure(t *testing.T) {
	t.Parallel()

	lookupErr := errors.New("db down")
	v := New(&referenceLookupMock{
		CountriesFunc: func(context.Context) ([]domain.Country, error) { return nil, lookupErr },
	})

	err := v.ValidateElectricity(context.Background(), domain.ElectricityInput{Country: "US", Value: dec("1"), Unit: "kwh"})
	if !errors.Is(err, lookupErr) {
		t.Fatalf("err = %v, want lookup error", err)
	}
	if errors.Is(err, domain.ErrValidation) {
		t.Fatal("lookup failure must not look like a validation error")
	}
}

func TestValidateFlight(t *testing.T) {
	t.Parallel()

	leg := domain.FlightLeg{DepartureAirport: "SFO", DestinationAirport: "YYZ"}

	tests := []struct {
		name   string
		in     domain.FlightInput
		fields []string
	}{
		{"valid", domain.FlightInput{Passengers: 1, Legs: []domain.FlightLeg{leg}}, nil},
		{"valid lowercase codes", domain.FlightInput{Passengers: 2, Legs: []domain.FlightLeg{{DepartureAirport: "sfo", DestinationAirport: "yyz", CabinClass: "Premium"}}, DistanceUnit: "MI"}, nil},
		{"no passengers", domain.FlightInput{Passengers: 0, Legs: []domain.FlightLeg{leg}}, []string{"passengers"}},
		{"no legs", domain.FlightInput{Passengers: 1}, []string{"legs"}},
		{"missing destination", domain.FlightInput{Passengers: 1, Legs: []domain.FlightLeg{{DepartureAirport: "SFO"}}}, []string{"legs[0].destination_airport"}},
		{"four letter code", domain.FlightInput{Passengers: 1, Legs: []domain.FlightLeg{leg, {DepartureAirport: "KSFO", DestinationAirport: "YYZ"}}}, []string{"legs[1].departure_airport"}},
		{"digits in code", domain.FlightInput{Passengers: 1, Legs: []domain.FlightLeg{{DepartureAirport: "S1O", DestinationAirport: "YYZ"}}}, []string{"legs[0].departure_airport"}},
		{"bad cabin", domain.FlightInput{Passengers: 1, Legs: []domain.FlightLeg{{DepartureAirport: "SFO", DestinationAirport: "YYZ", CabinClass: "first"}}}, []string{"legs[0].cabin_class"}},
		{"bad distance unit", domain.FlightInput{Passengers: 1, Legs: []domain.FlightLeg{leg}, DistanceUnit: "nm"}, []string{"distance_unit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, _ := newTestValidator()
			assertFields(t, v.ValidateFlight(context.Background(), tt.in), tt.fields...)
		})
	}
}

func TestValidateShipping(t *testing.T) {
	t.Parallel()

	valid := domain.ShippingInput{
		WeightValue:     dec("200"),
		WeightUnit:      "kg",
		DistanceValue:   dec("2000"),
		DistanceUnit:    "km",
		TransportMethod: "truck",
	}

	tests := []struct {
		name   string
		mutate func(*domain.ShippingInput)
		fields []string
	}{
		{"valid", func(*domain.ShippingInput) {}, nil},
		{"uppercase units", func(in *domain.ShippingInput) { in.WeightUnit = "MT"; in.DistanceUnit = "Mi"; in.TransportMethod = "Ship" }, nil},
		{"litre weight", func(in *domain.ShippingInput) { in.WeightUnit = "litre" }, []string{"weight_unit"}},
		{"bad distance unit", func(in *domain.ShippingInput) { in.DistanceUnit = "nm" }, []string{"distance_unit"}},
		{"bad transport", func(in *domain.ShippingInput) { in.TransportMethod = "rocket" }, []string{"transport_method"}},
		{"zero weight", func(in *domain.ShippingInput) { in.WeightValue = dec("0") }, []string{"weight_value"}},
		{"negative distance", func(in *domain.ShippingInput) { in.DistanceValue = dec("-1") }, []string{"distance_value"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := valid
			tt.mutate(&in)
			v, _ := newTestValidator()
			assertFields(t, v.ValidateShipping(context.Background(), in), tt.fields...)
		})
	}
}

func TestValidateFuelCombustion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     domain.FuelCombustionInput
		fields []string
	}{
		{"valid", domain.FuelCombustionInput{SourceType: "Natural Gas", Unit: "btu", Value: dec("500")}, nil},
		{"zero", domain.FuelCombustionInput{SourceType: "Natural Gas", Unit: "btu", Value: dec("0")}, []string{"value"}},
		{"negative", domain.FuelCombustionInput{SourceType: "Natural Gas", Unit: "btu", Value: dec("-0.01")}, []string{"value"}},
		{"missing type and unit", domain.FuelCombustionInput{Value: dec("1")}, []string{"fuel_source_type", "unit"}},
		{"unit case-insensitive", domain.FuelCombustionInput{SourceType: "natural gas", Unit: "BTU", Value: dec("1")}, nil},
		{"unknown source", domain.FuelCombustionInput{SourceType: "Whale Oil", Unit: "btu", Value: dec("1")}, []string{"fuel_source_type"}},
		{"unit not offered", domain.FuelCombustionInput{SourceType: "Natural Gas", Unit: "gallons", Value: dec("1")}, []string{"unit"}},
		{"unknown source and zero", domain.FuelCombustionInput{SourceType: "Whale Oil", Unit: "btu", Value: dec("0")}, []string{"fuel_source_type", "value"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, _ := newTestValidator()
			assertFields(t, v.ValidateFuelCombustion(context.Background(), tt.in), tt.fields...)
		})
	}
}

func TestValidateFuelCombustion_UnitMessageListsOptions(t *testing.T) {
	t.Parallel()

	v, _ := newTestValidator()
	err := v.ValidateFuelCombustion(context.Background(), domain.FuelCombustionInput{SourceType: "Natural Gas", Unit: "gallons", Value: dec("1")})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	if got := ve.Errors[0].Message; got != "must be one of btu, native" {
		t.Fatalf("message = %q", got)
	}
}

func TestValidateFuelCombustion_LookupFailure(t *testing.T) {
	t.Parallel()

	lookupErr := errors.New("db down")
	v := New(&referenceLookupMock{
		FuelUnitsFunc: func(context.Context, string) ([]string, error) { return nil, lookupErr },
	})

	err := v.ValidateFuelCombustion(context.Background(), domain.FuelCombustionInput{SourceType: "Natural Gas", Unit: "btu", Value: dec("1")})
	if !errors.Is(err, lookupErr) {
		t.Fatalf("err = %v, want lookup error", err)
	}
	if errors.Is(err, domain.ErrValidation) {
		t.Fatal("lookup failure must not look like a validation error")
	}
}

func TestValidateVehicle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     domain.VehicleInput
		fields []string
	}{
		{"valid", domain.VehicleInput{DistanceValue: dec("100"), DistanceUnit: "mi", ModelID: "7268a9b7-17e8-4c8d-acca-57059252afe9"}, nil},
		{"empty model", domain.VehicleInput{DistanceValue: dec("100"), DistanceUnit: "km", ModelID: "  "}, []string{"vehicle_model_id"}},
		{"bad unit", domain.VehicleInput{DistanceValue: dec("100"), DistanceUnit: "m", ModelID: "x"}, []string{"distance_unit"}},
		{"zero distance", domain.VehicleInput{DistanceValue: dec("0"), DistanceUnit: "km", ModelID: "x"}, []string{"distance_value"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, _ := newTestValidator()
			assertFields(t, v.ValidateVehicle(context.Background(), tt.in), tt.fields...)
		})
	}
}

func TestValidate_Dispatch(t *testing.T) {
	t.Parallel()

	v, countries := newTestValidator()
	ctx := context.Background()

	assertFields(t, v.Validate(ctx, nil), "activity")
	assertFields(t, v.Validate(ctx, domain.ShippingInput{WeightUnit: "litre", WeightValue: dec("1"), DistanceValue: dec("1"), DistanceUnit: "km", TransportMethod: "ship"}), "weight_unit")
	assertFields(t, v.Validate(ctx, domain.ElectricityInput{Country: " us ", Value: dec("100"), Unit: "kWh"}))

	if len(countries.CountriesCalls()) != 1 {
		t.Errorf("country lookups = %d, want 1", len(countries.CountriesCalls()))
	}
}
