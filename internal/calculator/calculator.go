// Package calculator turns validated activity input into one estimate
// request and returns the estimated kilograms of CO2e.
//
// Every method reports failure as ok == false and logs the cause; callers
// decide what the user sees.
package calculator

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/carbontrack-backend/internal/adapter/provider/carboninterface"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

type estimator interface {
	Estimate(ctx context.Context, req carboninterface.Request) (decimal.Decimal, error)
}

type fuelResolver interface {
	FuelAPIName(ctx context.Context, sourceType, unit string) (string, error)
}

// Calculator maps each activity to its estimate request.
type Calculator struct {
	estimator estimator
	fuel      fuelResolver
	log       *slog.Logger
}

// New creates a Calculator.
func New(log *slog.Logger, est estimator, fuel fuelResolver) *Calculator {
	return &Calculator{
		estimator: est,
		fuel:      fuel,
		log:       log.With("component", "calculator"),
	}
}

// Calculate dispatches on the input variant.
func (c *Calculator) Calculate(ctx context.Context, in domain.ActivityInput) (decimal.Decimal, bool) {
	switch v := in.(type) {
	case domain.ElectricityInput:
		return c.Electricity(ctx, v)
	case domain.FlightInput:
		return c.Flight(ctx, v)
	case domain.ShippingInput:
		return c.Shipping(ctx, v)
	case domain.FuelCombustionInput:
		return c.FuelCombustion(ctx, v)
	case domain.VehicleInput:
		return c.Vehicle(ctx, v)
	}

	c.log.ErrorContext(ctx, "unsupported activity input", slog.Any("input", in))
	return decimal.Zero, false
}

// Electricity estimates grid electricity. The country code goes out in
// lower case, which is what the API lists.
func (c *Calculator) Electricity(ctx context.Context, in domain.ElectricityInput) (decimal.Decimal, bool) {
	return c.estimate(ctx, carboninterface.ElectricityRequest{
		ElectricityUnit:  string(in.Unit),
		ElectricityValue: in.Value,
		Country:          strings.ToLower(in.Country),
	})
}

// Flight estimates a multi-leg itinerary.
func (c *Calculator) Flight(ctx context.Context, in domain.FlightInput) (decimal.Decimal, bool) {
	legs := make([]carboninterface.Leg, len(in.Legs))
	for i, leg := range in.Legs {
		legs[i] = carboninterface.Leg{
			DepartureAirport:   leg.DepartureAirport,
			DestinationAirport: leg.DestinationAirport,
			CabinClass:         string(leg.CabinClass),
		}
	}

	unit := in.DistanceUnit
	if unit == "" {
		unit = domain.DistanceKilometers
	}

	return c.estimate(ctx, carboninterface.FlightRequest{
		Passengers:   in.Passengers,
		Legs:         legs,
		DistanceUnit: string(unit),
	})
}

// Shipping estimates freight.
func (c *Calculator) Shipping(ctx context.Context, in domain.ShippingInput) (decimal.Decimal, bool) {
	return c.estimate(ctx, carboninterface.ShippingRequest{
		WeightValue:     in.WeightValue,
		WeightUnit:      string(in.WeightUnit),
		DistanceValue:   in.DistanceValue,
		DistanceUnit:    string(in.DistanceUnit),
		TransportMethod: string(in.TransportMethod),
	})
}

// FuelCombustion resolves the API code for (type, unit) before estimating.
// An unknown pair is a failed calculation, not an estimator call.
func (c *Calculator) FuelCombustion(ctx context.Context, in domain.FuelCombustionInput) (decimal.Decimal, bool) {
	apiName, err := c.fuel.FuelAPIName(ctx, in.SourceType, in.Unit)
	if err != nil {
		c.log.WarnContext(ctx, "fuel source lookup failed",
			slog.String("fuel_source_type", in.SourceType),
			slog.String("unit", in.Unit),
			slog.String("error", err.Error()),
		)
		return decimal.Zero, false
	}

	return c.estimate(ctx, carboninterface.FuelCombustionRequest{
		FuelSourceType:  apiName,
		FuelSourceUnit:  in.Unit,
		FuelSourceValue: in.Value,
	})
}

// Vehicle estimates distance driven in a known model.
func (c *Calculator) Vehicle(ctx context.Context, in domain.VehicleInput) (decimal.Decimal, bool) {
	return c.estimate(ctx, carboninterface.VehicleRequest{
		DistanceUnit:   string(in.DistanceUnit),
		DistanceValue:  in.DistanceValue,
		VehicleModelID: in.ModelID,
	})
}

func (c *Calculator) estimate(ctx context.Context, req carboninterface.Request) (decimal.Decimal, bool) {
	kg, err := c.estimator.Estimate(ctx, req)
	if err != nil {
		c.log.ErrorContext(ctx, "emission estimate failed",
			slog.String("type", req.EstimateType()),
			slog.String("error", err.Error()),
		)
		return decimal.Zero, false
	}
	if kg.IsNegative() {
		c.log.ErrorContext(ctx, "emission estimate is negative",
			slog.String("type", req.EstimateType()),
			slog.String("carbon_kg", kg.String()),
		)
		return decimal.Zero, false
	}
	return kg, true
}
