package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ActivityInput is the typed parameter set of one activity. Exactly one
// variant exists per ActivityType. Decimal fields marshal as JSON strings.
type ActivityInput interface {
	Activity() ActivityType
}

// ElectricityInput is electricity consumption at a location.
type ElectricityInput struct {
	Country string          `json:"country"`
	Value   decimal.Decimal `json:"value"`
	Unit    ElectricityUnit `json:"unit"`
}

func (ElectricityInput) Activity() ActivityType { return ActivityElectricity }

// FlightLeg is one hop of a flight itinerary, IATA airport codes.
type FlightLeg struct {
	DepartureAirport   string     `json:"departure_airport"`
	DestinationAirport string     `json:"destination_airport"`
	CabinClass         CabinClass `json:"cabin_class,omitempty"`
}

// FlightInput is a multi-leg flight for a number of passengers.
type FlightInput struct {
	Passengers   int          `json:"passengers"`
	Legs         []FlightLeg  `json:"legs"`
	DistanceUnit DistanceUnit `json:"distance_unit"`
}

func (FlightInput) Activity() ActivityType { return ActivityFlight }

// ShippingInput is a shipment of a given weight over a distance.
type ShippingInput struct {
	WeightValue     decimal.Decimal `json:"weight_value"`
	WeightUnit      WeightUnit      `json:"weight_unit"`
	DistanceValue   decimal.Decimal `json:"distance_value"`
	DistanceUnit    DistanceUnit    `json:"distance_unit"`
	TransportMethod TransportMethod `json:"transport_method"`
}

func (ShippingInput) Activity() ActivityType { return ActivityShipping }

// FuelCombustionInput is an amount of fuel burned. SourceType and Unit must
// match a row of the fuel-source reference table.
type FuelCombustionInput struct {
	SourceType string          `json:"fuel_source_type"`
	Unit       string          `json:"unit"`
	Value      decimal.Decimal `json:"value"`
}

func (FuelCombustionInput) Activity() ActivityType { return ActivityFuelCombustion }

// VehicleInput is a distance driven in a known vehicle model.
type VehicleInput struct {
	DistanceValue decimal.Decimal `json:"distance_value"`
	DistanceUnit  DistanceUnit    `json:"distance_unit"`
	ModelID       string          `json:"vehicle_model_id"`
}

func (VehicleInput) Activity() ActivityType { return ActivityVehicle }

// NormalizeInput returns a copy with case-insensitive fields in canonical
// form: units lower-case, country and airport codes upper-case. Values are
// never changed.
func NormalizeInput(in ActivityInput) ActivityInput {
	switch v := in.(type) {
	case ElectricityInput:
		v.Country = strings.ToUpper(strings.TrimSpace(v.Country))
		v.Unit = ElectricityUnit(NormalizeUnit(string(v.Unit)))
		return v
	case FlightInput:
		legs := make([]FlightLeg, len(v.Legs))
		for i, leg := range v.Legs {
			legs[i] = FlightLeg{
				DepartureAirport:   strings.ToUpper(strings.TrimSpace(leg.DepartureAirport)),
				DestinationAirport: strings.ToUpper(strings.TrimSpace(leg.DestinationAirport)),
				CabinClass:         CabinClass(NormalizeUnit(string(leg.CabinClass))),
			}
		}
		v.Legs = legs
		if v.DistanceUnit == "" {
			v.DistanceUnit = DistanceKilometers
		}
		v.DistanceUnit = DistanceUnit(NormalizeUnit(string(v.DistanceUnit)))
		return v
	case ShippingInput:
		v.WeightUnit = WeightUnit(NormalizeUnit(string(v.WeightUnit)))
		v.DistanceUnit = DistanceUnit(NormalizeUnit(string(v.DistanceUnit)))
		v.TransportMethod = TransportMethod(NormalizeUnit(string(v.TransportMethod)))
		return v
	case FuelCombustionInput:
		v.SourceType = strings.TrimSpace(v.SourceType)
		v.Unit = strings.TrimSpace(v.Unit)
		return v
	case VehicleInput:
		v.DistanceUnit = DistanceUnit(NormalizeUnit(string(v.DistanceUnit)))
		v.ModelID = strings.TrimSpace(v.ModelID)
		return v
	}
	return in
}

// DecodeActivityInput restores the variant for activity from its JSON form.
func DecodeActivityInput(activity ActivityType, raw []byte) (ActivityInput, error) {
	var (
		in  ActivityInput
		err error
	)

	switch activity {
	case ActivityElectricity:
		var v ElectricityInput
		err = json.Unmarshal(raw, &v)
		in = v
	case ActivityFlight:
		var v FlightInput
		err = json.Unmarshal(raw, &v)
		in = v
	case ActivityShipping:
		var v ShippingInput
		err = json.Unmarshal(raw, &v)
		in = v
	case ActivityFuelCombustion:
		var v FuelCombustionInput
		err = json.Unmarshal(raw, &v)
		in = v
	case ActivityVehicle:
		var v VehicleInput
		err = json.Unmarshal(raw, &v)
		in = v
	default:
		return nil, fmt.Errorf("decode input params: unknown activity type %q", activity)
	}

	if err != nil {
		return nil, fmt.Errorf("decode %s input params: %w", activity, err)
	}
	return in, nil
}
