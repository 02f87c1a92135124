package carboninterface

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Request is one estimate request body. Decimal fields marshal as JSON
// strings; the "type" discriminator is added by MarshalJSON.
type Request interface {
	EstimateType() string
}

// ElectricityRequest estimates grid electricity use.
type ElectricityRequest struct {
	ElectricityUnit  string          `json:"electricity_unit"`
	ElectricityValue decimal.Decimal `json:"electricity_value"`
	Country          string          `json:"country"`
}

func (ElectricityRequest) EstimateType() string { return "electricity" }

func (r ElectricityRequest) MarshalJSON() ([]byte, error) {
	type fields ElectricityRequest
	return json.Marshal(struct {
		Type string `json:"type"`
		fields
	}{r.EstimateType(), fields(r)})
}

// Leg is one hop of a flight.
type Leg struct {
	DepartureAirport   string `json:"departure_airport"`
	DestinationAirport string `json:"destination_airport"`
	CabinClass         string `json:"cabin_class,omitempty"`
}

// FlightRequest estimates passenger flights.
type FlightRequest struct {
	Passengers   int    `json:"passengers"`
	Legs         []Leg  `json:"legs"`
	DistanceUnit string `json:"distance_unit"`
}

func (FlightRequest) EstimateType() string { return "flight" }

func (r FlightRequest) MarshalJSON() ([]byte, error) {
	type fields FlightRequest
	return json.Marshal(struct {
		Type string `json:"type"`
		fields
	}{r.EstimateType(), fields(r)})
}

// ShippingRequest estimates freight shipping.
type ShippingRequest struct {
	WeightValue     decimal.Decimal `json:"weight_value"`
	WeightUnit      string          `json:"weight_unit"`
	DistanceValue   decimal.Decimal `json:"distance_value"`
	DistanceUnit    string          `json:"distance_unit"`
	TransportMethod string          `json:"transport_method"`
}

func (ShippingRequest) EstimateType() string { return "shipping" }

func (r ShippingRequest) MarshalJSON() ([]byte, error) {
	type fields ShippingRequest
	return json.Marshal(struct {
		Type string `json:"type"`
		fields
	}{r.EstimateType(), fields(r)})
}

// FuelCombustionRequest estimates burning a fuel. FuelSourceType is the
// API code (e.g. "ng"), not the display name.
type FuelCombustionRequest struct {
	FuelSourceType  string          `json:"fuel_source_type"`
	FuelSourceUnit  string          `json:"fuel_source_unit"`
	FuelSourceValue decimal.Decimal `json:"fuel_source_value"`
}

func (FuelCombustionRequest) EstimateType() string { return "fuel_combustion" }

func (r FuelCombustionRequest) MarshalJSON() ([]byte, error) {
	type fields FuelCombustionRequest
	return json.Marshal(struct {
		Type string `json:"type"`
		fields
	}{r.EstimateType(), fields(r)})
}

// VehicleRequest estimates driving a known vehicle model.
type VehicleRequest struct {
	DistanceUnit   string          `json:"distance_unit"`
	DistanceValue  decimal.Decimal `json:"distance_value"`
	VehicleModelID string          `json:"vehicle_model_id"`
}

func (VehicleRequest) EstimateType() string { return "vehicle" }

func (r VehicleRequest) MarshalJSON() ([]byte, error) {
	type fields VehicleRequest
	return json.Marshal(struct {
		Type string `json:"type"`
		fields
	}{r.EstimateType(), fields(r)})
}

type estimateResponse struct {
	Data *struct {
		Attributes *struct {
			CarbonKg json.RawMessage `json:"carbon_kg"`
		} `json:"attributes"`
	} `json:"data"`
}
