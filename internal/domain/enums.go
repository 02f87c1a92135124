package domain

import "strings"

// ActivityType identifies the kind of emission-producing activity.
type ActivityType string

const (
	ActivityElectricity    ActivityType = "electricity"
	ActivityFlight         ActivityType = "flight"
	ActivityShipping       ActivityType = "shipping"
	ActivityFuelCombustion ActivityType = "fuel_combustion"
	ActivityVehicle        ActivityType = "vehicle"
)

// ActivityTypes lists every activity in display order.
var ActivityTypes = []ActivityType{
	ActivityElectricity,
	ActivityFlight,
	ActivityShipping,
	ActivityFuelCombustion,
	ActivityVehicle,
}

func (a ActivityType) String() string { return string(a) }

func (a ActivityType) IsValid() bool {
	switch a {
	case ActivityElectricity, ActivityFlight, ActivityShipping, ActivityFuelCombustion, ActivityVehicle:
		return true
	}
	return false
}

// Label returns the human-readable name used in alerts and exports.
func (a ActivityType) Label() string {
	switch a {
	case ActivityElectricity:
		return "Electricity"
	case ActivityFlight:
		return "Flight"
	case ActivityShipping:
		return "Shipping"
	case ActivityFuelCombustion:
		return "Fuel Combustion"
	case ActivityVehicle:
		return "Vehicle"
	}
	return string(a)
}

// CheckFrequency controls how often the threshold monitor evaluates a user.
type CheckFrequency string

const (
	CheckNever   CheckFrequency = "Never"
	CheckMonthly CheckFrequency = "Monthly"
)

func (f CheckFrequency) String() string { return string(f) }

func (f CheckFrequency) IsValid() bool {
	switch f {
	case CheckNever, CheckMonthly:
		return true
	}
	return false
}

// ParseCheckFrequency matches case-insensitively and returns the canonical value.
func ParseCheckFrequency(s string) (CheckFrequency, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "never":
		return CheckNever, true
	case "monthly":
		return CheckMonthly, true
	}
	return "", false
}

// ElectricityUnit is the unit of an electricity reading.
type ElectricityUnit string

const (
	ElectricityKWh ElectricityUnit = "kwh"
	ElectricityMWh ElectricityUnit = "mwh"
)

func (u ElectricityUnit) IsValid() bool {
	return u == ElectricityKWh || u == ElectricityMWh
}

// WeightUnit is the unit of a shipment weight.
type WeightUnit string

const (
	WeightKilograms  WeightUnit = "kg"
	WeightMetricTons WeightUnit = "mt"
)

func (u WeightUnit) IsValid() bool {
	return u == WeightKilograms || u == WeightMetricTons
}

// DistanceUnit is the unit of a travelled distance.
type DistanceUnit string

const (
	DistanceKilometers DistanceUnit = "km"
	DistanceMiles      DistanceUnit = "mi"
)

func (u DistanceUnit) IsValid() bool {
	return u == DistanceKilometers || u == DistanceMiles
}

// TransportMethod is how a shipment travels.
type TransportMethod string

const (
	TransportShip  TransportMethod = "ship"
	TransportTrain TransportMethod = "train"
	TransportTruck TransportMethod = "truck"
	TransportPlane TransportMethod = "plane"
)

func (m TransportMethod) IsValid() bool {
	switch m {
	case TransportShip, TransportTrain, TransportTruck, TransportPlane:
		return true
	}
	return false
}

// CabinClass is an optional flight cabin.
type CabinClass string

const (
	CabinEconomy CabinClass = "economy"
	CabinPremium CabinClass = "premium"
)

func (c CabinClass) IsValid() bool {
	return c == CabinEconomy || c == CabinPremium
}

// NormalizeUnit lower-cases and trims a unit string. Units are compared in
// this canonical form everywhere, which is also the spelling the estimation
// API expects.
func NormalizeUnit(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
