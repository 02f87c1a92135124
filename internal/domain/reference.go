package domain

// Country is a supported electricity grid location.
type Country struct {
	Code string
	Name string
}

// FuelSource is one (type, unit) row of the fuel-source reference table.
// APIName is the code the estimation API expects for the type.
type FuelSource struct {
	ID      int
	Type    string
	Unit    string
	APIName string
}

// VehicleModel is a model known to the estimation API. ID is the API's id.
type VehicleModel struct {
	ID   string
	Name string
	Year int
	Make string
}

// ReferenceData is a full snapshot used for seeding.
type ReferenceData struct {
	Countries     []Country
	FuelSources   []FuelSource
	VehicleModels []VehicleModel
}
