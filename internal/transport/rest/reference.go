package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

type referenceService interface {
	Countries(ctx context.Context) ([]domain.Country, error)
	FuelSourceTypes(ctx context.Context) ([]string, error)
	FuelUnits(ctx context.Context, sourceType string) ([]string, error)
	VehicleMakes(ctx context.Context) ([]string, error)
	VehicleModels(ctx context.Context, vehicleMake string) ([]domain.VehicleModel, error)
}

// ReferenceHandler serves the lookup lists used to build activity forms.
// These routes do not depend on the caller's identity.
type ReferenceHandler struct {
	svc referenceService
	log *slog.Logger
}

// NewReferenceHandler creates a ReferenceHandler.
func NewReferenceHandler(svc referenceService, logger *slog.Logger) *ReferenceHandler {
	return &ReferenceHandler{svc: svc, log: logger.With("handler", "reference")}
}

// Countries handles GET /api/v1/reference/countries.
func (h *ReferenceHandler) Countries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.svc.Countries(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]countryResponse, len(countries))
	for i, c := range countries {
		out[i] = countryResponse{Code: c.Code, Name: c.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

// FuelSources handles GET /api/v1/reference/fuel-sources.
func (h *ReferenceHandler) FuelSources(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, func(ctx context.Context) ([]string, error) {
		return h.svc.FuelSourceTypes(ctx)
	})
}

// FuelUnits handles GET /api/v1/reference/fuel-sources/{type}/units.
func (h *ReferenceHandler) FuelUnits(w http.ResponseWriter, r *http.Request) {
	sourceType := r.PathValue("type")
	h.writeList(w, r, func(ctx context.Context) ([]string, error) {
		return h.svc.FuelUnits(ctx, sourceType)
	})
}

// VehicleMakes handles GET /api/v1/reference/vehicle-makes.
func (h *ReferenceHandler) VehicleMakes(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, func(ctx context.Context) ([]string, error) {
		return h.svc.VehicleMakes(ctx)
	})
}

// VehicleModels handles GET /api/v1/reference/vehicle-makes/{make}/models.
func (h *ReferenceHandler) VehicleModels(w http.ResponseWriter, r *http.Request) {
	models, err := h.svc.VehicleModels(r.Context(), r.PathValue("make"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]vehicleModelResponse, len(models))
	for i, m := range models {
		out[i] = vehicleModelResponse{ID: m.ID, Name: m.Name, Year: m.Year}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ReferenceHandler) writeList(w http.ResponseWriter, r *http.Request, fetch func(context.Context) ([]string, error)) {
	items, err := fetch(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if items == nil {
		items = []string{}
	}
	writeJSON(w, http.StatusOK, items)
}
