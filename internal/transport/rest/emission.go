package rest

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/internal/service/emission"
)

// ExportFilename is the attachment name of the CSV export.
const ExportFilename = "emissions_report.csv"

type emissionService interface {
	Calculate(ctx context.Context, in domain.ActivityInput) (*domain.EmissionRecord, error)
	Report(ctx context.Context, in emission.ReportInput) (*emission.Report, error)
	ExportCSV(ctx context.Context, in emission.ReportInput, w io.Writer) error
}

// EmissionHandler serves calculation, report and export endpoints.
type EmissionHandler struct {
	svc emissionService
	log *slog.Logger
}

// NewEmissionHandler creates an EmissionHandler.
func NewEmissionHandler(svc emissionService, logger *slog.Logger) *EmissionHandler {
	return &EmissionHandler{svc: svc, log: logger.With("handler", "emission")}
}

// Calculate handles POST /api/v1/emissions/{activity}. The body is the
// activity's parameter object.
func (h *EmissionHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	activity := domain.ActivityType(strings.ToLower(r.PathValue("activity")))

	in, err := decodeActivity(w, r, activity)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rec, err := h.svc.Calculate(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRecordResponse(*rec))
}

// Report handles GET /api/v1/emissions.
func (h *EmissionHandler) Report(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.Report(r.Context(), reportInput(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toReportResponse(rep))
}

// Export handles GET /api/v1/emissions/export. The CSV is buffered so a
// failure can still produce a JSON error instead of a truncated file.
func (h *EmissionHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.ExportCSV(r.Context(), reportInput(r), &buf); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func reportInput(r *http.Request) emission.ReportInput {
	q := r.URL.Query()
	return emission.ReportInput{
		StartDate:    q.Get("start_date"),
		EndDate:      q.Get("end_date"),
		ActivityType: q.Get("activity_type"),
		Order:        q.Get("order"),
	}
}

func decodeActivity(w http.ResponseWriter, r *http.Request, activity domain.ActivityType) (domain.ActivityInput, error) {
	switch activity {
	case domain.ActivityElectricity:
		return decodeInto[domain.ElectricityInput](w, r)
	case domain.ActivityFlight:
		return decodeInto[domain.FlightInput](w, r)
	case domain.ActivityShipping:
		return decodeInto[domain.ShippingInput](w, r)
	case domain.ActivityFuelCombustion:
		return decodeInto[domain.FuelCombustionInput](w, r)
	case domain.ActivityVehicle:
		return decodeInto[domain.VehicleInput](w, r)
	}
	return nil, domain.NewValidationError("activity", "unknown activity type")
}

func decodeInto[T domain.ActivityInput](w http.ResponseWriter, r *http.Request) (domain.ActivityInput, error) {
	var in T
	if err := decodeJSON(w, r, &in); err != nil {
		return nil, err
	}
	return in, nil
}
