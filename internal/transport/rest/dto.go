package rest

import (
	"time"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/internal/service/emission"
)

// Masses are rendered as fixed 2 dp strings so clients never see float
// artefacts.

type recordResponse struct {
	ActivityType string               `json:"activity_type"`
	InputParams  domain.ActivityInput `json:"input_params"`
	CarbonKg     string               `json:"carbon_kg"`
	Timestamp    time.Time            `json:"timestamp"`
}

type reportResponse struct {
	Records []recordResponse `json:"records"`
	TotalKg string           `json:"total_kg"`
}

type settingsResponse struct {
	Thresholds map[string]string `json:"thresholds"`
	Frequency  string            `json:"emission_check_frequency"`
	Subscribed bool              `json:"subscribed"`
	Email      *string           `json:"email"`
	UpdatedAt  *time.Time        `json:"updated_at,omitempty"`
}

type countryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type vehicleModelResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Year int    `json:"year"`
}

func toRecordResponse(rec domain.EmissionRecord) recordResponse {
	return recordResponse{
		ActivityType: rec.ActivityType.String(),
		InputParams:  rec.Params,
		CarbonKg:     domain.FormatKg(rec.CarbonKg),
		Timestamp:    rec.Timestamp.UTC(),
	}
}

func toReportResponse(rep *emission.Report) reportResponse {
	out := reportResponse{
		Records: make([]recordResponse, len(rep.Records)),
		TotalKg: domain.FormatKg(rep.TotalKg),
	}
	for i, rec := range rep.Records {
		out.Records[i] = toRecordResponse(rec)
	}
	return out
}

func toSettingsResponse(s *domain.UserSettings) settingsResponse {
	out := settingsResponse{
		Thresholds: make(map[string]string, len(domain.ActivityTypes)),
		Frequency:  s.Frequency.String(),
		Subscribed: s.Subscribed,
		Email:      s.Email,
	}
	for _, a := range domain.ActivityTypes {
		out.Thresholds[a.String()] = domain.FormatKg(s.Threshold(a))
	}
	if !s.UpdatedAt.IsZero() {
		updated := s.UpdatedAt.UTC()
		out.UpdatedAt = &updated
	}
	return out
}
