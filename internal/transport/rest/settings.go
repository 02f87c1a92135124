package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/internal/service/settings"
)

type settingsService interface {
	Get(ctx context.Context) (*domain.UserSettings, error)
	Update(ctx context.Context, in settings.UpdateInput) (*domain.UserSettings, error)
	Subscribe(ctx context.Context, in settings.SubscribeInput) (*domain.UserSettings, error)
	Unsubscribe(ctx context.Context) (*domain.UserSettings, error)
}

// SettingsHandler serves threshold and subscription endpoints.
type SettingsHandler struct {
	svc settingsService
	log *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(svc settingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, log: logger.With("handler", "settings")}
}

type updateSettingsRequest struct {
	Thresholds map[string]decimal.Decimal `json:"thresholds"`
	Frequency  string                     `json:"emission_check_frequency"`
}

type subscribeRequest struct {
	Email string `json:"email"`
}

// Get handles GET /api/v1/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}

// Update handles PUT /api/v1/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	s, err := h.svc.Update(r.Context(), settings.UpdateInput{
		Thresholds: req.Thresholds,
		Frequency:  req.Frequency,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}

// Subscribe handles POST /api/v1/settings/subscription.
func (h *SettingsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	s, err := h.svc.Subscribe(r.Context(), settings.SubscribeInput{Email: req.Email})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}

// Unsubscribe handles DELETE /api/v1/settings/subscription.
func (h *SettingsHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Unsubscribe(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}
