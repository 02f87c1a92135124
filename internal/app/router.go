package app

import (
	"net/http"

	"github.com/heartmarshall/carbontrack-backend/internal/transport/middleware"
	"github.com/heartmarshall/carbontrack-backend/internal/transport/rest"
)

// Handlers are the route targets. CalculateLimit wraps only the calculate
// route, after the user check, so anonymous calls never use up a bucket.
// Nil means no limit.
type Handlers struct {
	Emission       *rest.EmissionHandler
	Settings       *rest.SettingsHandler
	Reference      *rest.ReferenceHandler
	Health         *rest.HealthHandler
	CalculateLimit middleware.Middleware
}

// NewRouter registers every route. Health probes are public; everything
// under /api/v1 requires an authenticated user.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	api := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, middleware.RequireUser(fn))
	}

	calculate := middleware.Chain(middleware.RequireUser, h.CalculateLimit)
	mux.Handle("POST /api/v1/emissions/{activity}", calculate(http.HandlerFunc(h.Emission.Calculate)))

	api("GET /api/v1/emissions", h.Emission.Report)
	api("GET /api/v1/emissions/export", h.Emission.Export)

	api("GET /api/v1/settings", h.Settings.Get)
	api("PUT /api/v1/settings", h.Settings.Update)
	api("POST /api/v1/settings/subscription", h.Settings.Subscribe)
	api("DELETE /api/v1/settings/subscription", h.Settings.Unsubscribe)

	api("GET /api/v1/reference/countries", h.Reference.Countries)
	api("GET /api/v1/reference/fuel-sources", h.Reference.FuelSources)
	api("GET /api/v1/reference/fuel-sources/{type}/units", h.Reference.FuelUnits)
	api("GET /api/v1/reference/vehicle-makes", h.Reference.VehicleMakes)
	api("GET /api/v1/reference/vehicle-makes/{make}/models", h.Reference.VehicleModels)

	return mux
}
