// Package reference serves the slow-changing lookup tables with an
// optional in-process expirable LRU in front of the repository.
package reference

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

const (
	keyCountries = "countries"
	keyFuel      = "fuel_sources"
	keyVehicles  = "vehicle_models"
)

type referenceRepo interface {
	Countries(ctx context.Context) ([]domain.Country, error)
	FuelSources(ctx context.Context) ([]domain.FuelSource, error)
	VehicleModels(ctx context.Context) ([]domain.VehicleModel, error)
	Replace(ctx context.Context, data domain.ReferenceData) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// CacheConfig controls the lookup cache. TTL 0 disables caching.
type CacheConfig struct {
	TTL  time.Duration
	Size int
}

// Service provides reference data lookups.
type Service struct {
	log   *slog.Logger
	repo  referenceRepo
	tx    txManager
	cache *expirable.LRU[string, any]
}

// NewService creates a new reference Service.
func NewService(logger *slog.Logger, repo referenceRepo, tx txManager, cfg CacheConfig) *Service {
	s := &Service{
		log:  logger.With("service", "reference"),
		repo: repo,
		tx:   tx,
	}
	if cfg.TTL > 0 && cfg.Size > 0 {
		s.cache = expirable.NewLRU[string, any](cfg.Size, nil, cfg.TTL)
	}
	return s
}

// Invalidate drops every cached table. Safe to call with caching disabled.
func (s *Service) Invalidate() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

// Replace swaps all reference tables in one transaction, then invalidates
// the cache.
func (s *Service) Replace(ctx context.Context, data domain.ReferenceData) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.repo.Replace(ctx, data)
	})
	if err != nil {
		return fmt.Errorf("replace reference data: %w", err)
	}

	s.Invalidate()
	s.log.InfoContext(ctx, "reference data replaced",
		slog.Int("countries", len(data.Countries)),
		slog.Int("fuel_sources", len(data.FuelSources)),
		slog.Int("vehicle_models", len(data.VehicleModels)),
	)
	return nil
}

// ---------------------------------------------------------------------------
// Countries
// ---------------------------------------------------------------------------

// Countries returns the supported countries ordered by name.
func (s *Service) Countries(ctx context.Context) ([]domain.Country, error) {
	countries, err := load(ctx, s, keyCountries, s.repo.Countries)
	if err != nil {
		return nil, err
	}
	return slices.Clone(countries), nil
}

// ---------------------------------------------------------------------------
// Fuel sources
// ---------------------------------------------------------------------------

// FuelSourceTypes returns the distinct fuel-source display names, sorted.
func (s *Service) FuelSourceTypes(ctx context.Context) ([]string, error) {
	sources, err := load(ctx, s, keyFuel, s.repo.FuelSources)
	if err != nil {
		return nil, err
	}

	types := make([]string, 0, len(sources))
	for _, f := range sources {
		types = append(types, f.Type)
	}
	slices.Sort(types)
	return slices.Compact(types), nil
}

// FuelUnits returns the units available for sourceType, sorted.
// Unknown types return domain.ErrNotFound.
func (s *Service) FuelUnits(ctx context.Context, sourceType string) ([]string, error) {
	sources, err := load(ctx, s, keyFuel, s.repo.FuelSources)
	if err != nil {
		return nil, err
	}

	var units []string
	for _, f := range sources {
		if strings.EqualFold(f.Type, strings.TrimSpace(sourceType)) {
			units = append(units, f.Unit)
		}
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("fuel source %q: %w", sourceType, domain.ErrNotFound)
	}

	slices.Sort(units)
	return slices.Compact(units), nil
}

// FuelAPIName maps a (type, unit) pair to the code the estimation API
// expects. Both parts match case-insensitively.
func (s *Service) FuelAPIName(ctx context.Context, sourceType, unit string) (string, error) {
	sources, err := load(ctx, s, keyFuel, s.repo.FuelSources)
	if err != nil {
		return "", err
	}

	sourceType, unit = strings.TrimSpace(sourceType), strings.TrimSpace(unit)
	for _, f := range sources {
		if strings.EqualFold(f.Type, sourceType) && strings.EqualFold(f.Unit, unit) {
			return f.APIName, nil
		}
	}

	return "", fmt.Errorf("fuel source %q/%q: %w", sourceType, unit, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Vehicles
// ---------------------------------------------------------------------------

// VehicleMakes returns the distinct makes, sorted.
func (s *Service) VehicleMakes(ctx context.Context) ([]string, error) {
	models, err := load(ctx, s, keyVehicles, s.repo.VehicleModels)
	if err != nil {
		return nil, err
	}

	makes := make([]string, 0, len(models))
	for _, m := range models {
		makes = append(makes, m.Make)
	}
	slices.Sort(makes)
	return slices.Compact(makes), nil
}

// VehicleModels returns the models of vehicleMake ordered by name then year.
// Unknown makes return domain.ErrNotFound.
func (s *Service) VehicleModels(ctx context.Context, vehicleMake string) ([]domain.VehicleModel, error) {
	models, err := load(ctx, s, keyVehicles, s.repo.VehicleModels)
	if err != nil {
		return nil, err
	}

	var out []domain.VehicleModel
	for _, m := range models {
		if strings.EqualFold(m.Make, strings.TrimSpace(vehicleMake)) {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("vehicle make %q: %w", vehicleMake, domain.ErrNotFound)
	}

	slices.SortStableFunc(out, func(a, b domain.VehicleModel) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return a.Year - b.Year
	})
	return out, nil
}

// load returns the cached table under key or fetches and caches it.
func load[T any](ctx context.Context, s *Service, key string, fetch func(context.Context) (T, error)) (T, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			if typed, ok := v.(T); ok {
				return typed, nil
			}
		}
	}

	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("load %s: %w", key, err)
	}

	if s.cache != nil {
		s.cache.Add(key, v)
	}
	return v, nil
}
