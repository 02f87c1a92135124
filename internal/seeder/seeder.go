// Package seeder loads the reference tables (supported countries, fuel
// sources, vehicle models) from a YAML file and replaces the stored copy.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// File is the on-disk layout of a seed file.
type File struct {
	Countries     []CountryRow `yaml:"countries"`
	FuelSources   []FuelRow    `yaml:"fuel_sources"`
	VehicleModels []VehicleRow `yaml:"vehicle_models"`
}

type CountryRow struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type FuelRow struct {
	ID      int    `yaml:"id"`
	Type    string `yaml:"type"`
	APIName string `yaml:"api_name"`
	Units   []string `yaml:"units"`
}

type VehicleRow struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Year int    `yaml:"year"`
	Make string `yaml:"make"`
}

type replacer interface {
	Replace(ctx context.Context, data domain.ReferenceData) error
}

// LoadFile reads and validates the seed file at path.
func LoadFile(path string) (domain.ReferenceData, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.ReferenceData{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	data, err := Parse(f)
	if err != nil {
		return domain.ReferenceData{}, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Parse decodes a seed document. Unknown keys are rejected and every row
// problem is reported, not just the first.
func Parse(r io.Reader) (domain.ReferenceData, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		return domain.ReferenceData{}, fmt.Errorf("decode seed yaml: %w", err)
	}

	return file.toReferenceData()
}

// Run replaces the stored reference data with data.
func Run(ctx context.Context, log *slog.Logger, repo replacer, data domain.ReferenceData) error {
	if err := repo.Replace(ctx, data); err != nil {
		return fmt.Errorf("replace reference data: %w", err)
	}

	log.InfoContext(ctx, "reference data seeded",
		slog.Int("countries", len(data.Countries)),
		slog.Int("fuel_sources", len(data.FuelSources)),
		slog.Int("vehicle_models", len(data.VehicleModels)),
	)
	return nil
}

func (f File) toReferenceData() (domain.ReferenceData, error) {
	var (
		errs []error
		out  domain.ReferenceData
	)

	codes := make(map[string]bool, len(f.Countries))
	for i, c := range f.Countries {
		code := strings.ToUpper(strings.TrimSpace(c.Code))
		switch {
		case len(code) != 2:
			errs = append(errs, fmt.Errorf("countries[%d]: code %q must be two letters", i, c.Code))
			continue
		case strings.TrimSpace(c.Name) == "":
			errs = append(errs, fmt.Errorf("countries[%d]: name is required", i))
			continue
		case codes[code]:
			errs = append(errs, fmt.Errorf("countries[%d]: duplicate code %s", i, code))
			continue
		}
		codes[code] = true
		out.Countries = append(out.Countries, domain.Country{Code: code, Name: strings.TrimSpace(c.Name)})
	}

	fuelKeys := make(map[string]bool)
	for i, fs := range f.FuelSources {
		if fs.ID <= 0 || strings.TrimSpace(fs.Type) == "" || strings.TrimSpace(fs.APIName) == "" {
			errs = append(errs, fmt.Errorf("fuel_sources[%d]: id, type and api_name are required", i))
			continue
		}
		if len(fs.Units) == 0 {
			errs = append(errs, fmt.Errorf("fuel_sources[%d]: at least one unit is required", i))
			continue
		}
		for _, unit := range fs.Units {
			unit = strings.TrimSpace(unit)
			key := fmt.Sprintf("%d/%s", fs.ID, unit)
			if unit == "" || fuelKeys[key] {
				errs = append(errs, fmt.Errorf("fuel_sources[%d]: empty or duplicate unit %q", i, unit))
				continue
			}
			fuelKeys[key] = true
			out.FuelSources = append(out.FuelSources, domain.FuelSource{
				ID:      fs.ID,
				Type:    strings.TrimSpace(fs.Type),
				Unit:    unit,
				APIName: strings.TrimSpace(fs.APIName),
			})
		}
	}

	models := make(map[string]bool, len(f.VehicleModels))
	for i, v := range f.VehicleModels {
		id := strings.TrimSpace(v.ID)
		if id == "" || strings.TrimSpace(v.Name) == "" || strings.TrimSpace(v.Make) == "" || v.Year <= 0 {
			errs = append(errs, fmt.Errorf("vehicle_models[%d]: id, name, make and year are required", i))
			continue
		}
		if models[id] {
			errs = append(errs, fmt.Errorf("vehicle_models[%d]: duplicate id %s", i, id))
			continue
		}
		models[id] = true
		out.VehicleModels = append(out.VehicleModels, domain.VehicleModel{
			ID:   id,
			Name: strings.TrimSpace(v.Name),
			Year: v.Year,
			Make: strings.TrimSpace(v.Make),
		})
	}

	if len(errs) > 0 {
		return domain.ReferenceData{}, errors.Join(errs...)
	}
	return out, nil
}
