package emission

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// CSVHeader is the first row of a non-empty export.
var CSVHeader = []string{"Date", "Activity Type", "Input Parameters", "Emission (kg CO2e)"}

// NoDataRow is the only row written when nothing matches.
const NoDataRow = "No data found"

// ExportCSV writes the report for in to w as CSV: one row per record and a
// trailing total row. Nothing is written if the report cannot be built.
func (s *Service) ExportCSV(ctx context.Context, in ReportInput, w io.Writer) error {
	report, err := s.Report(ctx, in)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	if len(report.Records) == 0 {
		if err := cw.Write([]string{NoDataRow}); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		cw.Flush()
		return cw.Error()
	}

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	for _, rec := range report.Records {
		params, err := json.Marshal(rec.Params)
		if err != nil {
			return fmt.Errorf("encode input params: %w", err)
		}
		row := []string{
			rec.Timestamp.UTC().Format(time.RFC3339),
			rec.ActivityType.String(),
			string(params),
			domain.FormatKg(rec.CarbonKg),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}

	if err := cw.Write([]string{"", "", "Total Emissions:", domain.FormatKg(report.TotalKg)}); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	cw.Flush()
	return cw.Error()
}
