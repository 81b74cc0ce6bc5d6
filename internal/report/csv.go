package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/parcauto/fleet-dashboard/internal/domain"
)

// BuildCSV renders the monthly cost series and the summary KPIs as CSV, the
// lightweight export for spreadsheet-free tooling. Values are written as raw
// numbers, no currency symbols.
func BuildCSV(r *domain.AnnualReport, summary Summary) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Mois", "Opérations", "Coût Total"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, m := range r.MonthlyCosts {
		record := []string{
			MonthLabel(m.Month),
			strconv.Itoa(m.OperationsCount),
			strconv.FormatFloat(m.TotalCost, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	kpis := [][]string{
		{"Coût total annuel", strconv.FormatFloat(summary.TotalCost, 'f', -1, 64)},
		{"Nombre d'opérations", strconv.Itoa(summary.TotalOperations)},
		{"Coût moyen par opération", strconv.FormatFloat(summary.AverageCost, 'f', -1, 64)},
	}
	for _, record := range kpis {
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv summary row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return &buf, nil
}
