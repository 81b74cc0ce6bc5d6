// Package report turns annual maintenance aggregates into derived figures and
// downloadable documents (XLSX, PDF, CSV). All amounts are in XAF.
package report

import (
	"fmt"

	"github.com/parcauto/fleet-dashboard/internal/domain"
)

// Variation returns the percentage change from previous to current. A zero
// previous value yields zero rather than a division error; the comparison is
// meaningless without a baseline.
func Variation(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// AverageCost divides a total by an operation count, returning zero when
// there were no operations
func AverageCost(total float64, operations int) float64 {
	if operations == 0 {
		return 0
	}
	return total / float64(operations)
}

// Summary carries the derived headline figures for an annual report
type Summary struct {
	Year            int     `json:"year"`
	TotalCost       float64 `json:"total_cost"`
	TotalOperations int     `json:"total_operations"`
	AverageCost     float64 `json:"average_cost"`
	PreviousCost    float64 `json:"previous_cost"`
	CostVariation   float64 `json:"cost_variation"`
}

// Summarize computes the headline figures for a report, using the prior
// year's report for the variation when available
func Summarize(current *domain.AnnualReport, previous *domain.AnnualReport) Summary {
	total := current.TotalCost()
	ops := current.TotalOperations()
	s := Summary{
		Year:            current.Year,
		TotalCost:       total,
		TotalOperations: ops,
		AverageCost:     AverageCost(total, ops),
	}
	if previous != nil {
		s.PreviousCost = previous.TotalCost()
		s.CostVariation = Variation(total, s.PreviousCost)
	}
	return s
}

// Filename builds the download name for an export, e.g. rapport-annuel-2025.xlsx
func Filename(reportType string, year int, extension string) string {
	return fmt.Sprintf("rapport-%s-%d.%s", reportType, year, extension)
}
