package report_test

import (
	"testing"

	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/parcauto/fleet-dashboard/internal/report"
	"github.com/stretchr/testify/assert"
)

func TestVariation(t *testing.T) {
	assert.InDelta(t, 25.0, report.Variation(125, 100), 0.0001)
	assert.InDelta(t, -50.0, report.Variation(50, 100), 0.0001)
	assert.Equal(t, 0.0, report.Variation(100, 100))
}

func TestVariationZeroBaseline(t *testing.T) {
	// No baseline year means no meaningful variation
	assert.Equal(t, 0.0, report.Variation(5000, 0))
	assert.Equal(t, 0.0, report.Variation(0, 0))
}

func TestAverageCost(t *testing.T) {
	assert.InDelta(t, 250.0, report.AverageCost(1000, 4), 0.0001)
	assert.Equal(t, 0.0, report.AverageCost(1000, 0))
	assert.Equal(t, 0.0, report.AverageCost(0, 0))
}

func TestSummarize(t *testing.T) {
	current := &domain.AnnualReport{
		Year: 2025,
		MonthlyCosts: []domain.MonthlyCost{
			{Month: "01", OperationsCount: 3, TotalCost: 150000},
			{Month: "02", OperationsCount: 1, TotalCost: 50000},
		},
	}
	previous := &domain.AnnualReport{
		Year: 2024,
		MonthlyCosts: []domain.MonthlyCost{
			{Month: "01", OperationsCount: 2, TotalCost: 100000},
		},
	}

	s := report.Summarize(current, previous)

	assert.Equal(t, 2025, s.Year)
	assert.InDelta(t, 200000.0, s.TotalCost, 0.0001)
	assert.Equal(t, 4, s.TotalOperations)
	assert.InDelta(t, 50000.0, s.AverageCost, 0.0001)
	assert.InDelta(t, 100000.0, s.PreviousCost, 0.0001)
	assert.InDelta(t, 100.0, s.CostVariation, 0.0001)
}

func TestSummarizeWithoutPreviousYear(t *testing.T) {
	current := &domain.AnnualReport{
		Year: 2025,
		MonthlyCosts: []domain.MonthlyCost{
			{Month: "01", OperationsCount: 3, TotalCost: 150000},
		},
	}

	s := report.Summarize(current, nil)

	assert.Equal(t, 0.0, s.PreviousCost)
	assert.Equal(t, 0.0, s.CostVariation)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "rapport-annuel-2025.xlsx", report.Filename("annuel", 2025, "xlsx"))
	assert.Equal(t, "rapport-annuel-2024.pdf", report.Filename("annuel", 2024, "pdf"))
	assert.Equal(t, "rapport-annuel-2025.csv", report.Filename("annuel", 2025, "csv"))
}
