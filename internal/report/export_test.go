package report_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/parcauto/fleet-dashboard/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *domain.AnnualReport {
	return &domain.AnnualReport{
		Year: 2025,
		Stats: domain.DashboardStats{
			TotalVehicles:     12,
			ActiveVehicles:    9,
			PendingOperations: 2,
			LowStockParts:     1,
		},
		MonthlyCosts: []domain.MonthlyCost{
			{Month: "01", OperationsCount: 2, TotalCost: 120000},
			{Month: "02", OperationsCount: 1, TotalCost: 45000},
		},
		CostsByCategory: []domain.CategoryCost{
			{Category: domain.CategoryPreventive, OperationsCount: 2, TotalCost: 100000},
			{Category: domain.CategoryCorrective, OperationsCount: 1, TotalCost: 65000},
		},
		CostsByVehicleType: []domain.VehicleTypeCost{
			{VehicleType: "Camion", OperationsCount: 3, TotalCost: 165000},
		},
		TopVehicles: []domain.VehicleCost{
			{VehicleID: 1, RegistrationNumber: "CE-123-AB", Brand: "Toyota", Model: "Hilux", OperationsCount: 2, TotalCost: 120000},
		},
		SparePartsConsumption: []domain.PartConsumption{
			{SparePartID: 4, Code: "FLT-001", Name: "Filtre à huile", QuantityUsed: 3, TotalCost: 15000},
		},
		ForecastNextYear: &domain.Forecast{
			Year:               2026,
			ForecastAmount:     540000,
			CalculationMethod:  "highest_vehicle_cost",
			ReferenceVehicle:   "CE-123-AB",
			HighestVehicleCost: 120000,
			VehiclesCount:      12,
		},
	}
}

func TestBuildExcel(t *testing.T) {
	r := sampleReport()
	summary := report.Summarize(r, nil)

	buf, err := report.BuildExcel(r, summary)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Statistiques")
	assert.Contains(t, sheets, "Coûts Mensuels")
	assert.Contains(t, sheets, "Coûts par Catégorie")
	assert.Contains(t, sheets, "Coûts par Type")
	assert.Contains(t, sheets, "Top Véhicules")
	assert.Contains(t, sheets, "Pièces Détachées")
	assert.Contains(t, sheets, "Prévision")

	month, err := f.GetCellValue("Coûts Mensuels", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Janvier", month)

	// Costs stay numeric in the workbook
	cost, err := f.GetCellValue("Coûts Mensuels", "C2")
	require.NoError(t, err)
	assert.Equal(t, "120000", cost)

	category, err := f.GetCellValue("Coûts par Catégorie", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Préventive", category)
}

func TestBuildExcelSkipsEmptySections(t *testing.T) {
	r := sampleReport()
	r.TopVehicles = nil
	r.SparePartsConsumption = nil
	r.ForecastNextYear = nil

	buf, err := report.BuildExcel(r, report.Summarize(r, nil))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.NotContains(t, sheets, "Top Véhicules")
	assert.NotContains(t, sheets, "Pièces Détachées")
	assert.NotContains(t, sheets, "Prévision")
}

func TestBuildCSV(t *testing.T) {
	r := sampleReport()
	buf, err := report.BuildCSV(r, report.Summarize(r, nil))
	require.NoError(t, err)

	reader := csv.NewReader(bytes.NewReader(buf.Bytes()))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)

	assert.Equal(t, []string{"Mois", "Opérations", "Coût Total"}, records[0])
	assert.Equal(t, []string{"Janvier", "2", "120000"}, records[1])
	assert.Equal(t, []string{"Février", "1", "45000"}, records[2])

	// Summary KPIs follow the monthly rows, still raw numbers
	assert.Equal(t, []string{"Coût total annuel", "165000"}, records[3])
	assert.Equal(t, []string{"Nombre d'opérations", "3"}, records[4])
	assert.Equal(t, []string{"Coût moyen par opération", "55000"}, records[5])
}

func TestBuildPDF(t *testing.T) {
	r := sampleReport()
	generatedAt := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

	buf, err := report.BuildPDF(r, report.Summarize(r, nil), generatedAt)
	require.NoError(t, err)

	require.Greater(t, buf.Len(), 1000)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.True(t, bytes.Contains(buf.Bytes(), []byte("le 15 mars 2025")))
}
