package report

import (
	"bytes"
	"fmt"

	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

// BuildExcel renders an annual report as an XLSX workbook, one sheet per
// section. Amounts are written as raw numbers so the file stays usable in
// spreadsheet formulas; only the statistics sheet carries formatted strings.
func BuildExcel(r *domain.AnnualReport, summary Summary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	writeHeader := func(sheet string, headers []string) {
		for i, h := range headers {
			col, _ := excelize.ColumnNumberToName(i + 1)
			cell := col + "1"
			f.SetCellValue(sheet, cell, h)
			f.SetCellStyle(sheet, cell, cell, headerStyle)
		}
	}

	// Statistiques
	statsSheet := "Statistiques"
	f.SetSheetName("Sheet1", statsSheet)
	writeHeader(statsSheet, []string{"Indicateur", "Valeur"})
	stats := [][2]interface{}{
		{"Année", r.Year},
		{"Coût total", summary.TotalCost},
		{"Nombre d'opérations", summary.TotalOperations},
		{"Coût moyen par opération", summary.AverageCost},
		{"Variation vs année précédente", FormatPercent(summary.CostVariation)},
		{"Véhicules", r.Stats.TotalVehicles},
		{"Véhicules actifs", r.Stats.ActiveVehicles},
		{"Véhicules en maintenance", r.Stats.MaintenanceVehicles},
		{"Véhicules hors service", r.Stats.OutOfServiceVehicles},
		{"Opérations en attente", r.Stats.PendingOperations},
		{"Pièces en stock faible", r.Stats.LowStockParts},
	}
	for i, row := range stats {
		f.SetCellValue(statsSheet, fmt.Sprintf("A%d", i+2), row[0])
		f.SetCellValue(statsSheet, fmt.Sprintf("B%d", i+2), row[1])
	}
	f.SetColWidth(statsSheet, "A", "A", 32)
	f.SetColWidth(statsSheet, "B", "B", 18)

	// Coûts Mensuels
	monthlySheet := "Coûts Mensuels"
	f.NewSheet(monthlySheet)
	writeHeader(monthlySheet, []string{"Mois", "Opérations", "Coût Total"})
	for i, m := range r.MonthlyCosts {
		row := i + 2
		f.SetCellValue(monthlySheet, fmt.Sprintf("A%d", row), MonthLabel(m.Month))
		f.SetCellValue(monthlySheet, fmt.Sprintf("B%d", row), m.OperationsCount)
		f.SetCellValue(monthlySheet, fmt.Sprintf("C%d", row), m.TotalCost)
	}

	// Coûts par Catégorie
	categorySheet := "Coûts par Catégorie"
	f.NewSheet(categorySheet)
	writeHeader(categorySheet, []string{"Catégorie", "Opérations", "Coût Total"})
	for i, c := range r.CostsByCategory {
		row := i + 2
		f.SetCellValue(categorySheet, fmt.Sprintf("A%d", row), c.Category.Label())
		f.SetCellValue(categorySheet, fmt.Sprintf("B%d", row), c.OperationsCount)
		f.SetCellValue(categorySheet, fmt.Sprintf("C%d", row), c.TotalCost)
	}

	// Coûts par Type
	typeSheet := "Coûts par Type"
	f.NewSheet(typeSheet)
	writeHeader(typeSheet, []string{"Type de Véhicule", "Opérations", "Coût Total"})
	for i, t := range r.CostsByVehicleType {
		row := i + 2
		f.SetCellValue(typeSheet, fmt.Sprintf("A%d", row), t.VehicleType)
		f.SetCellValue(typeSheet, fmt.Sprintf("B%d", row), t.OperationsCount)
		f.SetCellValue(typeSheet, fmt.Sprintf("C%d", row), t.TotalCost)
	}

	// Top Véhicules
	if len(r.TopVehicles) > 0 {
		vehicleSheet := "Top Véhicules"
		f.NewSheet(vehicleSheet)
		writeHeader(vehicleSheet, []string{"Immatriculation", "Marque", "Modèle", "Opérations", "Coût Total"})
		for i, v := range r.TopVehicles {
			row := i + 2
			f.SetCellValue(vehicleSheet, fmt.Sprintf("A%d", row), v.RegistrationNumber)
			f.SetCellValue(vehicleSheet, fmt.Sprintf("B%d", row), v.Brand)
			f.SetCellValue(vehicleSheet, fmt.Sprintf("C%d", row), v.Model)
			f.SetCellValue(vehicleSheet, fmt.Sprintf("D%d", row), v.OperationsCount)
			f.SetCellValue(vehicleSheet, fmt.Sprintf("E%d", row), v.TotalCost)
		}
	}

	// Pièces Détachées
	if len(r.SparePartsConsumption) > 0 {
		partsSheet := "Pièces Détachées"
		f.NewSheet(partsSheet)
		writeHeader(partsSheet, []string{"Code", "Désignation", "Quantité Utilisée", "Coût Total"})
		for i, p := range r.SparePartsConsumption {
			row := i + 2
			f.SetCellValue(partsSheet, fmt.Sprintf("A%d", row), p.Code)
			f.SetCellValue(partsSheet, fmt.Sprintf("B%d", row), p.Name)
			f.SetCellValue(partsSheet, fmt.Sprintf("C%d", row), p.QuantityUsed)
			f.SetCellValue(partsSheet, fmt.Sprintf("D%d", row), p.TotalCost)
		}
	}

	// Prévision
	if fc := r.ForecastNextYear; fc != nil {
		forecastSheet := "Prévision"
		f.NewSheet(forecastSheet)
		writeHeader(forecastSheet, []string{"Indicateur", "Valeur"})
		rows := [][2]interface{}{
			{"Année", fc.Year},
			{"Budget prévisionnel", fc.ForecastAmount},
			{"Méthode de calcul", fc.CalculationMethod},
			{"Véhicule de référence", fc.ReferenceVehicle},
			{"Coût véhicule le plus élevé", fc.HighestVehicleCost},
			{"Nombre de véhicules", fc.VehiclesCount},
		}
		for i, row := range rows {
			f.SetCellValue(forecastSheet, fmt.Sprintf("A%d", i+2), row[0])
			f.SetCellValue(forecastSheet, fmt.Sprintf("B%d", i+2), row[1])
		}
		f.SetColWidth(forecastSheet, "A", "A", 32)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return &buf, nil
}
