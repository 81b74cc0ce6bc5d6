package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/parcauto/fleet-dashboard/internal/domain"
)

// BuildPDF renders an annual report as a printable PDF document: a title
// block with the generation date, headline figures, then one table per
// section and a closing forecast page. Page footers carry "Page i/N".
func BuildPDF(r *domain.AnnualReport, summary Summary, generatedAt time.Time) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Rapport annuel de maintenance %d", r.Year), true)
	pdf.SetCompression(false)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// Title block
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("Rapport Annuel de Maintenance %d", r.Year)), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr("Service de gestion du parc automobile"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr("Généré le "+FormatDate(generatedAt)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Headline figures
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr("Synthèse"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	writeKPI := func(label, value string) {
		pdf.CellFormat(80, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
	}
	writeKPI("Coût total :", FormatXAF(summary.TotalCost))
	writeKPI("Nombre d'opérations :", fmt.Sprintf("%d", summary.TotalOperations))
	writeKPI("Coût moyen par opération :", FormatXAF(summary.AverageCost))
	writeKPI("Variation vs année précédente :", FormatPercent(summary.CostVariation))
	pdf.Ln(6)

	header3 := func(a, b, c string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(217, 225, 242)
		pdf.CellFormat(80, 8, tr(a), "1", 0, "L", true, 0, "")
		pdf.CellFormat(40, 8, tr(b), "1", 0, "R", true, 0, "")
		pdf.CellFormat(60, 8, tr(c), "1", 1, "R", true, 0, "")
		pdf.SetFont("Arial", "", 10)
	}
	row3 := func(a string, b int, c float64) {
		pdf.CellFormat(80, 7, tr(a), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", b), "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 7, tr(FormatXAF(c)), "1", 1, "R", false, 0, "")
	}

	// Monthly costs
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr("Coûts mensuels"), "", 1, "L", false, 0, "")
	header3("Mois", "Opérations", "Coût Total")
	for _, m := range r.MonthlyCosts {
		row3(MonthLabel(m.Month), m.OperationsCount, m.TotalCost)
	}
	pdf.Ln(6)

	// Costs by category
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr("Coûts par catégorie"), "", 1, "L", false, 0, "")
	header3("Catégorie", "Opérations", "Coût Total")
	for _, c := range r.CostsByCategory {
		row3(c.Category.Label(), c.OperationsCount, c.TotalCost)
	}
	pdf.Ln(6)

	// Costs by vehicle type
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr("Coûts par type de véhicule"), "", 1, "L", false, 0, "")
	header3("Type de Véhicule", "Opérations", "Coût Total")
	for _, t := range r.CostsByVehicleType {
		row3(t.VehicleType, t.OperationsCount, t.TotalCost)
	}

	// Top vehicles
	if len(r.TopVehicles) > 0 {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, tr("Véhicules les plus coûteux"), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(217, 225, 242)
		pdf.CellFormat(45, 8, tr("Immatriculation"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(55, 8, tr("Véhicule"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 8, tr("Opérations"), "1", 0, "R", true, 0, "")
		pdf.CellFormat(50, 8, tr("Coût Total"), "1", 1, "R", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, v := range r.TopVehicles {
			pdf.CellFormat(45, 7, tr(v.RegistrationNumber), "1", 0, "L", false, 0, "")
			pdf.CellFormat(55, 7, tr(v.Brand+" "+v.Model), "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 7, fmt.Sprintf("%d", v.OperationsCount), "1", 0, "R", false, 0, "")
			pdf.CellFormat(50, 7, tr(FormatXAF(v.TotalCost)), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
	}

	// Spare parts consumption
	if len(r.SparePartsConsumption) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, tr("Consommation de pièces détachées"), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(217, 225, 242)
		pdf.CellFormat(30, 8, tr("Code"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(70, 8, tr("Désignation"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 8, tr("Quantité"), "1", 0, "R", true, 0, "")
		pdf.CellFormat(50, 8, tr("Coût Total"), "1", 1, "R", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, p := range r.SparePartsConsumption {
			pdf.CellFormat(30, 7, tr(p.Code), "1", 0, "L", false, 0, "")
			pdf.CellFormat(70, 7, tr(p.Name), "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 7, fmt.Sprintf("%d", p.QuantityUsed), "1", 0, "R", false, 0, "")
			pdf.CellFormat(50, 7, tr(FormatXAF(p.TotalCost)), "1", 1, "R", false, 0, "")
		}
	}

	// Forecast
	if fc := r.ForecastNextYear; fc != nil {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Prévision budgétaire %d", fc.Year)), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		writeKPI("Budget prévisionnel :", FormatXAF(fc.ForecastAmount))
		writeKPI("Méthode de calcul :", fc.CalculationMethod)
		if fc.ReferenceVehicle != "" {
			writeKPI("Véhicule de référence :", fc.ReferenceVehicle)
		}
		writeKPI("Coût véhicule le plus élevé :", FormatXAF(fc.HighestVehicleCost))
		writeKPI("Nombre de véhicules :", fmt.Sprintf("%d", fc.VehiclesCount))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return &buf, nil
}
