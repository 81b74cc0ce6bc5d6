package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/parcauto/fleet-dashboard/internal/report"
	"github.com/parcauto/fleet-dashboard/internal/service"
	"go.uber.org/zap"
)

type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// annualReportResponse bundles the aggregates with the derived summary
type annualReportResponse struct {
	Report  interface{}    `json:"report"`
	Summary report.Summary `json:"summary"`
}

// Annual godoc
// @Summary Annual report
// @Description Aggregated costs and the derived summary for a year
// @Tags Reports
// @Produce json
// @Param year query int false "Year, defaults to the current one"
// @Success 200 {object} handler.annualReportResponse
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Router /reports/annual [get]
func (h *ReportHandler) Annual(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year")
	if year == 0 {
		year = time.Now().Year()
	}

	annual, summary, err := h.reportService.Annual(r.Context(), year)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, annualReportResponse{
		Report:  annual,
		Summary: summary,
	})
}

// Forecast godoc
// @Summary Budget forecast
// @Description Backend-computed budget estimate for the next year
// @Tags Reports
// @Produce json
// @Param year query int false "Reference year, defaults to the current one"
// @Success 200 {object} domain.Forecast
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Router /reports/forecast [get]
func (h *ReportHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year")
	if year == 0 {
		year = time.Now().Year()
	}

	forecast, err := h.reportService.Forecast(r.Context(), year)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, forecast)
}

// Export godoc
// @Summary Export annual report
// @Description Download the annual report as XLSX, PDF or CSV
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Produce text/csv
// @Param year query int false "Year, defaults to the current one"
// @Param format query string true "Export format" Enums(excel, pdf, csv)
// @Success 200 {file} file
// @Failure 400 {object} domain.APIError
// @Security CookieAuth
// @Router /reports/export [get]
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year")
	if year == 0 {
		year = time.Now().Year()
	}
	format := r.URL.Query().Get("format")

	export, err := h.reportService.Export(r.Context(), year, format)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Data)
}
