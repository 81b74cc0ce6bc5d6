package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/parcauto/fleet-dashboard/internal/backend"
	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/parcauto/fleet-dashboard/internal/query"
	"github.com/parcauto/fleet-dashboard/internal/report"
	"github.com/parcauto/fleet-dashboard/internal/storage"
	"go.uber.org/zap"
)

// Export formats
const (
	FormatExcel = "excel"
	FormatPDF   = "pdf"
	FormatCSV   = "csv"
)

// Export is a rendered report document ready for download
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService fetches annual aggregates, derives the headline figures and
// renders the export documents. Rendered exports are also archived to the
// configured storage when one is set.
type ReportService struct {
	client  *backend.Client
	cache   *query.Cache
	archive storage.FileStorage
	logger  *zap.Logger
}

func NewReportService(client *backend.Client, cache *query.Cache, archive storage.FileStorage, logger *zap.Logger) *ReportService {
	return &ReportService{
		client:  client,
		cache:   cache,
		archive: archive,
		logger:  logger,
	}
}

// Annual returns the annual report for a year together with its derived
// summary. The prior year is fetched for the variation figure; a missing
// prior year is not an error, the variation just stays at zero.
func (s *ReportService) Annual(ctx context.Context, year int) (*domain.AnnualReport, report.Summary, error) {
	current, err := s.fetchAnnual(ctx, year)
	if err != nil {
		return nil, report.Summary{}, err
	}

	previous, err := s.fetchAnnual(ctx, year-1)
	if err != nil {
		if apiErr, ok := backend.AsAPIError(err); !ok || !apiErr.IsNotFound() {
			s.logger.Warn("previous year report unavailable",
				zap.Int("year", year-1),
				zap.Error(err),
			)
		}
		previous = nil
	}

	return current, report.Summarize(current, previous), nil
}

// Forecast returns the next-year budget estimate the backend embeds in the
// annual summary. The backend owns the computation; the gateway only reads it.
func (s *ReportService) Forecast(ctx context.Context, year int) (*domain.Forecast, error) {
	annual, err := s.fetchAnnual(ctx, year)
	if err != nil {
		return nil, err
	}
	if annual.ForecastNextYear == nil {
		return nil, ErrForecastUnavailable
	}
	return annual.ForecastNextYear, nil
}

// Export renders the annual report in the requested format
func (s *ReportService) Export(ctx context.Context, year int, format string) (*Export, error) {
	annual, summary, err := s.Annual(ctx, year)
	if err != nil {
		return nil, err
	}

	var export *Export
	switch format {
	case FormatExcel:
		buf, err := report.BuildExcel(annual, summary)
		if err != nil {
			return nil, err
		}
		export = &Export{
			Filename:    report.Filename("annuel", year, "xlsx"),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        buf.Bytes(),
		}
	case FormatPDF:
		buf, err := report.BuildPDF(annual, summary, time.Now())
		if err != nil {
			return nil, err
		}
		export = &Export{
			Filename:    report.Filename("annuel", year, "pdf"),
			ContentType: "application/pdf",
			Data:        buf.Bytes(),
		}
	case FormatCSV:
		buf, err := report.BuildCSV(annual, summary)
		if err != nil {
			return nil, err
		}
		export = &Export{
			Filename:    report.Filename("annuel", year, "csv"),
			ContentType: "text/csv; charset=utf-8",
			Data:        buf.Bytes(),
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExportFormat, format)
	}

	s.archiveExport(ctx, export)
	s.logger.Info("report exported",
		zap.Int("year", year),
		zap.String("format", format),
		zap.Int("size", len(export.Data)),
	)
	return export, nil
}

func (s *ReportService) fetchAnnual(ctx context.Context, year int) (*domain.AnnualReport, error) {
	key := "reports:annual:" + strconv.Itoa(year)

	result, err := s.cache.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		var annual domain.AnnualReport
		if err := s.client.GetJSON(ctx, "/reports/annual-summary/"+strconv.Itoa(year), nil, &annual); err != nil {
			return nil, fmt.Errorf("failed to fetch annual report for %d: %w", year, err)
		}
		if annual.Year == 0 {
			annual.Year = year
		}
		return &annual, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.AnnualReport), nil
}

// archiveExport keeps a copy of each rendered export. Archiving is best
// effort: a storage failure never blocks the download.
func (s *ReportService) archiveExport(ctx context.Context, export *Export) {
	if s.archive == nil {
		return
	}
	if _, err := s.archive.Save(ctx, "exports/"+export.Filename, export.ContentType, export.Data); err != nil {
		s.logger.Warn("failed to archive export",
			zap.String("filename", export.Filename),
			zap.Error(err),
		)
	}
}
