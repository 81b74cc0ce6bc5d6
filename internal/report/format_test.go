package report_test

import (
	"testing"
	"time"

	"github.com/parcauto/fleet-dashboard/internal/report"
	"github.com/stretchr/testify/assert"
)

func TestFormatXAF(t *testing.T) {
	assert.Equal(t, "1 234 568 XAF", report.FormatXAF(1234567.8))
	assert.Equal(t, "0 XAF", report.FormatXAF(0))
	assert.Equal(t, "500 XAF", report.FormatXAF(500))
	assert.Equal(t, "12 000 XAF", report.FormatXAF(12000))
}

func TestFormatNumberNegative(t *testing.T) {
	assert.Equal(t, "-1 500", report.FormatNumber(-1500))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "+12.5%", report.FormatPercent(12.5))
	assert.Equal(t, "-3.0%", report.FormatPercent(-3))
	assert.Equal(t, "+0.0%", report.FormatPercent(0))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "15 mars 2025", report.FormatDate(time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1 août 2026", report.FormatDate(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Janvier", report.MonthLabel("01"))
	assert.Equal(t, "Décembre", report.MonthLabel("12"))
	assert.Equal(t, "Mars", report.MonthLabel("2025-03"))
	// Unknown keys pass through
	assert.Equal(t, "Janvier 2025", report.MonthLabel("Janvier 2025"))
}
