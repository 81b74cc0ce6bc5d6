package report

import (
	"fmt"
	"strings"
	"time"
)

// FormatXAF renders an amount the way the dashboard displays money: no
// decimals, space-grouped thousands, with the currency suffix.
// 1234567.8 -> "1 234 568 XAF"
func FormatXAF(amount float64) string {
	return FormatNumber(amount) + " XAF"
}

// FormatNumber renders an amount with no decimals and space-grouped thousands
func FormatNumber(amount float64) string {
	rounded := int64(amount + 0.5)
	if amount < 0 {
		rounded = int64(amount - 0.5)
	}

	neg := rounded < 0
	if neg {
		rounded = -rounded
	}

	digits := fmt.Sprintf("%d", rounded)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}
	return b.String()
}

// FormatPercent renders a variation with one decimal and an explicit sign,
// e.g. "+12.5%" or "-3.0%"
func FormatPercent(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

// FormatDate renders a date in French, e.g. "15 janvier 2025"
func FormatDate(t time.Time) string {
	month := strings.ToLower(MonthLabel(fmt.Sprintf("%02d", int(t.Month()))))
	return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
}

// monthLabels maps the backend's numeric month keys to French display names
var monthLabels = map[string]string{
	"01": "Janvier", "02": "Février", "03": "Mars",
	"04": "Avril", "05": "Mai", "06": "Juin",
	"07": "Juillet", "08": "Août", "09": "Septembre",
	"10": "Octobre", "11": "Novembre", "12": "Décembre",
}

// MonthLabel converts a month key ("2025-03" or "03") to its French name.
// Unknown keys pass through unchanged.
func MonthLabel(key string) string {
	k := key
	if idx := strings.LastIndex(k, "-"); idx >= 0 {
		k = k[idx+1:]
	}
	if label, ok := monthLabels[k]; ok {
		return label
	}
	return key
}
