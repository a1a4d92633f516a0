// Package report derives summary statistics from fleet records. Every
// function here is pure: callers fetch the records and supply the reference
// instant, so identical inputs always produce identical reports.
package report

import (
	"strings"
	"time"

	"github.com/nurpe/busfleet/internal/model"
)

const (
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"

	DefaultPeriod = PeriodMonth
)

// NormalizePeriod maps unknown or empty keywords to DefaultPeriod.
func NormalizePeriod(period string) string {
	switch p := strings.ToLower(strings.TrimSpace(period)); p {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return p
	default:
		return DefaultPeriod
	}
}

// ResolveDateRange returns the window for period ending at ref.
func ResolveDateRange(period string, ref time.Time) model.DateRange {
	y, m, _ := ref.Date()
	loc := ref.Location()

	var start time.Time
	switch NormalizePeriod(period) {
	case PeriodWeek:
		start = ref.AddDate(0, 0, -7)
	case PeriodQuarter:
		first := time.Month((int(m)-1)/3*3 + 1)
		start = time.Date(y, first, 1, 0, 0, 0, 0, loc)
	case PeriodYear:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
	}
	return model.DateRange{Start: start, End: ref}
}

// LatestDate returns the most recent valid date among records.
func LatestDate[T any](records []T, date func(T) model.Date) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, record := range records {
		d := date(record)
		if !d.Valid {
			continue
		}
		if !found || d.Time.After(latest) {
			latest = d.Time
			found = true
		}
	}
	return latest, found
}
