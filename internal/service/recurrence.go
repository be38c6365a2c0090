package service

import (
	"time"

	"eventmaster/internal/model"
)

// ── recurrence date generation ──────────────────────────────
//
// GenerateRecurrenceDates expands a series request into the ordered list
// of calendar dates the series should occupy. The function is pure and
// stateless: callers are responsible for deduplication against existing
// occurrences before materializing.
//
// Weekly: starting at startDate, one date every interval weeks. The
// weekday is pinned to startDate's weekday for the whole series.
//
// Monthly: interval is reinterpreted as "the Nth occurrence of
// startDate's weekday within a month", N in 1..4. Months with fewer than
// N such weekdays are skipped, never clamped to the nearest date. N
// outside 1..4 produces no dates.
// ─────────────────────────────────────────────────────────────

// GenerateRecurrenceDates returns the series dates within
// [startDate, endDate] inclusive. Invalid inputs (end before start,
// interval < 1, unknown frequency) yield an empty slice, never an error.
func GenerateRecurrenceDates(startDate, endDate time.Time, frequencyType string, interval int) []time.Time {
	start := truncateToDay(startDate)
	end := truncateToDay(endDate)
	if end.Before(start) || interval < 1 {
		return nil
	}

	switch frequencyType {
	case model.FrequencyWeekly:
		return weeklyDates(start, end, interval)
	case model.FrequencyMonthly:
		return monthlyNthWeekdayDates(start, end, interval)
	default:
		return nil
	}
}

func weeklyDates(start, end time.Time, interval int) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 7*interval) {
		dates = append(dates, d)
	}
	return dates
}

// monthlyNthWeekdayDates walks every calendar month from start's month
// through end's month and emits the nth occurrence of start's weekday,
// when that month has one.
func monthlyNthWeekdayDates(start, end time.Time, nth int) []time.Time {
	// No 5th-week wraparound: four is the largest guaranteed count.
	if nth < 1 || nth > 4 {
		return nil
	}

	weekday := start.Weekday()
	var dates []time.Time

	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	for !cursor.After(lastMonth) {
		d := nthWeekdayOfMonth(cursor.Year(), cursor.Month(), weekday, nth)
		if !d.IsZero() && !d.Before(start) && !d.After(end) {
			dates = append(dates, d)
		}
		cursor = cursor.AddDate(0, 1, 0)
	}
	return dates
}

// nthWeekdayOfMonth returns the nth given weekday of a month, or the
// zero time when the month holds fewer than n of them.
func nthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	d := first.AddDate(0, 0, offset+(n-1)*7)
	if d.Month() != month {
		return time.Time{}
	}
	return d
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
