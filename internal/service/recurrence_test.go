package service

import (
	"testing"
	"time"

	"eventmaster/internal/model"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func assertDates(t *testing.T, got []time.Time, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d dates, got %d: %v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].Format("2006-01-02") != w {
			t.Errorf("date %d: expected %s, got %s", i, w, got[i].Format("2006-01-02"))
		}
	}
}

func TestGenerateRecurrenceDatesWeekly(t *testing.T) {
	got := GenerateRecurrenceDates(date("2025-01-05"), date("2025-02-02"), model.FrequencyWeekly, 1)
	assertDates(t, got, []string{
		"2025-01-05", "2025-01-12", "2025-01-19", "2025-01-26", "2025-02-02",
	})
}

func TestGenerateRecurrenceDatesBiweekly(t *testing.T) {
	got := GenerateRecurrenceDates(date("2025-01-05"), date("2025-02-02"), model.FrequencyWeekly, 2)
	assertDates(t, got, []string{"2025-01-05", "2025-01-19", "2025-02-02"})
}

func TestGenerateRecurrenceDatesWeeklyAcrossYearBoundary(t *testing.T) {
	got := GenerateRecurrenceDates(date("2024-12-22"), date("2025-01-12"), model.FrequencyWeekly, 1)
	assertDates(t, got, []string{"2024-12-22", "2024-12-29", "2025-01-05", "2025-01-12"})
}

func TestGenerateRecurrenceDatesMonthlyNthWeekday(t *testing.T) {
	// 2025-01-05 is the 1st Sunday of January; every month keeps that slot.
	got := GenerateRecurrenceDates(date("2025-01-05"), date("2025-04-30"), model.FrequencyMonthly, 1)
	assertDates(t, got, []string{"2025-01-05", "2025-02-02", "2025-03-02", "2025-04-06"})
}

func TestGenerateRecurrenceDatesMonthlySecondWeekday(t *testing.T) {
	// 2025-01-12 is the 2nd Sunday of January; interval 2 pins that slot.
	got := GenerateRecurrenceDates(date("2025-01-12"), date("2025-04-30"), model.FrequencyMonthly, 2)
	assertDates(t, got, []string{"2025-01-12", "2025-02-09", "2025-03-09", "2025-04-13"})
}

func TestGenerateRecurrenceDatesMonthlyIntervalTooLarge(t *testing.T) {
	got := GenerateRecurrenceDates(date("2025-01-05"), date("2025-12-31"), model.FrequencyMonthly, 5)
	if len(got) != 0 {
		t.Fatalf("expected no dates for monthly interval 5, got %v", got)
	}
}

func TestGenerateRecurrenceDatesInvalidInput(t *testing.T) {
	if got := GenerateRecurrenceDates(date("2025-01-05"), date("2025-02-02"), model.FrequencyWeekly, 0); len(got) != 0 {
		t.Errorf("expected no dates for interval 0, got %v", got)
	}
	if got := GenerateRecurrenceDates(date("2025-02-02"), date("2025-01-05"), model.FrequencyWeekly, 1); len(got) != 0 {
		t.Errorf("expected no dates when end precedes start, got %v", got)
	}
	if got := GenerateRecurrenceDates(date("2025-01-05"), date("2025-02-02"), "yearly", 1); len(got) != 0 {
		t.Errorf("expected no dates for unknown frequency, got %v", got)
	}
}

func TestGenerateRecurrenceDatesSingleDay(t *testing.T) {
	got := GenerateRecurrenceDates(date("2025-01-05"), date("2025-01-05"), model.FrequencyWeekly, 1)
	assertDates(t, got, []string{"2025-01-05"})
}
