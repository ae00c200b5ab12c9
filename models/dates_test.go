package models

import (
	"testing"
	"time"
)

func TestSameCalendarDay(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{
			"same day different hours",
			time.Date(2026, 3, 1, 0, 1, 0, 0, time.UTC),
			time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC),
			true,
		},
		{
			"across midnight",
			time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC),
			false,
		},
		{
			"same instant in different zones",
			time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 1, 0, 0, 0, time.FixedZone("CEST", 2*3600)),
			true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SameCalendarDay(tc.a, tc.b); got != tc.want {
				t.Errorf("SameCalendarDay(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{
			"same day",
			time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC),
			0,
		},
		{
			"adjacent days barely apart",
			time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC),
			1,
		},
		{
			"month boundary",
			time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
			2,
		},
		{
			"negative when reversed",
			time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			-2,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysBetween(tc.a, tc.b); got != tc.want {
				t.Errorf("DaysBetween(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
