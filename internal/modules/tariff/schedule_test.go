package tariff

import (
	"testing"
	"time"
)

func TestSelect(t *testing.T) {
	// 2026-03-03 is a Tuesday, 2026-03-07 a Saturday, 2026-03-08 a Sunday.
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"weekday morning", time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC), "standard"},
		{"weekday start of day rate", time.Date(2026, 3, 3, 7, 0, 0, 0, time.UTC), "standard"},
		{"weekday last standard minute", time.Date(2026, 3, 3, 22, 59, 59, 0, time.UTC), "standard"},
		{"weekday night", time.Date(2026, 3, 3, 23, 0, 0, 0, time.UTC), "off-peak"},
		{"weekday early morning", time.Date(2026, 3, 3, 6, 59, 59, 0, time.UTC), "off-peak"},
		{"saturday afternoon", time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC), "standard"},
		{"sunday noon", time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC), "off-peak"},
		{"sunday night", time.Date(2026, 3, 8, 23, 30, 0, 0, time.UTC), "off-peak"},

		// Christmas window: Dec 24 23:00 through Dec 26 07:00.
		{"christmas eve before window", time.Date(2025, 12, 24, 22, 59, 59, 0, time.UTC), "standard"},
		{"christmas eve window opens", time.Date(2025, 12, 24, 23, 0, 0, 0, time.UTC), "holiday"},
		{"christmas midnight", time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), "holiday"},
		{"christmas day noon", time.Date(2025, 12, 25, 12, 0, 0, 0, time.UTC), "holiday"},
		{"boxing day early", time.Date(2025, 12, 26, 6, 59, 59, 0, time.UTC), "holiday"},
		{"boxing day window closed", time.Date(2025, 12, 26, 7, 0, 0, 0, time.UTC), "standard"},

		// New Year window: Dec 31 19:00 through Jan 2 07:00 of the next year.
		{"new years eve before window", time.Date(2025, 12, 31, 18, 59, 59, 0, time.UTC), "standard"},
		{"new years eve window opens", time.Date(2025, 12, 31, 19, 0, 0, 0, time.UTC), "holiday"},
		{"new year midnight crosses year boundary", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "holiday"},
		{"new years day noon", time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), "holiday"},
		{"jan 2 early", time.Date(2026, 1, 2, 6, 59, 59, 0, time.UTC), "holiday"},
		{"jan 2 window closed", time.Date(2026, 1, 2, 7, 0, 0, 0, time.UTC), "standard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Select(tt.at); got.Name != tt.want {
				t.Errorf("Select(%s) = %s, want %s", tt.at, got.Name, tt.want)
			}
		})
	}
}

// TestSelectChristmasAnyYear pins the Dec 24 -> 25 boundary across several years.
func TestSelectChristmasAnyYear(t *testing.T) {
	for _, year := range []int{2023, 2024, 2025, 2026, 2030} {
		at := time.Date(year, 12, 25, 0, 0, 0, 0, time.UTC)
		if got := Select(at); got.Name != "holiday" {
			t.Errorf("Select(Dec 25 %d 00:00) = %s, want holiday", year, got.Name)
		}
	}
}

// TestSelectNewYearAnyYear pins the Dec 31 -> Jan 1 year boundary across years.
func TestSelectNewYearAnyYear(t *testing.T) {
	for _, year := range []int{2024, 2025, 2026, 2031} {
		at := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		if got := Select(at); got.Name != "holiday" {
			t.Errorf("Select(Jan 1 %d 00:00) = %s, want holiday", year, got.Name)
		}
	}
}

// TestStandardStandalone checks the fallback predicate is correct on its own,
// not just as the leftover after the higher-priority schedules decline.
func TestStandardStandalone(t *testing.T) {
	cases := []struct {
		at   time.Time
		want bool
	}{
		{time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC), true},   // Tuesday 10:00
		{time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC), false},  // Sunday
		{time.Date(2026, 3, 3, 23, 30, 0, 0, time.UTC), false}, // night
		{time.Date(2026, 3, 3, 6, 30, 0, 0, time.UTC), false},  // early morning
	}
	for _, tc := range cases {
		if got := isStandard(tc.at); got != tc.want {
			t.Errorf("isStandard(%s) = %v, want %v", tc.at, got, tc.want)
		}
	}
}
