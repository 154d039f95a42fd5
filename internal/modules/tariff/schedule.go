// README: Calendar-driven tariff schedules; first match in priority order wins.
package tariff

import "time"

// Rate is one row of a schedule's rate card. A billable unit is a tenth of a
// mile or SecondsPerUnit seconds of travel, whichever accrues faster.
type Rate struct {
	Flagfall       float64 `json:"flagfall"`
	PerUnit        float64 `json:"per_unit"`
	SecondsPerUnit int     `json:"seconds_per_unit"`
}

// Schedule is a named, time-activated rate card with separate rates for
// prebooked and flagged-down trips. Schedules are static and never mutated.
type Schedule struct {
	Name      string `json:"name"`
	Prebooked Rate   `json:"prebooked"`
	Hailed    Rate   `json:"hailed"`

	active func(t time.Time) bool
}

// Active reports whether the schedule applies at t.
func (s Schedule) Active(t time.Time) bool { return s.active(t) }

var (
	holiday = Schedule{
		Name:      "holiday",
		Prebooked: Rate{Flagfall: 4.00, PerUnit: 0.40, SecondsPerUnit: 18},
		Hailed:    Rate{Flagfall: 4.80, PerUnit: 0.40, SecondsPerUnit: 18},
		active:    isHoliday,
	}
	offPeak = Schedule{
		Name:      "off-peak",
		Prebooked: Rate{Flagfall: 3.00, PerUnit: 0.30, SecondsPerUnit: 24},
		Hailed:    Rate{Flagfall: 3.60, PerUnit: 0.30, SecondsPerUnit: 24},
		active:    isOffPeak,
	}
	standard = Schedule{
		Name:      "standard",
		Prebooked: Rate{Flagfall: 2.50, PerUnit: 0.25, SecondsPerUnit: 30},
		Hailed:    Rate{Flagfall: 3.00, PerUnit: 0.25, SecondsPerUnit: 30},
		active:    isStandard,
	}
)

// schedules is evaluated in priority order: the most specific calendar
// override first, the general weekly pattern last.
var schedules = []Schedule{holiday, offPeak, standard}

// Select returns the first schedule active at t. Exactly one schedule is the
// first match for any instant, so the result is deterministic.
func Select(t time.Time) Schedule {
	for _, s := range schedules {
		if s.active(t) {
			return s
		}
	}
	return standard
}

// isHoliday covers two fixed windows per year: Christmas (Dec 24 23:00
// through Dec 26 07:00) and New Year (Dec 31 19:00 through Jan 2 07:00 of the
// following year). The previous year is checked too so that early-January
// timestamps land inside the window that opened the prior December.
func isHoliday(t time.Time) bool {
	for _, year := range []int{t.Year() - 1, t.Year()} {
		xmasFrom := time.Date(year, time.December, 24, 23, 0, 0, 0, t.Location())
		xmasTo := time.Date(year, time.December, 26, 7, 0, 0, 0, t.Location())
		nyFrom := time.Date(year, time.December, 31, 19, 0, 0, 0, t.Location())
		nyTo := time.Date(year+1, time.January, 2, 7, 0, 0, 0, t.Location())
		if within(t, xmasFrom, xmasTo) || within(t, nyFrom, nyTo) {
			return true
		}
	}
	return false
}

// isOffPeak covers all of Sunday plus the 23:00-07:00 night stretch on any day.
func isOffPeak(t time.Time) bool {
	return t.Weekday() == time.Sunday || t.Hour() >= 23 || t.Hour() < 7
}

// isStandard covers Monday-Saturday 07:00-23:00.
func isStandard(t time.Time) bool {
	return t.Weekday() != time.Sunday && t.Hour() >= 7 && t.Hour() < 23
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
