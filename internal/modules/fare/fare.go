// README: Fare calculator; bills the larger of distance-based or time-based units.
package fare

import (
	"math"

	"cab/internal/modules/tariff"
)

const (
	metersPerMile = 1609.34
	unitsPerMile  = 10

	// includedPassengers ride at no surcharge; every passenger above that
	// adds extraPassengerFee to the total.
	includedPassengers = 4
	extraPassengerFee  = 0.50

	// bookingFee is the flat payment-channel fee added to metered fares.
	bookingFee = 0.90

	hourlyRate = 45.00
)

// Compute prices a trip. It is a total function: any numeric input produces a
// quote, and negative or zero distance/duration collapse to the flagfall plus
// fees. Input validation belongs to the caller.
func Compute(req Request) Quote {
	if req.Class.Hourly() {
		return hourlyQuote(req)
	}

	sched := tariff.Select(req.At)
	rate := sched.Prebooked
	if req.Hailed {
		rate = sched.Hailed
	}

	// Regulatory floor: slow trips are billed by time, fast long trips by
	// distance. Whichever accrues more units wins.
	distanceUnits := req.DistanceMeters / metersPerMile * unitsPerMile
	timeUnits := req.DurationSeconds / float64(rate.SecondsPerUnit)
	units := math.Max(distanceUnits, timeUnits)
	if units < 0 {
		units = 0
	}

	surcharge := 0.0
	if extra := req.Passengers - includedPassengers; extra > 0 {
		surcharge = float64(extra) * extraPassengerFee
	}

	total := rate.Flagfall + units*rate.PerUnit + surcharge + bookingFee
	return Quote{
		Total:    round2(total),
		Schedule: &sched,
		Class:    req.Class,
		Breakdown: Breakdown{
			Flagfall:           rate.Flagfall,
			Units:              round1(units),
			UnitCost:           round2(rate.PerUnit),
			PassengerSurcharge: surcharge,
			BookingFee:         bookingFee,
		},
	}
}

func hourlyQuote(req Request) Quote {
	seconds := req.DurationSeconds
	if seconds < 0 {
		seconds = 0
	}
	hours := int(math.Ceil(seconds / 3600))
	return Quote{
		Total: round2(float64(hours) * hourlyRate),
		Class: req.Class,
		Breakdown: Breakdown{
			Hours:      hours,
			HourlyRate: hourlyRate,
		},
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
