// README: Fare request/quote models and the vehicle class enum.
package fare

import (
	"time"

	"cab/internal/modules/tariff"
)

type VehicleClass string

const (
	ClassSaloon  VehicleClass = "saloon"
	ClassMinibus VehicleClass = "minibus"
	// ClassChauffeur is billed by the hour; distance, tariff schedule, and
	// passenger count do not apply.
	ClassChauffeur VehicleClass = "chauffeur"
)

// Hourly reports whether the class bypasses the tariff schedule.
func (c VehicleClass) Hourly() bool { return c == ClassChauffeur }

// ParseClass maps a request string to a known vehicle class.
func ParseClass(s string) (VehicleClass, bool) {
	switch VehicleClass(s) {
	case ClassSaloon, ClassMinibus, ClassChauffeur:
		return VehicleClass(s), true
	}
	return "", false
}

type Request struct {
	DistanceMeters  float64
	DurationSeconds float64
	Passengers      int
	Hailed          bool
	At              time.Time
	Class           VehicleClass
}

// Quote is one priced fare. Total is authoritative and computed from
// unrounded intermediates; the breakdown fields carry display roundings.
type Quote struct {
	Total    float64          `json:"total"`
	Schedule *tariff.Schedule `json:"schedule,omitempty"`
	Class    VehicleClass     `json:"class"`

	Breakdown Breakdown `json:"breakdown"`
}

type Breakdown struct {
	Flagfall           float64 `json:"flagfall,omitempty"`
	Units              float64 `json:"units,omitempty"`     // rounded to 1dp for display
	UnitCost           float64 `json:"unit_cost,omitempty"` // rounded to 2dp for display
	PassengerSurcharge float64 `json:"passenger_surcharge,omitempty"`
	BookingFee         float64 `json:"booking_fee,omitempty"`
	Hours              int     `json:"hours,omitempty"`
	HourlyRate         float64 `json:"hourly_rate,omitempty"`
}
