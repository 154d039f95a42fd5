// README: Booking aggregate and trip quote models.
package booking

import (
	"time"

	"cab/internal/modules/fare"
	"cab/internal/types"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Booking is the persisted record of a confirmed trip: the quoted price, the
// rider contact, and the dispatch system's order identifier for later
// cancellation lookups.
type Booking struct {
	ID              types.ID
	QuoteID         string
	PassengerName   string
	Phone           string
	PickupAddress   string
	DropoffAddress  string
	Class           fare.VehicleClass
	Total           float64
	DispatchOrderID string
	Status          Status
	Return          bool
	ReturnAt        *time.Time
	CreatedAt       time.Time
	CancelledAt     *time.Time
}

// TripQuote is a priced quote held briefly so the booking step can charge the
// quoted amount rather than repricing.
type TripQuote struct {
	ID              string     `json:"quote_id"`
	Fare            fare.Quote `json:"fare"`
	DistanceMeters  int        `json:"distance_meters"`
	DurationSeconds int        `json:"duration_seconds"`
	ExpiresAt       time.Time  `json:"expires_at"`
}
