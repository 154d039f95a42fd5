// README: Rider itinerary model and the dispatch order wire schema.
package dispatch

import "time"

// Location is one point of an itinerary. Coordinates are optional: the
// compiler tolerates a missing latitude or longitude and emits a null
// coordinate pair for that node.
type Location struct {
	Address string
	Lat     *float64
	Lng     *float64
}

type Passenger struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// Itinerary is the rider-supplied trip: pickup, ordered intermediate stops,
// dropoff, contact, and timing. Stop order is preserved verbatim by the
// compiler; no reordering or shortest-path optimization happens here.
type Itinerary struct {
	Pickup  Location
	Stops   []Location
	Dropoff Location

	Passenger Passenger
	Notes     string
	Seats     int

	// Bags and Wheelchair override the fixed defaults when non-nil.
	Bags       *int
	Wheelchair *bool

	// PickupAt is the requested pickup time; nil means "as soon as possible".
	PickupAt *time.Time

	// Return trip details are recorded by the booking layer but no second
	// route is compiled for them; see DESIGN.md.
	Return   bool
	ReturnAt *time.Time
}

// OrderMeta is caller-identity metadata stamped onto every compiled order.
type OrderMeta struct {
	SourceID  string
	CompanyID string
}

// Wire schema for the dispatch system's order-creation endpoint. Coordinates
// travel as integer micro-degrees ordered [longitude, latitude]; that
// ordering is a hard requirement of the downstream system.

type OrderPayload struct {
	Order           Order           `json:"order"`
	DispatchOptions DispatchOptions `json:"dispatch_options"`
}

type Order struct {
	SourceID  string `json:"source_id"`
	CompanyID string `json:"company_id"`
	Route     Route  `json:"route"`
	Items     []Item `json:"items"`
}

type Route struct {
	Nodes []Node `json:"nodes"`
	Legs  []Leg  `json:"legs"`
}

type Node struct {
	Seq      int          `json:"seq"`
	Location NodeLocation `json:"location"`
	Actions  []Action     `json:"actions"`

	// ArriveAt/ArriveBy are epoch seconds; 0 is the dispatch system's
	// sentinel for "no specific target", not a real timestamp.
	ArriveAt int64 `json:"arrive_at"`
	ArriveBy int64 `json:"arrive_by"`
}

type NodeLocation struct {
	Address string  `json:"address"`
	Coords  []int64 `json:"coords"` // [lng, lat] micro-degrees; null when unknown
}

type Action struct {
	Kind string `json:"kind"` // "board" or "alight"
	Note string `json:"note"`
}

type Leg struct {
	FromSeq int `json:"from_seq"`
	ToSeq   int `json:"to_seq"`

	// Coords concatenates both endpoints' pairs: [fromLng, fromLat, toLng,
	// toLat], with [0, 0] substituted for an endpoint missing coordinates.
	Coords []int64 `json:"coords"`

	// Distance and duration are always submitted as unknown; the dispatch
	// system recomputes them.
	DistanceMeters  int `json:"distance_meters"`
	DurationSeconds int `json:"duration_seconds"`
}

type Item struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Seats      int    `json:"seats"`
	Bags       int    `json:"bags"`
	Wheelchair bool   `json:"wheelchair"`
}

type DispatchOptions struct {
	AutoAssign bool `json:"auto_assign"`
}
