// README: Compiles a rider itinerary into the dispatch order payload.
package dispatch

import (
	"math"
	"strings"
)

const (
	ActionBoard  = "board"
	ActionAlight = "alight"

	// placeholderName is used when the rider's display name is empty after
	// trimming; the dispatch system rejects nameless items.
	placeholderName = "Passenger"

	defaultBags = 0
)

// CompileOrder builds the order payload for an itinerary. Nodes are emitted
// in caller order: pickup (seq 0, board action), each stop, dropoff (alight
// action); one leg connects every consecutive node pair. Compilation never
// fails: missing optional fields degrade to nulls and defaults, and semantic
// validation is the caller's job before submission.
func CompileOrder(it Itinerary, meta OrderMeta) OrderPayload {
	nodes := make([]Node, 0, len(it.Stops)+2)

	pickupAt := int64(0) // 0 = as soon as possible
	if it.PickupAt != nil {
		pickupAt = it.PickupAt.Unix()
	}
	nodes = append(nodes, Node{
		Seq:      0,
		Location: nodeLocation(it.Pickup),
		Actions:  []Action{{Kind: ActionBoard, Note: it.Notes}},
		ArriveAt: pickupAt,
		ArriveBy: pickupAt,
	})

	for _, stop := range it.Stops {
		nodes = append(nodes, Node{
			Seq:      len(nodes),
			Location: nodeLocation(stop),
			Actions:  []Action{},
		})
	}

	nodes = append(nodes, Node{
		Seq:      len(nodes),
		Location: nodeLocation(it.Dropoff),
		Actions:  []Action{{Kind: ActionAlight, Note: ""}},
	})

	legs := make([]Leg, 0, len(nodes)-1)
	for i := 0; i < len(nodes)-1; i++ {
		coords := make([]int64, 0, 4)
		coords = append(coords, coordsOrZero(nodes[i])...)
		coords = append(coords, coordsOrZero(nodes[i+1])...)
		legs = append(legs, Leg{
			FromSeq: nodes[i].Seq,
			ToSeq:   nodes[i+1].Seq,
			Coords:  coords,
		})
	}

	return OrderPayload{
		Order: Order{
			SourceID:  meta.SourceID,
			CompanyID: meta.CompanyID,
			Route:     Route{Nodes: nodes, Legs: legs},
			Items:     []Item{passengerItem(it)},
		},
		// Dispatching to a provider stays a manual step in the external
		// system unless explicitly enabled.
		DispatchOptions: DispatchOptions{AutoAssign: false},
	}
}

func nodeLocation(loc Location) NodeLocation {
	return NodeLocation{Address: loc.Address, Coords: microCoords(loc)}
}

// microCoords converts decimal degrees to the wire format's integer
// micro-degrees, ordered [longitude, latitude]. A missing component yields a
// null pair; the [0,0] default exists only at the leg level.
func microCoords(loc Location) []int64 {
	if loc.Lat == nil || loc.Lng == nil {
		return nil
	}
	return []int64{microDegrees(*loc.Lng), microDegrees(*loc.Lat)}
}

func microDegrees(v float64) int64 {
	return int64(math.Round(v * 1_000_000))
}

// coordsOrZero guarantees a well-formed leg endpoint even when the node's own
// coordinates are null. The substitution is not back-propagated to the node.
func coordsOrZero(n Node) []int64 {
	if n.Location.Coords == nil {
		return []int64{0, 0}
	}
	return n.Location.Coords
}

// passengerItem builds the single line-item per order. This is not a
// multi-passenger fare-split system: one order, one named contact.
func passengerItem(it Itinerary) Item {
	name := strings.TrimSpace(strings.TrimSpace(it.Passenger.FirstName) + " " + strings.TrimSpace(it.Passenger.LastName))
	if name == "" {
		name = placeholderName
	}
	bags := defaultBags
	if it.Bags != nil {
		bags = *it.Bags
	}
	wheelchair := false
	if it.Wheelchair != nil {
		wheelchair = *it.Wheelchair
	}
	return Item{
		Name:       name,
		Phone:      it.Passenger.Phone,
		Email:      it.Passenger.Email,
		Seats:      it.Seats,
		Bags:       bags,
		Wheelchair: wheelchair,
	}
}
