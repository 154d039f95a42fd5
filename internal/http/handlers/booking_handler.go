// README: Booking handlers for quote/book/get/cancel.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cab/internal/modules/booking"
	"cab/internal/modules/dispatch"
	"cab/internal/modules/fare"
	"cab/internal/types"
)

type BookingHandler struct {
	booking *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{booking: svc}
}

type quoteReq struct {
	Pickup     string     `json:"pickup"`
	Dropoff    string     `json:"dropoff"`
	Passengers int        `json:"passengers"`
	Hailed     bool       `json:"hailed"`
	PickupAt   *time.Time `json:"pickup_at"`
	Class      string     `json:"class"`
}

func (h *BookingHandler) Quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	class, ok := fare.ParseClass(req.Class)
	if !ok {
		writeError(c, http.StatusBadRequest, "unknown vehicle class")
		return
	}

	cmd := booking.QuoteCommand{
		Pickup:     req.Pickup,
		Dropoff:    req.Dropoff,
		Passengers: req.Passengers,
		Hailed:     req.Hailed,
		Class:      class,
	}
	if req.PickupAt != nil {
		cmd.At = *req.PickupAt
	}
	q, err := h.booking.QuoteTrip(c.Request.Context(), cmd)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, q)
}

type locationReq struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

func (l locationReq) toLocation() dispatch.Location {
	return dispatch.Location{Address: l.Address, Lat: l.Lat, Lng: l.Lng}
}

type bookReq struct {
	QuoteID string        `json:"quote_id"`
	Pickup  locationReq   `json:"pickup"`
	Stops   []locationReq `json:"stops"`
	Dropoff locationReq   `json:"dropoff"`

	Passenger struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
		Email     string `json:"email"`
	} `json:"passenger"`

	Notes      string     `json:"notes"`
	Seats      int        `json:"seats"`
	Bags       *int       `json:"bags"`
	Wheelchair *bool      `json:"wheelchair"`
	PickupAt   *time.Time `json:"pickup_at"`
	Return     bool       `json:"return"`
	ReturnAt   *time.Time `json:"return_at"`
}

func (h *BookingHandler) Book(c *gin.Context) {
	var req bookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	it := dispatch.Itinerary{
		Pickup:  req.Pickup.toLocation(),
		Dropoff: req.Dropoff.toLocation(),
		Passenger: dispatch.Passenger{
			FirstName: req.Passenger.FirstName,
			LastName:  req.Passenger.LastName,
			Phone:     req.Passenger.Phone,
			Email:     req.Passenger.Email,
		},
		Notes:      req.Notes,
		Seats:      req.Seats,
		Bags:       req.Bags,
		Wheelchair: req.Wheelchair,
		PickupAt:   req.PickupAt,
		Return:     req.Return,
		ReturnAt:   req.ReturnAt,
	}
	for _, s := range req.Stops {
		it.Stops = append(it.Stops, s.toLocation())
	}

	b, err := h.booking.Book(c.Request.Context(), booking.BookCommand{QuoteID: req.QuoteID, Itinerary: it})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{
		"booking_id":        b.ID,
		"dispatch_order_id": b.DispatchOrderID,
		"status":            b.Status,
		"total":             b.Total,
	})
}

func (h *BookingHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing booking id")
		return
	}
	b, err := h.booking.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"booking_id":        b.ID,
		"dispatch_order_id": b.DispatchOrderID,
		"status":            b.Status,
		"passenger_name":    b.PassengerName,
		"pickup":            b.PickupAddress,
		"dropoff":           b.DropoffAddress,
		"class":             b.Class,
		"total":             b.Total,
	})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing booking id")
		return
	}
	if err := h.booking.Cancel(c.Request.Context(), types.ID(id)); err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": booking.StatusCancelled})
}
