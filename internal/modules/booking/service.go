// README: Booking service; quotes trips, submits dispatch orders, persists bookings.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cab/internal/modules/dispatch"
	"cab/internal/modules/fare"
	"cab/internal/types"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("booking not found")
	ErrQuoteExpired = errors.New("quote expired or unknown")
	ErrConflict     = errors.New("booking state conflict")
)

// Estimator supplies trip distance/duration; the fare calculator never
// computes routing itself.
type Estimator interface {
	TravelEstimate(ctx context.Context, origin, destination string) (meters, seconds int, err error)
}

type Dispatcher interface {
	CreateOrder(ctx context.Context, payload dispatch.OrderPayload) (string, error)
	CancelOrder(ctx context.Context, orderID string) error
}

type Store interface {
	Create(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id types.ID) (*Booking, error)
	MarkCancelled(ctx context.Context, id types.ID, at time.Time) error
}

type QuoteCache interface {
	Put(ctx context.Context, q TripQuote, ttl time.Duration) error
	Get(ctx context.Context, id string) (TripQuote, error)
}

type Service struct {
	store     Store
	quotes    QuoteCache
	estimator Estimator
	dispatch  Dispatcher
	meta      dispatch.OrderMeta
	quoteTTL  time.Duration
	now       func() time.Time
}

func NewService(store Store, quotes QuoteCache, estimator Estimator, dispatcher Dispatcher, meta dispatch.OrderMeta, quoteTTL time.Duration) *Service {
	return &Service{
		store:     store,
		quotes:    quotes,
		estimator: estimator,
		dispatch:  dispatcher,
		meta:      meta,
		quoteTTL:  quoteTTL,
		now:       time.Now,
	}
}

type QuoteCommand struct {
	Pickup     string
	Dropoff    string
	Passengers int
	Hailed     bool
	At         time.Time // zero means "as soon as possible"
	Class      fare.VehicleClass
}

type BookCommand struct {
	QuoteID   string
	Itinerary dispatch.Itinerary
}

func (s *Service) QuoteTrip(ctx context.Context, cmd QuoteCommand) (TripQuote, error) {
	if cmd.Pickup == "" || cmd.Dropoff == "" || cmd.Class == "" {
		return TripQuote{}, ErrBadRequest
	}
	at := cmd.At
	if at.IsZero() {
		at = s.now()
	}

	meters, seconds, err := s.estimator.TravelEstimate(ctx, cmd.Pickup, cmd.Dropoff)
	if err != nil {
		return TripQuote{}, fmt.Errorf("booking: travel estimate: %w", err)
	}

	q := TripQuote{
		ID: uuid.NewString(),
		Fare: fare.Compute(fare.Request{
			DistanceMeters:  float64(meters),
			DurationSeconds: float64(seconds),
			Passengers:      cmd.Passengers,
			Hailed:          cmd.Hailed,
			At:              at,
			Class:           cmd.Class,
		}),
		DistanceMeters:  meters,
		DurationSeconds: seconds,
		ExpiresAt:       s.now().Add(s.quoteTTL),
	}
	if err := s.quotes.Put(ctx, q, s.quoteTTL); err != nil {
		return TripQuote{}, fmt.Errorf("booking: cache quote: %w", err)
	}
	return q, nil
}

func (s *Service) Book(ctx context.Context, cmd BookCommand) (*Booking, error) {
	if cmd.QuoteID == "" || cmd.Itinerary.Pickup.Address == "" || cmd.Itinerary.Dropoff.Address == "" {
		return nil, ErrBadRequest
	}
	quote, err := s.quotes.Get(ctx, cmd.QuoteID)
	if err != nil {
		return nil, err
	}

	payload := dispatch.CompileOrder(cmd.Itinerary, s.meta)
	orderID, err := s.submitOrder(ctx, payload)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		ID:              types.ID(uuid.NewString()),
		QuoteID:         quote.ID,
		PassengerName:   payload.Order.Items[0].Name,
		Phone:           cmd.Itinerary.Passenger.Phone,
		PickupAddress:   cmd.Itinerary.Pickup.Address,
		DropoffAddress:  cmd.Itinerary.Dropoff.Address,
		Class:           quote.Fare.Class,
		Total:           quote.Fare.Total,
		DispatchOrderID: orderID,
		Status:          StatusConfirmed,
		Return:          cmd.Itinerary.Return,
		ReturnAt:        cmd.Itinerary.ReturnAt,
		CreatedAt:       s.now(),
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("booking: persist: %w", err)
	}
	return b, nil
}

// submitOrder retries transient signing-path failures with bounded backoff; a
// momentary token-endpoint outage must not fail a user-facing booking. Only
// unreachable/invalid-response are retryable; everything else is definitive.
func (s *Service) submitOrder(ctx context.Context, payload dispatch.OrderPayload) (string, error) {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
		}
		id, err := s.dispatch.CreateOrder(ctx, payload)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, dispatch.ErrSigningUnreachable) && !errors.Is(err, dispatch.ErrInvalidSigningResponse) {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Booking, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Cancel(ctx context.Context, id types.ID) error {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if b.Status == StatusCancelled {
		return ErrConflict
	}
	if err := s.dispatch.CancelOrder(ctx, b.DispatchOrderID); err != nil {
		return fmt.Errorf("booking: cancel dispatch order: %w", err)
	}
	return s.store.MarkCancelled(ctx, id, s.now())
}
