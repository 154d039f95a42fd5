// README: Booking service tests with stub estimator, dispatcher, store, and cache.
package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"cab/internal/modules/dispatch"
	"cab/internal/modules/fare"
	"cab/internal/types"
)

type stubEstimator struct {
	meters  int
	seconds int
	err     error
}

func (s *stubEstimator) TravelEstimate(_ context.Context, _, _ string) (int, int, error) {
	return s.meters, s.seconds, s.err
}

type stubDispatcher struct {
	mu        sync.Mutex
	calls     int
	failFirst int // fail this many CreateOrder calls before succeeding
	failWith  error
	cancelled []string
}

func (s *stubDispatcher) CreateOrder(_ context.Context, _ dispatch.OrderPayload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failFirst {
		return "", s.failWith
	}
	return fmt.Sprintf("ORD-%d", s.calls), nil
}

func (s *stubDispatcher) CancelOrder(_ context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = append(s.cancelled, orderID)
	return nil
}

type memStore struct {
	mu       sync.Mutex
	bookings map[types.ID]*Booking
}

func newMemStore() *memStore { return &memStore{bookings: map[types.ID]*Booking{}} }

func (m *memStore) Create(_ context.Context, b *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *memStore) Get(_ context.Context, id types.ID) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) MarkCancelled(_ context.Context, id types.ID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = StatusCancelled
	b.CancelledAt = &at
	return nil
}

type memCache struct {
	mu     sync.Mutex
	quotes map[string]TripQuote
}

func newMemCache() *memCache { return &memCache{quotes: map[string]TripQuote{}} }

func (m *memCache) Put(_ context.Context, q TripQuote, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes[q.ID] = q
	return nil
}

func (m *memCache) Get(_ context.Context, id string) (TripQuote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[id]
	if !ok {
		return TripQuote{}, ErrQuoteExpired
	}
	return q, nil
}

var testOrderMeta = dispatch.OrderMeta{SourceID: "cab-web", CompanyID: "co_42"}

func newTestService(est *stubEstimator, d *stubDispatcher) (*Service, *memStore, *memCache) {
	store := newMemStore()
	cache := newMemCache()
	svc := NewService(store, cache, est, d, testOrderMeta, 10*time.Minute)
	return svc, store, cache
}

func testBookCommand(quoteID string) BookCommand {
	lat, lng := 51.5013, -0.1419
	return BookCommand{
		QuoteID: quoteID,
		Itinerary: dispatch.Itinerary{
			Pickup:    dispatch.Location{Address: "1 Pickup St", Lat: &lat, Lng: &lng},
			Dropoff:   dispatch.Location{Address: "9 Dropoff Rd", Lat: &lat, Lng: &lng},
			Passenger: dispatch.Passenger{FirstName: "Ada", LastName: "Lovelace", Phone: "+44"},
			Seats:     2,
		},
	}
}

func TestQuoteTrip(t *testing.T) {
	svc, _, cache := newTestService(&stubEstimator{meters: 5000, seconds: 600}, &stubDispatcher{})
	ctx := context.Background()

	q, err := svc.QuoteTrip(ctx, QuoteCommand{
		Pickup:     "1 Pickup St",
		Dropoff:    "9 Dropoff Rd",
		Passengers: 1,
		At:         time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC), // Tuesday, standard schedule
		Class:      fare.ClassSaloon,
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.Fare.Total != 11.17 {
		t.Errorf("quoted total = %.2f, want 11.17", q.Fare.Total)
	}
	if q.DistanceMeters != 5000 || q.DurationSeconds != 600 {
		t.Errorf("estimate passthrough = %d/%d", q.DistanceMeters, q.DurationSeconds)
	}

	cached, err := cache.Get(ctx, q.ID)
	if err != nil {
		t.Fatalf("quote not cached: %v", err)
	}
	if cached.Fare.Total != q.Fare.Total {
		t.Error("cached quote differs from returned quote")
	}
}

func TestQuoteTripBadRequest(t *testing.T) {
	svc, _, _ := newTestService(&stubEstimator{}, &stubDispatcher{})
	_, err := svc.QuoteTrip(context.Background(), QuoteCommand{Pickup: "a"})
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("err = %v, want ErrBadRequest", err)
	}
}

func TestBookHappyPath(t *testing.T) {
	d := &stubDispatcher{}
	svc, store, _ := newTestService(&stubEstimator{meters: 5000, seconds: 600}, d)
	ctx := context.Background()

	q, err := svc.QuoteTrip(ctx, QuoteCommand{
		Pickup: "1 Pickup St", Dropoff: "9 Dropoff Rd",
		Passengers: 1, Class: fare.ClassSaloon,
		At: time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	b, err := svc.Book(ctx, testBookCommand(q.ID))
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if b.Status != StatusConfirmed {
		t.Errorf("status = %s, want confirmed", b.Status)
	}
	if b.Total != q.Fare.Total {
		t.Errorf("booked total = %.2f, want quoted %.2f", b.Total, q.Fare.Total)
	}
	if b.DispatchOrderID == "" {
		t.Error("missing dispatch order id")
	}
	if b.PassengerName != "Ada Lovelace" {
		t.Errorf("passenger name = %q", b.PassengerName)
	}

	stored, err := store.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("stored booking: %v", err)
	}
	if stored.DispatchOrderID != b.DispatchOrderID {
		t.Error("stored booking differs")
	}
}

func TestBookUnknownQuote(t *testing.T) {
	svc, _, _ := newTestService(&stubEstimator{}, &stubDispatcher{})
	_, err := svc.Book(context.Background(), testBookCommand("nope"))
	if !errors.Is(err, ErrQuoteExpired) {
		t.Errorf("err = %v, want ErrQuoteExpired", err)
	}
}

func TestBookRetriesTransientSigningFailure(t *testing.T) {
	d := &stubDispatcher{failFirst: 2, failWith: fmt.Errorf("create: %w", dispatch.ErrSigningUnreachable)}
	svc, _, _ := newTestService(&stubEstimator{meters: 1000, seconds: 300}, d)
	ctx := context.Background()

	q, err := svc.QuoteTrip(ctx, QuoteCommand{Pickup: "a", Dropoff: "b", Class: fare.ClassSaloon})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	b, err := svc.Book(ctx, testBookCommand(q.ID))
	if err != nil {
		t.Fatalf("book should succeed after retries: %v", err)
	}
	if d.calls != 3 {
		t.Errorf("dispatch calls = %d, want 3", d.calls)
	}
	if b.DispatchOrderID != "ORD-3" {
		t.Errorf("order id = %s", b.DispatchOrderID)
	}
}

func TestBookDefinitiveFailureDoesNotRetry(t *testing.T) {
	d := &stubDispatcher{failFirst: 99, failWith: fmt.Errorf("create: %w", dispatch.ErrOrderRejected)}
	svc, _, _ := newTestService(&stubEstimator{meters: 1000, seconds: 300}, d)
	ctx := context.Background()

	q, err := svc.QuoteTrip(ctx, QuoteCommand{Pickup: "a", Dropoff: "b", Class: fare.ClassSaloon})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	_, err = svc.Book(ctx, testBookCommand(q.ID))
	if !errors.Is(err, dispatch.ErrOrderRejected) {
		t.Errorf("err = %v, want ErrOrderRejected", err)
	}
	if d.calls != 1 {
		t.Errorf("dispatch calls = %d, want 1 (no retry on definitive failure)", d.calls)
	}
}

func TestCancel(t *testing.T) {
	d := &stubDispatcher{}
	svc, _, _ := newTestService(&stubEstimator{meters: 1000, seconds: 300}, d)
	ctx := context.Background()

	q, _ := svc.QuoteTrip(ctx, QuoteCommand{Pickup: "a", Dropoff: "b", Class: fare.ClassSaloon})
	b, err := svc.Book(ctx, testBookCommand(q.ID))
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if err := svc.Cancel(ctx, b.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	got, _ := svc.Get(ctx, b.ID)
	if got.Status != StatusCancelled || got.CancelledAt == nil {
		t.Errorf("booking not cancelled: %+v", got)
	}
	if len(d.cancelled) != 1 || d.cancelled[0] != b.DispatchOrderID {
		t.Errorf("dispatch cancel calls = %v", d.cancelled)
	}

	// Second cancel is a conflict.
	if err := svc.Cancel(ctx, b.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("second cancel err = %v, want ErrConflict", err)
	}
}
