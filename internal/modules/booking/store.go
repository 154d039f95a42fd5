// README: Booking store backed by PostgreSQL.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"cab/internal/types"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, b *Booking) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO bookings (
			id, quote_id, passenger_name, phone,
			pickup_address, dropoff_address,
			vehicle_class, total, dispatch_order_id, status,
			return_trip, return_at, created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6,
			$7, $8, $9, $10,
			$11, $12, $13
		)`,
		string(b.ID),
		b.QuoteID,
		b.PassengerName,
		b.Phone,
		b.PickupAddress,
		b.DropoffAddress,
		string(b.Class),
		b.Total,
		b.DispatchOrderID,
		string(b.Status),
		b.Return,
		b.ReturnAt,
		b.CreatedAt,
	)
	return err
}

func (s *PGStore) Get(ctx context.Context, id types.ID) (*Booking, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, quote_id, passenger_name, phone,
		       pickup_address, dropoff_address,
		       vehicle_class, total, dispatch_order_id, status,
		       return_trip, return_at, created_at, cancelled_at
		FROM bookings
		WHERE id = $1`, string(id),
	)

	var b Booking
	var returnAt, cancelledAt sql.NullTime
	err := row.Scan(
		&b.ID, &b.QuoteID, &b.PassengerName, &b.Phone,
		&b.PickupAddress, &b.DropoffAddress,
		&b.Class, &b.Total, &b.DispatchOrderID, &b.Status,
		&b.Return, &returnAt, &b.CreatedAt, &cancelledAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	b.ReturnAt = toTimePtr(returnAt)
	b.CancelledAt = toTimePtr(cancelledAt)
	return &b, nil
}

func (s *PGStore) MarkCancelled(ctx context.Context, id types.ID, at time.Time) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE bookings
		SET status = $1, cancelled_at = $2
		WHERE id = $3 AND status != $1`,
		string(StatusCancelled), at, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrConflict
	}
	return nil
}

func toTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
