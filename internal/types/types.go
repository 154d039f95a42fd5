// README: Shared value objects used across modules.
package types

// ID is an opaque identifier shared by bookings and dispatch orders.
type ID string
