package domain

import "context"

// BookingNotifier is called once a booking transitions to paid.
type BookingNotifier interface {
	BookingPaid(ctx context.Context, booking *Booking) error
}
