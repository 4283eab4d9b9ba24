package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

// Availability answers which seats of a showing are taken. Paid bookings and
// unpaid bookings touched within the hold window occupy their seats. Results
// are never cached; callers run it inside the transaction that writes seats.
type Availability struct {
	seats   domain.SeatRepository
	clock   clockwork.Clock
	holdTTL time.Duration
}

func NewAvailability(seats domain.SeatRepository, clock clockwork.Clock, holdTTL time.Duration) *Availability {
	return &Availability{
		seats:   seats,
		clock:   clock,
		holdTTL: holdTTL,
	}
}

// HoldCutoff is the oldest update time an unpaid booking may have and still
// hold its seats.
func (a *Availability) HoldCutoff() time.Time {
	return a.clock.Now().Add(-a.holdTTL)
}

// OccupiedSeats returns the occupied seat ids of the showing, ignoring the
// tickets of excludeBookingID.
func (a *Availability) OccupiedSeats(ctx context.Context, showingID, excludeBookingID int) (map[int]struct{}, error) {
	ids, err := a.seats.GetOccupiedSeatIds(ctx, showingID, excludeBookingID, a.HoldCutoff())
	if err != nil {
		return nil, err
	}

	occupied := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		occupied[id] = struct{}{}
	}

	return occupied, nil
}

// Selection is the outcome of a successful availability check.
type Selection struct {
	// Seats are the requested seats in hall order.
	Seats []domain.Seat
	// Occupied counts seats held by other bookings.
	Occupied int
}

// Check verifies that every requested seat belongs to the showing's hall and is
// free. Taken seats are reported through *domain.SeatConflictError.
func (a *Availability) Check(
	ctx context.Context,
	showing *domain.Showing,
	seatIDs []int,
	excludeBookingID int) (*Selection, error) {

	hallSeats, err := a.seats.GetSeatsByHall(ctx, showing.HallID)
	if err != nil {
		return nil, err
	}

	requested := make(map[int]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		requested[id] = struct{}{}
	}

	selected := make([]domain.Seat, 0, len(seatIDs))
	for _, seat := range hallSeats {
		if _, ok := requested[seat.ID]; ok {
			selected = append(selected, seat)
		}
	}

	if len(selected) != len(requested) {
		return nil, fmt.Errorf("%w: showing %d", domain.ErrSeatNotFound, showing.ID)
	}

	occupied, err := a.OccupiedSeats(ctx, showing.ID, excludeBookingID)
	if err != nil {
		return nil, err
	}

	var conflicts []domain.Seat
	for _, seat := range selected {
		if _, taken := occupied[seat.ID]; taken {
			conflicts = append(conflicts, seat)
		}
	}

	if len(conflicts) > 0 {
		return nil, &domain.SeatConflictError{Seats: conflicts}
	}

	return &Selection{
		Seats:    selected,
		Occupied: len(occupied),
	}, nil
}

// Conflicts re-reads availability after the storage layer rejected a write and
// names the seats that were taken in the meantime.
func (a *Availability) Conflicts(
	ctx context.Context,
	showing *domain.Showing,
	seatIDs []int,
	excludeBookingID int) error {

	_, err := a.Check(ctx, showing, seatIDs, excludeBookingID)
	if err != nil {
		return err
	}

	return domain.ErrSeatConflict
}
