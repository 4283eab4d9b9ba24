package domain

import (
	"context"
	"fmt"
	"time"
)

type SeatClass string

const (
	SeatClassNormal   SeatClass = "normal"
	SeatClassWide     SeatClass = "wide"
	SeatClassDisabled SeatClass = "disabled"
	SeatClassVIP      SeatClass = "vip"
)

type Seat struct {
	ID     int
	HallID int
	Row    int
	Col    int
	Number int
	Class  SeatClass
}

func (s Seat) Label() string {
	return fmt.Sprintf("row %d, seat %d", s.Row, s.Number)
}

// SeatRepository reads the static seat layout of a hall and the seats that are
// currently claimed for a showing.
type SeatRepository interface {
	GetSeatsByHall(ctx context.Context, hallID int) ([]Seat, error)
	// GetOccupiedSeatIds returns seats held by paid bookings and by unpaid
	// bookings updated at or after holdCutoff. Tickets of excludeBookingID are
	// ignored; pass 0 to count every booking.
	GetOccupiedSeatIds(ctx context.Context, showingID, excludeBookingID int, holdCutoff time.Time) ([]int, error)
}
