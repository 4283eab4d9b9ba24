package domain

import (
	"errors"
	"strings"
)

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrEditConflict    = errors.New("edit conflict")
	ErrShowingNotFound = errors.New("showing not found")
	ErrSeatNotFound    = errors.New("one or more selected seats do not exist in this hall")

	ErrSeatConflict        = errors.New("seat(s) are no longer available")
	ErrShowingInPast       = errors.New("the showing has already started")
	ErrNoSeatsSelected     = errors.New("at least one seat must be selected")
	ErrTicketCountMismatch = errors.New("the number of tickets must match the number of selected seats")
	ErrInvalidDiscount     = errors.New("the selected discount cannot be applied to this booking")
	ErrBookingPaid         = errors.New("the booking has already been paid")
	ErrBookingNotFilled    = errors.New("ticket types and contact details must be provided before payment")
	ErrInvalidPriceTable   = errors.New("price table is misconfigured")

	ErrForbidden        = errors.New("the booking token is invalid")
	ErrCannotCancelPaid = errors.New("a paid booking cannot be cancelled")

	ErrPaymentGateway      = errors.New("payment provider is unavailable, please try again")
	ErrPaymentMismatch     = errors.New("payment does not match the booking")
	ErrPaymentNotCompleted = errors.New("payment has not been completed")
)

// SeatConflictError names the seats that were taken by another booking.
type SeatConflictError struct {
	Seats []Seat
}

func (e *SeatConflictError) Error() string {
	if len(e.Seats) == 0 {
		return ErrSeatConflict.Error()
	}

	labels := make([]string, len(e.Seats))
	for i, seat := range e.Seats {
		labels[i] = seat.Label()
	}

	return "seat(s) no longer available: " + strings.Join(labels, "; ")
}

func (e *SeatConflictError) Unwrap() error {
	return ErrSeatConflict
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound) ||
		errors.Is(err, ErrShowingNotFound) ||
		errors.Is(err, ErrSeatNotFound)
}

func IsInvalid(err error) bool {
	return errors.Is(err, ErrShowingInPast) ||
		errors.Is(err, ErrNoSeatsSelected) ||
		errors.Is(err, ErrTicketCountMismatch) ||
		errors.Is(err, ErrInvalidDiscount) ||
		errors.Is(err, ErrBookingPaid) ||
		errors.Is(err, ErrBookingNotFilled)
}
