package domain

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusReserved BookingStatus = "reserved"
	BookingStatusFilled   BookingStatus = "filled"
	BookingStatusPaid     BookingStatus = "paid"
)

type Booking struct {
	ID        int
	ShowingID int
	UserID    *int
	FirstName string
	LastName  string
	Email     string
	Price     decimal.Decimal
	Status    BookingStatus
	PaymentID *string
	TokenHash []byte
	RewardID  *int
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
	Tickets   []Ticket
}

type Ticket struct {
	ID        int
	BookingID int
	ShowingID int
	SeatID    int
	Seat      Seat
	Price     decimal.Decimal
	Type      TicketType
}

func (b *Booking) SeatIDs() []int {
	ids := make([]int, len(b.Tickets))
	for i, t := range b.Tickets {
		ids[i] = t.SeatID
	}

	sort.Ints(ids)

	return ids
}

func (b *Booking) TokenMatches(plaintext string) bool {
	return tokenMatches(b.TokenHash, plaintext)
}

// IdempotencyKey identifies one logical payment attempt. It stays the same for
// retries and changes once seats or prices are modified, since every such
// modification bumps the version.
func (b *Booking) IdempotencyKey() string {
	return fmt.Sprintf("booking-%d-v%d", b.ID, b.Version)
}

func (b *Booking) TicketCounts() (normal, reduced int) {
	for _, t := range b.Tickets {
		switch t.Type {
		case TicketTypeNormal:
			normal++
		case TicketTypeReduced:
			reduced++
		}
	}

	return normal, reduced
}

func (b *Booking) IsPaid() bool {
	return b.Status == BookingStatusPaid
}

// ReleasedBooking is an unpaid booking deleted to free its seats.
type ReleasedBooking struct {
	ID        int
	PaymentID *string
}

type BookingRepository interface {
	// Create inserts the booking together with its tickets. It returns
	// ErrSeatConflict when a ticket collides with another booking's seat.
	Create(ctx context.Context, booking *Booking) error
	GetById(ctx context.Context, id int) (*Booking, error)
	GetByIdForUpdate(ctx context.Context, id int) (*Booking, error)
	GetByPaymentIdForUpdate(ctx context.Context, paymentID string) (*Booking, error)
	// Update persists the mutable booking fields guarded by the version and
	// increments it.
	Update(ctx context.Context, booking *Booking) error
	// SetPaymentId stores the provider reference without bumping the version,
	// so retries of the same payment attempt reuse the idempotency key.
	SetPaymentId(ctx context.Context, booking *Booking, paymentID string) error
	UpdateTickets(ctx context.Context, tickets []Ticket) error
	ReplaceTickets(ctx context.Context, booking *Booking) error
	Delete(ctx context.Context, id int) error
	// ReleaseExpiredHolds deletes unpaid bookings of the showing, other than
	// excludeBookingID, updated before cutoff that hold any of the given seats.
	ReleaseExpiredHolds(
		ctx context.Context,
		showingID, excludeBookingID int,
		seatIDs []int,
		cutoff time.Time) ([]ReleasedBooking, error)
	// DeleteStale deletes up to limit unpaid bookings updated before cutoff.
	// Rows locked by other transactions are skipped.
	DeleteStale(ctx context.Context, cutoff time.Time, limit int) ([]ReleasedBooking, error)
}

// Transactor runs fn inside a single database transaction. Repository calls
// made with the context passed to fn join that transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
