package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct {
	mock.Mock
	domain.BookingRepository
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepo) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	return bookingOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBookingRepo) GetByIdForUpdate(ctx context.Context, id int) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	return bookingOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBookingRepo) GetByPaymentIdForUpdate(ctx context.Context, paymentID string) (*domain.Booking, error) {
	args := m.Called(ctx, paymentID)
	return bookingOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepo) SetPaymentId(ctx context.Context, booking *domain.Booking, paymentID string) error {
	args := m.Called(ctx, booking, paymentID)
	return args.Error(0)
}

func (m *MockBookingRepo) UpdateTickets(ctx context.Context, tickets []domain.Ticket) error {
	args := m.Called(ctx, tickets)
	return args.Error(0)
}

func (m *MockBookingRepo) ReplaceTickets(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepo) ReleaseExpiredHolds(
	ctx context.Context,
	showingID,
	excludeBookingID int,
	seatIDs []int,
	cutoff time.Time) ([]domain.ReleasedBooking, error) {

	args := m.Called(ctx, showingID, excludeBookingID, seatIDs, cutoff)

	released, _ := args.Get(0).([]domain.ReleasedBooking)
	return released, args.Error(1)
}

func (m *MockBookingRepo) DeleteStale(ctx context.Context, cutoff time.Time, limit int) ([]domain.ReleasedBooking, error) {
	args := m.Called(ctx, cutoff, limit)

	released, _ := args.Get(0).([]domain.ReleasedBooking)
	return released, args.Error(1)
}

func bookingOrNil(v any) *domain.Booking {
	booking, _ := v.(*domain.Booking)
	return booking
}

// MockTransactor runs fn directly, without a transaction.
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}
