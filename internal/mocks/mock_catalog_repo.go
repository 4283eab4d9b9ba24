package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockShowingRepo struct {
	mock.Mock
	domain.ShowingRepository
}

func (m *MockShowingRepo) GetById(ctx context.Context, id int) (*domain.Showing, error) {
	args := m.Called(ctx, id)

	showing, _ := args.Get(0).(*domain.Showing)
	return showing, args.Error(1)
}

type MockSeatRepo struct {
	mock.Mock
	domain.SeatRepository
}

func (m *MockSeatRepo) GetSeatsByHall(ctx context.Context, hallID int) ([]domain.Seat, error) {
	args := m.Called(ctx, hallID)

	seats, _ := args.Get(0).([]domain.Seat)
	return seats, args.Error(1)
}

func (m *MockSeatRepo) GetOccupiedSeatIds(
	ctx context.Context,
	showingID,
	excludeBookingID int,
	holdCutoff time.Time) ([]int, error) {

	args := m.Called(ctx, showingID, excludeBookingID, holdCutoff)

	ids, _ := args.Get(0).([]int)
	return ids, args.Error(1)
}

type MockPriceRepo struct {
	mock.Mock
	domain.PriceRepository
}

func (m *MockPriceRepo) GetAll(ctx context.Context) (domain.PriceTable, error) {
	args := m.Called(ctx)

	prices, _ := args.Get(0).(domain.PriceTable)
	return prices, args.Error(1)
}
