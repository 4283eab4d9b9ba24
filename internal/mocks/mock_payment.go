package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepo struct {
	mock.Mock
	domain.PaymentRepository
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepo) UpdateStatus(
	ctx context.Context,
	providerPaymentID string,
	status domain.PaymentStatus,
	errMsg string,
	at time.Time) error {

	args := m.Called(ctx, providerPaymentID, status, errMsg, at)
	return args.Error(0)
}

func (m *MockPaymentRepo) MarkRefundRequired(
	ctx context.Context,
	status domain.ProviderStatus,
	reason string,
	at time.Time) error {

	args := m.Called(ctx, status, reason, at)
	return args.Error(0)
}

type MockPaymentGateway struct {
	mock.Mock
	domain.PaymentGateway
}

func (m *MockPaymentGateway) Authorize(ctx context.Context, req domain.AuthorizeRequest) (*domain.Authorization, error) {
	args := m.Called(ctx, req)

	auth, _ := args.Get(0).(*domain.Authorization)
	return auth, args.Error(1)
}

func (m *MockPaymentGateway) Status(ctx context.Context, paymentID, idempotencyKey string) (*domain.ProviderStatus, error) {
	args := m.Called(ctx, paymentID, idempotencyKey)

	status, _ := args.Get(0).(*domain.ProviderStatus)
	return status, args.Error(1)
}

func (m *MockPaymentGateway) Expire(ctx context.Context, paymentID string) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

type MockBookingNotifier struct {
	mock.Mock
}

func (m *MockBookingNotifier) BookingPaid(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
