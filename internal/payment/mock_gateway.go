package payment

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/shopspring/decimal"
)

type mockPayment struct {
	bookingID int
	amount    decimal.Decimal
	currency  string
	status    domain.PaymentStatus
}

// MockGateway is an in-memory gateway for local development and tests.
// Authorizations are deduplicated by idempotency key like a real provider.
type MockGateway struct {
	mu       sync.Mutex
	baseURL  string
	byKey    map[string]string
	payments map[string]*mockPayment

	// Err, when set, fails every call with ErrPaymentGateway.
	Err error
}

func NewMockGateway(baseURL string) *MockGateway {
	return &MockGateway{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		byKey:    make(map[string]string),
		payments: make(map[string]*mockPayment),
	}
}

func (m *MockGateway) Authorize(ctx context.Context, req domain.AuthorizeRequest) (*domain.Authorization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPaymentGateway, m.Err)
	}

	id, ok := m.byKey[req.IdempotencyKey]
	if !ok {
		id = "mock_" + uuid.NewString()
		m.byKey[req.IdempotencyKey] = id
		m.payments[id] = &mockPayment{
			bookingID: req.BookingID,
			amount:    req.Amount,
			currency:  req.Currency,
			status:    domain.PaymentStatusPending,
		}
	}

	return &domain.Authorization{
		PaymentID:   id,
		RedirectURL: fmt.Sprintf("%s/%s", m.baseURL, id),
	}, nil
}

func (m *MockGateway) Status(ctx context.Context, paymentID, idempotencyKey string) (*domain.ProviderStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPaymentGateway, m.Err)
	}

	p, ok := m.payments[paymentID]
	if !ok {
		return nil, fmt.Errorf("%w: unknown payment %s", domain.ErrPaymentGateway, paymentID)
	}

	return &domain.ProviderStatus{
		PaymentID: paymentID,
		BookingID: p.bookingID,
		Status:    p.status,
		Amount:    p.amount,
		Currency:  p.currency,
	}, nil
}

// Complete marks the payment as paid, as if the customer finished checkout.
func (m *MockGateway) Complete(paymentID string) error {
	return m.setStatus(paymentID, domain.PaymentStatusCompleted)
}

// Expire closes a pending payment. A completed payment cannot be expired.
func (m *MockGateway) Expire(ctx context.Context, paymentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPaymentGateway, m.Err)
	}

	p, ok := m.payments[paymentID]
	if !ok {
		return fmt.Errorf("%w: unknown payment %s", domain.ErrPaymentGateway, paymentID)
	}

	if p.status == domain.PaymentStatusCompleted {
		return fmt.Errorf("%w: payment %s is already completed", domain.ErrPaymentGateway, paymentID)
	}

	p.status = domain.PaymentStatusCanceled

	return nil
}

// Expired reports whether paymentID was expired.
func (m *MockGateway) Expired(paymentID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.payments[paymentID]

	return ok && p.status == domain.PaymentStatusCanceled
}

func (m *MockGateway) setStatus(paymentID string, status domain.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.payments[paymentID]
	if !ok {
		return fmt.Errorf("unknown payment %s", paymentID)
	}

	p.status = status

	return nil
}
