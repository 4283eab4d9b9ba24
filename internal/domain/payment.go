package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCanceled  PaymentStatus = "canceled"
	PaymentStatusCompleted PaymentStatus = "completed"
	// PaymentStatusRefundRequired marks money taken for a checkout whose
	// booking no longer exists or no longer references it.
	PaymentStatusRefundRequired PaymentStatus = "refund_required"
)

type Payment struct {
	ID                int
	BookingID         int
	ProviderPaymentID string
	IdempotencyKey    string
	Amount            decimal.Decimal
	Currency          string
	Status            PaymentStatus
	ErrorMsg          *string
	PaymentDate       *time.Time
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

type PaymentRepository interface {
	// Create records an authorization. Recording the same provider payment
	// twice is a no-op.
	Create(ctx context.Context, payment *Payment) error
	UpdateStatus(ctx context.Context, providerPaymentID string, status PaymentStatus, errMsg string, at time.Time) error
	// MarkRefundRequired records a completed checkout that could not be
	// applied to a booking, creating the payment row if none exists.
	MarkRefundRequired(ctx context.Context, status ProviderStatus, reason string, at time.Time) error
}
