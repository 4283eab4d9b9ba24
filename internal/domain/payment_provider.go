package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Buyer struct {
	UserID    *int
	FirstName string
	LastName  string
	Email     string
}

type LineItem struct {
	Name        string
	Description string
	Amount      decimal.Decimal
}

type AuthorizeRequest struct {
	BookingID      int
	Amount         decimal.Decimal
	Currency       string
	Buyer          Buyer
	Items          []LineItem
	ReturnURL      string
	CancelURL      string
	IdempotencyKey string
}

type Authorization struct {
	PaymentID   string
	RedirectURL string
}

// ProviderStatus is the provider's view of a payment, as reported by a callback
// or a status lookup.
type ProviderStatus struct {
	PaymentID string
	BookingID int
	Status    PaymentStatus
	Amount    decimal.Decimal
	Currency  string
}

// PaymentGateway translates between bookings and an external payment provider.
// Every failure is reported as ErrPaymentGateway and is safe to retry.
type PaymentGateway interface {
	Authorize(ctx context.Context, req AuthorizeRequest) (*Authorization, error)
	Status(ctx context.Context, paymentID, idempotencyKey string) (*ProviderStatus, error)
	// Expire closes a checkout that has not been paid yet so it can no longer
	// be completed. Expiring a completed payment fails.
	Expire(ctx context.Context, paymentID string) error
}
