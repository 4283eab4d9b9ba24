package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

const bookingIdMetadataKey = "booking_id"

// StripeGateway authorizes bookings through Stripe Checkout sessions.
type StripeGateway struct {
	sessions *session.Client
}

func NewStripeGateway(secretKey string, backend stripe.Backend) *StripeGateway {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}

	return &StripeGateway{
		sessions: &session.Client{B: backend, Key: secretKey},
	}
}

func (s *StripeGateway) Authorize(ctx context.Context, req domain.AuthorizeRequest) (*domain.Authorization, error) {
	descriptions := make([]string, len(req.Items))
	for i, item := range req.Items {
		descriptions[i] = fmt.Sprintf("%s (%s)", item.Name, item.Description)
	}

	lineItem := &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(strings.ToLower(req.Currency)),
			UnitAmount: stripe.Int64(toCents(req.Amount)),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name:        stripe.String(fmt.Sprintf("🎬 Booking #%d", req.BookingID)),
				Description: stripe.String(strings.Join(descriptions, " • ")),
			},
		},
		Quantity: stripe.Int64(1),
	}

	params := &stripe.CheckoutSessionParams{
		LineItems:  []*stripe.CheckoutSessionLineItemParams{lineItem},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.ReturnURL),
		CancelURL:  stripe.String(req.CancelURL),
		Metadata: map[string]string{
			bookingIdMetadataKey: strconv.Itoa(req.BookingID),
		},
		ClientReferenceID: stripe.String(strconv.Itoa(req.BookingID)),
	}

	if req.Buyer.Email != "" {
		params.CustomerEmail = stripe.String(req.Buyer.Email)
	}

	if req.Buyer.UserID != nil {
		params.Metadata["user_id"] = strconv.Itoa(*req.Buyer.UserID)
	}

	params.Context = ctx
	params.SetIdempotencyKey(req.IdempotencyKey)

	cs, err := s.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: create checkout session: %w", domain.ErrPaymentGateway, err)
	}

	return &domain.Authorization{
		PaymentID:   cs.ID,
		RedirectURL: cs.URL,
	}, nil
}

func (s *StripeGateway) Status(ctx context.Context, paymentID, idempotencyKey string) (*domain.ProviderStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.SetIdempotencyKey(idempotencyKey)

	cs, err := s.sessions.Get(paymentID, params)
	if err != nil {
		return nil, fmt.Errorf("%w: get checkout session: %w", domain.ErrPaymentGateway, err)
	}

	return statusFromSession(cs), nil
}

func (s *StripeGateway) Expire(ctx context.Context, paymentID string) error {
	params := &stripe.CheckoutSessionExpireParams{}
	params.Context = ctx

	_, err := s.sessions.Expire(paymentID, params)
	if err != nil {
		return fmt.Errorf("%w: expire checkout session: %w", domain.ErrPaymentGateway, err)
	}

	return nil
}

func statusFromSession(cs *stripe.CheckoutSession) *domain.ProviderStatus {
	status := &domain.ProviderStatus{
		PaymentID: cs.ID,
		Status:    domain.PaymentStatusPending,
		Amount:    decimal.New(cs.AmountTotal, -2),
		Currency:  string(cs.Currency),
	}

	if id, err := strconv.Atoi(cs.Metadata[bookingIdMetadataKey]); err == nil {
		status.BookingID = id
	}

	switch {
	case cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		status.Status = domain.PaymentStatusCompleted
	case cs.Status == stripe.CheckoutSessionStatusExpired:
		status.Status = domain.PaymentStatusCanceled
	}

	return status
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
