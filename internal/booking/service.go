// Package booking owns the lifecycle of a seat booking: seat holds, ticket
// composition, seat changes, payment and cancellation.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/metinatakli/cinex-booking/internal/pricing"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/metinatakli/cinex-booking/internal/booking"

type Config struct {
	// HoldTTL is how long an unpaid booking keeps its seats after its last
	// update.
	HoldTTL time.Duration
	// Currency is the ISO code charged for every booking.
	Currency string
	// PointsRate is the share of a paid total credited as loyalty points.
	PointsRate decimal.Decimal
	ReturnURL  string
	CancelURL  string
}

func DefaultConfig() Config {
	return Config{
		HoldTTL:    15 * time.Minute,
		Currency:   "usd",
		PointsRate: decimal.RequireFromString("0.1"),
	}
}

type Deps struct {
	Logger     *slog.Logger
	Clock      clockwork.Clock
	Meter      metric.Meter
	Transactor domain.Transactor
	Showings   domain.ShowingRepository
	Seats      domain.SeatRepository
	Prices     domain.PriceRepository
	Bookings   domain.BookingRepository
	Rewards    domain.RewardRepository
	Payments   domain.PaymentRepository
	Gateway    domain.PaymentGateway
	Notifier   domain.BookingNotifier
	Pricing    *pricing.Engine
}

type Service struct {
	cfg          Config
	logger       *slog.Logger
	clock        clockwork.Clock
	tx           domain.Transactor
	showings     domain.ShowingRepository
	prices       domain.PriceRepository
	bookings     domain.BookingRepository
	rewards      domain.RewardRepository
	payments     domain.PaymentRepository
	gateway      domain.PaymentGateway
	notifier     domain.BookingNotifier
	pricing      *pricing.Engine
	availability *Availability

	bookingsCreated  metric.Int64Counter
	seatConflicts    metric.Int64Counter
	bookingsPaid     metric.Int64Counter
	paymentsOrphaned metric.Int64Counter
}

func NewService(cfg Config, deps Deps) (*Service, error) {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}

	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	if deps.Meter == nil {
		deps.Meter = otel.Meter(instrumentationName)
	}

	if deps.Pricing == nil {
		deps.Pricing = pricing.NewEngine(pricing.DefaultConfig())
	}

	s := &Service{
		cfg:          cfg,
		logger:       deps.Logger,
		clock:        deps.Clock,
		tx:           deps.Transactor,
		showings:     deps.Showings,
		prices:       deps.Prices,
		bookings:     deps.Bookings,
		rewards:      deps.Rewards,
		payments:     deps.Payments,
		gateway:      deps.Gateway,
		notifier:     deps.Notifier,
		pricing:      deps.Pricing,
		availability: NewAvailability(deps.Seats, deps.Clock, cfg.HoldTTL),
	}

	var err error

	s.bookingsCreated, err = deps.Meter.Int64Counter("booking.created",
		metric.WithDescription("Bookings created"))
	if err != nil {
		return nil, err
	}

	s.seatConflicts, err = deps.Meter.Int64Counter("booking.seat_conflicts",
		metric.WithDescription("Seat claims rejected because the seat was taken"))
	if err != nil {
		return nil, err
	}

	s.bookingsPaid, err = deps.Meter.Int64Counter("booking.paid",
		metric.WithDescription("Bookings transitioned to paid"))
	if err != nil {
		return nil, err
	}

	s.paymentsOrphaned, err = deps.Meter.Int64Counter("payment.refund_required",
		metric.WithDescription("Completed checkouts no booking references"))
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Create holds the given seats for a new booking and returns it together with
// the plaintext access token, which is not stored anywhere.
func (s *Service) Create(
	ctx context.Context,
	showingID int,
	seatIDs []int,
	userID *int) (*domain.Booking, string, error) {

	seatIDs = uniqueSeatIDs(seatIDs)
	if len(seatIDs) == 0 {
		return nil, "", domain.ErrNoSeatsSelected
	}

	token, err := domain.GenerateAccessToken()
	if err != nil {
		return nil, "", err
	}

	var showing *domain.Showing
	var booking *domain.Booking
	var released []domain.ReleasedBooking

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		now := s.clock.Now()

		var err error

		showing, err = s.showings.GetById(ctx, showingID)
		if err != nil {
			return err
		}

		if showing.HasStarted(now) {
			return domain.ErrShowingInPast
		}

		released, err = s.bookings.ReleaseExpiredHolds(ctx, showing.ID, 0, seatIDs, s.availability.HoldCutoff())
		if err != nil {
			return err
		}

		selection, err := s.availability.Check(ctx, showing, seatIDs, 0)
		if err != nil {
			return err
		}

		prices, err := s.prices.GetAll(ctx)
		if err != nil {
			return err
		}

		booking = &domain.Booking{
			ShowingID: showing.ID,
			UserID:    userID,
			Status:    domain.BookingStatusReserved,
			TokenHash: token.Hash,
			CreatedAt: now,
			UpdatedAt: now,
			Tickets:   newTickets(showing.ID, selection.Seats, len(selection.Seats)),
		}

		err = s.priceBooking(booking, showing, prices, selection.Occupied, nil, now)
		if err != nil {
			return err
		}

		return s.bookings.Create(ctx, booking)
	})
	if err != nil {
		return nil, "", s.seatError(ctx, err, showing, seatIDs, 0)
	}

	s.ExpireCheckouts(ctx, ReleasedPaymentIDs(released)...)

	s.bookingsCreated.Add(ctx, 1, metric.WithAttributes(attribute.Int("showing_id", showingID)))

	s.logger.Info("booking created",
		"booking_id", booking.ID,
		"showing_id", showingID,
		"seats", len(booking.Tickets),
		"price", booking.Price.StringFixed(2))

	return booking, token.Plaintext, nil
}

// Get returns the booking when token grants access to it.
func (s *Service) Get(ctx context.Context, bookingID int, token string) (*domain.Booking, error) {
	booking, err := s.bookings.GetById(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.TokenMatches(token) {
		return nil, domain.ErrForbidden
	}

	return booking, nil
}

type TicketsInput struct {
	NormalCount  int
	ReducedCount int
	DiscountID   *int
	FirstName    string
	LastName     string
	Email        string
}

// UpdateTickets finalizes the ticket composition, reprices every ticket and
// moves the booking to FILLED. A discount only applies to an active reward of
// the booking's user and is redeemed in the same transaction; a reward the
// booking stops using becomes active again.
func (s *Service) UpdateTickets(
	ctx context.Context,
	bookingID int,
	token string,
	input TicketsInput) (*domain.Booking, error) {

	var booking *domain.Booking
	var superseded *string

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		now := s.clock.Now()

		var err error

		booking, err = s.lockBooking(ctx, bookingID, token)
		if err != nil {
			return err
		}

		previousReward := booking.RewardID

		if input.NormalCount < 0 || input.ReducedCount < 0 ||
			input.NormalCount+input.ReducedCount != len(booking.Tickets) {
			return domain.ErrTicketCountMismatch
		}

		showing, err := s.showings.GetById(ctx, booking.ShowingID)
		if err != nil {
			return err
		}

		if showing.HasStarted(now) {
			return domain.ErrShowingInPast
		}

		var reward *domain.UserReward
		if input.DiscountID != nil {
			reward, err = s.applicableReward(ctx, booking, *input.DiscountID)
			if err != nil {
				return err
			}
		}

		occupied, err := s.availability.OccupiedSeats(ctx, showing.ID, booking.ID)
		if err != nil {
			return err
		}

		prices, err := s.prices.GetAll(ctx)
		if err != nil {
			return err
		}

		assignTicketTypes(booking.Tickets, input.NormalCount)

		err = s.priceBooking(booking, showing, prices, len(occupied), reward, now)
		if err != nil {
			return err
		}

		err = s.syncReward(ctx, previousReward, booking, now)
		if err != nil {
			return err
		}

		err = s.bookings.UpdateTickets(ctx, booking.Tickets)
		if err != nil {
			return err
		}

		booking.FirstName = input.FirstName
		booking.LastName = input.LastName
		booking.Email = input.Email
		booking.Status = domain.BookingStatusFilled
		superseded = booking.PaymentID
		booking.PaymentID = nil

		return s.bookings.Update(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	if superseded != nil {
		s.ExpireCheckouts(ctx, *superseded)
	}

	return booking, nil
}

// UpdateSeats replaces the booking's seats. Keeping the seat count keeps the
// ticket composition and status; a different count resets the booking to
// RESERVED with normal tickets and no discount.
func (s *Service) UpdateSeats(
	ctx context.Context,
	bookingID int,
	token string,
	seatIDs []int) (*domain.Booking, error) {

	seatIDs = uniqueSeatIDs(seatIDs)
	if len(seatIDs) == 0 {
		return nil, domain.ErrNoSeatsSelected
	}

	var showing *domain.Showing
	var booking *domain.Booking
	var released []domain.ReleasedBooking
	var superseded *string

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		now := s.clock.Now()

		var err error

		booking, err = s.lockBooking(ctx, bookingID, token)
		if err != nil {
			return err
		}

		previousReward := booking.RewardID

		showing, err = s.showings.GetById(ctx, booking.ShowingID)
		if err != nil {
			return err
		}

		if showing.HasStarted(now) {
			return domain.ErrShowingInPast
		}

		released, err = s.bookings.ReleaseExpiredHolds(ctx, showing.ID, booking.ID, seatIDs, s.availability.HoldCutoff())
		if err != nil {
			return err
		}

		selection, err := s.availability.Check(ctx, showing, seatIDs, booking.ID)
		if err != nil {
			return err
		}

		prices, err := s.prices.GetAll(ctx)
		if err != nil {
			return err
		}

		normal := len(selection.Seats)
		var reward *domain.UserReward

		if len(selection.Seats) == len(booking.Tickets) {
			normal, _ = booking.TicketCounts()

			if booking.RewardID != nil {
				reward, err = s.applicableReward(ctx, booking, *booking.RewardID)
				if err != nil && !errors.Is(err, domain.ErrInvalidDiscount) {
					return err
				}
			}
		} else {
			booking.Status = domain.BookingStatusReserved
		}

		booking.Tickets = newTickets(showing.ID, selection.Seats, normal)
		for i := range booking.Tickets {
			booking.Tickets[i].BookingID = booking.ID
		}

		err = s.priceBooking(booking, showing, prices, selection.Occupied, reward, now)
		if errors.Is(err, domain.ErrInvalidDiscount) {
			// the new seats leave no room for the discount; the reward goes back
			err = s.priceBooking(booking, showing, prices, selection.Occupied, nil, now)
		}
		if err != nil {
			return err
		}

		err = s.syncReward(ctx, previousReward, booking, now)
		if err != nil {
			return err
		}

		err = s.bookings.ReplaceTickets(ctx, booking)
		if err != nil {
			return err
		}

		superseded = booking.PaymentID
		booking.PaymentID = nil

		return s.bookings.Update(ctx, booking)
	})
	if err != nil {
		return nil, s.seatError(ctx, err, showing, seatIDs, bookingID)
	}

	paymentIDs := ReleasedPaymentIDs(released)
	if superseded != nil {
		paymentIDs = append(paymentIDs, *superseded)
	}

	s.ExpireCheckouts(ctx, paymentIDs...)

	return booking, nil
}

// InitiatePayment asks the gateway for a checkout and returns the redirect URL.
// The gateway call runs outside any transaction; a failure leaves the booking
// untouched so the customer can retry.
func (s *Service) InitiatePayment(ctx context.Context, bookingID int, token string) (string, error) {
	booking, err := s.Get(ctx, bookingID, token)
	if err != nil {
		return "", err
	}

	if booking.IsPaid() {
		return "", domain.ErrBookingPaid
	}

	if booking.Status != domain.BookingStatusFilled || !booking.Price.IsPositive() {
		return "", domain.ErrBookingNotFilled
	}

	showing, err := s.showings.GetById(ctx, booking.ShowingID)
	if err != nil {
		return "", err
	}

	if showing.HasStarted(s.clock.Now()) {
		return "", domain.ErrShowingInPast
	}

	req := domain.AuthorizeRequest{
		BookingID: booking.ID,
		Amount:    booking.Price,
		Currency:  s.cfg.Currency,
		Buyer: domain.Buyer{
			UserID:    booking.UserID,
			FirstName: booking.FirstName,
			LastName:  booking.LastName,
			Email:     booking.Email,
		},
		Items:          lineItems(booking),
		ReturnURL:      s.cfg.ReturnURL,
		CancelURL:      s.cfg.CancelURL,
		IdempotencyKey: booking.IdempotencyKey(),
	}

	auth, err := s.gateway.Authorize(ctx, req)
	if err != nil {
		s.logger.Error("payment authorization failed", "booking_id", booking.ID, "error", err)
		return "", err
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		locked, err := s.bookings.GetByIdForUpdate(ctx, booking.ID)
		if err != nil {
			return err
		}

		if locked.Version != booking.Version {
			return domain.ErrEditConflict
		}

		locked.UpdatedAt = s.clock.Now()

		err = s.bookings.SetPaymentId(ctx, locked, auth.PaymentID)
		if err != nil {
			return err
		}

		return s.payments.Create(ctx, &domain.Payment{
			BookingID:         locked.ID,
			ProviderPaymentID: auth.PaymentID,
			IdempotencyKey:    req.IdempotencyKey,
			Amount:            locked.Price,
			Currency:          s.cfg.Currency,
			Status:            domain.PaymentStatusPending,
		})
	})
	if errors.Is(err, domain.ErrEditConflict) || errors.Is(err, domain.ErrRecordNotFound) {
		// the booking changed or vanished while the checkout was created; its
		// idempotency key will not be used again
		s.expireCheckout(ctx, auth.PaymentID, false)
		return "", err
	}
	if err != nil {
		return "", err
	}

	return auth.RedirectURL, nil
}

// ReconcilePayment looks the payment up at the provider and applies the
// reported state. idempotencyKey identifies the notification being handled.
func (s *Service) ReconcilePayment(ctx context.Context, paymentID, idempotencyKey string) error {
	status, err := s.gateway.Status(ctx, paymentID, idempotencyKey)
	if err != nil {
		return err
	}

	switch status.Status {
	case domain.PaymentStatusCompleted:
		return s.ConfirmPayment(ctx, *status)
	case domain.PaymentStatusCanceled:
		return s.payments.UpdateStatus(ctx, paymentID, domain.PaymentStatusCanceled, "checkout session expired", s.clock.Now())
	}

	s.logger.Info("payment not settled yet", "payment_id", paymentID, "status", status.Status)

	return nil
}

// ConfirmPayment moves the booking paid by status to PAID and credits loyalty
// points. Confirming an already paid booking is a no-op.
func (s *Service) ConfirmPayment(ctx context.Context, status domain.ProviderStatus) error {
	if status.Status != domain.PaymentStatusCompleted {
		return domain.ErrPaymentNotCompleted
	}

	var booking *domain.Booking
	alreadyPaid := false
	orphaned := false

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		now := s.clock.Now()

		var err error

		booking, err = s.bookings.GetByPaymentIdForUpdate(ctx, status.PaymentID)
		if errors.Is(err, domain.ErrRecordNotFound) {
			orphaned = true
			return s.payments.MarkRefundRequired(ctx, status, "no booking references this checkout", now)
		}
		if err != nil {
			return err
		}

		if booking.IsPaid() {
			alreadyPaid = true
			return nil
		}

		if status.BookingID != 0 && status.BookingID != booking.ID {
			return fmt.Errorf("%w: payment %s belongs to booking %d", domain.ErrPaymentMismatch, status.PaymentID, status.BookingID)
		}

		if !status.Amount.Equal(booking.Price) || !strings.EqualFold(status.Currency, s.cfg.Currency) {
			return fmt.Errorf("%w: got %s %s, want %s %s", domain.ErrPaymentMismatch,
				status.Amount.StringFixed(2), status.Currency, booking.Price.StringFixed(2), s.cfg.Currency)
		}

		booking.Status = domain.BookingStatusPaid
		booking.UpdatedAt = now

		err = s.bookings.Update(ctx, booking)
		if err != nil {
			return err
		}

		err = s.creditPoints(ctx, booking)
		if err != nil {
			return err
		}

		return s.payments.UpdateStatus(ctx, status.PaymentID, domain.PaymentStatusCompleted, "", now)
	})
	if err != nil {
		return err
	}

	if orphaned {
		s.paymentsOrphaned.Add(ctx, 1)
		s.logger.Error("checkout paid after its booking released it, refund required",
			"payment_id", status.PaymentID,
			"booking_id", status.BookingID,
			"amount", status.Amount.StringFixed(2),
			"currency", status.Currency)
		return nil
	}

	if alreadyPaid {
		s.logger.Info("payment already confirmed", "booking_id", booking.ID, "payment_id", status.PaymentID)
		return nil
	}

	s.bookingsPaid.Add(ctx, 1)
	s.logger.Info("booking paid", "booking_id", booking.ID, "price", booking.Price.StringFixed(2))

	if s.notifier != nil {
		if err := s.notifier.BookingPaid(ctx, booking); err != nil {
			s.logger.Error("failed to notify about paid booking", "booking_id", booking.ID, "error", err)
		}
	}

	return nil
}

func (s *Service) creditPoints(ctx context.Context, booking *domain.Booking) error {
	if booking.UserID == nil {
		return nil
	}

	points := int(booking.Price.Mul(s.cfg.PointsRate).Floor().IntPart())
	if points <= 0 {
		return nil
	}

	bookingID := booking.ID

	err := s.rewards.AppendPoints(ctx, &domain.PointsEntry{
		UserID:    *booking.UserID,
		BookingID: &bookingID,
		Points:    points,
		Reason:    fmt.Sprintf("booking #%d", booking.ID),
	})
	if errors.Is(err, domain.ErrEditConflict) {
		s.logger.Warn("points already credited", "booking_id", booking.ID)
		return nil
	}

	return err
}

// Cancel deletes an unpaid booking and frees its seats at once. A redeemed
// reward is handed back to its owner.
func (s *Service) Cancel(ctx context.Context, bookingID int, token string) error {
	var paymentID *string

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		booking, err := s.bookings.GetByIdForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		if !booking.TokenMatches(token) {
			return domain.ErrForbidden
		}

		if booking.IsPaid() {
			return domain.ErrCannotCancelPaid
		}

		if booking.RewardID != nil {
			err = s.rewards.Restore(ctx, *booking.RewardID)
			if err != nil {
				return err
			}
		}

		paymentID = booking.PaymentID

		return s.bookings.Delete(ctx, booking.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("booking cancelled", "booking_id", bookingID)

	if paymentID != nil {
		s.ExpireCheckouts(ctx, *paymentID)
	}

	return nil
}

// ExpireCheckouts closes checkouts that no booking references anymore so they
// can no longer be paid. A checkout the customer completed in the meantime is
// settled by ConfirmPayment.
func (s *Service) ExpireCheckouts(ctx context.Context, paymentIDs ...string) {
	for _, id := range paymentIDs {
		s.expireCheckout(ctx, id, true)
	}
}

func (s *Service) expireCheckout(ctx context.Context, paymentID string, recorded bool) {
	logger := s.logger.With("payment_id", paymentID)

	err := s.gateway.Expire(ctx, paymentID)
	if err != nil {
		logger.Warn("failed to expire checkout", "error", err)
		return
	}

	logger.Info("checkout expired")

	if !recorded {
		return
	}

	err = s.payments.UpdateStatus(ctx, paymentID, domain.PaymentStatusCanceled, "checkout superseded", s.clock.Now())
	if err != nil {
		logger.Error("failed to record expired checkout", "error", err)
	}
}

// ReleasedPaymentIDs returns the checkouts the released bookings had open.
func ReleasedPaymentIDs(released []domain.ReleasedBooking) []string {
	ids := make([]string, 0, len(released))

	for _, b := range released {
		if b.PaymentID != nil {
			ids = append(ids, *b.PaymentID)
		}
	}

	return ids
}

type SeatStatus struct {
	Seat      domain.Seat
	Available bool
}

type SeatMap struct {
	Showing *domain.Showing
	Seats   []SeatStatus
	// Quotes is the current price of one ticket per type.
	Quotes map[domain.TicketType]decimal.Decimal
}

// SeatMap reports availability of every seat in the showing's hall along with
// the price a new ticket would have right now.
func (s *Service) SeatMap(ctx context.Context, showingID int) (*SeatMap, error) {
	now := s.clock.Now()

	showing, err := s.showings.GetById(ctx, showingID)
	if err != nil {
		return nil, err
	}

	if showing.HasStarted(now) {
		return nil, domain.ErrShowingInPast
	}

	hallSeats, err := s.availability.seats.GetSeatsByHall(ctx, showing.HallID)
	if err != nil {
		return nil, err
	}

	occupied, err := s.availability.OccupiedSeats(ctx, showing.ID, 0)
	if err != nil {
		return nil, err
	}

	prices, err := s.prices.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	occupancy := pricing.OccupancyRatio(len(occupied), showing.HallCapacity)
	quotes := make(map[domain.TicketType]decimal.Decimal, len(prices))

	for ticketType, price := range prices {
		quote, err := s.pricing.Price(price, showing, occupancy, showing.TimeToShowing(now))
		if err != nil {
			return nil, err
		}

		quotes[ticketType] = quote
	}

	seats := make([]SeatStatus, len(hallSeats))
	for i, seat := range hallSeats {
		_, taken := occupied[seat.ID]
		seats[i] = SeatStatus{Seat: seat, Available: !taken}
	}

	return &SeatMap{
		Showing: showing,
		Seats:   seats,
		Quotes:  quotes,
	}, nil
}

func (s *Service) lockBooking(ctx context.Context, bookingID int, token string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByIdForUpdate(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.TokenMatches(token) {
		return nil, domain.ErrForbidden
	}

	if booking.IsPaid() {
		return nil, domain.ErrBookingPaid
	}

	return booking, nil
}

// applicableReward returns the reward when it belongs to the booking's user and
// is either still active or already redeemed by this booking.
func (s *Service) applicableReward(ctx context.Context, booking *domain.Booking, rewardID int) (*domain.UserReward, error) {
	if booking.UserID == nil {
		return nil, fmt.Errorf("%w: booking has no user", domain.ErrInvalidDiscount)
	}

	reward, err := s.rewards.GetUserReward(ctx, rewardID, *booking.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrInvalidDiscount
		}

		return nil, err
	}

	held := booking.RewardID != nil && *booking.RewardID == reward.ID
	if reward.Status != domain.RewardStatusActive && !held {
		return nil, fmt.Errorf("%w: reward already used", domain.ErrInvalidDiscount)
	}

	return reward, nil
}

// syncReward redeems the reward newly attached to booking and restores the one
// it replaced, if any.
func (s *Service) syncReward(ctx context.Context, previous *int, booking *domain.Booking, now time.Time) error {
	current := booking.RewardID

	if previous != nil && (current == nil || *current != *previous) {
		err := s.rewards.Restore(ctx, *previous)
		if err != nil {
			return err
		}
	}

	if current != nil && (previous == nil || *previous != *current) {
		err := s.rewards.MarkUsed(ctx, *current, now)
		if errors.Is(err, domain.ErrEditConflict) {
			return fmt.Errorf("%w: reward already used", domain.ErrInvalidDiscount)
		}

		return err
	}

	return nil
}

// priceBooking prices every ticket and sets the booking total. The total,
// after any discount, is kept within the bounds of the ticket composition.
func (s *Service) priceBooking(
	booking *domain.Booking,
	showing *domain.Showing,
	prices domain.PriceTable,
	occupied int,
	reward *domain.UserReward,
	now time.Time) error {

	occupancy := pricing.OccupancyRatio(occupied, showing.HallCapacity)
	timeToShowing := showing.TimeToShowing(now)

	total := decimal.Zero
	types := make([]domain.TicketType, len(booking.Tickets))

	for i := range booking.Tickets {
		ticket := &booking.Tickets[i]

		price, err := prices.Get(ticket.Type)
		if err != nil {
			return err
		}

		ticket.Price, err = s.pricing.Price(price, showing, occupancy, timeToShowing)
		if err != nil {
			return err
		}

		total = total.Add(ticket.Price)
		types[i] = ticket.Type
	}

	lower, upper, err := pricing.Bounds(prices, types)
	if err != nil {
		return err
	}

	clamp := func(amount decimal.Decimal) decimal.Decimal {
		return decimal.Max(lower, decimal.Min(upper, amount)).Round(2)
	}

	price := clamp(total)
	booking.RewardID = nil

	if reward != nil {
		discounted := clamp(reward.Apply(total))
		// the discount has to lower the clamped price
		if !discounted.LessThan(price) {
			return domain.ErrInvalidDiscount
		}

		price = discounted
		booking.RewardID = &reward.ID
	}

	booking.Price = price
	booking.UpdatedAt = now

	return nil
}

// seatError names the seats behind a storage-level conflict. The storage
// constraint only fires when another booking claimed a seat between our check
// and our write.
func (s *Service) seatError(
	ctx context.Context,
	err error,
	showing *domain.Showing,
	seatIDs []int,
	excludeBookingID int) error {

	if !errors.Is(err, domain.ErrSeatConflict) {
		return err
	}

	s.seatConflicts.Add(ctx, 1)

	var conflict *domain.SeatConflictError
	if errors.As(err, &conflict) || showing == nil {
		s.logger.Warn("seat conflict", "error", err)
		return err
	}

	s.logger.Error("seat uniqueness constraint rejected a checked write", "showing_id", showing.ID, "error", err)

	named := s.availability.Conflicts(ctx, showing, seatIDs, excludeBookingID)
	if errors.Is(named, domain.ErrSeatConflict) {
		return named
	}

	return err
}

func newTickets(showingID int, seats []domain.Seat, normal int) []domain.Ticket {
	tickets := make([]domain.Ticket, len(seats))
	for i, seat := range seats {
		tickets[i] = domain.Ticket{
			ShowingID: showingID,
			SeatID:    seat.ID,
			Seat:      seat,
		}
	}

	assignTicketTypes(tickets, normal)

	return tickets
}

// assignTicketTypes makes the first normal tickets NORMAL and the rest REDUCED.
func assignTicketTypes(tickets []domain.Ticket, normal int) {
	for i := range tickets {
		if i < normal {
			tickets[i].Type = domain.TicketTypeNormal
		} else {
			tickets[i].Type = domain.TicketTypeReduced
		}
	}
}

func lineItems(booking *domain.Booking) []domain.LineItem {
	items := make([]domain.LineItem, len(booking.Tickets))
	for i, ticket := range booking.Tickets {
		items[i] = domain.LineItem{
			Name:        fmt.Sprintf("Ticket, %s", ticket.Seat.Label()),
			Description: string(ticket.Type),
			Amount:      ticket.Price,
		}
	}

	return items
}

func uniqueSeatIDs(seatIDs []int) []int {
	seen := make(map[int]struct{}, len(seatIDs))
	unique := make([]int, 0, len(seatIDs))

	for _, id := range seatIDs {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	sort.Ints(unique)

	return unique
}
