// Package notify fans a paid booking out to the confirmation email and the
// booking.paid event stream.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/metinatakli/cinex-booking/internal/events"
	"github.com/metinatakli/cinex-booking/internal/mailer"
)

const bookingPaidTemplate = "booking_paid.tmpl"

type EventPublisher interface {
	PublishBookingPaid(ctx context.Context, event events.BookingPaidEvent) error
}

type Notifier struct {
	mailer    mailer.Mailer
	publisher EventPublisher
	showings  domain.ShowingRepository
	currency  string
	logger    *slog.Logger
}

// New returns a notifier. publisher may be nil when no broker is configured.
func New(
	m mailer.Mailer,
	publisher EventPublisher,
	showings domain.ShowingRepository,
	currency string,
	logger *slog.Logger) *Notifier {

	return &Notifier{
		mailer:    m,
		publisher: publisher,
		showings:  showings,
		currency:  strings.ToUpper(currency),
		logger:    logger,
	}
}

// BookingPaid publishes the booking.paid event and sends the confirmation
// email in the background. Only the publish error is returned.
func (n *Notifier) BookingPaid(ctx context.Context, booking *domain.Booking) error {
	if booking.Email != "" {
		n.sendConfirmation(context.WithoutCancel(ctx), booking)
	}

	if n.publisher == nil {
		return nil
	}

	err := n.publisher.PublishBookingPaid(ctx, events.NewBookingPaidEvent(booking))
	if err != nil {
		return fmt.Errorf("publish booking.paid: %w", err)
	}

	return nil
}

func (n *Notifier) sendConfirmation(ctx context.Context, booking *domain.Booking) {
	seats := make([]string, len(booking.Tickets))
	for i, ticket := range booking.Tickets {
		seats[i] = fmt.Sprintf("%s (%s)", ticket.Seat.Label(), ticket.Type)
	}

	data := map[string]any{
		"BookingID": booking.ID,
		"FirstName": booking.FirstName,
		"Seats":     seats,
		"Total":     fmt.Sprintf("%s %s", booking.Price.StringFixed(2), n.currency),
	}

	go func() {
		logger := n.logger.With("booking_id", booking.ID)

		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic occurred during sending booking confirmation", "panic", err)
			}
		}()

		data["StartTime"] = ""
		if showing, err := n.showings.GetById(ctx, booking.ShowingID); err == nil {
			data["StartTime"] = showing.StartTime.Format(time.RFC1123)
		}

		err := n.mailer.Send(booking.Email, bookingPaidTemplate, data)
		if err != nil {
			logger.Error("failed to send booking confirmation", "error", err)
			return
		}

		logger.Info("booking confirmation sent")
	}()
}
