// Package events publishes booking lifecycle events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/metinatakli/cinex-booking/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const BookingPaidQueue = "booking.paid"

type BookingPaidEvent struct {
	BookingID int       `json:"bookingId"`
	ShowingID int       `json:"showingId"`
	UserID    *int      `json:"userId,omitempty"`
	Email     string    `json:"email"`
	Total     string    `json:"total"`
	SeatIDs   []int     `json:"seatIds"`
	PaidAt    time.Time `json:"paidAt"`
}

func NewBookingPaidEvent(booking *domain.Booking) BookingPaidEvent {
	return BookingPaidEvent{
		BookingID: booking.ID,
		ShowingID: booking.ShowingID,
		UserID:    booking.UserID,
		Email:     booking.Email,
		Total:     booking.Price.StringFixed(2),
		SeatIDs:   booking.SeatIDs(),
		PaidAt:    booking.UpdatedAt.UTC(),
	}
}

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	conn  *amqp.Connection
	open  func() (channel, error)
	queue string
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		conn: conn,
		open: func() (channel, error) {
			return conn.Channel()
		},
		queue: BookingPaidQueue,
	}, nil
}

// PublishBookingPaid sends a persistent JSON message to the booking.paid queue
// through the default exchange. A channel is opened per message since amqp
// channels must not be shared between goroutines.
func (p *Publisher) PublishBookingPaid(ctx context.Context, event BookingPaidEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ch, err := p.open()
	if err != nil {
		return err
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(p.queue, true, false, false, false, nil)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         BookingPaidQueue,
		Body:         body,
	})
}

func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}

	return p.conn.Close()
}
