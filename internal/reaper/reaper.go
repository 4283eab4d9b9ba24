// Package reaper periodically deletes bookings that were never paid within the
// grace window, releasing their seats.
package reaper

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type Config struct {
	GraceWindow time.Duration
	Interval    time.Duration
	BatchSize   int
}

func DefaultConfig() Config {
	return Config{
		GraceWindow: 15 * time.Minute,
		Interval:    time.Minute,
		BatchSize:   100,
	}
}

// CheckoutExpirer closes the provider checkouts of reaped bookings.
type CheckoutExpirer interface {
	ExpireCheckouts(ctx context.Context, paymentIDs ...string)
}

type Reaper struct {
	cfg      Config
	bookings domain.BookingRepository
	tx       domain.Transactor
	checkout CheckoutExpirer
	clock    clockwork.Clock
	logger   *slog.Logger
	reaped   metric.Int64Counter

	scheduler gocron.Scheduler
}

func New(
	cfg Config,
	bookings domain.BookingRepository,
	tx domain.Transactor,
	checkout CheckoutExpirer,
	clock clockwork.Clock,
	logger *slog.Logger,
	meter metric.Meter) (*Reaper, error) {

	if meter == nil {
		meter = otel.Meter("github.com/metinatakli/cinex-booking/internal/reaper")
	}

	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}

	reaped, err := meter.Int64Counter("booking.reaped",
		metric.WithDescription("Unpaid bookings deleted after the grace window"))
	if err != nil {
		return nil, err
	}

	return &Reaper{
		cfg:      cfg,
		bookings: bookings,
		tx:       tx,
		checkout: checkout,
		clock:    clock,
		logger:   logger,
		reaped:   reaped,
	}, nil
}

// Reap deletes every unpaid booking last updated before now minus the grace
// window. Each batch runs in its own transaction; rows locked by an in-flight
// booking update are skipped and picked up by a later sweep. Checkouts left
// open by a batch are expired once it commits.
func (r *Reaper) Reap(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-r.cfg.GraceWindow)
	total := 0

	for {
		var released []domain.ReleasedBooking

		err := r.tx.WithTx(ctx, func(ctx context.Context) error {
			var err error
			released, err = r.bookings.DeleteStale(ctx, cutoff, r.cfg.BatchSize)
			return err
		})
		if err != nil {
			return total, err
		}

		total += len(released)

		if len(released) > 0 {
			ids := make([]int, len(released))
			paymentIDs := make([]string, 0)

			for i, b := range released {
				ids[i] = b.ID
				if b.PaymentID != nil {
					paymentIDs = append(paymentIDs, *b.PaymentID)
				}
			}

			r.reaped.Add(ctx, int64(len(released)))
			r.logger.Info("reaped stale bookings", "count", len(released), "booking_ids", ids)

			if len(paymentIDs) > 0 && r.checkout != nil {
				r.checkout.ExpireCheckouts(ctx, paymentIDs...)
			}
		}

		if len(released) < r.cfg.BatchSize {
			return total, nil
		}

		if err := ctx.Err(); err != nil {
			return total, err
		}
	}
}

// Start schedules Reap every Interval on the reaper's clock. The first sweep
// runs immediately; a sweep still running when the next is due postpones it.
func (r *Reaper) Start() error {
	scheduler, err := gocron.NewScheduler(
		gocron.WithClock(r.clock),
		gocron.WithLogger(r.logger),
	)
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(r.cfg.Interval),
		gocron.NewTask(r.sweep),
		gocron.WithName("stale-booking-reaper"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	r.scheduler = scheduler
	scheduler.Start()

	r.logger.Info("reaper started", "interval", r.cfg.Interval.String(), "grace_window", r.cfg.GraceWindow.String())

	return nil
}

func (r *Reaper) sweep(ctx context.Context) {
	_, err := r.Reap(ctx, r.clock.Now())
	if err != nil {
		r.logger.Error("failed to reap stale bookings", "error", err)
	}
}

func (r *Reaper) Shutdown() error {
	if r.scheduler == nil {
		return nil
	}

	return r.scheduler.Shutdown()
}
