package integration_test

import (
	"io"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/metinatakli/cinex-booking/internal/app"
	"github.com/metinatakli/cinex-booking/internal/booking"
	"github.com/metinatakli/cinex-booking/internal/mailer"
	"github.com/metinatakli/cinex-booking/internal/notify"
	"github.com/metinatakli/cinex-booking/internal/payment"
	"github.com/metinatakli/cinex-booking/internal/pricing"
	"github.com/metinatakli/cinex-booking/internal/reaper"
	"github.com/metinatakli/cinex-booking/internal/repository"
	appvalidator "github.com/metinatakli/cinex-booking/internal/validator"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric/noop"
)

// TestApp is the API wired to real Postgres and Redis. Payments go through the
// in-memory gateway and time is driven by a fake clock.
type TestApp struct {
	App         *app.Application
	DB          *pgxpool.Pool
	RedisClient *redis.Client
	Mailer      *mailer.MockMailer
	Gateway     *payment.MockGateway
	Clock       *clockwork.FakeClock
	Bookings    *booking.Service
	Reaper      *reaper.Reaper
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	meter := noop.NewMeterProvider().Meter("integration")
	clock := clockwork.NewFakeClockAt(time.Now())
	mockMailer := mailer.NewMockMailer()
	gateway := payment.NewMockGateway(cfg.Stripe.SuccessUrl)

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	transactor := repository.NewPostgresTransactor(db)
	showingRepo := repository.NewPostgresShowingRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	service, err := booking.NewService(
		booking.Config{
			HoldTTL:    cfg.Booking.HoldTTL,
			Currency:   cfg.Booking.Currency,
			PointsRate: decimal.RequireFromString(cfg.Booking.PointsRate),
			ReturnURL:  cfg.Stripe.SuccessUrl,
			CancelURL:  cfg.Stripe.CancelUrl,
		},
		booking.Deps{
			Logger:     logger,
			Clock:      clock,
			Meter:      meter,
			Transactor: transactor,
			Showings:   showingRepo,
			Seats:      repository.NewPostgresSeatRepository(db),
			Prices:     repository.NewPostgresPriceRepository(db),
			Bookings:   bookingRepo,
			Rewards:    repository.NewPostgresRewardRepository(db),
			Payments:   repository.NewPostgresPaymentRepository(db),
			Gateway:    gateway,
			Notifier:   notify.New(mockMailer, nil, showingRepo, cfg.Booking.Currency, logger),
			Pricing:    pricing.NewEngine(pricing.DefaultConfig()),
		})
	if err != nil {
		return nil, err
	}

	staleReaper, err := reaper.New(
		reaper.Config{
			GraceWindow: cfg.Booking.HoldTTL,
			Interval:    cfg.Reaper.Interval,
			BatchSize:   cfg.Reaper.BatchSize,
		},
		bookingRepo,
		transactor,
		service,
		clock,
		logger,
		meter)
	if err != nil {
		return nil, err
	}

	application, err := app.NewApp(
		cfg,
		logger,
		redisClient,
		appvalidator.NewValidator(),
		app.NewSessionManager(redisClient),
		service,
	)
	if err != nil {
		return nil, err
	}

	return &TestApp{
		App:         application,
		DB:          db,
		RedisClient: redisClient,
		Mailer:      mockMailer,
		Gateway:     gateway,
		Clock:       clock,
		Bookings:    service,
		Reaper:      staleReaper,
	}, nil
}

func (a *TestApp) Close() {
	a.DB.Close()
	a.RedisClient.Close()
}
