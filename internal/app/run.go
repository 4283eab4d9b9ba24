package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/metinatakli/cinex-booking/internal/booking"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/metinatakli/cinex-booking/internal/events"
	"github.com/metinatakli/cinex-booking/internal/mailer"
	"github.com/metinatakli/cinex-booking/internal/notify"
	"github.com/metinatakli/cinex-booking/internal/payment"
	"github.com/metinatakli/cinex-booking/internal/pricing"
	"github.com/metinatakli/cinex-booking/internal/reaper"
	"github.com/metinatakli/cinex-booking/internal/repository"
	appvalidator "github.com/metinatakli/cinex-booking/internal/validator"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

func Run(args []string) error {
	cfg, displayVersion, err := parseFlags(args)
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		return nil
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	shutdownTelemetry, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(NewMultiHandler(
			logger.Handler(),
			otelslog.NewHandler(serviceName),
		))
	}

	slog.SetDefault(logger)

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	var publisher notify.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		p, err := events.NewPublisher(cfg.RabbitMQ.URL)
		if err != nil {
			return err
		}
		defer p.Close()

		publisher = p
	}

	gateway, err := newPaymentGateway(cfg)
	if err != nil {
		return err
	}

	pricingCfg, err := newPricingConfig(cfg.Pricing)
	if err != nil {
		return err
	}

	pointsRate, err := decimal.NewFromString(cfg.Booking.PointsRate)
	if err != nil {
		return fmt.Errorf("invalid points rate: %w", err)
	}

	clock := clockwork.NewRealClock()
	transactor := repository.NewPostgresTransactor(db)
	showingRepo := repository.NewPostgresShowingRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)
	notifier := notify.New(smtpMailer, publisher, showingRepo, cfg.Booking.Currency, logger)

	service, err := booking.NewService(
		booking.Config{
			HoldTTL:    cfg.Booking.HoldTTL,
			Currency:   cfg.Booking.Currency,
			PointsRate: pointsRate,
			ReturnURL:  cfg.Stripe.SuccessUrl,
			CancelURL:  cfg.Stripe.CancelUrl,
		},
		booking.Deps{
			Logger:     logger,
			Clock:      clock,
			Transactor: transactor,
			Showings:   showingRepo,
			Seats:      repository.NewPostgresSeatRepository(db),
			Prices:     repository.NewPostgresPriceRepository(db),
			Bookings:   bookingRepo,
			Rewards:    repository.NewPostgresRewardRepository(db),
			Payments:   repository.NewPostgresPaymentRepository(db),
			Gateway:    gateway,
			Notifier:   notifier,
			Pricing:    pricing.NewEngine(pricingCfg),
		})
	if err != nil {
		return err
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
		nil)
	if err != nil {
		return err
	}

	err = staleReaper.Start()
	if err != nil {
		return err
	}
	defer func() {
		if err := staleReaper.Shutdown(); err != nil {
			logger.Error("failed to stop reaper", "error", err)
		}
	}()

	app, err := NewApp(cfg, logger, redisClient, appvalidator.NewValidator(), NewSessionManager(redisClient), service)
	if err != nil {
		return err
	}

	return app.Serve()
}

func newPaymentGateway(cfg Config) (domain.PaymentGateway, error) {
	switch cfg.Stripe.Provider {
	case "stripe":
		if cfg.Stripe.SecretKey == "" {
			return nil, fmt.Errorf("stripe secret key is required")
		}
		return payment.NewStripeGateway(cfg.Stripe.SecretKey, nil), nil
	case "mock":
		return payment.NewMockGateway(cfg.Stripe.SuccessUrl), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Stripe.Provider)
	}
}

func newPricingConfig(cfg PricingConfig) (pricing.Config, error) {
	pricingCfg := pricing.DefaultConfig()
	pricingCfg.LastMinuteWindow = cfg.LastMinuteWindow

	var err error

	pricingCfg.OccupancyPremium, err = decimal.NewFromString(cfg.OccupancyPremium)
	if err != nil {
		return pricing.Config{}, fmt.Errorf("invalid occupancy premium: %w", err)
	}

	pricingCfg.LastMinutePremium, err = decimal.NewFromString(cfg.LastMinutePremium)
	if err != nil {
		return pricing.Config{}, fmt.Errorf("invalid last-minute premium: %w", err)
	}

	surcharge, err := decimal.NewFromString(cfg.Surcharge3D)
	if err != nil {
		return pricing.Config{}, fmt.Errorf("invalid 3d surcharge: %w", err)
	}

	pricingCfg.FormatSurcharge[domain.Format3D] = surcharge

	return pricingCfg, nil
}
