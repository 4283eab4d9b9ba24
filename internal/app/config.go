package app

import (
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	Stripe           StripeConfig
	RabbitMQ         RabbitMQConfig
	Booking          BookingConfig
	Pricing          PricingConfig
	Reaper           ReaperConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessUrl    string
	CancelUrl     string
	// Provider selects the payment gateway: "stripe" or "mock".
	Provider string
}

type RabbitMQConfig struct {
	URL string
}

type BookingConfig struct {
	HoldTTL    time.Duration
	Currency   string
	PointsRate string
}

type PricingConfig struct {
	OccupancyPremium  string
	LastMinutePremium string
	LastMinuteWindow  time.Duration
	Surcharge3D       string
}

type ReaperConfig struct {
	Interval  time.Duration
	BatchSize int
}

// parseFlags reads the configuration from the command line. Secrets default to
// the environment so they can come from a .env file.
func parseFlags(args []string) (Config, bool, error) {
	var cfg Config

	fs := flag.NewFlagSet("api", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	fs.StringVar(&cfg.Env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")
	fs.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", os.Getenv("OTEL_COLLECTOR_URL"), "OpenTelemetry collector gRPC endpoint")

	fs.StringVar(&cfg.DB.DSN, "db-dsn", os.Getenv("DB_DSN"), "PostgreSQL DSN")
	fs.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	fs.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	fs.StringVar(&cfg.Redis.URL, "redis-url", os.Getenv("REDIS_URL"), "Redis URL")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	fs.StringVar(&cfg.SMTP.Host, "smtp-host", envString("SMTP_HOST", "sandbox.smtp.mailtrap.io"), "SMTP host")
	fs.IntVar(&cfg.SMTP.Port, "smtp-port", envInt("SMTP_PORT", 2525), "SMTP port")
	fs.StringVar(&cfg.SMTP.Username, "smtp-username", os.Getenv("SMTP_USERNAME"), "SMTP username")
	fs.StringVar(&cfg.SMTP.Password, "smtp-password", os.Getenv("SMTP_PASSWORD"), "SMTP password")
	fs.StringVar(&cfg.SMTP.Sender, "smtp-sender", "CineX <no-reply@cinex.metinatakli.net>", "SMTP sender")

	fs.StringVar(&cfg.Stripe.Provider, "payment-provider", envString("PAYMENT_PROVIDER", "stripe"), "Payment provider (stripe|mock)")
	fs.StringVar(&cfg.Stripe.SecretKey, "stripe-key", os.Getenv("STRIPE_KEY"), "Stripe secret key")
	fs.StringVar(&cfg.Stripe.WebhookSecret, "stripe-webhook-secret", os.Getenv("STRIPE_WEBHOOK_SECRET"), "Stripe webhook secret")
	fs.StringVar(&cfg.Stripe.SuccessUrl, "stripe-success-url", "https://example.com/success.html", "Stripe payment success page")
	fs.StringVar(&cfg.Stripe.CancelUrl, "stripe-cancel-url", "https://example.com/failure.html", "Stripe payment cancel page")

	fs.StringVar(&cfg.RabbitMQ.URL, "rabbitmq-url", os.Getenv("RABBITMQ_URL"), "RabbitMQ URL, booking events are not published when empty")

	fs.DurationVar(&cfg.Booking.HoldTTL, "hold-ttl", 15*time.Minute, "How long an unpaid booking holds its seats after its last update")
	fs.StringVar(&cfg.Booking.Currency, "currency", "usd", "ISO currency code charged for bookings")
	fs.StringVar(&cfg.Booking.PointsRate, "points-rate", "0.1", "Share of a paid total credited as loyalty points")

	fs.StringVar(&cfg.Pricing.OccupancyPremium, "pricing-occupancy-premium", "0.30", "Relative surcharge at full occupancy")
	fs.StringVar(&cfg.Pricing.LastMinutePremium, "pricing-last-minute-premium", "0.20", "Relative surcharge at showing start")
	fs.DurationVar(&cfg.Pricing.LastMinuteWindow, "pricing-last-minute-window", 24*time.Hour, "Window before showing start in which the last-minute surcharge grows")
	fs.StringVar(&cfg.Pricing.Surcharge3D, "pricing-3d-surcharge", "2.00", "Per-ticket surcharge for 3D showings")

	fs.DurationVar(&cfg.Reaper.Interval, "reaper-interval", time.Minute, "How often stale bookings are reaped")
	fs.IntVar(&cfg.Reaper.BatchSize, "reaper-batch-size", 100, "Bookings deleted per reaper transaction")

	displayVersion := fs.Bool("version", false, "Display version and exit")

	err := fs.Parse(args)
	if err != nil {
		return Config{}, false, err
	}

	return cfg, *displayVersion, nil
}

func envString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}

func envInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return value
}
