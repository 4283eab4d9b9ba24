package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/booking"
	"github.com/metinatakli/cinex-booking/internal/domain"
	appmiddleware "github.com/metinatakli/cinex-booking/internal/middleware"
	"github.com/metinatakli/cinex-booking/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
)

const serviceName = "cinex-booking-api"

var (
	version = vcs.Version()
)

// BookingService is the booking lifecycle as seen by the HTTP handlers.
type BookingService interface {
	Create(ctx context.Context, showingID int, seatIDs []int, userID *int) (*domain.Booking, string, error)
	Get(ctx context.Context, bookingID int, token string) (*domain.Booking, error)
	UpdateTickets(ctx context.Context, bookingID int, token string, input booking.TicketsInput) (*domain.Booking, error)
	UpdateSeats(ctx context.Context, bookingID int, token string, seatIDs []int) (*domain.Booking, error)
	InitiatePayment(ctx context.Context, bookingID int, token string) (string, error)
	ReconcilePayment(ctx context.Context, paymentID, idempotencyKey string) error
	Cancel(ctx context.Context, bookingID int, token string) error
	SeatMap(ctx context.Context, showingID int) (*booking.SeatMap, error)
}

type Application struct {
	config          Config
	logger          *slog.Logger
	redis           redis.UniversalClient
	validator       *validator.Validate
	sessionManager  *scs.SessionManager
	bookings        BookingService
	openapi         *openapi3.T
	validateRequest func(http.Handler) http.Handler
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	sessionManager *scs.SessionManager,
	bookings BookingService) (*Application, error) {

	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}

	validateRequest, err := appmiddleware.ValidateRequest(swagger)
	if err != nil {
		return nil, err
	}

	return &Application{
		config:          cfg,
		logger:          logger,
		redis:           redisClient,
		validator:       validator,
		sessionManager:  sessionManager,
		bookings:        bookings,
		openapi:         swagger,
		validateRequest: validateRequest,
	}, nil
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests before returning.
func (app *Application) Serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "version", version)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestID)
	r.Use(app.logRequest)
	r.Use(app.recoverPanic)

	r.Get("/openapi.json", app.GetOpenAPIDocument)

	r.Group(func(r chi.Router) {
		r.Use(app.sessionManager.LoadAndSave)
		r.Use(app.loadUser)
		r.Use(app.validateRequest)

		api.HandlerWithOptions(app, api.ChiServerOptions{
			BaseRouter:       r,
			ErrorHandlerFunc: app.parameterErrorResponse,
		})
	})

	return r
}
