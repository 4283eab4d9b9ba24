package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/booking"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/metinatakli/cinex-booking/internal/mocks"
	"github.com/metinatakli/cinex-booking/internal/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testToken = "r8zEhnVzNTZDf8WypfYBTU_FkFUm9jXnTmMrK-WuFQ8"

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, showingID int, seatIDs []int, userID *int) (*domain.Booking, string, error) {
	args := m.Called(ctx, showingID, seatIDs, userID)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.String(1), args.Error(2)
}

func (m *MockBookingService) Get(ctx context.Context, bookingID int, token string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, token)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *MockBookingService) UpdateTickets(ctx context.Context, bookingID int, token string, input booking.TicketsInput) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, token, input)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *MockBookingService) UpdateSeats(ctx context.Context, bookingID int, token string, seatIDs []int) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, token, seatIDs)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *MockBookingService) InitiatePayment(ctx context.Context, bookingID int, token string) (string, error) {
	args := m.Called(ctx, bookingID, token)
	return args.String(0), args.Error(1)
}

func (m *MockBookingService) ReconcilePayment(ctx context.Context, paymentID, idempotencyKey string) error {
	args := m.Called(ctx, paymentID, idempotencyKey)
	return args.Error(0)
}

func (m *MockBookingService) Cancel(ctx context.Context, bookingID int, token string) error {
	args := m.Called(ctx, bookingID, token)
	return args.Error(0)
}

func (m *MockBookingService) SeatMap(ctx context.Context, showingID int) (*booking.SeatMap, error) {
	args := m.Called(ctx, showingID)
	sm, _ := args.Get(0).(*booking.SeatMap)
	return sm, args.Error(1)
}

func newTestApplication(t *testing.T, bookings BookingService, redisClient *mocks.MockRedisClient) *Application {
	t.Helper()

	cfg := Config{Env: "test"}
	cfg.Stripe.WebhookSecret = testWebhookSecret

	app, err := NewApp(
		cfg,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		redisClient,
		validator.NewValidator(),
		scs.New(),
		bookings,
	)
	require.NoError(t, err)

	return app
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	var errorResp api.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if wantErrMessage != "" && errorResp.Message != wantErrMessage {
		t.Errorf("Error message = %v, want %v", errorResp.Message, wantErrMessage)
	}
}

func ptr[T any](v T) *T {
	return &v
}
