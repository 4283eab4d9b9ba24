package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/booking"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var testCreatedAt = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:        7,
		ShowingID: 1,
		Price:     decimal.RequireFromString("20.00"),
		Status:    domain.BookingStatusReserved,
		Version:   1,
		CreatedAt: testCreatedAt,
		UpdatedAt: testCreatedAt,
		Tickets: []domain.Ticket{
			{SeatID: 1, Seat: domain.Seat{ID: 1, Row: 1, Col: 1, Number: 1}, Price: decimal.RequireFromString("10.00"), Type: domain.TicketTypeNormal},
			{SeatID: 2, Seat: domain.Seat{ID: 2, Row: 1, Col: 2, Number: 2}, Price: decimal.RequireFromString("10.00"), Type: domain.TicketTypeNormal},
		},
	}
}

type BookingHandlerTestSuite struct {
	suite.Suite
	service *MockBookingService
	handler http.Handler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	s.service = new(MockBookingService)
	s.handler = newTestApplication(s.T(), s.service, nil).Routes()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	tests := []struct {
		name           string
		body           any
		setupMock      func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name: "creates booking and returns the access token",
			body: api.SeatSelectionRequest{SeatIds: []int{1, 2}},
			setupMock: func() {
				s.service.On("Create", mock.Anything, 1, []int{1, 2}, (*int)(nil)).
					Return(testBooking(), testToken, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "rejects an empty seat selection",
			body:       api.SeatSelectionRequest{SeatIds: []int{}},
			setupMock:  func() {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "rejects unknown fields",
			body:       map[string]any{"seats": []int{1}},
			setupMock:  func() {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "names the seats taken by another booking",
			body: api.SeatSelectionRequest{SeatIds: []int{2}},
			setupMock: func() {
				s.service.On("Create", mock.Anything, 1, []int{2}, (*int)(nil)).
					Return(nil, "", &domain.SeatConflictError{Seats: []domain.Seat{{ID: 2, Row: 1, Number: 2}}}).Once()
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: "seat(s) no longer available: row 1, seat 2",
		},
		{
			name: "returns 404 for an unknown showing",
			body: api.SeatSelectionRequest{SeatIds: []int{1}},
			setupMock: func() {
				s.service.On("Create", mock.Anything, 1, []int{1}, (*int)(nil)).
					Return(nil, "", domain.ErrShowingNotFound).Once()
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: domain.ErrShowingNotFound.Error(),
		},
		{
			name: "returns 404 for a seat outside the hall",
			body: api.SeatSelectionRequest{SeatIds: []int{99}},
			setupMock: func() {
				s.service.On("Create", mock.Anything, 1, []int{99}, (*int)(nil)).
					Return(nil, "", fmt.Errorf("%w: showing 1", domain.ErrSeatNotFound)).Once()
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: domain.ErrSeatNotFound.Error(),
		},
		{
			name: "returns 422 when the showing has started",
			body: api.SeatSelectionRequest{SeatIds: []int{1}},
			setupMock: func() {
				s.service.On("Create", mock.Anything, 1, []int{1}, (*int)(nil)).
					Return(nil, "", domain.ErrShowingInPast).Once()
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: domain.ErrShowingInPast.Error(),
		},
		{
			name: "hides unexpected failures",
			body: api.SeatSelectionRequest{SeatIds: []int{1}},
			setupMock: func() {
				s.service.On("Create", mock.Anything, 1, []int{1}, (*int)(nil)).
					Return(nil, "", errors.New("connection refused")).Once()
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setupMock()

			w, r := executeRequest(s.T(), http.MethodPost, "/showings/1/bookings", tt.body)
			s.handler.ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp api.CreateBookingResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

				s.Equal(testToken, resp.AccessToken)
				s.Equal("/bookings/7", w.Header().Get("Location"))
				if diff := cmp.Diff(toBookingResponse(testBooking()), resp.Booking); diff != "" {
					s.T().Errorf("booking mismatch (-want +got):\n%s", diff)
				}
			} else {
				checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)
			}

			s.service.AssertExpectations(s.T())
		})
	}
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	tests := []struct {
		name           string
		url            string
		token          string
		setupMock      func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:  "returns the booking",
			url:   "/bookings/7",
			token: testToken,
			setupMock: func() {
				s.service.On("Get", mock.Anything, 7, testToken).Return(testBooking(), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "requires the booking token",
			url:        "/bookings/7",
			setupMock:  func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rejects a non numeric id",
			url:        "/bookings/seven",
			token:      testToken,
			setupMock:  func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "rejects a wrong token",
			url:   "/bookings/7",
			token: "wrong",
			setupMock: func() {
				s.service.On("Get", mock.Anything, 7, "wrong").Return(nil, domain.ErrForbidden).Once()
			},
			wantStatus:     http.StatusForbidden,
			wantErrMessage: domain.ErrForbidden.Error(),
		},
		{
			name:  "returns 404 for a reaped booking",
			url:   "/bookings/7",
			token: testToken,
			setupMock: func() {
				s.service.On("Get", mock.Anything, 7, testToken).Return(nil, domain.ErrRecordNotFound).Once()
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setupMock()

			w, r := executeRequest(s.T(), http.MethodGet, tt.url, nil)
			if tt.token != "" {
				r.Header.Set("X-Booking-Token", tt.token)
			}
			s.handler.ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantStatus == http.StatusOK {
				var resp api.BookingResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal(7, resp.Id)
				s.Equal(api.BookingResponseStatusReserved, resp.Status)
				s.True(decimal.RequireFromString("20").Equal(resp.Price))
				s.Len(resp.Tickets, 2)
			}

			s.service.AssertExpectations(s.T())
		})
	}
}

func (s *BookingHandlerTestSuite) TestUpdateBookingTickets() {
	validBody := api.UpdateTicketsRequest{
		NormalCount:  1,
		ReducedCount: 1,
		DiscountId:   ptr(3),
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
	}

	wantInput := booking.TicketsInput{
		NormalCount:  1,
		ReducedCount: 1,
		DiscountID:   ptr(3),
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
	}

	tests := []struct {
		name           string
		body           any
		setupMock      func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name: "fills the booking",
			body: validBody,
			setupMock: func() {
				filled := testBooking()
				filled.Status = domain.BookingStatusFilled
				s.service.On("UpdateTickets", mock.Anything, 7, testToken, wantInput).Return(filled, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "rejects an invalid email",
			body: api.UpdateTicketsRequest{
				NormalCount: 1,
				FirstName:   "Ada",
				LastName:    "Lovelace",
				Email:       "not-an-email",
			},
			setupMock:      func() {},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: ErrValidation,
		},
		{
			name: "rejects a count that does not match the seats",
			body: validBody,
			setupMock: func() {
				s.service.On("UpdateTickets", mock.Anything, 7, testToken, wantInput).
					Return(nil, fmt.Errorf("%w: got 2, booking has 3 seats", domain.ErrTicketCountMismatch)).Once()
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: domain.ErrTicketCountMismatch.Error(),
		},
		{
			name: "rejects a discount that does not apply",
			body: validBody,
			setupMock: func() {
				s.service.On("UpdateTickets", mock.Anything, 7, testToken, wantInput).
					Return(nil, domain.ErrInvalidDiscount).Once()
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: domain.ErrInvalidDiscount.Error(),
		},
		{
			name: "reports a concurrent modification",
			body: validBody,
			setupMock: func() {
				s.service.On("UpdateTickets", mock.Anything, 7, testToken, wantInput).
					Return(nil, domain.ErrEditConflict).Once()
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: ErrEditConflict,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setupMock()

			w, r := executeRequest(s.T(), http.MethodPut, "/bookings/7/tickets", tt.body)
			r.Header.Set("X-Booking-Token", testToken)
			s.handler.ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			s.service.AssertExpectations(s.T())
		})
	}
}

func (s *BookingHandlerTestSuite) TestUpdateBookingSeats() {
	tests := []struct {
		name           string
		setupMock      func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name: "replaces the seats",
			setupMock: func() {
				s.service.On("UpdateSeats", mock.Anything, 7, testToken, []int{3, 4}).Return(testBooking(), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "rejects a paid booking",
			setupMock: func() {
				s.service.On("UpdateSeats", mock.Anything, 7, testToken, []int{3, 4}).Return(nil, domain.ErrBookingPaid).Once()
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: domain.ErrBookingPaid.Error(),
		},
		{
			name: "reports seats that are taken",
			setupMock: func() {
				s.service.On("UpdateSeats", mock.Anything, 7, testToken, []int{3, 4}).Return(nil, domain.ErrSeatConflict).Once()
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: domain.ErrSeatConflict.Error(),
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setupMock()

			w, r := executeRequest(s.T(), http.MethodPut, "/bookings/7/seats", api.SeatSelectionRequest{SeatIds: []int{3, 4}})
			r.Header.Set("X-Booking-Token", testToken)
			s.handler.ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			s.service.AssertExpectations(s.T())
		})
	}
}

func (s *BookingHandlerTestSuite) TestCreateBookingPayment() {
	tests := []struct {
		name           string
		setupMock      func()
		wantStatus     int
		wantErrMessage string
		wantRedirect   string
	}{
		{
			name: "returns the provider redirect",
			setupMock: func() {
				s.service.On("InitiatePayment", mock.Anything, 7, testToken).Return("https://checkout.stripe.com/c/pay/cs_test", nil).Once()
			},
			wantStatus:   http.StatusOK,
			wantRedirect: "https://checkout.stripe.com/c/pay/cs_test",
		},
		{
			name: "asks to retry when the provider fails",
			setupMock: func() {
				s.service.On("InitiatePayment", mock.Anything, 7, testToken).
					Return("", fmt.Errorf("%w: create checkout session: timeout", domain.ErrPaymentGateway)).Once()
			},
			wantStatus:     http.StatusBadGateway,
			wantErrMessage: domain.ErrPaymentGateway.Error(),
		},
		{
			name: "requires ticket details first",
			setupMock: func() {
				s.service.On("InitiatePayment", mock.Anything, 7, testToken).Return("", domain.ErrBookingNotFilled).Once()
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: domain.ErrBookingNotFilled.Error(),
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setupMock()

			w, r := executeRequest(s.T(), http.MethodPost, "/bookings/7/payment", nil)
			r.Header.Set("X-Booking-Token", testToken)
			s.handler.ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantRedirect != "" {
				var resp api.PaymentResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal(tt.wantRedirect, resp.RedirectUrl)
			}

			s.service.AssertExpectations(s.T())
		})
	}
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "cancels the booking",
			wantStatus: http.StatusOK,
		},
		{
			name:           "refuses to cancel a paid booking",
			err:            domain.ErrCannotCancelPaid,
			wantStatus:     http.StatusConflict,
			wantErrMessage: domain.ErrCannotCancelPaid.Error(),
		},
		{
			name:           "returns 404 for an unknown booking",
			err:            domain.ErrRecordNotFound,
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.service.On("Cancel", mock.Anything, 7, testToken).Return(tt.err).Once()

			w, r := executeRequest(s.T(), http.MethodDelete, "/bookings/7", nil)
			r.Header.Set("X-Booking-Token", testToken)
			s.handler.ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantStatus == http.StatusOK {
				var resp api.MessageResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal("booking cancelled, seats released", resp.Message)
			}
		})
	}
}

func (s *BookingHandlerTestSuite) TestGetShowingSeats() {
	showing := &domain.Showing{
		ID:        1,
		HallID:    2,
		StartTime: testCreatedAt.Add(72 * time.Hour),
		Format:    domain.Format2D,
	}

	s.service.On("SeatMap", mock.Anything, 1).Return(&booking.SeatMap{
		Showing: showing,
		Seats: []booking.SeatStatus{
			{Seat: domain.Seat{ID: 1, Row: 1, Col: 1, Number: 1, Class: domain.SeatClassNormal}, Available: true},
			{Seat: domain.Seat{ID: 2, Row: 1, Col: 2, Number: 2, Class: domain.SeatClassVIP}, Available: false},
		},
		Quotes: map[domain.TicketType]decimal.Decimal{
			domain.TicketTypeNormal:  decimal.RequireFromString("11.50"),
			domain.TicketTypeReduced: decimal.RequireFromString("8.05"),
		},
	}, nil).Once()
	s.service.On("SeatMap", mock.Anything, 9).Return(nil, domain.ErrShowingNotFound).Once()

	w, r := executeRequest(s.T(), http.MethodGet, "/showings/1/seats", nil)
	s.handler.ServeHTTP(w, r)
	s.Equal(http.StatusOK, w.Code)

	var resp api.SeatMapResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

	want := api.SeatMapResponse{
		ShowingId: 1,
		HallId:    2,
		StartTime: showing.StartTime,
		Format:    "2d",
		Prices: map[string]decimal.Decimal{
			"normal":  decimal.RequireFromString("11.5"),
			"reduced": decimal.RequireFromString("8.05"),
		},
		Seats: []api.Seat{
			{Id: 1, Row: 1, Column: 1, Number: 1, Class: "normal", Available: true},
			{Id: 2, Row: 1, Column: 2, Number: 2, Class: "vip", Available: false},
		},
	}
	if diff := cmp.Diff(want, resp); diff != "" {
		s.T().Errorf("seat map mismatch (-want +got):\n%s", diff)
	}

	w, r = executeRequest(s.T(), http.MethodGet, "/showings/9/seats", nil)
	s.handler.ServeHTTP(w, r)
	s.Equal(http.StatusNotFound, w.Code)
	checkErrorResponse(s.T(), w, http.StatusNotFound, domain.ErrShowingNotFound.Error())
}

func (s *BookingHandlerTestSuite) TestAmbientRoutes() {
	w, r := executeRequest(s.T(), http.MethodGet, "/healthcheck", nil)
	s.handler.ServeHTTP(w, r)
	s.Equal(http.StatusOK, w.Code)

	var health api.HealthcheckResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&health))
	s.Equal("UP", health.Status)
	s.Equal("test", health.SystemInfo.Environment)

	w, r = executeRequest(s.T(), http.MethodGet, "/openapi.json", nil)
	s.handler.ServeHTTP(w, r)
	s.Equal(http.StatusOK, w.Code)

	var doc struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&doc))
	s.Equal("3.0.3", doc.OpenAPI)
	s.Contains(doc.Paths, "/bookings/{bookingId}/payment")

	w, r = executeRequest(s.T(), http.MethodGet, "/movies", nil)
	s.handler.ServeHTTP(w, r)
	s.Equal(http.StatusNotFound, w.Code)
	checkErrorResponse(s.T(), w, http.StatusNotFound, ErrNotFound)

	w, r = executeRequest(s.T(), http.MethodPatch, "/bookings/7", nil)
	s.handler.ServeHTTP(w, r)
	s.Equal(http.StatusMethodNotAllowed, w.Code)
}
