package app

import (
	"fmt"
	"net/http"

	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/booking"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request, showingId int) {
	logger := app.contextGetLogger(r)

	var input api.SeatSelectionRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	created, token, err := app.bookings.Create(r.Context(), showingId, input.SeatIds, app.contextGetUserId(r))
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	logger.Info("booking created", "booking_id", created.ID, "showing_id", showingId)

	resp := api.CreateBookingResponse{
		Booking:     toBookingResponse(created),
		AccessToken: token,
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/bookings/%d", created.ID))

	err = app.writeJSON(w, http.StatusCreated, resp, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBooking(
	w http.ResponseWriter,
	r *http.Request,
	bookingId int,
	params api.GetBookingParams) {

	found, err := app.bookings.Get(r.Context(), bookingId, params.XBookingToken)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(found), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateBookingTickets(
	w http.ResponseWriter,
	r *http.Request,
	bookingId int,
	params api.UpdateBookingTicketsParams) {

	var input api.UpdateTicketsRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	updated, err := app.bookings.UpdateTickets(r.Context(), bookingId, params.XBookingToken, booking.TicketsInput{
		NormalCount:  input.NormalCount,
		ReducedCount: input.ReducedCount,
		DiscountID:   input.DiscountId,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
	})
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(updated), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateBookingSeats(
	w http.ResponseWriter,
	r *http.Request,
	bookingId int,
	params api.UpdateBookingSeatsParams) {

	var input api.SeatSelectionRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	updated, err := app.bookings.UpdateSeats(r.Context(), bookingId, params.XBookingToken, input.SeatIds)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(updated), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateBookingPayment(
	w http.ResponseWriter,
	r *http.Request,
	bookingId int,
	params api.CreateBookingPaymentParams) {

	redirectURL, err := app.bookings.InitiatePayment(r.Context(), bookingId, params.XBookingToken)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.PaymentResponse{RedirectUrl: redirectURL}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelBooking(
	w http.ResponseWriter,
	r *http.Request,
	bookingId int,
	params api.CancelBookingParams) {

	err := app.bookings.Cancel(r.Context(), bookingId, params.XBookingToken)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.MessageResponse{Message: "booking cancelled, seats released"}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingResponse(b *domain.Booking) api.BookingResponse {
	resp := api.BookingResponse{
		Id:         b.ID,
		ShowingId:  b.ShowingID,
		Status:     api.BookingResponseStatus(b.Status),
		Price:      b.Price,
		FirstName:  b.FirstName,
		LastName:   b.LastName,
		Email:      b.Email,
		DiscountId: b.RewardID,
		Tickets:    make([]api.Ticket, len(b.Tickets)),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}

	for i, t := range b.Tickets {
		resp.Tickets[i] = api.Ticket{
			SeatId: t.SeatID,
			Row:    t.Seat.Row,
			Number: t.Seat.Number,
			Type:   api.TicketType(t.Type),
			Price:  t.Price,
		}
	}

	return resp
}
