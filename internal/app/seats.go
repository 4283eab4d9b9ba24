package app

import (
	"net/http"

	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/booking"
	"github.com/shopspring/decimal"
)

func (app *Application) GetShowingSeats(w http.ResponseWriter, r *http.Request, showingId int) {
	seatMap, err := app.bookings.SeatMap(r.Context(), showingId)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toSeatMapResponse(seatMap), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatMapResponse(seatMap *booking.SeatMap) api.SeatMapResponse {
	resp := api.SeatMapResponse{
		ShowingId: seatMap.Showing.ID,
		HallId:    seatMap.Showing.HallID,
		StartTime: seatMap.Showing.StartTime,
		Format:    string(seatMap.Showing.Format),
		Prices:    make(map[string]decimal.Decimal, len(seatMap.Quotes)),
		Seats:     make([]api.Seat, len(seatMap.Seats)),
	}

	for ticketType, quote := range seatMap.Quotes {
		resp.Prices[string(ticketType)] = quote
	}

	// seats arrive ordered by row and column
	for i, s := range seatMap.Seats {
		resp.Seats[i] = api.Seat{
			Id:        s.Seat.ID,
			Row:       s.Seat.Row,
			Column:    s.Seat.Col,
			Number:    s.Seat.Number,
			Class:     api.SeatClass(s.Seat.Class),
			Available: s.Available,
		}
	}

	return resp
}
