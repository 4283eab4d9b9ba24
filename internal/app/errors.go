package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/domain"
	appvalidator "github.com/metinatakli/cinex-booking/internal/validator"
)

const (
	ErrInternalServer   = "The server encountered a problem and could not process your request"
	ErrNotFound         = "The requested resource not found"
	ErrMethodNotAllowed = "The method is not supported for this resource"
	ErrEditConflict     = "unable to update the booking due to an edit conflict, please try again"
	ErrValidation       = "One or more fields are invalid"
)

func (app *Application) logError(r *http.Request, err error) {
	app.contextGetLogger(r).Error(err.Error())
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) parameterErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.badRequestResponse(w, r, err)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.badRequestResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: make([]api.ValidationError, len(validationErrors)),
	}

	for i, fe := range validationErrors {
		resp.ValidationErrors[i] = api.ValidationError{
			Field: fe.Field(),
			Issue: appvalidator.ValidationMessage(fe),
		}
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// bookingErrorResponse maps errors returned by the booking service to HTTP
// responses. Anything not recognised is a server error.
func (app *Application) bookingErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logger := app.contextGetLogger(r)

	var conflict *domain.SeatConflictError

	switch {
	case errors.As(err, &conflict):
		logger.Warn("seat conflict", "error", err)
		app.errorResponse(w, r, http.StatusConflict, conflict.Error())
	case errors.Is(err, domain.ErrSeatConflict):
		logger.Warn("seat conflict", "error", err)
		app.errorResponse(w, r, http.StatusConflict, domain.ErrSeatConflict.Error())
	case errors.Is(err, domain.ErrEditConflict):
		app.errorResponse(w, r, http.StatusConflict, ErrEditConflict)
	case errors.Is(err, domain.ErrCannotCancelPaid):
		app.errorResponse(w, r, http.StatusConflict, domain.ErrCannotCancelPaid.Error())
	case errors.Is(err, domain.ErrForbidden):
		logger.Warn("booking token mismatch")
		app.errorResponse(w, r, http.StatusForbidden, domain.ErrForbidden.Error())
	case errors.Is(err, domain.ErrShowingNotFound):
		app.errorResponse(w, r, http.StatusNotFound, domain.ErrShowingNotFound.Error())
	case errors.Is(err, domain.ErrSeatNotFound):
		app.errorResponse(w, r, http.StatusNotFound, domain.ErrSeatNotFound.Error())
	case domain.IsNotFound(err):
		app.notFoundResponse(w, r)
	case domain.IsInvalid(err):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, invalidMessage(err))
	case errors.Is(err, domain.ErrPaymentGateway):
		logger.Error("payment gateway failure", "error", err)
		app.errorResponse(w, r, http.StatusBadGateway, domain.ErrPaymentGateway.Error())
	case errors.Is(err, domain.ErrPaymentMismatch):
		logger.Error("payment does not match booking", "error", err)
		app.errorResponse(w, r, http.StatusUnprocessableEntity, domain.ErrPaymentMismatch.Error())
	default:
		app.serverErrorResponse(w, r, err)
	}
}

var invalidErrors = []error{
	domain.ErrShowingInPast,
	domain.ErrNoSeatsSelected,
	domain.ErrTicketCountMismatch,
	domain.ErrInvalidDiscount,
	domain.ErrBookingPaid,
	domain.ErrBookingNotFilled,
}

// invalidMessage returns the message of the sentinel the error wraps, keeping
// wrapped context out of the response.
func invalidMessage(err error) string {
	for _, target := range invalidErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}

	return err.Error()
}
