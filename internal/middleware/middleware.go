package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/jsonutil"
)

func RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				resp := api.ErrorResponse{
					Message:   "The server encountered a problem and could not process your request",
					RequestId: middleware.GetReqID(r.Context()),
					Timestamp: time.Now(),
				}

				jsonutil.WriteJSON(w, http.StatusInternalServerError, resp, http.Header{
					"Connection": []string{"close"},
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "The requested resource not found")
}

func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "The method is not supported for this resource")
}

// ValidateRequest rejects requests that do not conform to the OpenAPI
// document before they reach a handler. Paths the document does not describe
// are passed through.
func ValidateRequest(swagger *openapi3.T) (func(http.Handler) http.Handler, error) {
	// servers are matched against the Host header otherwise
	swagger.Servers = nil

	router, err := gorillamux.NewRouter(swagger)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		MultiError:         false,
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
					next.ServeHTTP(w, r)
					return
				}

				writeError(w, r, http.StatusBadRequest, err.Error())
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}

			err = openapi3filter.ValidateRequest(r.Context(), input)
			if err != nil {
				writeError(w, r, validationStatus(err), validationMessage(err))
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

func validationStatus(err error) int {
	var requestErr *openapi3filter.RequestError
	if errors.As(err, &requestErr) && requestErr.RequestBody != nil {
		return http.StatusUnprocessableEntity
	}

	return http.StatusBadRequest
}

func validationMessage(err error) string {
	var requestErr *openapi3filter.RequestError
	if !errors.As(err, &requestErr) {
		return err.Error()
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(requestErr.Err, &schemaErr) {
		field := strings.Join(schemaErr.JSONPointer(), ".")
		if field == "" {
			return schemaErr.Reason
		}

		return field + ": " + schemaErr.Reason
	}

	if requestErr.Parameter != nil {
		return "parameter " + requestErr.Parameter.Name + ": " + requestErr.Reason
	}

	return requestErr.Error()
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	jsonutil.WriteJSON(w, status, resp, nil)
}
