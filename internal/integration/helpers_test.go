package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/metinatakli/cinex-booking/api"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"updatedAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	t.Helper()

	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func executeSQLFile(t testing.TB, app *TestApp, path string) {
	t.Helper()

	query, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = app.DB.Exec(context.Background(), string(query))
	require.NoError(t, err, "execute %s", path)
}

func jsonBody(t testing.TB, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

// do sends a request through the router and decodes a 2xx body into dst.
func do(t testing.TB, app *TestApp, method, url string, body any, token string, dst any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = jsonBody(t, body)
	}

	headers := map[string]string{}
	if token != "" {
		headers["X-Booking-Token"] = token
	}

	req, err := prepareRequest(method, url, reader, headers)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	res := rec.Result()

	if dst != nil && res.StatusCode >= 200 && res.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(res.Body).Decode(dst))
	}

	return res
}

func createBooking(t testing.TB, app *TestApp, showingID int, seatIDs ...int) api.CreateBookingResponse {
	t.Helper()

	var created api.CreateBookingResponse

	res := do(t, app, http.MethodPost, fmt.Sprintf("/showings/%d/bookings", showingID),
		api.SeatSelectionRequest{SeatIds: seatIDs}, "", &created)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	return created
}

func fillBooking(t testing.TB, app *TestApp, created api.CreateBookingResponse, normal, reduced int) api.BookingResponse {
	t.Helper()

	var filled api.BookingResponse

	res := do(t, app, http.MethodPut, fmt.Sprintf("/bookings/%d/tickets", created.Booking.Id), api.UpdateTicketsRequest{
		NormalCount:  normal,
		ReducedCount: reduced,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
	}, created.AccessToken, &filled)
	require.Equal(t, http.StatusOK, res.StatusCode)

	return filled
}

func countRows(t testing.TB, app *TestApp, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, app.DB.QueryRow(context.Background(), query, args...).Scan(&n))

	return n
}
