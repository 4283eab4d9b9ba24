package jsonutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	SeatIds []int `json:"seatIds"`
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid body", body: `{"seatIds":[1,2]}`},
		{name: "empty body", body: ``, wantErr: "body must not be empty"},
		{name: "malformed", body: `{"seatIds":[1,}`, wantErr: "body contains badly-formed JSON"},
		{name: "wrong type", body: `{"seatIds":"1"}`, wantErr: `body contains incorrect JSON type for field "seatIds"`},
		{name: "unknown field", body: `{"seats":[1]}`, wantErr: `body contains unknown key "seats"`},
		{name: "two values", body: `{"seatIds":[1]}{}`, wantErr: "body must only contain a single JSON value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var dst payload
			err := ReadJSON(w, r, &dst)

			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, []int{1, 2}, dst.SeatIds)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteJSON(w, http.StatusCreated, payload{SeatIds: []int{3}}, http.Header{"Location": []string{"/bookings/1"}})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "/bookings/1", w.Header().Get("Location"))
	assert.Equal(t, "{\"seatIds\":[3]}\n", w.Body.String())
}
