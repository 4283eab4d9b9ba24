package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBookingPaid(t *testing.T) {
	m := NewSMTPMailer("localhost", 2525, "", "", "CineX <no-reply@cinex.example>")

	msg, err := m.render("ada@example.com", "booking_paid.tmpl", map[string]any{
		"BookingID": 42,
		"FirstName": "Ada",
		"StartTime": "Mar 4, 2026 18:00",
		"Seats":     []string{"row 1, seat 1", "row 1, seat 2"},
		"Total":     "17.00 USD",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ada@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Your CineX booking #42 is confirmed"}, msg.GetHeader("Subject"))

	var body strings.Builder
	_, err = msg.WriteTo(&body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "row 1, seat 2")
	assert.Contains(t, body.String(), "17.00 USD")
}

func TestRenderUnknownTemplate(t *testing.T) {
	m := NewSMTPMailer("localhost", 2525, "", "", "no-reply@cinex.example")

	_, err := m.render("ada@example.com", "missing.tmpl", nil)
	assert.Error(t, err)
}

