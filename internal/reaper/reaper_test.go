package reaper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/metinatakli/cinex-booking/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

type fakeExpirer struct {
	mu      sync.Mutex
	expired []string
}

func (f *fakeExpirer) ExpireCheckouts(ctx context.Context, paymentIDs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.expired = append(f.expired, paymentIDs...)
}

func newTestReaper(t *testing.T, cfg Config) (*Reaper, *mocks.MockBookingRepo, *fakeExpirer, *clockwork.FakeClock) {
	t.Helper()

	bookings := new(mocks.MockBookingRepo)
	tx := new(mocks.MockTransactor)
	tx.On("WithTx", mock.Anything)

	expirer := &fakeExpirer{}
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC))

	r, err := New(cfg, bookings, tx, expirer, clock, slog.New(slog.NewTextHandler(io.Discard, nil)), noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	return r, bookings, expirer, clock
}

func released(ids ...int) []domain.ReleasedBooking {
	out := make([]domain.ReleasedBooking, len(ids))
	for i, id := range ids {
		out[i] = domain.ReleasedBooking{ID: id}
	}

	return out
}

func TestReapDeletesInBatches(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BatchSize = 2

	r, bookings, expirer, clock := newTestReaper(t, cfg)
	cutoff := clock.Now().Add(-15 * time.Minute)

	bookings.On("DeleteStale", mock.Anything, cutoff, 2).Return(released(1, 2), nil).Once()
	bookings.On("DeleteStale", mock.Anything, cutoff, 2).Return(released(3), nil).Once()

	n, err := r.Reap(t.Context(), clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	bookings.AssertNumberOfCalls(t, "DeleteStale", 2)
	assert.Empty(t, expirer.expired)
}

func TestReapExpiresOpenCheckouts(t *testing.T) {
	r, bookings, expirer, clock := newTestReaper(t, DefaultConfig())

	paymentID := "cs_test_1"
	bookings.On("DeleteStale", mock.Anything, mock.Anything, 100).Return([]domain.ReleasedBooking{
		{ID: 1, PaymentID: &paymentID},
		{ID: 2},
	}, nil).Once()

	n, err := r.Reap(t.Context(), clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"cs_test_1"}, expirer.expired)
}

func TestReapWithNothingStale(t *testing.T) {
	r, bookings, _, clock := newTestReaper(t, DefaultConfig())

	bookings.On("DeleteStale", mock.Anything, mock.Anything, 100).Return(released(), nil).Once()

	n, err := r.Reap(t.Context(), clock.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReapStopsOnError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BatchSize = 1

	r, bookings, _, clock := newTestReaper(t, cfg)

	bookings.On("DeleteStale", mock.Anything, mock.Anything, 1).Return(released(9), nil).Once()
	bookings.On("DeleteStale", mock.Anything, mock.Anything, 1).Return(nil, errors.New("connection lost")).Once()

	n, err := r.Reap(t.Context(), clock.Now())
	assert.EqualError(t, err, "connection lost")
	assert.Equal(t, 1, n)
}

func TestReapUsesGraceWindow(t *testing.T) {
	r, bookings, _, clock := newTestReaper(t, DefaultConfig())

	// a booking last touched 16 minutes ago is past the window
	updatedAt := clock.Now()
	clock.Advance(16 * time.Minute)

	bookings.On("DeleteStale", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		return updatedAt.Before(cutoff)
	}), 100).Return(released(42), nil).Once()

	n, err := r.Reap(t.Context(), clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStartRunsSweep(t *testing.T) {
	r, bookings, _, _ := newTestReaper(t, DefaultConfig())

	swept := make(chan struct{}, 1)
	bookings.On("DeleteStale", mock.Anything, mock.Anything, 100).
		Run(func(mock.Arguments) {
			select {
			case swept <- struct{}{}:
			default:
			}
		}).
		Return(released(), nil)

	require.NoError(t, r.Start())
	defer func() {
		assert.NoError(t, r.Shutdown())
	}()

	select {
	case <-swept:
	case <-time.After(5 * time.Second):
		t.Fatal("reaper did not sweep after start")
	}
}
