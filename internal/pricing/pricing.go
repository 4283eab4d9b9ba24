// Package pricing computes per-ticket prices from the configured price table,
// the showing's occupancy and the time left before it starts.
package pricing

import (
	"time"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/shopspring/decimal"
)

type Config struct {
	// OccupancyPremium is the relative surcharge applied at full occupancy.
	// It grows linearly from zero at an empty hall.
	OccupancyPremium decimal.Decimal
	// LastMinutePremium is the relative surcharge applied at showing start.
	// It grows linearly over LastMinuteWindow.
	LastMinutePremium decimal.Decimal
	LastMinuteWindow  time.Duration
	// FormatSurcharge is an absolute amount added per ticket for a format.
	FormatSurcharge map[domain.FormatType]decimal.Decimal
}

func DefaultConfig() Config {
	return Config{
		OccupancyPremium:  decimal.RequireFromString("0.30"),
		LastMinutePremium: decimal.RequireFromString("0.20"),
		LastMinuteWindow:  24 * time.Hour,
		FormatSurcharge: map[domain.FormatType]decimal.Decimal{
			domain.Format3D: decimal.RequireFromString("2.00"),
		},
	}
}

type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Price returns the amount for one ticket. The adjusted amount is clamped to
// [MinPrice, MaxPrice] and then rounded to cents. Occupancy outside [0, 1] is
// treated as its nearest bound. A negative timeToShowing means the showing has
// started and yields ErrShowingInPast.
func (e *Engine) Price(
	price domain.Price,
	showing *domain.Showing,
	occupancy float64,
	timeToShowing time.Duration) (decimal.Decimal, error) {

	if err := price.Validate(); err != nil {
		return decimal.Zero, err
	}

	if timeToShowing < 0 {
		return decimal.Zero, domain.ErrShowingInPast
	}

	factor := decimal.NewFromInt(1).
		Add(e.occupancyAdjustment(occupancy)).
		Add(e.lastMinuteAdjustment(timeToShowing))

	amount := price.BasePrice.Mul(factor)

	if showing != nil {
		if surcharge, ok := e.cfg.FormatSurcharge[showing.Format]; ok {
			amount = amount.Add(surcharge)
		}
	}

	amount = decimal.Max(price.MinPrice, decimal.Min(price.MaxPrice, amount))

	return amount.Round(2), nil
}

func (e *Engine) occupancyAdjustment(occupancy float64) decimal.Decimal {
	switch {
	case occupancy <= 0:
		return decimal.Zero
	case occupancy >= 1:
		return e.cfg.OccupancyPremium
	}

	return e.cfg.OccupancyPremium.Mul(decimal.NewFromFloat(occupancy))
}

func (e *Engine) lastMinuteAdjustment(timeToShowing time.Duration) decimal.Decimal {
	window := e.cfg.LastMinuteWindow
	if window <= 0 || timeToShowing >= window {
		return decimal.Zero
	}

	remaining := decimal.NewFromInt(int64(window - timeToShowing)).
		Div(decimal.NewFromInt(int64(window)))

	return e.cfg.LastMinutePremium.Mul(remaining)
}

// OccupancyRatio is booked / capacity. A hall without capacity counts as full.
func OccupancyRatio(booked, capacity int) float64 {
	if capacity <= 0 {
		return 1
	}

	ratio := float64(booked) / float64(capacity)
	if ratio > 1 {
		return 1
	}

	return ratio
}

// Bounds returns the lowest and highest total a set of tickets may have.
func Bounds(prices domain.PriceTable, types []domain.TicketType) (lower, upper decimal.Decimal, err error) {
	lower, upper = decimal.Zero, decimal.Zero

	for _, t := range types {
		price, err := prices.Get(t)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}

		lower = lower.Add(price.MinPrice)
		upper = upper.Add(price.MaxPrice)
	}

	return lower, upper, nil
}
