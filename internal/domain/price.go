package domain

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type TicketType string

const (
	TicketTypeNormal  TicketType = "normal"
	TicketTypeReduced TicketType = "reduced"
)

func (t TicketType) Valid() bool {
	return t == TicketTypeNormal || t == TicketTypeReduced
}

type Price struct {
	TicketType  TicketType
	BasePrice   decimal.Decimal
	MinPrice    decimal.Decimal
	MaxPrice    decimal.Decimal
	Description string
}

func (p Price) Validate() error {
	if p.MinPrice.GreaterThan(p.BasePrice) || p.BasePrice.GreaterThan(p.MaxPrice) {
		return fmt.Errorf("%w: %s requires min <= base <= max", ErrInvalidPriceTable, p.TicketType)
	}

	return nil
}

type PriceTable map[TicketType]Price

func (t PriceTable) Get(ticketType TicketType) (Price, error) {
	price, ok := t[ticketType]
	if !ok {
		return Price{}, fmt.Errorf("%w: no price for ticket type %q", ErrInvalidPriceTable, ticketType)
	}

	return price, nil
}

type PriceRepository interface {
	GetAll(ctx context.Context) (PriceTable, error)
}
