package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

type PostgresPriceRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPriceRepository(db *pgxpool.Pool) *PostgresPriceRepository {
	return &PostgresPriceRepository{
		db: db,
	}
}

func (p *PostgresPriceRepository) GetAll(ctx context.Context) (domain.PriceTable, error) {
	query := `
		SELECT ticket_type, base_price, min_price, max_price, description
		FROM prices
	`

	rows, err := conn(ctx, p.db).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make(domain.PriceTable)

	for rows.Next() {
		var price domain.Price

		err := rows.Scan(
			&price.TicketType,
			&price.BasePrice,
			&price.MinPrice,
			&price.MaxPrice,
			&price.Description,
		)
		if err != nil {
			return nil, err
		}

		prices[price.TicketType] = price
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return prices, nil
}
