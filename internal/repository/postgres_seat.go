package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) GetSeatsByHall(ctx context.Context, hallID int) ([]domain.Seat, error) {
	query := `
		SELECT id, hall_id, seat_row, seat_col, seat_number, seat_class
		FROM seats
		WHERE hall_id = $1
		ORDER BY seat_row, seat_col
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(
			&seat.ID,
			&seat.HallID,
			&seat.Row,
			&seat.Col,
			&seat.Number,
			&seat.Class,
		)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresSeatRepository) GetOccupiedSeatIds(
	ctx context.Context,
	showingID,
	excludeBookingID int,
	holdCutoff time.Time) ([]int, error) {

	query := `
		SELECT t.seat_id
		FROM tickets t
		JOIN bookings b ON t.booking_id = b.id
		WHERE t.showing_id = $1
			AND t.booking_id <> $2
			AND (b.status = 'paid' OR b.updated_at >= $3)
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, showingID, excludeBookingID, holdCutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seatIds := make([]int, 0)

	for rows.Next() {
		var seatId int

		if err := rows.Scan(&seatId); err != nil {
			return nil, err
		}

		seatIds = append(seatIds, seatId)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seatIds, nil
}
