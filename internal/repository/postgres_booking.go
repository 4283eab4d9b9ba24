package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

const bookingColumns = `
	id,
	showing_id,
	user_id,
	first_name,
	last_name,
	email,
	price,
	status,
	payment_id,
	token_hash,
	reward_id,
	version,
	created_at,
	updated_at
`

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	q := conn(ctx, p.db)

	query := `
		INSERT INTO bookings (
			showing_id,
			user_id,
			price,
			status,
			token_hash,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, version
	`

	err := q.QueryRow(
		ctx,
		query,
		booking.ShowingID,
		booking.UserID,
		booking.Price,
		booking.Status,
		booking.TokenHash,
		booking.CreatedAt,
	).Scan(&booking.ID, &booking.Version)
	if err != nil {
		return err
	}

	booking.UpdatedAt = booking.CreatedAt

	return p.insertTickets(ctx, q, booking)
}

func (p *PostgresBookingRepository) insertTickets(ctx context.Context, q querier, booking *domain.Booking) error {
	rows := make([][]any, 0, len(booking.Tickets))
	for _, ticket := range booking.Tickets {
		rows = append(rows, []any{
			booking.ID,
			booking.ShowingID,
			ticket.SeatID,
			ticket.Price,
			ticket.Type,
		})
	}

	_, err := q.CopyFrom(
		ctx,
		pgx.Identifier{"tickets"},
		[]string{"booking_id", "showing_id", "seat_id", "price", "ticket_type"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		if isUniqueViolation(err, ticketsShowingSeatConstraint, ticketsBookingSeatConstraint) {
			return domain.ErrSeatConflict
		}

		return err
	}

	tickets, err := p.retrieveTickets(ctx, q, booking.ID)
	if err != nil {
		return err
	}

	booking.Tickets = tickets

	return nil
}

func (p *PostgresBookingRepository) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	return p.getBooking(ctx, query, id)
}

func (p *PostgresBookingRepository) GetByIdForUpdate(ctx context.Context, id int) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	return p.getBooking(ctx, query, id)
}

func (p *PostgresBookingRepository) GetByPaymentIdForUpdate(
	ctx context.Context,
	paymentID string) (*domain.Booking, error) {

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE payment_id = $1 FOR UPDATE`

	return p.getBooking(ctx, query, paymentID)
}

func (p *PostgresBookingRepository) getBooking(ctx context.Context, query string, arg any) (*domain.Booking, error) {
	q := conn(ctx, p.db)

	var booking domain.Booking

	err := q.QueryRow(ctx, query, arg).Scan(
		&booking.ID,
		&booking.ShowingID,
		&booking.UserID,
		&booking.FirstName,
		&booking.LastName,
		&booking.Email,
		&booking.Price,
		&booking.Status,
		&booking.PaymentID,
		&booking.TokenHash,
		&booking.RewardID,
		&booking.Version,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	tickets, err := p.retrieveTickets(ctx, q, booking.ID)
	if err != nil {
		return nil, err
	}

	booking.Tickets = tickets

	return &booking, nil
}

func (p *PostgresBookingRepository) retrieveTickets(
	ctx context.Context,
	q querier,
	bookingId int) ([]domain.Ticket, error) {

	query := `
		SELECT
			t.id,
			t.booking_id,
			t.showing_id,
			t.seat_id,
			t.price,
			t.ticket_type,
			s.hall_id,
			s.seat_row,
			s.seat_col,
			s.seat_number,
			s.seat_class
		FROM tickets t
		JOIN seats s ON t.seat_id = s.id
		WHERE t.booking_id = $1
		ORDER BY s.seat_row, s.seat_col
	`

	rows, err := q.Query(ctx, query, bookingId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)

	for rows.Next() {
		var ticket domain.Ticket

		err := rows.Scan(
			&ticket.ID,
			&ticket.BookingID,
			&ticket.ShowingID,
			&ticket.SeatID,
			&ticket.Price,
			&ticket.Type,
			&ticket.Seat.HallID,
			&ticket.Seat.Row,
			&ticket.Seat.Col,
			&ticket.Seat.Number,
			&ticket.Seat.Class,
		)
		if err != nil {
			return nil, err
		}

		ticket.Seat.ID = ticket.SeatID
		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (p *PostgresBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET
			first_name = $1,
			last_name = $2,
			email = $3,
			price = $4,
			status = $5,
			payment_id = $6,
			reward_id = $7,
			updated_at = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING version
	`

	err := conn(ctx, p.db).QueryRow(
		ctx,
		query,
		booking.FirstName,
		booking.LastName,
		booking.Email,
		booking.Price,
		booking.Status,
		booking.PaymentID,
		booking.RewardID,
		booking.UpdatedAt,
		booking.ID,
		booking.Version,
	).Scan(&booking.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEditConflict
		}

		return err
	}

	return nil
}

func (p *PostgresBookingRepository) SetPaymentId(ctx context.Context, booking *domain.Booking, paymentID string) error {
	query := `
		UPDATE bookings
		SET payment_id = $1, updated_at = $2
		WHERE id = $3 AND version = $4
	`

	tag, err := conn(ctx, p.db).Exec(ctx, query, paymentID, booking.UpdatedAt, booking.ID, booking.Version)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEditConflict
	}

	booking.PaymentID = &paymentID

	return nil
}

func (p *PostgresBookingRepository) UpdateTickets(ctx context.Context, tickets []domain.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	query := `
		UPDATE tickets
		SET price = $1, ticket_type = $2
		WHERE booking_id = $3 AND seat_id = $4
	`

	batch := &pgx.Batch{}
	for _, ticket := range tickets {
		batch.Queue(query, ticket.Price, ticket.Type, ticket.BookingID, ticket.SeatID)
	}

	results := conn(ctx, p.db).SendBatch(ctx, batch)

	for range tickets {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return err
		}

		if tag.RowsAffected() == 0 {
			results.Close()
			return domain.ErrRecordNotFound
		}
	}

	return results.Close()
}

func (p *PostgresBookingRepository) ReplaceTickets(ctx context.Context, booking *domain.Booking) error {
	q := conn(ctx, p.db)

	_, err := q.Exec(ctx, `DELETE FROM tickets WHERE booking_id = $1`, booking.ID)
	if err != nil {
		return err
	}

	return p.insertTickets(ctx, q, booking)
}

func (p *PostgresBookingRepository) Delete(ctx context.Context, id int) error {
	tag, err := conn(ctx, p.db).Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresBookingRepository) ReleaseExpiredHolds(
	ctx context.Context,
	showingID,
	excludeBookingID int,
	seatIDs []int,
	cutoff time.Time) ([]domain.ReleasedBooking, error) {

	query := `
		WITH released AS (
			DELETE FROM bookings b
			WHERE b.showing_id = $1
				AND b.id <> $2
				AND b.status <> 'paid'
				AND b.updated_at < $3
				AND EXISTS (
					SELECT 1 FROM tickets t
					WHERE t.booking_id = b.id AND t.seat_id = ANY($4)
				)
			RETURNING b.id, b.payment_id, b.reward_id
		), ` + restoreRewardsCTE + `
		SELECT id, payment_id FROM released
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, showingID, excludeBookingID, cutoff, seatIDs)
	if err != nil {
		return nil, err
	}

	return scanReleased(rows)
}

// restoreRewardsCTE hands the rewards of the bookings deleted in the
// "released" CTE back to their owners.
const restoreRewardsCTE = `
		restored AS (
			UPDATE user_rewards
			SET status = 'active', used_at = NULL
			WHERE status = 'used' AND id IN (SELECT reward_id FROM released WHERE reward_id IS NOT NULL)
		)`

func (p *PostgresBookingRepository) DeleteStale(
	ctx context.Context,
	cutoff time.Time,
	limit int) ([]domain.ReleasedBooking, error) {

	// tickets go with their booking through ON DELETE CASCADE
	query := `
		WITH released AS (
			DELETE FROM bookings
			WHERE id IN (
				SELECT id FROM bookings
				WHERE status <> 'paid' AND updated_at < $1
				ORDER BY updated_at
				LIMIT $2
				FOR UPDATE SKIP LOCKED
			)
			RETURNING id, payment_id, reward_id
		), ` + restoreRewardsCTE + `
		SELECT id, payment_id FROM released
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}

	return scanReleased(rows)
}

func scanReleased(rows pgx.Rows) ([]domain.ReleasedBooking, error) {
	defer rows.Close()

	released := make([]domain.ReleasedBooking, 0)

	for rows.Next() {
		var b domain.ReleasedBooking

		if err := rows.Scan(&b.ID, &b.PaymentID); err != nil {
			return nil, err
		}

		released = append(released, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return released, nil
}
