package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

type PostgresPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPaymentRepository(db *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		db: db,
	}
}

func (p *PostgresPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			booking_id,
			provider_payment_id,
			idempotency_key,
			amount,
			currency,
			status
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (provider_payment_id) DO UPDATE
			SET provider_payment_id = EXCLUDED.provider_payment_id
		RETURNING id, created_at
	`

	return conn(ctx, p.db).QueryRow(
		ctx,
		query,
		payment.BookingID,
		payment.ProviderPaymentID,
		payment.IdempotencyKey,
		payment.Amount,
		payment.Currency,
		payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt)
}

func (p *PostgresPaymentRepository) UpdateStatus(
	ctx context.Context,
	providerPaymentID string,
	status domain.PaymentStatus,
	errMsg string,
	at time.Time) error {

	query := `
		UPDATE payments
		SET
			status = $1,
			error_message = NULLIF($2, ''),
			payment_date = CASE WHEN $1 = 'completed' THEN $3 ELSE payment_date END,
			updated_at = $3
		WHERE provider_payment_id = $4
	`

	_, err := conn(ctx, p.db).Exec(ctx, query, status, errMsg, at, providerPaymentID)
	return err
}

func (p *PostgresPaymentRepository) MarkRefundRequired(
	ctx context.Context,
	status domain.ProviderStatus,
	reason string,
	at time.Time) error {

	// the booking may be gone, in which case the row keeps no reference
	query := `
		INSERT INTO payments (
			booking_id,
			provider_payment_id,
			idempotency_key,
			amount,
			currency,
			status,
			error_message,
			payment_date,
			updated_at
		)
		VALUES ((SELECT id FROM bookings WHERE id = $1), $2, '', $3, $4, 'refund_required', $5, $6, $6)
		ON CONFLICT (provider_payment_id) DO UPDATE
			SET
				status = 'refund_required',
				amount = EXCLUDED.amount,
				error_message = EXCLUDED.error_message,
				payment_date = EXCLUDED.payment_date,
				updated_at = EXCLUDED.updated_at
	`

	_, err := conn(ctx, p.db).Exec(
		ctx,
		query,
		status.BookingID,
		status.PaymentID,
		status.Amount,
		strings.ToLower(status.Currency),
		reason,
		at,
	)

	return err
}
