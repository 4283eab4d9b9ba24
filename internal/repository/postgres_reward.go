package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

type PostgresRewardRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRewardRepository(db *pgxpool.Pool) *PostgresRewardRepository {
	return &PostgresRewardRepository{
		db: db,
	}
}

func (p *PostgresRewardRepository) GetUserReward(
	ctx context.Context,
	id,
	userID int) (*domain.UserReward, error) {

	query := `
		SELECT ur.id, ur.user_id, r.name, r.kind, r.value, ur.status, ur.used_at
		FROM user_rewards ur
		JOIN rewards r ON ur.reward_id = r.id
		WHERE ur.id = $1 AND ur.user_id = $2
	`

	var reward domain.UserReward

	err := conn(ctx, p.db).QueryRow(ctx, query, id, userID).Scan(
		&reward.ID,
		&reward.UserID,
		&reward.Name,
		&reward.Kind,
		&reward.Value,
		&reward.Status,
		&reward.UsedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &reward, nil
}

func (p *PostgresRewardRepository) MarkUsed(ctx context.Context, id int, usedAt time.Time) error {
	query := `
		UPDATE user_rewards
		SET status = 'used', used_at = $1
		WHERE id = $2 AND status = 'active'
	`

	tag, err := conn(ctx, p.db).Exec(ctx, query, usedAt, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEditConflict
	}

	return nil
}

func (p *PostgresRewardRepository) Restore(ctx context.Context, id int) error {
	query := `
		UPDATE user_rewards
		SET status = 'active', used_at = NULL
		WHERE id = $1 AND status = 'used'
	`

	_, err := conn(ctx, p.db).Exec(ctx, query, id)
	return err
}

func (p *PostgresRewardRepository) AppendPoints(ctx context.Context, entry *domain.PointsEntry) error {
	q := conn(ctx, p.db)

	query := `
		INSERT INTO points_history (user_id, booking_id, user_reward_id, points, reason)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (booking_id) DO NOTHING
		RETURNING id, created_at
	`

	err := q.QueryRow(
		ctx,
		query,
		entry.UserID,
		entry.BookingID,
		entry.UserRewardID,
		entry.Points,
		entry.Reason,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		// a booking is credited at most once
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEditConflict
		}

		return err
	}

	_, err = q.Exec(ctx, `UPDATE users SET points = points + $1 WHERE id = $2`, entry.Points, entry.UserID)
	return err
}
