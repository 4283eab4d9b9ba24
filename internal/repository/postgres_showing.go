package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

type PostgresShowingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowingRepository(db *pgxpool.Pool) *PostgresShowingRepository {
	return &PostgresShowingRepository{
		db: db,
	}
}

func (p *PostgresShowingRepository) GetById(ctx context.Context, id int) (*domain.Showing, error) {
	query := `
		SELECT
			sh.id,
			sh.hall_id,
			sh.movie_id,
			sh.start_time,
			sh.end_time,
			sh.language,
			sh.subtitles,
			sh.format_type,
			m.duration,
			(SELECT COUNT(*) FROM seats se WHERE se.hall_id = sh.hall_id)
		FROM showings sh
		JOIN movies m ON sh.movie_id = m.id
		WHERE sh.id = $1
	`

	var showing domain.Showing

	err := conn(ctx, p.db).QueryRow(ctx, query, id).Scan(
		&showing.ID,
		&showing.HallID,
		&showing.MovieID,
		&showing.StartTime,
		&showing.EndTime,
		&showing.Language,
		&showing.Subtitles,
		&showing.Format,
		&showing.MovieDurationSeconds,
		&showing.HallCapacity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShowingNotFound
		}

		return nil, err
	}

	return &showing, nil
}
