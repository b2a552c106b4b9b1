package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prohmpiriya/courtside-tickets/internal/domain"
)

// PostgresGameRepository implements GameRepository using PostgreSQL
type PostgresGameRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresGameRepository creates a new PostgresGameRepository
func NewPostgresGameRepository(pool *pgxpool.Pool) *PostgresGameRepository {
	return &PostgresGameRepository{pool: pool}
}

// List lists games ordered by date
func (r *PostgresGameRepository) List(ctx context.Context) ([]*domain.Game, error) {
	query := `
		SELECT id, to_char(game_date, 'YYYY-MM-DD'), opponent, location, game_time, created_at
		FROM games
		ORDER BY game_date, game_time
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]*domain.Game, 0)
	for rows.Next() {
		g := &domain.Game{}
		if err := rows.Scan(&g.ID, &g.Date, &g.Opponent, &g.Location, &g.Time, &g.CreatedAt); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}
