package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/tabletennis/models"
)

// RatingHistoryRepository is an append-only ledger; records are never updated.
type RatingHistoryRepository interface {
	Append(ctx context.Context, exec SQLExecutor, rec *models.RatingHistoryRecord) error
	// ListByPlayer returns the newest records first. limit <= 0 means no limit.
	ListByPlayer(ctx context.Context, exec SQLExecutor, playerID int, limit int) ([]*models.RatingHistoryRecord, error)
}

type postgresRatingHistoryRepository struct {
	db *sql.DB
}

func NewPostgresRatingHistoryRepository(db *sql.DB) RatingHistoryRepository {
	return &postgresRatingHistoryRepository{db: db}
}

func (r *postgresRatingHistoryRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRatingHistoryRepository) Append(ctx context.Context, exec SQLExecutor, rec *models.RatingHistoryRecord) error {
	query := `
		INSERT INTO rating_history
			(player_id, match_id, category_id, opponent_id, rating_before, rating_after, delta)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		rec.PlayerID, rec.MatchID, rec.CategoryID, rec.OpponentID,
		rec.RatingBefore, rec.RatingAfter, rec.Delta,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append rating history for player %d: %w", rec.PlayerID, err)
	}
	return nil
}

func (r *postgresRatingHistoryRepository) ListByPlayer(ctx context.Context, exec SQLExecutor, playerID int, limit int) ([]*models.RatingHistoryRecord, error) {
	query := `
		SELECT id, player_id, match_id, category_id, opponent_id, rating_before, rating_after, delta, created_at
		FROM rating_history
		WHERE player_id = $1
		ORDER BY created_at DESC, id DESC`
	args := []interface{}{playerID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rating history for player %d: %w", playerID, err)
	}
	defer rows.Close()

	records := make([]*models.RatingHistoryRecord, 0)
	for rows.Next() {
		rec := &models.RatingHistoryRecord{}
		if err := rows.Scan(
			&rec.ID, &rec.PlayerID, &rec.MatchID, &rec.CategoryID, &rec.OpponentID,
			&rec.RatingBefore, &rec.RatingAfter, &rec.Delta, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rating history row: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rating history rows iteration: %w", err)
	}
	return records, nil
}
