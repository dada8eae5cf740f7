package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/tabletennis/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound        = errors.New("match not found")
	ErrMatchSlotConflict    = errors.New("match slot already taken")
	ErrMatchPlayerInvalid   = errors.New("match player reference invalid")
	ErrMatchCategoryInvalid = errors.New("match category reference invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, m *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	// GetKnockoutMatch finds the bracket node at (round, position); it locks the row.
	GetKnockoutMatch(ctx context.Context, exec SQLExecutor, categoryID, round, position int) (*models.Match, error)
	ListByCategory(ctx context.Context, exec SQLExecutor, categoryID int, stage *models.MatchStage) ([]*models.Match, error)
	ListByGroup(ctx context.Context, exec SQLExecutor, groupID int) ([]*models.Match, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, m *models.Match) error
	UpdateParticipants(ctx context.Context, exec SQLExecutor, matchID int, player1ID, player2ID *int) error
	DeleteByCategoryAndStage(ctx context.Context, exec SQLExecutor, categoryID int, stage models.MatchStage) (int64, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `
	id, category_id, stage, round, position, player1_id, player2_id, status, sets,
	player1_sets, player2_sets, winner_id, group_id, next_position, winner_to_slot,
	player1_rating_before, player1_rating_after, player2_rating_before, player2_rating_after,
	completed_at, created_at`

func marshalSets(sets []models.SetScore) ([]byte, error) {
	if sets == nil {
		sets = []models.SetScore{}
	}
	return json.Marshal(sets)
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	setsJSON, err := marshalSets(m.Sets)
	if err != nil {
		return fmt.Errorf("failed to encode match sets: %w", err)
	}

	query := `
		INSERT INTO matches
			(category_id, stage, round, position, player1_id, player2_id, status, sets,
			 group_id, next_position, winner_to_slot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	err = r.getExecutor(exec).QueryRowContext(ctx, query,
		m.CategoryID,
		m.Stage,
		m.Round,
		m.Position,
		m.Player1ID,
		m.Player2ID,
		m.Status,
		setsJSON,
		m.GroupID,
		m.NextPosition,
		m.WinnerToSlot,
	).Scan(&m.ID, &m.CreatedAt)

	return r.handleMatchError(err)
}

func scanMatch(row rowScanner) (*models.Match, error) {
	m := &models.Match{}
	var setsJSON []byte
	err := row.Scan(
		&m.ID, &m.CategoryID, &m.Stage, &m.Round, &m.Position, &m.Player1ID, &m.Player2ID, &m.Status, &setsJSON,
		&m.Player1Sets, &m.Player2Sets, &m.WinnerID, &m.GroupID, &m.NextPosition, &m.WinnerToSlot,
		&m.Player1RatingBefore, &m.Player1RatingAfter, &m.Player2RatingBefore, &m.Player2RatingAfter,
		&m.CompletedAt, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if len(setsJSON) > 0 {
		if err := json.Unmarshal(setsJSON, &m.Sets); err != nil {
			return nil, fmt.Errorf("failed to decode sets of match %d: %w", m.ID, err)
		}
	}
	if m.Sets == nil {
		m.Sets = []models.SetScore{}
	}
	return m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return scanMatch(r.getExecutor(exec).QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1 FOR UPDATE`
	return scanMatch(r.getExecutor(exec).QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) GetKnockoutMatch(ctx context.Context, exec SQLExecutor, categoryID, round, position int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + `
		FROM matches
		WHERE category_id = $1 AND stage = $2 AND round = $3 AND position = $4
		FOR UPDATE`
	return scanMatch(r.getExecutor(exec).QueryRowContext(ctx, query, categoryID, models.StageKnockout, round, position))
}

func (r *postgresMatchRepository) ListByCategory(ctx context.Context, exec SQLExecutor, categoryID int, stage *models.MatchStage) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE category_id = $1`)

	args := []interface{}{categoryID}
	if stage != nil {
		queryBuilder.WriteString(" AND stage = $")
		queryBuilder.WriteString(strconv.Itoa(len(args) + 1))
		args = append(args, *stage)
	}
	queryBuilder.WriteString(" ORDER BY stage ASC, group_id ASC NULLS LAST, round ASC, position ASC, id ASC")

	return r.queryMatches(ctx, exec, queryBuilder.String(), args...)
}

func (r *postgresMatchRepository) ListByGroup(ctx context.Context, exec SQLExecutor, groupID int) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE group_id = $1 ORDER BY position ASC, id ASC`
	return r.queryMatches(ctx, exec, query, groupID)
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	setsJSON, err := marshalSets(m.Sets)
	if err != nil {
		return fmt.Errorf("failed to encode match sets: %w", err)
	}

	query := `
		UPDATE matches
		SET status = $1, sets = $2, player1_sets = $3, player2_sets = $4, winner_id = $5,
		    player1_rating_before = $6, player1_rating_after = $7,
		    player2_rating_before = $8, player2_rating_after = $9,
		    completed_at = $10
		WHERE id = $11`

	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		m.Status, setsJSON, m.Player1Sets, m.Player2Sets, m.WinnerID,
		m.Player1RatingBefore, m.Player1RatingAfter,
		m.Player2RatingBefore, m.Player2RatingAfter,
		m.CompletedAt, m.ID,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateParticipants(ctx context.Context, exec SQLExecutor, matchID int, player1ID, player2ID *int) error {
	query := `UPDATE matches SET player1_id = $1, player2_id = $2 WHERE id = $3`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, player1ID, player2ID, matchID)
	if err != nil {
		return fmt.Errorf("UpdateParticipants: failed to execute query for match %d: %w", matchID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteByCategoryAndStage(ctx context.Context, exec SQLExecutor, categoryID int, stage models.MatchStage) (int64, error) {
	query := `DELETE FROM matches WHERE category_id = $1 AND stage = $2`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, categoryID, stage)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s matches of category %d: %w", stage, categoryID, err)
	}
	return result.RowsAffected()
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return ErrMatchSlotConflict
		case "23503": // foreign_key_violation
			switch pqErr.Constraint {
			case "matches_category_id_fkey":
				return ErrMatchCategoryInvalid
			case "matches_player1_id_fkey", "matches_player2_id_fkey", "matches_winner_id_fkey":
				return ErrMatchPlayerInvalid
			}
		}
	}
	return err
}
