package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tabletennis/models"
	"github.com/lib/pq"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrRegistrationConflict = errors.New("player already registered for this category")
	ErrRegistrationInvalid  = errors.New("registration references unknown player or category")
)

type RegistrationRepository interface {
	Add(ctx context.Context, exec SQLExecutor, reg *models.Registration) error
	Remove(ctx context.Context, exec SQLExecutor, categoryID, playerID int) error
	// ListByCategory returns registrations in the order they were made.
	ListByCategory(ctx context.Context, exec SQLExecutor, categoryID int) ([]models.Registration, error)
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRegistrationRepository) Add(ctx context.Context, exec SQLExecutor, reg *models.Registration) error {
	query := `
		INSERT INTO category_registrations (category_id, player_id)
		VALUES ($1, $2)
		RETURNING registered_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query, reg.CategoryID, reg.PlayerID).Scan(&reg.RegisteredAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrRegistrationConflict
			case "23503": // foreign_key_violation
				return ErrRegistrationInvalid
			}
		}
		return fmt.Errorf("failed to add registration: %w", err)
	}
	return nil
}

func (r *postgresRegistrationRepository) Remove(ctx context.Context, exec SQLExecutor, categoryID, playerID int) error {
	query := `DELETE FROM category_registrations WHERE category_id = $1 AND player_id = $2`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, categoryID, playerID)
	if err != nil {
		return fmt.Errorf("failed to remove registration: %w", err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) ListByCategory(ctx context.Context, exec SQLExecutor, categoryID int) ([]models.Registration, error) {
	query := `
		SELECT category_id, player_id, registered_at
		FROM category_registrations
		WHERE category_id = $1
		ORDER BY registered_at ASC, player_id ASC`

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for category %d: %w", categoryID, err)
	}
	defer rows.Close()

	regs := make([]models.Registration, 0)
	for rows.Next() {
		var reg models.Registration
		if err := rows.Scan(&reg.CategoryID, &reg.PlayerID, &reg.RegisteredAt); err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		regs = append(regs, reg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during registration rows iteration: %w", err)
	}
	return regs, nil
}
