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
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameConflict = errors.New("category name already taken")
)

type ListCategoriesFilter struct {
	Status *models.CategoryStatus
	Format *models.CategoryFormat
	Limit  int
	Offset int
}

type CategoryRepository interface {
	Create(ctx context.Context, exec SQLExecutor, c *models.Category) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Category, error)
	// GetByIDForUpdate locks the category row for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Category, error)
	List(ctx context.Context, exec SQLExecutor, filter ListCategoriesFilter) ([]*models.Category, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.CategoryStatus) error
	UpdateWinner(ctx context.Context, exec SQLExecutor, id int, winnerPlayerID *int) error
	UpdateGroupConfig(ctx context.Context, exec SQLExecutor, id int, groupSize, advancingPerGroup int) error
}

type postgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategoryRepository(db *sql.DB) CategoryRepository {
	return &postgresCategoryRepository{db: db}
}

func (r *postgresCategoryRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const categoryColumns = `
	id, name, format, status, gender, age_min, age_max, rating_min, rating_max,
	capacity, k_factor, group_size, advancing_per_group, start_date, winner_player_id, created_at`

func (r *postgresCategoryRepository) Create(ctx context.Context, exec SQLExecutor, c *models.Category) error {
	query := `
		INSERT INTO categories (
			name, format, status, gender, age_min, age_max, rating_min, rating_max,
			capacity, k_factor, group_size, advancing_per_group, start_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		c.Name, c.Format, c.Status, c.Gender, c.AgeMin, c.AgeMax, c.RatingMin, c.RatingMax,
		c.Capacity, c.KFactor, c.GroupSize, c.AdvancingPerGroup, c.StartDate,
	).Scan(&c.ID, &c.CreatedAt)

	return r.handleCategoryError(err)
}

func (r *postgresCategoryRepository) scanCategory(row rowScanner) (*models.Category, error) {
	c := &models.Category{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Format, &c.Status, &c.Gender, &c.AgeMin, &c.AgeMax, &c.RatingMin, &c.RatingMax,
		&c.Capacity, &c.KFactor, &c.GroupSize, &c.AdvancingPerGroup, &c.StartDate, &c.WinnerPlayerID, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresCategoryRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return r.scanCategory(r.getExecutor(exec).QueryRowContext(ctx, query, id))
}

func (r *postgresCategoryRepository) GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 FOR UPDATE`
	return r.scanCategory(r.getExecutor(exec).QueryRowContext(ctx, query, id))
}

func (r *postgresCategoryRepository) List(ctx context.Context, exec SQLExecutor, filter ListCategoriesFilter) ([]*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Format != nil {
		query += fmt.Sprintf(" AND format = $%d", argID)
		args = append(args, *filter.Format)
		argID++
	}

	query += " ORDER BY start_date ASC, id ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)
	for rows.Next() {
		c, scanErr := r.scanCategory(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", scanErr)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during category rows iteration: %w", err)
	}
	return categories, nil
}

func (r *postgresCategoryRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.CategoryStatus) error {
	query := `UPDATE categories SET status = $1 WHERE id = $2`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update category status: %w", err)
	}
	return checkAffectedRows(result, ErrCategoryNotFound)
}

func (r *postgresCategoryRepository) UpdateWinner(ctx context.Context, exec SQLExecutor, id int, winnerPlayerID *int) error {
	query := `UPDATE categories SET winner_player_id = $1 WHERE id = $2`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, winnerPlayerID, id)
	if err != nil {
		return fmt.Errorf("failed to update category winner: %w", err)
	}
	return checkAffectedRows(result, ErrCategoryNotFound)
}

func (r *postgresCategoryRepository) UpdateGroupConfig(ctx context.Context, exec SQLExecutor, id int, groupSize, advancingPerGroup int) error {
	query := `UPDATE categories SET group_size = $1, advancing_per_group = $2 WHERE id = $3`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, groupSize, advancingPerGroup, id)
	if err != nil {
		return fmt.Errorf("failed to update category group config: %w", err)
	}
	return checkAffectedRows(result, ErrCategoryNotFound)
}

func (r *postgresCategoryRepository) handleCategoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCategoryNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "categories_name_key" {
				return ErrCategoryNameConflict
			}
		}
	}
	return fmt.Errorf("category database error: %w", err)
}
