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
	ErrGroupNotFound     = errors.New("group not found")
	ErrGroupNameConflict = errors.New("group name already exists in category")
)

type GroupRepository interface {
	Create(ctx context.Context, exec SQLExecutor, g *models.Group) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Group, error)
	ListByCategory(ctx context.Context, exec SQLExecutor, categoryID int) ([]*models.Group, error)
}

type postgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) GroupRepository {
	return &postgresGroupRepository{db: db}
}

func (r *postgresGroupRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGroupRepository) Create(ctx context.Context, exec SQLExecutor, g *models.Group) error {
	query := `
		INSERT INTO category_groups (category_id, name, player_ids)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		g.CategoryID, g.Name, pq.Array(g.PlayerIDs),
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrGroupNameConflict
		}
		return fmt.Errorf("failed to create group %s: %w", g.Name, err)
	}
	return nil
}

func scanGroup(row rowScanner) (*models.Group, error) {
	g := &models.Group{}
	var ids pq.Int64Array
	if err := row.Scan(&g.ID, &g.CategoryID, &g.Name, &ids, &g.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	g.PlayerIDs = make([]int, len(ids))
	for i, id := range ids {
		g.PlayerIDs[i] = int(id)
	}
	return g, nil
}

func (r *postgresGroupRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Group, error) {
	query := `SELECT id, category_id, name, player_ids, created_at FROM category_groups WHERE id = $1`
	return scanGroup(r.getExecutor(exec).QueryRowContext(ctx, query, id))
}

func (r *postgresGroupRepository) ListByCategory(ctx context.Context, exec SQLExecutor, categoryID int) ([]*models.Group, error) {
	query := `
		SELECT id, category_id, name, player_ids, created_at
		FROM category_groups
		WHERE category_id = $1
		ORDER BY id ASC`

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups for category %d: %w", categoryID, err)
	}
	defer rows.Close()

	groups := make([]*models.Group, 0)
	for rows.Next() {
		g, scanErr := scanGroup(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", scanErr)
		}
		groups = append(groups, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during group rows iteration: %w", err)
	}
	return groups, nil
}
