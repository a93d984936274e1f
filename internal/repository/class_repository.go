package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gharsapp/ghars-backend/internal/model"
)

// ClassRepository handles class data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

// GetByID retrieves a class by its ID.
func (r *ClassRepository) GetByID(ctx context.Context, id int) (*model.Class, error) {
	c := &model.Class{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM classes WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves all classes ordered by name.
func (r *ClassRepository) List(ctx context.Context) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, created_at, updated_at FROM classes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO classes (name) VALUES ($1) RETURNING id, created_at, updated_at`,
		c.Name,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update modifies an existing class.
func (r *ClassRepository) Update(ctx context.Context, c *model.Class) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE classes SET name = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		c.Name, c.ID,
	)
	return err
}

// Delete removes a class by its ID. The FK from students restricts the
// delete while members remain.
func (r *ClassRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	return err
}
