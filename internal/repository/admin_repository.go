package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gharsapp/ghars-backend/internal/model"
)

// ErrDuplicatePassword is returned when an insert or update collides with
// the unique index on stored passwords.
var ErrDuplicatePassword = errors.New("password already in use")

const adminColumns = `id, name, password, can_manage_admins, can_manage_classes, can_manage_students,
	can_manage_weeks, can_manage_points, can_view_analytics, avatar_url, created_at, updated_at`

// AdminRepository handles admin data access.
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func scanAdmin(row interface{ Scan(...any) error }, a *model.Admin) error {
	return row.Scan(&a.ID, &a.Name, &a.Password,
		&a.Flags.CanManageAdmins, &a.Flags.CanManageClasses, &a.Flags.CanManageStudents,
		&a.Flags.CanManageWeeks, &a.Flags.CanManagePoints, &a.Flags.CanViewAnalytics,
		&a.AvatarURL, &a.CreatedAt, &a.UpdatedAt)
}

// GetByID retrieves an admin by ID.
func (r *AdminRepository) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	a := &model.Admin{}
	row := r.pool.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)
	if err := scanAdmin(row, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List retrieves all admins ordered by id.
func (r *AdminRepository) List(ctx context.Context) ([]model.Admin, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []model.Admin
	for rows.Next() {
		var a model.Admin
		if err := scanAdmin(rows, &a); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// ListCredentials returns all admin rows for the authenticator's scan,
// ordered by id so a (disallowed but conceivable) duplicate password
// resolves deterministically.
func (r *AdminRepository) ListCredentials(ctx context.Context) ([]model.Admin, error) {
	return r.List(ctx)
}

// Create inserts a new admin.
func (r *AdminRepository) Create(ctx context.Context, a *model.Admin) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO admins (name, password, can_manage_admins, can_manage_classes, can_manage_students,
			can_manage_weeks, can_manage_points, can_view_analytics)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		a.Name, a.Password,
		a.Flags.CanManageAdmins, a.Flags.CanManageClasses, a.Flags.CanManageStudents,
		a.Flags.CanManageWeeks, a.Flags.CanManagePoints, a.Flags.CanViewAnalytics,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return mapDuplicate(err)
}

// Update modifies an admin's name and permission flags.
func (r *AdminRepository) Update(ctx context.Context, a *model.Admin) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admins SET name = $1, can_manage_admins = $2, can_manage_classes = $3,
			can_manage_students = $4, can_manage_weeks = $5, can_manage_points = $6,
			can_view_analytics = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		a.Name,
		a.Flags.CanManageAdmins, a.Flags.CanManageClasses, a.Flags.CanManageStudents,
		a.Flags.CanManageWeeks, a.Flags.CanManagePoints, a.Flags.CanViewAnalytics,
		a.ID,
	)
	return err
}

// UpdatePassword updates an admin's stored credential.
func (r *AdminRepository) UpdatePassword(ctx context.Context, id int, password string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admins SET password = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		password, id,
	)
	return mapDuplicate(err)
}

// UpdateAvatar sets an admin's avatar URL.
func (r *AdminRepository) UpdateAvatar(ctx context.Context, id int, url string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admins SET avatar_url = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		url, id,
	)
	return err
}

// Delete removes an admin by ID.
func (r *AdminRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	return err
}

func mapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicatePassword
	}
	return err
}
