package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gharsapp/ghars-backend/internal/model"
)

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentSelect = `SELECT s.id, s.name, s.password, s.class_id, COALESCE(c.name, ''),
	s.points, s.avatar_url, s.created_at, s.updated_at
	FROM students s LEFT JOIN classes c ON c.id = s.class_id`

func scanStudent(row interface{ Scan(...any) error }, s *model.Student) error {
	return row.Scan(&s.ID, &s.Name, &s.Password, &s.ClassID, &s.ClassName,
		&s.Points, &s.AvatarURL, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID retrieves a student by ID with their class name.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	s := &model.Student{}
	row := r.pool.QueryRow(ctx, studentSelect+` WHERE s.id = $1`, id)
	if err := scanStudent(row, s); err != nil {
		return nil, err
	}
	return s, nil
}

// List retrieves all students ordered by points descending, which is also
// the public leaderboard order.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx, studentSelect+` ORDER BY s.points DESC, s.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := scanStudent(rows, &s); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// ListCredentials returns all student rows for the authenticator's scan,
// ordered by id.
func (r *StudentRepository) ListCredentials(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx, studentSelect+` ORDER BY s.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := scanStudent(rows, &s); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (name, password, class_id, points)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.Name, s.Password, s.ClassID, s.Points,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return mapDuplicate(err)
}

// Update modifies a student's info (excluding password and avatar).
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students SET name = $1, class_id = $2, points = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		s.Name, s.ClassID, s.Points, s.ID,
	)
	return err
}

// UpdatePassword updates a student's stored credential.
func (r *StudentRepository) UpdatePassword(ctx context.Context, id int, password string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students SET password = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		password, id,
	)
	return mapDuplicate(err)
}

// UpdateAvatar sets a student's avatar URL.
func (r *StudentRepository) UpdateAvatar(ctx context.Context, id int, url string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE students SET avatar_url = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		url, id,
	)
	return err
}

// AddPoints atomically adds delta to a student's score and returns the new
// total. Negative deltas deduct; the score is floored at zero.
func (r *StudentRepository) AddPoints(ctx context.Context, id, delta int) (int, error) {
	var points int
	err := r.pool.QueryRow(ctx,
		`UPDATE students SET points = GREATEST(points + $1, 0), updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 RETURNING points`,
		delta, id,
	).Scan(&points)
	return points, err
}

// Delete removes a student by ID.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	return err
}
