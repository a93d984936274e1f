package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ClassEngagement is a per-class aggregate row for the engagement report.
type ClassEngagement struct {
	ClassID      int    `json:"class_id"`
	ClassName    string `json:"class_name"`
	StudentCount int    `json:"student_count"`
	TotalPoints  int    `json:"total_points"`
}

// ReportRepository aggregates read-only statistics for the admin report.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// GetSummaryCounts returns total students, classes, weeks, and unlocked weeks.
func (r *ReportRepository) GetSummaryCounts(ctx context.Context) (students, classes, weeks, unlocked int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM classes),
			(SELECT COUNT(*) FROM weeks),
			(SELECT COUNT(*) FROM weeks WHERE NOT is_locked)`,
	).Scan(&students, &classes, &weeks, &unlocked)
	return
}

// GetTotalPoints returns the sum of all student points.
func (r *ReportRepository) GetTotalPoints(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(points), 0) FROM students`).Scan(&total)
	return total, err
}

// GetClassEngagement returns per-class student counts and point totals,
// highest-scoring class first.
func (r *ReportRepository) GetClassEngagement(ctx context.Context) ([]ClassEngagement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.name, COUNT(s.id), COALESCE(SUM(s.points), 0)
		 FROM classes c LEFT JOIN students s ON s.class_id = c.id
		 GROUP BY c.id, c.name
		 ORDER BY COALESCE(SUM(s.points), 0) DESC, c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ClassEngagement
	for rows.Next() {
		var e ClassEngagement
		if err := rows.Scan(&e.ClassID, &e.ClassName, &e.StudentCount, &e.TotalPoints); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
