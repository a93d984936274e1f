package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gharsapp/ghars-backend/internal/model"
)

// WeekRepository handles weekly content modules and their content cards.
type WeekRepository struct {
	pool *pgxpool.Pool
}

// NewWeekRepository creates a new WeekRepository.
func NewWeekRepository(pool *pgxpool.Pool) *WeekRepository {
	return &WeekRepository{pool: pool}
}

// GetByID retrieves a week with its content cards.
func (r *WeekRepository) GetByID(ctx context.Context, id int) (*model.Week, error) {
	w := &model.Week{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, is_locked, video_url, created_at, updated_at FROM weeks WHERE id = $1`, id,
	).Scan(&w.ID, &w.Title, &w.IsLocked, &w.VideoURL, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}

	cards, err := r.ListCards(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	w.Cards = cards
	return w, nil
}

// List retrieves all weeks with their content cards, ordered by id.
// A single cards query avoids the per-week round trip.
func (r *WeekRepository) List(ctx context.Context) ([]model.Week, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, is_locked, video_url, created_at, updated_at FROM weeks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weeks []model.Week
	index := make(map[int]int)
	for rows.Next() {
		var w model.Week
		if err := rows.Scan(&w.ID, &w.Title, &w.IsLocked, &w.VideoURL, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		w.Cards = []model.ContentCard{}
		index[w.ID] = len(weeks)
		weeks = append(weeks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cardRows, err := r.pool.Query(ctx,
		`SELECT id, week_id, title, description FROM content_cards ORDER BY week_id, id`)
	if err != nil {
		return nil, err
	}
	defer cardRows.Close()

	for cardRows.Next() {
		var card model.ContentCard
		if err := cardRows.Scan(&card.ID, &card.WeekID, &card.Title, &card.Description); err != nil {
			return nil, err
		}
		if i, ok := index[card.WeekID]; ok {
			weeks[i].Cards = append(weeks[i].Cards, card)
		}
	}
	return weeks, cardRows.Err()
}

// Create inserts a new week.
func (r *WeekRepository) Create(ctx context.Context, w *model.Week) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO weeks (title, is_locked) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		w.Title, w.IsLocked,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
}

// Update modifies a week's title, lock state, and video URL.
func (r *WeekRepository) Update(ctx context.Context, w *model.Week) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE weeks SET title = $1, is_locked = $2, video_url = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		w.Title, w.IsLocked, w.VideoURL, w.ID,
	)
	return err
}

// Delete removes a week; its cards follow via ON DELETE CASCADE.
func (r *WeekRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM weeks WHERE id = $1`, id)
	return err
}

// ListCards retrieves a week's content cards ordered by id.
func (r *WeekRepository) ListCards(ctx context.Context, weekID int) ([]model.ContentCard, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, week_id, title, description FROM content_cards WHERE week_id = $1 ORDER BY id`,
		weekID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []model.ContentCard{}
	for rows.Next() {
		var c model.ContentCard
		if err := rows.Scan(&c.ID, &c.WeekID, &c.Title, &c.Description); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// AddCard inserts a content card for a week.
func (r *WeekRepository) AddCard(ctx context.Context, c *model.ContentCard) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO content_cards (week_id, title, description) VALUES ($1, $2, $3) RETURNING id`,
		c.WeekID, c.Title, c.Description,
	).Scan(&c.ID)
}

// UpdateCard modifies a content card.
func (r *WeekRepository) UpdateCard(ctx context.Context, c *model.ContentCard) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE content_cards SET title = $1, description = $2 WHERE id = $3`,
		c.Title, c.Description, c.ID,
	)
	return err
}

// DeleteCard removes a content card.
func (r *WeekRepository) DeleteCard(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM content_cards WHERE id = $1`, id)
	return err
}
