package model

import "time"

// Week represents a weekly content module. Locked weeks are hidden from the
// public listing until an admin unlocks them.
type Week struct {
	ID        int           `json:"id"`
	Title     string        `json:"title"`
	IsLocked  bool          `json:"is_locked"`
	VideoURL  string        `json:"video_url,omitempty"`
	Cards     []ContentCard `json:"content_cards"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ContentCard is a single content item attached to a week.
type ContentCard struct {
	ID          int    `json:"id"`
	WeekID      int    `json:"week_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// CreateWeekRequest is the payload for creating a new week.
type CreateWeekRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	IsLocked *bool  `json:"is_locked"`
}

// UpdateWeekRequest is the payload for updating a week. Nil fields are left
// unchanged.
type UpdateWeekRequest struct {
	Title    *string `json:"title" binding:"omitempty,min=1,max=200"`
	IsLocked *bool   `json:"is_locked"`
	VideoURL *string `json:"video_url" binding:"omitempty,url"`
}

// ContentCardRequest is the payload for creating or updating a content card.
type ContentCardRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}
