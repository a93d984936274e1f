package model

import "time"

// Student represents a student account. ClassID is nil for students not yet
// assigned to a class.
type Student struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	ClassID   *int      `json:"class_id"`
	ClassName string    `json:"class_name,omitempty"`
	Points    int       `json:"points"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateStudentRequest is the payload for creating a new student account.
type CreateStudentRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=4,max=128"`
	ClassID  *int   `json:"class_id"`
	Points   int    `json:"points" binding:"omitempty,min=0"`
}

// UpdateStudentRequest is the payload for updating an existing student.
// An empty password leaves the stored credential untouched.
type UpdateStudentRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"omitempty,min=4,max=128"`
	ClassID  *int   `json:"class_id"`
	Points   *int   `json:"points" binding:"omitempty,min=0"`
}

// AddPointsRequest is the payload for awarding points to a student.
// Negative values deduct points.
type AddPointsRequest struct {
	Points int `json:"points" binding:"required"`
}
