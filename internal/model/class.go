package model

import "time"

// Class represents a class group students belong to.
type Class struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClassRequest is the payload for creating or updating a class.
type ClassRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}
