package model

import "time"

// Class represents a course offering. Paid classes are unlocked by redeeming
// an access code; free classes can be enrolled into directly.
type Class struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	TeacherID    *int      `json:"teacher_id,omitempty"`
	Price        float64   `json:"price"`
	IsFree       bool      `json:"is_free"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClassRequest is the payload for creating or updating a class.
type ClassRequest struct {
	Title        string  `json:"title" binding:"required,min=2,max=200"`
	Description  string  `json:"description" binding:"omitempty,max=5000"`
	TeacherID    *int    `json:"teacher_id" binding:"omitempty,min=1"`
	Price        float64 `json:"price" binding:"omitempty,min=0"`
	IsFree       bool    `json:"is_free"`
	ThumbnailURL string  `json:"thumbnail_url" binding:"omitempty,max=500"`
}
