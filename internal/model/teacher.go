package model

import "time"

// Teacher represents an instructor shown on the public site.
type Teacher struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Bio       string    `json:"bio"`
	PhotoURL  string    `json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeacherRequest is the payload for creating or updating a teacher.
type TeacherRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Subject  string `json:"subject" binding:"required,min=2,max=100"`
	Bio      string `json:"bio" binding:"omitempty,max=2000"`
	PhotoURL string `json:"photo_url" binding:"omitempty,max=500"`
}
