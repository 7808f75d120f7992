package model

import "time"

// Enrollment is the durable record granting a user access to a class.
// A user may be enrolled in a given class at most once; the database holds
// the unique constraint on (user_id, class_id).
type Enrollment struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	ClassID    int       `json:"class_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// EnrolledClass is a class joined with the viewer's enrollment record.
type EnrolledClass struct {
	Class
	EnrolledAt time.Time `json:"enrolled_at"`
}

// EnrollFreeRequest is the payload for enrolling into a free class.
type EnrollFreeRequest struct {
	ClassID int `json:"class_id" binding:"required,min=1"`
}
