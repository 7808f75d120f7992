package model

import "time"

// AccessCode is a one-time-use token that unlocks enrollment in a paid class.
// used_by and used_at are set together when the code is consumed; the database
// enforces that an unused code carries neither.
type AccessCode struct {
	ID        int        `json:"id"`
	Code      string     `json:"code"`
	ClassID   int        `json:"class_id"`
	Price     float64    `json:"price"`
	IsUsed    bool       `json:"is_used"`
	UsedBy    *int       `json:"used_by,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// RedeemCodeRequest is the payload for redeeming an access code.
type RedeemCodeRequest struct {
	Code string `json:"code" binding:"required,min=4,max=32"`
}

// GenerateCodesRequest is the admin payload for creating a batch of codes.
type GenerateCodesRequest struct {
	ClassID int     `json:"class_id" binding:"required,min=1"`
	Count   int     `json:"count" binding:"required,min=1,max=1000"`
	Price   float64 `json:"price" binding:"omitempty,min=0"`
}

// AccessCodeStats summarizes code usage for a class.
type AccessCodeStats struct {
	ClassID int `json:"class_id"`
	Total   int `json:"total"`
	Used    int `json:"used"`
	Unused  int `json:"unused"`
}
