package model

import "time"

// Session maps an opaque server-side session id to an authenticated user.
// Rows are durable so sessions survive process restarts; expiry is enforced
// on resolve, expired rows are treated as absent.
type Session struct {
	Token     string    `json:"token" gorm:"type:char(36);primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}
