package model

import "time"

// Item is a single inventory entry owned by the user who created it.
type Item struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ItemName    string    `json:"item_name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Quantity    int       `json:"quantity" gorm:"not null;default:0"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
