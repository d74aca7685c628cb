package models

import "time"

// Client is the root entity: a customer whose purchases and payments are
// tracked. Products and Payments belong to exactly one Client and have no
// lifecycle of their own.
type Client struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null;index" json:"name"` // duplicates allowed, no unique constraint
	Phone     string `gorm:"not null" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
