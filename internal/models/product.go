package models

import "time"

// Product is a purchased item attributed to a client. PhotoPath and OrderDate
// are optional; the empty string means "not set". OrderDate uses the ISO
// yyyy-MM-dd form so lexicographic order equals chronological order.
type Product struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ClientID  uint    `gorm:"not null;index" json:"client_id"`
	Name      string  `gorm:"not null" json:"name"`
	Price     float64 `gorm:"not null" json:"price"`
	PhotoPath string  `json:"photo_path"`
	OrderDate string  `gorm:"size:10;index" json:"order_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
