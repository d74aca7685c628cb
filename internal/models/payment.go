package models

import "time"

// Payment ("abono") reduces a client's balance. LinkedOrderDate records which
// order batch (products grouped by OrderDate) the payment was applied against;
// it is informational only and never participates in the balance formula.
type Payment struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	ClientID        uint    `gorm:"not null;index" json:"client_id"`
	Amount          float64 `gorm:"not null" json:"amount"`
	PaymentDate     string  `gorm:"size:10" json:"payment_date"`
	LinkedOrderDate string  `gorm:"size:10" json:"linked_order_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
