package models

import "time"

// QueueEntry is a walk-in customer on the waitlist. FIFO by CreatedAt;
// rows are deleted when the customer is called or removed.
type QueueEntry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CustomerName  string    `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string    `gorm:"type:varchar(50)" json:"customer_phone"`
	PartySize     int       `gorm:"not null" json:"party_size"`
	CreatedAt     time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
