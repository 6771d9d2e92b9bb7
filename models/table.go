package models

import "time"

const (
	TableStatusAvailable = "Available"
	TableStatusOpen      = "Open"
	TableStatusClosed    = "Closed"
)

const (
	BuffetTierNone    = "None"
	BuffetTierStarter = "Starter"
	BuffetTierPremium = "Premium"
)

// DefaultSessionLength is the dining time granted when a table opens (90 minutes).
const DefaultSessionLength = 90 * time.Minute

type Table struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TableNumber   int        `gorm:"uniqueIndex;not null" json:"table_number"`
	Status        string     `gorm:"type:varchar(20);not null;default:'Available'" json:"status"`
	CustomerCount int        `gorm:"not null;default:0" json:"customer_count"`
	BuffetTier    string     `gorm:"type:varchar(20);not null;default:'None'" json:"buffet_tier"`
	BuffetPrice   float64    `gorm:"type:decimal(10,2);not null;default:0" json:"buffet_price"`
	OpenedAt      *time.Time `json:"opened_at,omitempty"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	CurrentBillID *uint      `gorm:"index" json:"current_bill_id,omitempty"`
	Pin           string     `gorm:"type:varchar(10)" json:"pin,omitempty"`
	EncryptedID   string     `gorm:"type:text" json:"encrypted_id,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}

// RemainingMS derives the dining countdown from OpenedAt instead of a stored
// ticking value, so reads never drift. Zero for tables that are not open.
func (t *Table) RemainingMS(now time.Time) int64 {
	if t.Status != TableStatusOpen || t.OpenedAt == nil {
		return 0
	}
	remaining := DefaultSessionLength - now.Sub(*t.OpenedAt)
	if remaining < 0 {
		return 0
	}
	return remaining.Milliseconds()
}

// IsOvertime reports whether an open table has used up its dining time.
// Advisory only; the table is never force-closed.
func (t *Table) IsOvertime(now time.Time) bool {
	return t.Status == TableStatusOpen && t.OpenedAt != nil && t.RemainingMS(now) == 0
}
