package models

import "time"

const (
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"
)

const (
	QueueTypeNormal  = "Normal"
	QueueTypeSpecial = "Special"
)

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	TableNumber int         `gorm:"not null;index" json:"table_number"`
	QueueType   string      `gorm:"type:varchar(20);not null;index" json:"queue_type"`
	Status      string      `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	Notes       string      `gorm:"type:text" json:"notes"`
	OrderItems  []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

type OrderItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	Order       Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID  uint      `gorm:"not null" json:"menu_item_id"`
	Category    string    `gorm:"type:varchar(20);not null" json:"category"`
	NameThai    string    `gorm:"type:varchar(255);not null" json:"name_thai"`
	NameEnglish string    `gorm:"type:varchar(255);not null" json:"name_english"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
