package models

import "time"

const (
	BillStatusActive   = "Active"
	BillStatusArchived = "Archived"
)

type Bill struct {
	ID                   uint              `gorm:"primaryKey" json:"id"`
	TableNumber          int               `gorm:"not null;index" json:"table_number"`
	CustomerCount        int               `gorm:"not null" json:"customer_count"`
	BuffetTier           string            `gorm:"type:varchar(20);not null" json:"buffet_tier"`
	BuffetPricePerPerson float64           `gorm:"type:decimal(10,2);not null" json:"buffet_price_per_person"`
	BuffetCharges        float64           `gorm:"type:decimal(10,2);not null" json:"buffet_charges"`
	SpecialItemsTotal    float64           `gorm:"type:decimal(10,2);not null;default:0" json:"special_items_total"`
	Total                float64           `gorm:"type:decimal(10,2);not null" json:"total"`
	PreVatSubtotal       float64           `gorm:"type:decimal(10,2);not null" json:"pre_vat_subtotal"`
	VatAmount            float64           `gorm:"type:decimal(10,2);not null" json:"vat_amount"`
	Status               string            `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"`
	SpecialItems         []BillSpecialItem `gorm:"foreignKey:BillID" json:"special_items"`
	CreatedAt            time.Time         `gorm:"not null" json:"created_at"`
	ArchivedAt           *time.Time        `json:"archived_at,omitempty"`
	UpdatedAt            time.Time         `gorm:"not null" json:"updated_at"`
}

type BillSpecialItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BillID      uint      `gorm:"not null;index" json:"bill_id"`
	Bill        Bill      `gorm:"foreignKey:BillID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID  uint      `json:"menu_item_id"`
	NameThai    string    `gorm:"type:varchar(255);not null" json:"name_thai"`
	NameEnglish string    `gorm:"type:varchar(255);not null" json:"name_english"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Subtotal    float64   `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
