package models

import "time"

// Menu categories. Starter and Premium items are included in the buffet and
// carry no price; Special items are ordered and charged individually.
const (
	MenuCategoryStarter = "Starter"
	MenuCategoryPremium = "Premium"
	MenuCategorySpecial = "Special"
)

type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Category    string    `gorm:"type:varchar(20);not null;index" json:"category"`
	NameThai    string    `gorm:"type:varchar(255);not null" json:"name_thai"`
	NameEnglish string    `gorm:"type:varchar(255);not null" json:"name_english"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"type:varchar(255)" json:"image_url"`
	FoodType    string    `gorm:"type:varchar(50)" json:"food_type"`
	Price       float64   `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// ValidMenuCategory reports whether category names one of the three catalogs.
func ValidMenuCategory(category string) bool {
	switch category {
	case MenuCategoryStarter, MenuCategoryPremium, MenuCategorySpecial:
		return true
	}
	return false
}
