package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/moomoo-restaurant/pos-app/models"
	"github.com/moomoo-restaurant/pos-app/utils"
)

// MenuService manages the three menu catalogs. Storage is a single table
// with the category as a discriminant; only Special items carry a price.
type MenuService struct {
	db *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

// MenuItemInput carries create/update fields for a menu item.
type MenuItemInput struct {
	NameThai    string   `json:"name_thai"`
	NameEnglish string   `json:"name_english"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	FoodType    string   `json:"food_type"`
	Price       *float64 `json:"price,omitempty"`
	IsAvailable *bool    `json:"is_available,omitempty"`
}

// NormalizeCategory canonicalizes a category path segment ("special" ->
// "Special").
func NormalizeCategory(category string) (string, error) {
	switch strings.ToLower(category) {
	case "starter":
		return models.MenuCategoryStarter, nil
	case "premium":
		return models.MenuCategoryPremium, nil
	case "special":
		return models.MenuCategorySpecial, nil
	}
	return "", utils.NewValidationError("invalid menu category: %s", category)
}

// GroupedMenu is the full catalog keyed by category.
type GroupedMenu struct {
	Starter []models.MenuItem `json:"starter"`
	Premium []models.MenuItem `json:"premium"`
	Special []models.MenuItem `json:"special"`
}

// GetAll returns the whole catalog grouped by category.
func (s *MenuService) GetAll(availableOnly bool) (*GroupedMenu, error) {
	grouped := &GroupedMenu{}
	targets := map[string]*[]models.MenuItem{
		models.MenuCategoryStarter: &grouped.Starter,
		models.MenuCategoryPremium: &grouped.Premium,
		models.MenuCategorySpecial: &grouped.Special,
	}
	for category, target := range targets {
		items, err := s.GetByCategory(category, availableOnly)
		if err != nil {
			return nil, err
		}
		*target = items
	}
	return grouped, nil
}

// GetByCategory lists one catalog ordered by English name.
func (s *MenuService) GetByCategory(category string, availableOnly bool) ([]models.MenuItem, error) {
	query := s.db.Where("category = ?", category).Order("name_english ASC")
	if availableOnly {
		query = query.Where("is_available = ?", true)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID finds one item within a category.
func (s *MenuService) GetByID(category string, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.Where("category = ? AND id = ?", category, id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("menu item %d not found in %s menu", id, category)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create adds an item to a catalog. Only Special items take a price, and it
// must not be negative; buffet items are always stored with price 0.
func (s *MenuService) Create(category string, input MenuItemInput) (*models.MenuItem, error) {
	if input.NameThai == "" && input.NameEnglish == "" {
		return nil, utils.NewValidationError("menu item name is required")
	}

	price := 0.0
	if category == models.MenuCategorySpecial {
		if input.Price == nil {
			return nil, utils.NewValidationError("special menu items require a price")
		}
		if *input.Price < 0 {
			return nil, utils.NewValidationError("price must not be negative")
		}
		price = *input.Price
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	item := models.MenuItem{
		Category:    category,
		NameThai:    input.NameThai,
		NameEnglish: input.NameEnglish,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		FoodType:    input.FoodType,
		Price:       price,
		IsAvailable: available,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Menu item created: %s [%s]", item.NameEnglish, category)
	return &item, nil
}

// Update patches an item in place. Price changes are only honored for the
// Special catalog.
func (s *MenuService) Update(category string, id uint, input MenuItemInput) (*models.MenuItem, error) {
	item, err := s.GetByID(category, id)
	if err != nil {
		return nil, err
	}

	if input.NameThai != "" {
		item.NameThai = input.NameThai
	}
	if input.NameEnglish != "" {
		item.NameEnglish = input.NameEnglish
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if input.ImageURL != "" {
		item.ImageURL = input.ImageURL
	}
	if input.FoodType != "" {
		item.FoodType = input.FoodType
	}
	if input.Price != nil && category == models.MenuCategorySpecial {
		if *input.Price < 0 {
			return nil, utils.NewValidationError("price must not be negative")
		}
		item.Price = *input.Price
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item from a catalog. Placed orders keep their snapshot.
func (s *MenuService) Delete(category string, id uint) (*models.MenuItem, error) {
	item, err := s.GetByID(category, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}
