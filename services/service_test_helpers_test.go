package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/moomoo-restaurant/pos-app/models"
	"github.com/moomoo-restaurant/pos-app/utils"
)

// setupTestDB opens a named in-memory SQLite database. The name keeps each
// test isolated while cache=shared lets the pool's connections see one DB.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Table{},
		&models.Bill{},
		&models.BillSpecialItem{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.QueueEntry{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedTable(t *testing.T, db *gorm.DB, tableNumber int, status string) models.Table {
	t.Helper()
	table := models.Table{
		TableNumber: tableNumber,
		Status:      status,
		BuffetTier:  models.BuffetTierNone,
	}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}

func seedMenuItem(t *testing.T, db *gorm.DB, category, nameEnglish string, price float64, available bool) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Category:    category,
		NameThai:    nameEnglish,
		NameEnglish: nameEnglish,
		Price:       price,
		IsAvailable: available,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to seed menu item: %v", err)
	}
	return item
}
