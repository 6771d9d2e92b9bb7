package database

import (
	"gorm.io/gorm"

	"github.com/moomoo-restaurant/pos-app/models"
	"github.com/moomoo-restaurant/pos-app/utils"
)

// NumTables is the fixed number of dining tables provisioned at startup.
const NumTables = 10

// Seed provisions the fixed table set and, on an empty catalog, the sample
// menu. Safe to run on every boot.
func Seed(db *gorm.DB) error {
	if err := seedTables(db); err != nil {
		return err
	}
	return seedMenuItems(db)
}

// seedTables creates tables 1..NumTables once. Existing rows are left alone;
// tables are never deleted.
func seedTables(db *gorm.DB) error {
	for n := 1; n <= NumTables; n++ {
		var count int64
		if err := db.Model(&models.Table{}).Where("table_number = ?", n).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		table := models.Table{
			TableNumber:   n,
			Status:        models.TableStatusAvailable,
			CustomerCount: 0,
			BuffetTier:    models.BuffetTierNone,
		}
		if err := db.Create(&table).Error; err != nil {
			return err
		}
	}

	utils.InfoLogger.Printf("Provisioned %d tables", NumTables)
	return nil
}

func seedMenuItems(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := []models.MenuItem{
		// Starter: included in every buffet
		{Category: models.MenuCategoryStarter, NameThai: "เนื้อหมูสไลด์", NameEnglish: "Sliced Pork", Description: "เนื้อหมูคุณภาพดีหั่นบางพร้อมทาน", ImageURL: "/images/menu/pork-sliced.jpg", FoodType: "pork", IsAvailable: true},
		{Category: models.MenuCategoryStarter, NameThai: "เนื้อไก่สไลด์", NameEnglish: "Sliced Chicken", Description: "เนื้อไก่สดหั่นบางพร้อมทาน", ImageURL: "/images/menu/chicken-sliced.jpg", FoodType: "chicken", IsAvailable: true},
		{Category: models.MenuCategoryStarter, NameThai: "ผักรวม", NameEnglish: "Mixed Vegetables", Description: "ผักสดหลากหลายชนิด", ImageURL: "/images/menu/vegetables.jpg", FoodType: "vegetable", IsAvailable: true},
		{Category: models.MenuCategoryStarter, NameThai: "เห็ดรวม", NameEnglish: "Mixed Mushrooms", Description: "เห็ดสดหลากหลายชนิด", ImageURL: "/images/menu/mushrooms.jpg", FoodType: "vegetable", IsAvailable: true},
		{Category: models.MenuCategoryStarter, NameThai: "ลูกชิ้นปลา", NameEnglish: "Fish Balls", Description: "ลูกชิ้นปลาทำสด", ImageURL: "/images/menu/fish-balls.jpg", FoodType: "seafood", IsAvailable: true},

		// Premium: included in the Premium buffet only
		{Category: models.MenuCategoryPremium, NameThai: "เนื้อวากิว", NameEnglish: "Wagyu Beef", Description: "เนื้อวากิวเกรด A5 หั่นบาง", ImageURL: "/images/menu/wagyu.jpg", FoodType: "beef", IsAvailable: true},
		{Category: models.MenuCategoryPremium, NameThai: "กุ้งแม่น้ำ", NameEnglish: "River Prawns", Description: "กุ้งแม่น้ำสดขนาดใหญ่", ImageURL: "/images/menu/prawns.jpg", FoodType: "seafood", IsAvailable: true},
		{Category: models.MenuCategoryPremium, NameThai: "หอยนางรม", NameEnglish: "Fresh Oysters", Description: "หอยนางรมสดจากทะเล", ImageURL: "/images/menu/oysters.jpg", FoodType: "seafood", IsAvailable: true},
		{Category: models.MenuCategoryPremium, NameThai: "ปลาแซลมอนสด", NameEnglish: "Fresh Salmon", Description: "ปลาแซลมอนสดนำเข้า", ImageURL: "/images/menu/salmon.jpg", FoodType: "seafood", IsAvailable: true},
		{Category: models.MenuCategoryPremium, NameThai: "เนื้อหมูคูโรบูตะ", NameEnglish: "Kurobuta Pork", Description: "เนื้อหมูคูโรบูตะพรีเมี่ยม", ImageURL: "/images/menu/kurobuta.jpg", FoodType: "pork", IsAvailable: true},

		// Special: ordered and charged individually
		{Category: models.MenuCategorySpecial, NameThai: "ซูชิแซลมอน", NameEnglish: "Salmon Sushi", Description: "ซูชิแซลมอนสด 8 ชิ้น", ImageURL: "/images/menu/salmon-sushi.jpg", FoodType: "japanese", Price: 180, IsAvailable: true},
		{Category: models.MenuCategorySpecial, NameThai: "ซาชิมิรวม", NameEnglish: "Sashimi Platter", Description: "ซาชิมิปลาสดรวม 12 ชิ้น", ImageURL: "/images/menu/sashimi.jpg", FoodType: "japanese", Price: 250, IsAvailable: true},
		{Category: models.MenuCategorySpecial, NameThai: "สเต็กเนื้อวากิว", NameEnglish: "Wagyu Steak", Description: "สเต็กเนื้อวากิว 200 กรัม", ImageURL: "/images/menu/wagyu-steak.jpg", FoodType: "beef", Price: 450, IsAvailable: true},
		{Category: models.MenuCategorySpecial, NameThai: "ข้าวผัดกุ้ง", NameEnglish: "Prawn Fried Rice", Description: "ข้าวผัดกุ้งสด", ImageURL: "/images/menu/prawn-rice.jpg", FoodType: "rice", Price: 120, IsAvailable: true},
		{Category: models.MenuCategorySpecial, NameThai: "น้ำอัดลม", NameEnglish: "Soft Drink", Description: "น้ำอัดลมเย็น", ImageURL: "/images/menu/soft-drink.jpg", FoodType: "drink", Price: 20, IsAvailable: true},
		{Category: models.MenuCategorySpecial, NameThai: "ชาไทย", NameEnglish: "Thai Iced Tea", Description: "ชาไทยเย็นแท้", ImageURL: "/images/menu/thai-tea.jpg", FoodType: "drink", Price: 30, IsAvailable: true},
	}

	if err := db.Create(&items).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Seeded %d menu items", len(items))
	return nil
}
