package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/moomoo-restaurant/pos-app/models"
	"github.com/moomoo-restaurant/pos-app/utils"
)

// VATRate is fixed at 7%; menu prices are VAT-inclusive.
const VATRate = 0.07

// Round2 rounds to 2 decimal places.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// CalculateVAT derives the pre-VAT subtotal and VAT amount from a
// VAT-inclusive total. Each figure is rounded to 2 decimals independently,
// and the VAT amount is taken as the remainder so the two always sum back
// to the original total.
func CalculateVAT(totalIncludingVAT float64) (preVatSubtotal, vatAmount float64) {
	preVatSubtotal = Round2(totalIncludingVAT / (1 + VATRate))
	vatAmount = Round2(totalIncludingVAT - preVatSubtotal)
	return preVatSubtotal, vatAmount
}

// BillingService owns the bill lifecycle: one Active bill per table,
// special-item accumulation, VAT breakdown, archival.
type BillingService struct {
	db *gorm.DB
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{db: db}
}

// BillItemInput is a special-menu line to append to an active bill.
type BillItemInput struct {
	MenuItemID  uint    `json:"menu_item_id"`
	NameThai    string  `json:"name_thai"`
	NameEnglish string  `json:"name_english"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// CreateBillForTable opens a new active bill when a table opens. At most one
// Active bill may exist per table.
func (s *BillingService) CreateBillForTable(tableNumber, customerCount int, buffetTier string, pricePerPerson float64) (*models.Bill, error) {
	if customerCount < 1 || customerCount > 4 {
		return nil, utils.NewValidationError("customer count must be between 1 and 4, got %d", customerCount)
	}
	if buffetTier != models.BuffetTierStarter && buffetTier != models.BuffetTierPremium {
		return nil, utils.NewValidationError("invalid buffet tier: %s", buffetTier)
	}
	if pricePerPerson < 0 {
		return nil, utils.NewValidationError("price per person must not be negative")
	}

	var bill *models.Bill
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Bill{}).
			Where("table_number = ? AND status = ?", tableNumber, models.BillStatusActive).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return utils.NewConflictError("active bill already exists for table %d", tableNumber)
		}

		buffetCharges := float64(customerCount) * pricePerPerson
		preVat, vat := CalculateVAT(buffetCharges)

		bill = &models.Bill{
			TableNumber:          tableNumber,
			CustomerCount:        customerCount,
			BuffetTier:           buffetTier,
			BuffetPricePerPerson: pricePerPerson,
			BuffetCharges:        buffetCharges,
			SpecialItemsTotal:    0,
			Total:                buffetCharges,
			PreVatSubtotal:       preVat,
			VatAmount:            vat,
			Status:               models.BillStatusActive,
		}
		return tx.Create(bill).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Bill %d created for table %d (%s x %d)", bill.ID, tableNumber, buffetTier, customerCount)
	return bill, nil
}

// GetActiveBillForTable returns the table's active bill, or nil when the
// table has none. A missing bill is a valid state, not an error.
func (s *BillingService) GetActiveBillForTable(tableNumber int) (*models.Bill, error) {
	var bill models.Bill
	err := s.db.Preload("SpecialItems").
		Where("table_number = ? AND status = ?", tableNumber, models.BillStatusActive).
		First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// GetBillByID returns a bill with its special items.
func (s *BillingService) GetBillByID(billID uint) (*models.Bill, error) {
	var bill models.Bill
	err := s.db.Preload("SpecialItems").First(&bill, billID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("bill %d not found", billID)
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// AddItemToBill appends a special-item line to an active bill and recomputes
// the running totals and VAT breakdown.
func (s *BillingService) AddItemToBill(billID uint, item BillItemInput) (*models.Bill, error) {
	if item.Quantity < 1 {
		return nil, utils.NewValidationError("quantity must be at least 1")
	}
	if item.Price < 0 {
		return nil, utils.NewValidationError("price must not be negative")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var bill models.Bill
		if err := tx.First(&bill, billID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("bill %d not found", billID)
			}
			return err
		}
		if bill.Status != models.BillStatusActive {
			return utils.NewStateError("cannot modify archived bill %d", billID)
		}

		line := models.BillSpecialItem{
			BillID:      bill.ID,
			MenuItemID:  item.MenuItemID,
			NameThai:    item.NameThai,
			NameEnglish: item.NameEnglish,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Subtotal:    Round2(item.Price * float64(item.Quantity)),
		}
		if err := tx.Create(&line).Error; err != nil {
			return err
		}

		bill.SpecialItemsTotal = Round2(bill.SpecialItemsTotal + line.Subtotal)
		bill.Total = Round2(bill.BuffetCharges + bill.SpecialItemsTotal)
		bill.PreVatSubtotal, bill.VatAmount = CalculateVAT(bill.Total)
		return tx.Save(&bill).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetBillByID(billID)
}

// ArchiveBill settles a bill. Archiving an already-archived bill is an
// error, never a silent no-op; callers must check state before retrying.
func (s *BillingService) ArchiveBill(billID uint) (*models.Bill, error) {
	var bill models.Bill
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&bill, billID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("bill %d not found", billID)
			}
			return err
		}
		if bill.Status == models.BillStatusArchived {
			return utils.NewStateError("bill %d is already archived", billID)
		}

		now := time.Now()
		bill.Status = models.BillStatusArchived
		bill.ArchivedAt = &now
		return tx.Save(&bill).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Bill %d archived (total %s)", bill.ID, utils.FormatCurrencyTHB(bill.Total))
	return &bill, nil
}

// PrintableBill is the receipt projection of a table's active bill.
type PrintableBill struct {
	Restaurant RestaurantInfo  `json:"restaurant"`
	Bill       PrintableDetail `json:"bill"`
}

type RestaurantInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	TaxID   string `json:"tax_id"`
}

type PrintableDetail struct {
	BillID        uint            `json:"bill_id"`
	ReceiptNumber string          `json:"receipt_number"`
	TableNumber   int             `json:"table_number"`
	Date          time.Time       `json:"date"`
	Items         []PrintableLine `json:"items"`
	Subtotal      float64         `json:"subtotal"`
	VatRate       string          `json:"vat_rate"`
	VatAmount     float64         `json:"vat_amount"`
	Total         float64         `json:"total"`
	TotalDisplay  string          `json:"total_display"`
}

type PrintableLine struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// GetPrintableBill projects the table's active bill into a receipt view.
func (s *BillingService) GetPrintableBill(tableNumber int) (*PrintableBill, error) {
	bill, err := s.GetActiveBillForTable(tableNumber)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, utils.NewNotFoundError("no active bill found for table %d", tableNumber)
	}

	items := make([]PrintableLine, 0, len(bill.SpecialItems)+1)
	if bill.BuffetCharges > 0 {
		items = append(items, PrintableLine{
			Description: fmt.Sprintf("%s Buffet × %d", bill.BuffetTier, bill.CustomerCount),
			Amount:      bill.BuffetCharges,
		})
	}
	for _, item := range bill.SpecialItems {
		items = append(items, PrintableLine{
			Description: fmt.Sprintf("%s (%s) × %d", item.NameThai, item.NameEnglish, item.Quantity),
			Amount:      item.Subtotal,
		})
	}

	return &PrintableBill{
		Restaurant: RestaurantInfo{
			Name:    "MOOMOO Restaurant",
			Address: "123 Bangkok Street, Thailand",
			Phone:   "+66 12 345 6789",
			TaxID:   "0123456789012",
		},
		Bill: PrintableDetail{
			BillID:        bill.ID,
			ReceiptNumber: fmt.Sprintf("RCPT-%s", uuid.NewString()[:8]),
			TableNumber:   bill.TableNumber,
			Date:          bill.CreatedAt,
			Items:         items,
			Subtotal:      bill.PreVatSubtotal,
			VatRate:       "7%",
			VatAmount:     bill.VatAmount,
			Total:         bill.Total,
			TotalDisplay:  utils.FormatCurrencyTHB(bill.Total),
		},
	}, nil
}

// BillHistoryFilter narrows the archived-bill listing.
type BillHistoryFilter struct {
	TableNumber int
	StartDate   *time.Time
	EndDate     *time.Time
	Page        int
	Limit       int
}

type BillHistory struct {
	Data       []models.Bill `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Limit int   `json:"limit"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

// GetHistoricalBills lists archived bills, newest first, with optional table
// and date-range filters and offset pagination.
func (s *BillingService) GetHistoricalBills(filter BillHistoryFilter) (*BillHistory, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	query := s.db.Model(&models.Bill{}).Where("status = ?", models.BillStatusArchived)
	if filter.TableNumber > 0 {
		query = query.Where("table_number = ?", filter.TableNumber)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var bills []models.Bill
	if err := query.Preload("SpecialItems").
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&bills).Error; err != nil {
		return nil, err
	}

	return &BillHistory{
		Data: bills,
		Pagination: Pagination{
			Total: total,
			Limit: filter.Limit,
			Page:  filter.Page,
			Pages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		},
	}, nil
}
