package services

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/moomoo-restaurant/pos-app/models"
	"github.com/moomoo-restaurant/pos-app/utils"
	"github.com/moomoo-restaurant/pos-app/ws"
)

// Buffet pricing per person by tier.
const (
	StarterPricePerPerson = 199.0
	PremiumPricePerPerson = 299.0
)

// TableService owns the table lifecycle: Available -> Open -> Available.
// Open/Close are serialized per table number; SQLite gives no row locks, so
// an in-process mutex guards the state transition.
type TableService struct {
	db      *gorm.DB
	billing *BillingService

	locksMu sync.Mutex
	locks   map[int]*sync.Mutex
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{
		db:      db,
		billing: NewBillingService(db),
		locks:   make(map[int]*sync.Mutex),
	}
}

func (s *TableService) tableLock(tableNumber int) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	if _, ok := s.locks[tableNumber]; !ok {
		s.locks[tableNumber] = &sync.Mutex{}
	}
	return s.locks[tableNumber]
}

// TableView is a table row plus the derived dining countdown.
type TableView struct {
	models.Table
	DiningTimeRemaining int64 `json:"dining_time_remaining"`
	IsOvertime          bool  `json:"is_overtime"`
}

func toView(table models.Table, now time.Time) TableView {
	return TableView{
		Table:               table,
		DiningTimeRemaining: table.RemainingMS(now),
		IsOvertime:          table.IsOvertime(now),
	}
}

// PricePerPersonForTier returns the configured buffet price for a tier.
func PricePerPersonForTier(tier string) float64 {
	switch tier {
	case models.BuffetTierStarter:
		return StarterPricePerPerson
	case models.BuffetTierPremium:
		return PremiumPricePerPerson
	}
	return 0
}

// GetAllTables lists tables ordered by number, optionally filtered by status.
func (s *TableService) GetAllTables(status string) ([]TableView, error) {
	query := s.db.Order("table_number ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var tables []models.Table
	if err := query.Find(&tables).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]TableView, 0, len(tables))
	for _, t := range tables {
		views = append(views, toView(t, now))
	}
	return views, nil
}

// GetTableByNumber returns one table with its derived countdown.
func (s *TableService) GetTableByNumber(tableNumber int) (*TableView, error) {
	var table models.Table
	err := s.db.Where("table_number = ?", tableNumber).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("table %d not found", tableNumber)
	}
	if err != nil {
		return nil, err
	}
	view := toView(table, time.Now())
	return &view, nil
}

// OpenTable seats a party: validates the request, issues session
// credentials, opens an active bill and transitions the table to Open.
func (s *TableService) OpenTable(tableNumber, customerCount int, buffetTier string) (*TableView, *SessionCredentials, error) {
	if customerCount < 1 || customerCount > 4 {
		return nil, nil, utils.NewValidationError("customer count must be between 1 and 4, got %d", customerCount)
	}
	if buffetTier != models.BuffetTierStarter && buffetTier != models.BuffetTierPremium {
		return nil, nil, utils.NewValidationError("invalid buffet tier: %s", buffetTier)
	}

	lock := s.tableLock(tableNumber)
	lock.Lock()
	defer lock.Unlock()

	var table models.Table
	err := s.db.Where("table_number = ?", tableNumber).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, utils.NewNotFoundError("table %d not found", tableNumber)
	}
	if err != nil {
		return nil, nil, err
	}

	if table.Status == models.TableStatusOpen {
		return nil, nil, utils.NewConflictError("table %d is already open", tableNumber)
	}
	if table.Status != models.TableStatusAvailable {
		return nil, nil, utils.NewStateError("table %d is not available (status: %s)", tableNumber, table.Status)
	}

	creds, err := IssueSessionCredentials(tableNumber)
	if err != nil {
		return nil, nil, err
	}

	pricePerPerson := PricePerPersonForTier(buffetTier)
	bill, err := s.billing.CreateBillForTable(tableNumber, customerCount, buffetTier, pricePerPerson)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	table.Status = models.TableStatusOpen
	table.CustomerCount = customerCount
	table.BuffetTier = buffetTier
	table.BuffetPrice = pricePerPerson
	table.OpenedAt = &now
	table.ClosedAt = nil
	table.CurrentBillID = &bill.ID
	table.Pin = creds.Pin
	table.EncryptedID = creds.EncryptedID
	if err := s.db.Save(&table).Error; err != nil {
		return nil, nil, err
	}

	view := toView(table, now)
	ws.Broadcast(ws.EventTableOpen, view)

	utils.InfoLogger.Printf("Table %d opened: %d guests, %s buffet, bill %d", tableNumber, customerCount, buffetTier, bill.ID)
	return &view, creds, nil
}

// CloseTable settles the table: archives the active bill and resets the
// table to Available.
func (s *TableService) CloseTable(tableNumber int) (*TableView, error) {
	lock := s.tableLock(tableNumber)
	lock.Lock()
	defer lock.Unlock()

	var table models.Table
	err := s.db.Where("table_number = ?", tableNumber).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("table %d not found", tableNumber)
	}
	if err != nil {
		return nil, err
	}

	if table.Status != models.TableStatusOpen {
		return nil, utils.NewStateError("table %d is not open (status: %s)", tableNumber, table.Status)
	}

	if table.CurrentBillID != nil {
		if _, err := s.billing.ArchiveBill(*table.CurrentBillID); err != nil {
			// A bill already archived out-of-band must not wedge the table.
			var stateErr *utils.StateError
			if !errors.As(err, &stateErr) {
				return nil, err
			}
			utils.InfoLogger.Printf("Bill %d was already archived, closing table %d anyway", *table.CurrentBillID, tableNumber)
		}
	}

	now := time.Now()
	table.Status = models.TableStatusAvailable
	table.CustomerCount = 0
	table.BuffetTier = models.BuffetTierNone
	table.BuffetPrice = 0
	table.ClosedAt = &now
	table.OpenedAt = nil
	table.CurrentBillID = nil
	table.Pin = ""
	table.EncryptedID = ""
	if err := s.db.Save(&table).Error; err != nil {
		return nil, err
	}

	view := toView(table, now)
	ws.Broadcast(ws.EventTableClose, view)

	utils.InfoLogger.Printf("Table %d closed", tableNumber)
	return &view, nil
}

// VerifyPin checks a submitted PIN against the table's open session.
func (s *TableService) VerifyPin(tableNumber int, pin string) error {
	var table models.Table
	err := s.db.Where("table_number = ?", tableNumber).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewNotFoundError("table %d not found", tableNumber)
	}
	if err != nil {
		return err
	}

	if table.Status != models.TableStatusOpen {
		return utils.NewStateError("table %d has no open session", tableNumber)
	}
	if table.Pin == "" || table.Pin != pin {
		return utils.NewValidationError("incorrect PIN for table %d", tableNumber)
	}
	return nil
}
