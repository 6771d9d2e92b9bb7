package services

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/moomoo-restaurant/pos-app/models"
	"github.com/moomoo-restaurant/pos-app/utils"
	"github.com/moomoo-restaurant/pos-app/ws"
)

// QueueService is the walk-in customer waitlist: a plain FIFO keyed by
// insertion time. Distinct from the kitchen order queues.
type QueueService struct {
	db *gorm.DB

	// callMu serializes CallNext so an entry is never handed to two callers.
	callMu sync.Mutex
}

func NewQueueService(db *gorm.DB) *QueueService {
	return &QueueService{db: db}
}

// AddToQueue appends a customer to the waitlist. Party size is capped at 4,
// matching the largest table.
func (s *QueueService) AddToQueue(name, phone string, partySize int) (*models.QueueEntry, error) {
	if name == "" {
		return nil, utils.NewValidationError("customer name is required")
	}
	if partySize < 1 || partySize > 4 {
		return nil, utils.NewValidationError("party size must be between 1 and 4, got %d", partySize)
	}

	entry := models.QueueEntry{
		CustomerName:  name,
		CustomerPhone: phone,
		PartySize:     partySize,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	ws.Broadcast(ws.EventWaitlistUpdate, entry)
	utils.InfoLogger.Printf("Waitlist: added %s (party of %d)", name, partySize)
	return &entry, nil
}

// GetAllQueue lists the waitlist oldest first.
func (s *QueueService) GetAllQueue() ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	if err := s.db.Order("created_at ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// PeekNext returns the oldest entry without removing it, or nil when empty.
func (s *QueueService) PeekNext() (*models.QueueEntry, error) {
	var entry models.QueueEntry
	err := s.db.Order("created_at ASC, id ASC").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// CallNext atomically reads and deletes the oldest entry. At-most-once: the
// mutex plus the transactional delete guarantee no entry is returned twice.
func (s *QueueService) CallNext() (*models.QueueEntry, error) {
	s.callMu.Lock()
	defer s.callMu.Unlock()

	var entry models.QueueEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("created_at ASC, id ASC").First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewEmptyQueueError("waitlist is empty")
			}
			return err
		}
		return tx.Delete(&models.QueueEntry{}, entry.ID).Error
	})
	if err != nil {
		return nil, err
	}

	ws.Broadcast(ws.EventWaitlistUpdate, entry)
	utils.InfoLogger.Printf("Waitlist: called %s (party of %d)", entry.CustomerName, entry.PartySize)
	return &entry, nil
}

// RemoveFromQueue deletes one entry by id.
func (s *QueueService) RemoveFromQueue(id uint) (*models.QueueEntry, error) {
	var entry models.QueueEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("waitlist entry %d not found", id)
			}
			return err
		}
		return tx.Delete(&models.QueueEntry{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	ws.Broadcast(ws.EventWaitlistUpdate, entry)
	return &entry, nil
}

// Count returns the number of waiting parties.
func (s *QueueService) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.QueueEntry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Clear removes every entry and returns how many were dropped.
func (s *QueueService) Clear() (int64, error) {
	result := s.db.Where("1 = 1").Delete(&models.QueueEntry{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
