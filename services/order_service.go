package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/moomoo-restaurant/pos-app/models"
	"github.com/moomoo-restaurant/pos-app/utils"
	"github.com/moomoo-restaurant/pos-app/ws"
)

// OrderService routes incoming orders into the Normal or Special kitchen
// queue and drives the Pending -> Completed transition.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// OrderItemRequest references a menu item by category and id.
type OrderItemRequest struct {
	Category string `json:"category" binding:"required"`
	MenuItem uint   `json:"menu_item" binding:"required"`
	Quantity int    `json:"quantity"`
}

// PlaceOrder validates the table, snapshots menu data onto the order items
// and routes the whole order: one Special-catalog item sends the entire
// order to the Special queue, otherwise it goes to the Normal queue.
func (s *OrderService) PlaceOrder(tableNumber int, items []OrderItemRequest, notes string) (*models.Order, error) {
	if len(items) == 0 {
		return nil, utils.NewValidationError("order must contain at least one item")
	}

	var table models.Table
	err := s.db.Where("table_number = ?", tableNumber).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("table %d not found", tableNumber)
	}
	if err != nil {
		return nil, err
	}
	if table.Status != models.TableStatusOpen {
		return nil, utils.NewStateError("table %d is not open for orders", tableNumber)
	}

	// Enrich each item from the catalog. Prices and names are snapshotted at
	// order time; later menu edits never touch placed orders.
	enriched := make([]models.OrderItem, 0, len(items))
	hasSpecialItems := false
	for _, item := range items {
		if !models.ValidMenuCategory(item.Category) {
			return nil, utils.NewValidationError("invalid menu category: %s", item.Category)
		}

		var menuItem models.MenuItem
		err := s.db.Where("category = ? AND id = ?", item.Category, item.MenuItem).First(&menuItem).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("menu item %d not found in %s menu", item.MenuItem, item.Category)
		}
		if err != nil {
			return nil, err
		}
		if !menuItem.IsAvailable {
			return nil, utils.NewUnavailableError("%s is currently unavailable", menuItem.NameEnglish)
		}

		if menuItem.Category == models.MenuCategorySpecial {
			hasSpecialItems = true
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		enriched = append(enriched, models.OrderItem{
			MenuItemID:  menuItem.ID,
			Category:    menuItem.Category,
			NameThai:    menuItem.NameThai,
			NameEnglish: menuItem.NameEnglish,
			Price:       menuItem.Price,
			Quantity:    quantity,
		})
	}

	queueType := models.QueueTypeNormal
	if hasSpecialItems {
		queueType = models.QueueTypeSpecial
	}

	order := models.Order{
		TableNumber: tableNumber,
		QueueType:   queueType,
		Status:      models.OrderStatusPending,
		Notes:       notes,
		OrderItems:  enriched,
	}
	if err := s.db.Create(&order).Error; err != nil {
		return nil, err
	}

	ws.Broadcast(ws.EventOrderCreate, order)
	utils.InfoLogger.Printf("Order %d placed for table %d -> %s queue (%d items)", order.ID, tableNumber, queueType, len(enriched))
	return &order, nil
}

// GetOrderByID returns one order with its items.
func (s *OrderService) GetOrderByID(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("OrderItems").First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("order %d not found", orderID)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetQueueOrders lists pending orders of one queue in strict FIFO order.
func (s *OrderService) GetQueueOrders(queueType string) ([]models.Order, error) {
	if queueType != models.QueueTypeNormal && queueType != models.QueueTypeSpecial {
		return nil, utils.NewValidationError("invalid queue type: %s", queueType)
	}

	var orders []models.Order
	err := s.db.Preload("OrderItems").
		Where("queue_type = ? AND status = ?", queueType, models.OrderStatusPending).
		Order("created_at ASC, id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetTableOrders lists every order placed from one table, newest first.
func (s *OrderService) GetTableOrders(tableNumber int) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("OrderItems").
		Where("table_number = ?", tableNumber).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// CompleteOrder transitions Pending -> Completed exactly once.
func (s *OrderService) CompleteOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("OrderItems").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("order %d not found", orderID)
			}
			return err
		}
		if order.Status == models.OrderStatusCompleted {
			return utils.NewStateError("order %d is already completed", orderID)
		}

		now := time.Now()
		order.Status = models.OrderStatusCompleted
		order.CompletedAt = &now
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	ws.Broadcast(ws.EventOrderComplete, order)
	utils.InfoLogger.Printf("Order %d completed (%s queue, table %d)", order.ID, order.QueueType, order.TableNumber)
	return &order, nil
}

// GetCompletedSpecialOrders lists completed Special-queue orders for a table.
// These are the billing candidates: their Special-catalog items roll into
// the table's active bill.
func (s *OrderService) GetCompletedSpecialOrders(tableNumber int) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("OrderItems").
		Where("table_number = ? AND queue_type = ? AND status = ?",
			tableNumber, models.QueueTypeSpecial, models.OrderStatusCompleted).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
