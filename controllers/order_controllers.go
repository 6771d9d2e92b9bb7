package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/moomoo-restaurant/pos-app/models"
	"github.com/moomoo-restaurant/pos-app/services"
	"github.com/moomoo-restaurant/pos-app/utils"
)

type OrderController struct {
	DB      *gorm.DB
	service *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:      db,
		service: services.NewOrderService(db),
	}
}

// CreateOrder -> place an order; queue type is derived from item composition
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		TableNumber int                         `json:"table_number" binding:"required"`
		Items       []services.OrderItemRequest `json:"items" binding:"required"`
		Notes       string                      `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.service.PlaceOrder(req.TableNumber, req.Items, req.Notes)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> detail of one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid order id: %s", c.Param("order_id")))
		return
	}

	order, err := oc.service.GetOrderByID(uint(id))
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetQueueOrders -> pending orders of one kitchen queue, FIFO
func (oc *OrderController) GetQueueOrders(c *gin.Context) {
	queueType := c.Param("queue_type")
	switch strings.ToLower(queueType) {
	case "normal":
		queueType = models.QueueTypeNormal
	case "special":
		queueType = models.QueueTypeSpecial
	}

	orders, err := oc.service.GetQueueOrders(queueType)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, queueType+" queue", orders)
}

// GetTableOrders -> every order placed from a table
func (oc *OrderController) GetTableOrders(c *gin.Context) {
	n, err := parseTableNumber(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	orders, err := oc.service.GetTableOrders(n)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders for table", orders)
}

// GetCompletedSpecialOrders -> completed a-la-carte orders of a table, the
// cashier's candidates for bill lines
func (oc *OrderController) GetCompletedSpecialOrders(c *gin.Context) {
	n, err := parseTableNumber(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	orders, err := oc.service.GetCompletedSpecialOrders(n)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Completed special orders", orders)
}

// CompleteOrder -> kitchen marks an order done, exactly once
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid order id: %s", c.Param("order_id")))
		return
	}

	order, err := oc.service.CompleteOrder(uint(id))
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order completed", order)
}
