package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/moomoo-restaurant/pos-app/services"
	"github.com/moomoo-restaurant/pos-app/utils"
)

type QueueController struct {
	DB      *gorm.DB
	service *services.QueueService
}

func NewQueueController(db *gorm.DB) *QueueController {
	return &QueueController{
		DB:      db,
		service: services.NewQueueService(db),
	}
}

// GetAllQueue -> the waitlist, oldest first
func (qc *QueueController) GetAllQueue(c *gin.Context) {
	entries, err := qc.service.GetAllQueue()
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waitlist", gin.H{
		"count":   len(entries),
		"entries": entries,
	})
}

// PeekNext -> the next party without removing them
func (qc *QueueController) PeekNext(c *gin.Context) {
	entry, err := qc.service.PeekNext()
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Next in waitlist", entry)
}

// AddToQueue -> walk-in customer joins the waitlist
func (qc *QueueController) AddToQueue(c *gin.Context) {
	var req struct {
		CustomerName  string `json:"customer_name" binding:"required"`
		CustomerPhone string `json:"customer_phone"`
		PartySize     int    `json:"party_size" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	entry, err := qc.service.AddToQueue(req.CustomerName, req.CustomerPhone, req.PartySize)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Added to waitlist", entry)
}

// CallNext -> hand the oldest party to the host, removing them
func (qc *QueueController) CallNext(c *gin.Context) {
	entry, err := qc.service.CallNext()
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer called", entry)
}

// ClearQueue -> drop the whole waitlist, end of service
func (qc *QueueController) ClearQueue(c *gin.Context) {
	removed, err := qc.service.Clear()
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waitlist cleared", gin.H{"removed": removed})
}

// RemoveFromQueue -> drop one entry by id
func (qc *QueueController) RemoveFromQueue(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("queue_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid queue id: %s", c.Param("queue_id")))
		return
	}

	entry, err := qc.service.RemoveFromQueue(uint(id))
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Removed from waitlist", entry)
}
