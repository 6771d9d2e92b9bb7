package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/moomoo-restaurant/pos-app/services"
	"github.com/moomoo-restaurant/pos-app/utils"
	"github.com/moomoo-restaurant/pos-app/ws"
)

type BillController struct {
	DB      *gorm.DB
	service *services.BillingService
}

func NewBillController(db *gorm.DB) *BillController {
	return &BillController{
		DB:      db,
		service: services.NewBillingService(db),
	}
}

func parseBillID(c *gin.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("bill_id"))
	if err != nil {
		return 0, fmt.Errorf("invalid bill id: %s", c.Param("bill_id"))
	}
	return uint(id), nil
}

// GetActiveBillForTable -> the table's running tab, or null if none
func (bc *BillController) GetActiveBillForTable(c *gin.Context) {
	n, err := parseTableNumber(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bill, err := bc.service.GetActiveBillForTable(n)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active bill", bill)
}

// GetBillByID -> one bill with its special items
func (bc *BillController) GetBillByID(c *gin.Context) {
	id, err := parseBillID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bill, err := bc.service.GetBillByID(id)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bill detail", bill)
}

// AddItemToBill -> append a special-item line and recompute totals
func (bc *BillController) AddItemToBill(c *gin.Context) {
	id, err := parseBillID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item services.BillItemInput
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bill, err := bc.service.AddItemToBill(id, item)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	ws.Broadcast(ws.EventBillUpdate, bill)
	utils.RespondJSON(c, http.StatusOK, "Item added to bill", bill)
}

// ArchiveBill -> settle the bill; archiving twice is an error
func (bc *BillController) ArchiveBill(c *gin.Context) {
	id, err := parseBillID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bill, err := bc.service.ArchiveBill(id)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	ws.Broadcast(ws.EventBillArchived, bill)
	utils.RespondJSON(c, http.StatusOK, "Bill archived", bill)
}

// PrintBill -> receipt projection of the table's active bill
func (bc *BillController) PrintBill(c *gin.Context) {
	n, err := parseTableNumber(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	printable, err := bc.service.GetPrintableBill(n)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Printable bill", printable)
}

// GetHistory -> archived bills, filterable by table and date range
func (bc *BillController) GetHistory(c *gin.Context) {
	filter := services.BillHistoryFilter{}

	if v := c.Query("table_number"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid table_number: %s", v))
			return
		}
		filter.TableNumber = n
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid start_date: %s", v))
			return
		}
		filter.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid end_date: %s", v))
			return
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	history, err := bc.service.GetHistoricalBills(filter)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bill history", history)
}
