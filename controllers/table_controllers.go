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

type TableController struct {
	DB      *gorm.DB
	service *services.TableService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{
		DB:      db,
		service: services.NewTableService(db),
	}
}

func parseTableNumber(c *gin.Context) (int, error) {
	n, err := strconv.Atoi(c.Param("table_number"))
	if err != nil {
		return 0, fmt.Errorf("invalid table number: %s", c.Param("table_number"))
	}
	return n, nil
}

// GetAllTables -> list tables with derived countdown, optional ?status= filter
func (tc *TableController) GetAllTables(c *gin.Context) {
	status := c.Query("status")

	tables, err := tc.service.GetAllTables(status)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByNumber -> detail of one table
func (tc *TableController) GetTableByNumber(c *gin.Context) {
	n, err := parseTableNumber(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.service.GetTableByNumber(n)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// OpenTable -> seat a party, issue session credentials, open a bill
func (tc *TableController) OpenTable(c *gin.Context) {
	n, err := parseTableNumber(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		CustomerCount int    `json:"customer_count" binding:"required"`
		BuffetTier    string `json:"buffet_tier" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, creds, err := tc.service.OpenTable(n, req.CustomerCount, req.BuffetTier)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Table opened", gin.H{
		"pin":            creds.Pin,
		"encrypted_id":   creds.EncryptedID,
		"customer_count": table.CustomerCount,
		"buffet_tier":    table.BuffetTier,
		"table":          table,
	})
}

// CloseTable -> archive the active bill and reset the table
func (tc *TableController) CloseTable(c *gin.Context) {
	n, err := parseTableNumber(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.service.CloseTable(n)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table closed", table)
}

// VerifyPin -> customer UI checks its PIN against the open session
func (tc *TableController) VerifyPin(c *gin.Context) {
	n, err := parseTableNumber(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Pin string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.service.VerifyPin(n, req.Pin); err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "PIN verified", gin.H{"table_number": n})
}
