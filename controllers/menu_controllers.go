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

type MenuController struct {
	DB      *gorm.DB
	service *services.MenuService
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{
		DB:      db,
		service: services.NewMenuService(db),
	}
}

func (mc *MenuController) category(c *gin.Context) (string, bool) {
	category, err := services.NormalizeCategory(c.Param("category"))
	if err != nil {
		utils.RespondServiceError(c, err)
		return "", false
	}
	return category, true
}

// GetFullMenu -> all three catalogs grouped; ?available=true filters
func (mc *MenuController) GetFullMenu(c *gin.Context) {
	availableOnly := c.Query("available") == "true"

	menu, err := mc.service.GetAll(availableOnly)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Full menu", menu)
}

// GetCategory -> one catalog
func (mc *MenuController) GetCategory(c *gin.Context) {
	category, ok := mc.category(c)
	if !ok {
		return
	}

	items, err := mc.service.GetByCategory(category, c.Query("available") == "true")
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, category+" menu", items)
}

// GetItem -> one menu item
func (mc *MenuController) GetItem(c *gin.Context) {
	category, ok := mc.category(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid menu item id: %s", c.Param("item_id")))
		return
	}

	item, err := mc.service.GetByID(category, uint(id))
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// CreateItem -> add an item; Special requires a non-negative price
func (mc *MenuController) CreateItem(c *gin.Context) {
	category, ok := mc.category(c)
	if !ok {
		return
	}

	var input services.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.service.Create(category, input)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateItem -> patch an item; availability toggles ride through here
func (mc *MenuController) UpdateItem(c *gin.Context) {
	category, ok := mc.category(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid menu item id: %s", c.Param("item_id")))
		return
	}

	var input services.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.service.Update(category, uint(id), input)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteItem -> remove an item; existing orders keep their snapshot
func (mc *MenuController) DeleteItem(c *gin.Context) {
	category, ok := mc.category(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid menu item id: %s", c.Param("item_id")))
		return
	}

	item, err := mc.service.Delete(category, uint(id))
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"id": item.ID})
}
