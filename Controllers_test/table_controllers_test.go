package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/moomoo-restaurant/pos-app/controllers"
	"github.com/moomoo-restaurant/pos-app/models"
	"github.com/moomoo-restaurant/pos-app/utils"
)

func setupTestDBForTables(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Table{}, &models.Bill{}, &models.BillSpecialItem{})
	if err != nil {
		panic(err)
	}
	return db
}

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.GET("/tables/:table_number", tableCtrl.GetTableByNumber)
	router.POST("/tables/:table_number/open", tableCtrl.OpenTable)
	router.POST("/tables/:table_number/close", tableCtrl.CloseTable)
	router.POST("/tables/:table_number/verify-pin", tableCtrl.VerifyPin)
	return router
}

func TestGetAllTables(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	db.Create(&models.Table{TableNumber: 1, Status: models.TableStatusAvailable})
	db.Create(&models.Table{TableNumber: 2, Status: models.TableStatusAvailable})

	router := setupTableRouter(db)
	req, err := http.NewRequest("GET", "/tables", nil)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "List of tables", response["message"])

	data := response["data"].([]interface{})
	assert.GreaterOrEqual(t, len(data), 2)
}

func TestOpenTableEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	db.Create(&models.Table{TableNumber: 3, Status: models.TableStatusAvailable})

	router := setupTableRouter(db)
	body, _ := json.Marshal(map[string]interface{}{
		"customer_count": 2,
		"buffet_tier":    "Premium",
	})
	req, err := http.NewRequest("POST", "/tables/3/open", bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, true, response["status"])

	data := response["data"].(map[string]interface{})
	assert.Len(t, data["pin"], 6)
	assert.NotEmpty(t, data["encrypted_id"])
	assert.Equal(t, "Premium", data["buffet_tier"])

	// A second open on the same table must conflict.
	req, _ = http.NewRequest("POST", "/tables/3/open", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOpenTableEndpoint_BadRequest(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	db.Create(&models.Table{TableNumber: 4, Status: models.TableStatusAvailable})

	router := setupTableRouter(db)

	// Missing required fields
	req, _ := http.NewRequest("POST", "/tables/4/open", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Party too large
	body, _ := json.Marshal(map[string]interface{}{"customer_count": 5, "buffet_tier": "Starter"})
	req, _ = http.NewRequest("POST", "/tables/4/open", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Non-numeric table number
	body, _ = json.Marshal(map[string]interface{}{"customer_count": 2, "buffet_tier": "Starter"})
	req, _ = http.NewRequest("POST", "/tables/abc/open", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCloseTableEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	db.Create(&models.Table{TableNumber: 5, Status: models.TableStatusAvailable})

	router := setupTableRouter(db)

	// Closing an available table is a state error.
	req, _ := http.NewRequest("POST", "/tables/5/close", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	body, _ := json.Marshal(map[string]interface{}{"customer_count": 2, "buffet_tier": "Starter"})
	req, _ = http.NewRequest("POST", "/tables/5/open", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req, _ = http.NewRequest("POST", "/tables/5/close", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, models.TableStatusAvailable, data["status"])
}

func TestVerifyPinEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	db.Create(&models.Table{TableNumber: 6, Status: models.TableStatusAvailable})

	router := setupTableRouter(db)

	body, _ := json.Marshal(map[string]interface{}{"customer_count": 2, "buffet_tier": "Starter"})
	req, _ := http.NewRequest("POST", "/tables/6/open", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var opened map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &opened))
	pin := opened["data"].(map[string]interface{})["pin"].(string)

	body, _ = json.Marshal(map[string]string{"pin": pin})
	req, _ = http.NewRequest("POST", "/tables/6/verify-pin", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	body, _ = json.Marshal(map[string]string{"pin": "000000"})
	req, _ = http.NewRequest("POST", "/tables/6/verify-pin", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
