package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/moomoo-restaurant/pos-app/controllers"
	"github.com/moomoo-restaurant/pos-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	tableCtrl := controllers.NewTableController(db)
	orderCtrl := controllers.NewOrderController(db)
	billCtrl := controllers.NewBillController(db)
	menuCtrl := controllers.NewMenuController(db)
	queueCtrl := controllers.NewQueueController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// TABLES
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:table_number", tableCtrl.GetTableByNumber)
	r.POST("/tables/:table_number/open", tableCtrl.OpenTable)
	r.POST("/tables/:table_number/close", tableCtrl.CloseTable)

	// PIN checks come from the customer UI; keep them behind the strict limiter
	verify := r.Group("/")
	verify.Use(middlewares.NewStrictRateLimiter())
	{
		verify.POST("/tables/:table_number/verify-pin", tableCtrl.VerifyPin)
	}

	// ORDERS
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.GET("/orders/table/:table_number", orderCtrl.GetTableOrders)
	r.GET("/orders/table/:table_number/completed-special", orderCtrl.GetCompletedSpecialOrders)
	r.GET("/orders/queue/:queue_type", orderCtrl.GetQueueOrders)
	r.POST("/orders/:order_id/complete", orderCtrl.CompleteOrder)

	// BILLS
	r.GET("/bills/history", billCtrl.GetHistory)
	r.GET("/bills/table/:table_number", billCtrl.GetActiveBillForTable)
	r.GET("/bills/table/:table_number/print", billCtrl.PrintBill)
	r.GET("/bills/:bill_id", billCtrl.GetBillByID)
	r.POST("/bills/:bill_id/items", billCtrl.AddItemToBill)
	r.POST("/bills/:bill_id/archive", billCtrl.ArchiveBill)

	// MENU
	r.GET("/menu", menuCtrl.GetFullMenu)
	r.GET("/menu/:category", menuCtrl.GetCategory)
	r.POST("/menu/:category", menuCtrl.CreateItem)
	r.GET("/menu/:category/:item_id", menuCtrl.GetItem)
	r.PATCH("/menu/:category/:item_id", menuCtrl.UpdateItem)
	r.PUT("/menu/:category/:item_id", menuCtrl.UpdateItem)
	r.DELETE("/menu/:category/:item_id", menuCtrl.DeleteItem)

	// WAITLIST
	r.GET("/queue", queueCtrl.GetAllQueue)
	r.GET("/queue/next", queueCtrl.PeekNext)
	r.POST("/queue", queueCtrl.AddToQueue)
	r.POST("/queue/call-next", queueCtrl.CallNext)
	r.DELETE("/queue", queueCtrl.ClearQueue)
	r.DELETE("/queue/:queue_id", queueCtrl.RemoveFromQueue)

	// Dashboard live feed
	r.GET("/ws/dashboard", controllers.DashboardHandler)

	return r
}
