package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/moomoo-restaurant/pos-app/utils"
	"github.com/moomoo-restaurant/pos-app/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// DashboardHandler upgrades the connection and registers it with the
// broadcast hub. The server only pushes; client messages are drained and
// ignored, the read loop exists to detect disconnects.
func DashboardHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("websocket upgrade failed: %v", err)
		return
	}

	ws.RegisterClient(conn)
	utils.InfoLogger.Printf("Dashboard client connected (%d total)", ws.ClientCount())

	go func() {
		defer func() {
			ws.UnregisterClient(conn)
			utils.InfoLogger.Printf("Dashboard client disconnected (%d total)", ws.ClientCount())
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
