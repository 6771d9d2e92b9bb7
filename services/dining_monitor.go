package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/moomoo-restaurant/pos-app/models"
	"github.com/moomoo-restaurant/pos-app/utils"
	"github.com/moomoo-restaurant/pos-app/ws"
)

// DiningMonitor periodically pushes the derived countdown of every open
// table to dashboard clients. The countdown itself is advisory: nothing is
// auto-closed when it hits zero, staff see the overtime flag and act.
type DiningMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewDiningMonitor(db *gorm.DB) *DiningMonitor {
	return &DiningMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 10 * time.Second,
	}
}

func (dm *DiningMonitor) Start() {
	go func() {
		ticker := time.NewTicker(dm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				dm.broadcastCountdowns()
			case <-dm.StopChan:
				return
			}
		}
	}()
}

func (dm *DiningMonitor) Stop() {
	close(dm.StopChan)
}

func (dm *DiningMonitor) broadcastCountdowns() {
	if ws.ClientCount() == 0 {
		return
	}

	var tables []models.Table
	if err := dm.DB.Where("status = ?", models.TableStatusOpen).
		Order("table_number ASC").
		Find(&tables).Error; err != nil {
		utils.ErrorLogger.Printf("dining monitor: fetching open tables failed: %v", err)
		return
	}
	if len(tables) == 0 {
		return
	}

	now := time.Now()
	views := make([]TableView, 0, len(tables))
	for _, t := range tables {
		views = append(views, toView(t, now))
	}

	ws.Broadcast(ws.EventDiningTick, views)
}
