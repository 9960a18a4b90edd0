package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports ledger (postgres) and notification-queue (redis)
// connectivity. A degraded queue still returns 503: approval emails
// silently piling up is exactly what the probe exists to catch.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		ledgerStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			ledgerStatus = "error"
		}

		queueStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			queueStatus = "error"
		}

		status := http.StatusOK
		if ledgerStatus != "connected" || queueStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":      status == http.StatusOK,
			"service": "cash-reconciliation",
			"ledger":  ledgerStatus,
			"queue":   queueStatus,
		})
	}
}
