package controllers

import (
	"net/http"
	"time"

	"github.com/Chukwuemekamusic/money-saver-api/config"

	"github.com/gin-gonic/gin"
)

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Money Saver API",
		"version": "1.0.0",
		"health":  "/health",
	})
}

func HealthCheck(c *gin.Context) {
	health := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "money-saver-api",
		"version":   "1.0.0",
	}

	dbStatus := "connected"
	if config.DB == nil {
		dbStatus = "not configured"
	} else if sqlDB, err := config.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "connection failed"
		health["status"] = "degraded"
	}
	health["database"] = gin.H{"status": dbStatus}

	emailStatus := gin.H{"enabled": config.EmailEnabled()}
	if config.EmailEnabled() {
		emailStatus["reminder_schedule"] = gin.H{
			"day":    config.ReminderDay(),
			"hour":   config.ReminderHour(),
			"minute": config.ReminderMinute(),
		}
	}
	health["email_service"] = emailStatus

	if _email.scheduler != nil {
		if nextRun, ok := _email.scheduler.NextRun(); ok {
			health["scheduler"] = gin.H{"next_run_time": nextRun}
		} else {
			health["scheduler"] = gin.H{"next_run_time": nil}
		}
	}

	c.JSON(http.StatusOK, health)
}
