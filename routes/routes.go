package routes

import (
	"github.com/Chukwuemekamusic/money-saver-api/controllers"
	"github.com/Chukwuemekamusic/money-saver-api/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/", controllers.Root)
	r.GET("/health", controllers.HealthCheck)

	v1 := r.Group("/api/v1")

	// Unsubscribe is reached from email links; the signed token is the
	// credential, so no bearer auth here.
	v1.GET("/email/unsubscribe", controllers.Unsubscribe)

	auth := v1.Group("/auth")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/sync-user", controllers.SyncUser)
		auth.GET("/me", controllers.GetProfile)
		auth.POST("/verify-token", controllers.VerifyToken)
		auth.POST("/logout", controllers.Logout)
	}

	savings := v1.Group("/savings")
	savings.Use(middlewares.AuthMiddleware())
	{
		savings.POST("/plans", controllers.CreateSavingPlan)
		savings.GET("/plans", controllers.GetSavingPlans)
		savings.GET("/plans/:id", controllers.GetSavingPlan)
		savings.PUT("/plans/:id", controllers.UpdateSavingPlan)
		savings.DELETE("/plans/:id", controllers.DeleteSavingPlan)
		savings.GET("/plans/:id/schedule-status", controllers.GetPlanScheduleStatus)

		savings.PUT("/weekly-amounts/:id", controllers.UpdateWeeklyAmount)
		savings.POST("/weekly-amounts/:id/select", controllers.SelectWeeklyAmount)

		savings.GET("/stats", controllers.GetSavingsStats)
	}

	email := v1.Group("/email")
	email.Use(middlewares.AuthMiddleware())
	{
		email.GET("/preferences", controllers.GetEmailPreferences)
		email.PUT("/preferences", controllers.UpdateEmailPreferences)
		email.POST("/test", controllers.SendTestEmail)
		email.POST("/send-reminder", controllers.SendTestReminder)
		email.GET("/scheduler/status", controllers.GetSchedulerStatus)
		email.POST("/scheduler/trigger", controllers.TriggerWeeklyReminders)
	}

	return r
}
