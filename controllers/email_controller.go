package controllers

import (
	"net/http"

	"github.com/Chukwuemekamusic/money-saver-api/config"
	"github.com/Chukwuemekamusic/money-saver-api/services"
	"github.com/Chukwuemekamusic/money-saver-api/utils"

	"github.com/gin-gonic/gin"
)

type emailDeps struct {
	mailer    services.Mailer
	reminders *services.ReminderService
	scheduler *services.SchedulerService
}

var _email emailDeps

// InitEmailDeps wires the process-lifetime mailer, reminder and
// scheduler services into the email endpoints.
func InitEmailDeps(mailer services.Mailer, reminders *services.ReminderService, scheduler *services.SchedulerService) {
	_email = emailDeps{mailer: mailer, reminders: reminders, scheduler: scheduler}
}

func GetEmailPreferences(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	user, err := services.NewUserService(config.DB).GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email_notifications": user.EmailNotifications,
		"last_reminder_sent":  user.LastReminderSent,
	})
}

func UpdateEmailPreferences(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	var body struct {
		EmailNotifications *bool `json:"email_notifications" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.NewUserService(config.DB).UpdateEmailPreferences(userID, *body.EmailNotifications)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update email preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email_notifications": user.EmailNotifications,
		"last_reminder_sent":  user.LastReminderSent,
	})
}

// SendTestEmail sends a plain test message, for development.
func SendTestEmail(c *gin.Context) {
	if _email.mailer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "email service disabled"})
		return
	}

	var body struct {
		RecipientEmail string `json:"recipient_email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := _email.mailer.Send(c.Request.Context(), body.RecipientEmail,
		"Money Saver - Test Email",
		"This is a test email from the Money Saver email service.")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send test email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test email sent successfully to " + body.RecipientEmail})
}

// SendTestReminder sends the weekly reminder to the current user now.
func SendTestReminder(c *gin.Context) {
	if _email.reminders == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "email service disabled"})
		return
	}

	userID := c.MustGet("userID").(string)
	if err := _email.reminders.SendTestReminder(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send test reminder"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test reminder sent successfully"})
}

func GetSchedulerStatus(c *gin.Context) {
	if _email.scheduler == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Weekly reminder job not found"})
		return
	}

	nextRun, ok := _email.scheduler.NextRun()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Weekly reminder job not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            "weekly_savings_reminder",
		"name":          "Weekly Savings Reminder",
		"next_run_time": nextRun,
	})
}

func TriggerWeeklyReminders(c *gin.Context) {
	if _email.scheduler == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to trigger weekly reminders"})
		return
	}

	_email.scheduler.TriggerNow()
	c.JSON(http.StatusOK, gin.H{"message": "Weekly reminders triggered successfully"})
}

// Unsubscribe disables reminder emails via the signed token carried in
// every reminder. Public route; the token is the credential.
func Unsubscribe(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token query parameter required"})
		return
	}

	userID, err := utils.ValidateUnsubscribeToken(token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired unsubscribe token"})
		return
	}

	user, err := services.NewUserService(config.DB).UpdateEmailPreferences(userID, false)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Successfully unsubscribed " + user.Email + " from email notifications",
		"user_email": user.Email,
		"status":     "unsubscribed",
	})
}
