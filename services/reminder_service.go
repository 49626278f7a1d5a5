package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Chukwuemekamusic/money-saver-api/models"
	"github.com/Chukwuemekamusic/money-saver-api/utils"

	"gorm.io/gorm"
)

// Mailer sends a plain-text email. Implemented by utils.SESMailer.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// One slow mailbox must not stall the whole cycle.
const perUserSendTimeout = 30 * time.Second

type ReminderService struct {
	db      *gorm.DB
	mailer  Mailer
	savings *SavingsService

	appURL     string
	apiBaseURL string

	// Serializes reminder cycles; an overlapping trigger is coalesced
	// into a no-op.
	running sync.Mutex
}

func NewReminderService(db *gorm.DB, mailer Mailer, appURL, apiBaseURL string) *ReminderService {
	return &ReminderService{
		db:         db,
		mailer:     mailer,
		savings:    NewSavingsService(db),
		appURL:     appURL,
		apiBaseURL: apiBaseURL,
	}
}

// CycleResult summarizes one reminder cycle.
type CycleResult struct {
	Eligible int `json:"eligible"`
	Sent     int `json:"sent"`
	Failed   int `json:"failed"`
}

// SendWeeklyReminders runs one reminder cycle over all eligible users.
// Per-user failures are logged and counted; they never abort the batch.
// If a cycle is already in flight the call returns immediately.
func (r *ReminderService) SendWeeklyReminders(ctx context.Context) (CycleResult, error) {
	if !r.running.TryLock() {
		log.Printf("Reminder cycle already running, skipping trigger")
		return CycleResult{}, nil
	}
	defer r.running.Unlock()

	log.Printf("Starting weekly reminder email process")

	users, err := r.eligibleUsers()
	if err != nil {
		return CycleResult{}, fmt.Errorf("load eligible users: %w", err)
	}
	log.Printf("Found %d eligible users for weekly reminders", len(users))

	result := CycleResult{Eligible: len(users)}
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := r.sendUserReminder(ctx, user); err != nil {
			log.Printf("Error sending reminder to %s: %v", user.Email, err)
			result.Failed++
			continue
		}
		result.Sent++
	}

	log.Printf("Weekly reminder process completed. Sent: %d, Errors: %d", result.Sent, result.Failed)
	return result, nil
}

// eligibleUsers selects active users who opted in to email reminders
// and still have at least one active saving plan.
func (r *ReminderService) eligibleUsers() ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("is_active = ? AND email_notifications = ? AND email <> ''", true, true).
		Where("EXISTS (SELECT 1 FROM saving_plans WHERE saving_plans.user_id = users.id AND saving_plans.deleted_at IS NULL)").
		Find(&users).Error
	return users, err
}

func (r *ReminderService) sendUserReminder(ctx context.Context, user models.User) error {
	if r.mailer == nil {
		return fmt.Errorf("email service disabled")
	}

	sendCtx, cancel := context.WithTimeout(ctx, perUserSendTimeout)
	defer cancel()

	plans, _, err := r.savings.ListPlans(user.ID, 0, 100, false)
	if err != nil {
		return fmt.Errorf("load plans: %w", err)
	}
	stats, err := r.savings.GetStats(user.ID)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	content := BuildReminderContext(user, plans, stats, time.Now().UTC())
	content.AppURL = r.appURL

	token, err := utils.GenerateUnsubscribeToken(user.ID)
	if err != nil {
		return fmt.Errorf("generate unsubscribe token: %w", err)
	}
	content.UnsubscribeURL = fmt.Sprintf("%s/api/v1/email/unsubscribe?token=%s", r.apiBaseURL, token)

	subject, body, err := RenderWeeklyReminder(content)
	if err != nil {
		return err
	}

	if err := r.mailer.Send(sendCtx, user.Email, subject, body); err != nil {
		return err
	}

	now := time.Now().UTC()
	return r.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("last_reminder_sent", now).Error
}

// SendTestReminder sends one reminder to a single user regardless of
// schedule, for development and testing.
func (r *ReminderService) SendTestReminder(ctx context.Context, userID string) error {
	var user models.User
	if err := r.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return ErrNotFound
	}
	return r.sendUserReminder(ctx, user)
}
