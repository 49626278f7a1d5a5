package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Chukwuemekamusic/money-saver-api/config"

	"github.com/robfig/cron/v3"
)

// SchedulerService owns the weekly reminder trigger. It is decoupled
// from the HTTP server: explicit Start/Stop, next-run query, and a
// manual trigger for testing.
type SchedulerService struct {
	cron      *cron.Cron
	reminders *ReminderService
	entryID   cron.EntryID
	scheduled bool
}

var cronDays = map[string]int{
	"sunday": 0, "monday": 1, "tuesday": 2, "wednesday": 3,
	"thursday": 4, "friday": 5, "saturday": 6,
}

func NewSchedulerService(reminders *ReminderService) *SchedulerService {
	s := &SchedulerService{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		reminders: reminders,
	}

	if !config.EmailEnabled() {
		log.Printf("Weekly reminder job not scheduled - email disabled")
		return s
	}

	day := config.ReminderDay()
	hour := config.ReminderHour()
	minute := config.ReminderMinute()

	spec := fmt.Sprintf("%d %d * * %d", minute, hour, cronDays[day])
	entryID, err := s.cron.AddFunc(spec, s.runCycle)
	if err != nil {
		log.Printf("Failed to schedule weekly reminder job: %v", err)
		return s
	}

	s.entryID = entryID
	s.scheduled = true
	log.Printf("Weekly reminder job scheduled for %s at %02d:%02d UTC", day, hour, minute)
	return s
}

func (s *SchedulerService) runCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if _, err := s.reminders.SendWeeklyReminders(ctx); err != nil {
		log.Printf("Weekly reminder cycle failed: %v", err)
	}
}

func (s *SchedulerService) Start() {
	s.cron.Start()
	log.Printf("Scheduler started")
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Printf("Scheduler stopped")
}

// NextRun reports when the weekly reminder job fires next. The second
// return is false when no job is scheduled.
func (s *SchedulerService) NextRun() (time.Time, bool) {
	if !s.scheduled {
		return time.Time{}, false
	}
	entry := s.cron.Entry(s.entryID)
	if entry.ID == 0 {
		return time.Time{}, false
	}
	return entry.Next, true
}

// TriggerNow runs a reminder cycle in the background, outside the
// weekly cadence. Overlap with a scheduled run is coalesced by the
// reminder service itself.
func (s *SchedulerService) TriggerNow() {
	go s.runCycle()
	log.Printf("Weekly reminder cycle triggered manually")
}
