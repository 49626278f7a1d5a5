package services

import (
	"fmt"
	"time"
)

const (
	StatusOnTrack   = "on-track"
	StatusAhead     = "ahead"
	StatusBehind    = "behind"
	StatusCompleted = "completed"
)

// ScheduleStatus is a derived snapshot of a plan against its weekly
// savings schedule. It is recomputed fresh on every call; nothing here
// is persisted.
type ScheduleStatus struct {
	Status        string     `json:"status"`
	WeeksElapsed  int        `json:"weeks_elapsed"`
	WeeksRequired int        `json:"weeks_required"`
	WeeksPaid     int        `json:"weeks_paid"`
	WeeksBehind   int        `json:"weeks_behind"`
	WeeksAhead    int        `json:"weeks_ahead"`
	Message       string     `json:"message"`
	NextDueDate   *time.Time `json:"next_due_date"`
}

// EvaluateSchedule classifies a plan's schedule status as of now.
//
// Full weeks elapsed since creation (floored at 0) sets how many weeks
// should have been paid, capped at the plan duration. A plan with all
// weeks paid is completed regardless of elapsed time.
func EvaluateSchedule(dateCreated time.Time, numberOfWeeks, weeksPaid int, now time.Time) (ScheduleStatus, error) {
	if numberOfWeeks <= 0 {
		return ScheduleStatus{}, fmt.Errorf("%w: number of weeks must be positive, got %d", ErrValidation, numberOfWeeks)
	}
	if weeksPaid < 0 {
		return ScheduleStatus{}, fmt.Errorf("%w: weeks paid cannot be negative, got %d", ErrValidation, weeksPaid)
	}

	days := int(now.Sub(dateCreated).Hours() / 24)
	weeksElapsed := days / 7
	if weeksElapsed < 0 {
		weeksElapsed = 0
	}

	weeksRequired := weeksElapsed
	if weeksRequired > numberOfWeeks {
		weeksRequired = numberOfWeeks
	}

	status := ScheduleStatus{
		WeeksElapsed:  weeksElapsed,
		WeeksRequired: weeksRequired,
		WeeksPaid:     weeksPaid,
	}

	if weeksPaid >= numberOfWeeks {
		status.Status = StatusCompleted
		status.Message = "Savings plan completed!"
		return status, nil
	}

	status.NextDueDate = nextDueDate(dateCreated, weeksPaid)

	if weeksPaid >= weeksRequired {
		weeksAhead := weeksPaid - weeksRequired
		if weeksAhead > 0 {
			status.Status = StatusAhead
			status.WeeksAhead = weeksAhead
			status.Message = fmt.Sprintf("Great! You're %d %s ahead of schedule", weeksAhead, pluralWeeks(weeksAhead))
		} else {
			status.Status = StatusOnTrack
			status.Message = "Perfect! You're on track with your savings schedule"
		}
		return status, nil
	}

	weeksBehind := weeksRequired - weeksPaid
	status.Status = StatusBehind
	status.WeeksBehind = weeksBehind
	status.Message = fmt.Sprintf("You're %d %s behind schedule. Catch up when you can!", weeksBehind, pluralWeeks(weeksBehind))
	return status, nil
}

// nextDueDate is the plan's creation day plus one week per paid week,
// counting the upcoming unpaid week.
func nextDueDate(dateCreated time.Time, weeksPaid int) *time.Time {
	year, month, day := dateCreated.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, dateCreated.Location())
	due := start.AddDate(0, 0, (weeksPaid+1)*7)
	return &due
}

func pluralWeeks(n int) string {
	if n == 1 {
		return "week"
	}
	return "weeks"
}
