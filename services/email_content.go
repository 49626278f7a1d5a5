package services

import (
	"fmt"
	"math"
	"time"

	"github.com/Chukwuemekamusic/money-saver-api/models"
)

// PlanSummary is the per-plan block of a weekly reminder email.
type PlanSummary struct {
	Name               string  `json:"name"`
	TargetAmount       float64 `json:"target_amount"`
	SavedAmount        float64 `json:"saved_amount"`
	WeeklyTarget       float64 `json:"weekly_target"`
	ProgressPercentage float64 `json:"progress_percentage"`
	RemainingAmount    float64 `json:"remaining_amount"`
	WeeksBehind        int     `json:"weeks_behind"`
	BehindAmount       float64 `json:"behind_amount"`
	OnTrack            bool    `json:"on_track"`
	WeeksElapsed       int     `json:"weeks_elapsed"`
	ExpectedSaved      float64 `json:"expected_saved"`
}

// ReminderContext carries everything the weekly reminder template needs.
type ReminderContext struct {
	UserName                  string
	TotalPlans                int
	TotalTargetThisWeek       float64
	TotalSavedAmount          float64
	TotalTargetAmount         float64
	OverallProgressPercentage float64
	PlanSummaries             []PlanSummary
	MotivationMessage         string
	CatchUpSuggestion         string
	SuggestedWeeklyAmount     float64
	TotalWeeksBehind          int
	CatchUpAmount             float64
	IsBehindSchedule          bool
	AppURL                    string
	UnsubscribeURL            string
}

// BuildReminderContext derives the variable reminder-email content from a
// user's active plans and rollup stats. The user "is N weeks behind"
// when their worst plan is N weeks behind; the catch-up amount sums the
// monetary gap across all plans.
func BuildReminderContext(user models.User, plans []models.SavingPlan, stats SavingPlanStats, now time.Time) ReminderContext {
	var (
		totalTargetThisWeek float64
		totalWeeksBehind    int
		catchUpAmount       float64
		summaries           []PlanSummary
	)

	for _, plan := range plans {
		if plan.DeletedAt.Valid {
			continue
		}

		target, _ := plan.Amount.Float64()
		saved, _ := plan.TotalSavedAmount.Float64()
		remaining, _ := plan.RemainingAmount().Float64()

		weeklyTarget := 0.0
		if plan.NumberOfWeeks > 0 {
			weeklyTarget = target / float64(plan.NumberOfWeeks)
		}
		totalTargetThisWeek += weeklyTarget

		progress := plan.CompletionPercentage()

		weeksElapsed := weeksElapsedForEmail(plan.DateCreated, now)
		expectedSaved := weeklyTarget * float64(weeksElapsed)
		behindAmount := math.Max(0, expectedSaved-saved)

		weeksBehind := 0
		if weeklyTarget > 0 {
			weeksBehind = int(behindAmount / weeklyTarget)
		}
		if weeksBehind > totalWeeksBehind {
			totalWeeksBehind = weeksBehind
		}
		catchUpAmount += behindAmount

		summaries = append(summaries, PlanSummary{
			Name:               plan.SavingsName,
			TargetAmount:       target,
			SavedAmount:        saved,
			WeeklyTarget:       weeklyTarget,
			ProgressPercentage: roundTo(progress, 1),
			RemainingAmount:    remaining,
			WeeksBehind:        weeksBehind,
			BehindAmount:       behindAmount,
			OnTrack:            weeksBehind == 0,
			WeeksElapsed:       weeksElapsed,
			ExpectedSaved:      expectedSaved,
		})
	}

	suggestion, suggestedAmount := catchUpSuggestion(totalWeeksBehind, catchUpAmount, totalTargetThisWeek)

	userName := user.FullName()
	if userName == "" {
		userName = "Saver"
	}

	totalSaved, _ := stats.TotalSavedAmount.Float64()
	totalTarget, _ := stats.TotalTargetAmount.Float64()

	return ReminderContext{
		UserName:                  userName,
		TotalPlans:                len(summaries),
		TotalTargetThisWeek:       roundTo(totalTargetThisWeek, 2),
		TotalSavedAmount:          totalSaved,
		TotalTargetAmount:         totalTarget,
		OverallProgressPercentage: roundTo(stats.CompletionPercentage, 1),
		PlanSummaries:             summaries,
		MotivationMessage:         motivationMessage(stats.CompletionPercentage, totalWeeksBehind),
		CatchUpSuggestion:         suggestion,
		SuggestedWeeklyAmount:     suggestedAmount,
		TotalWeeksBehind:          totalWeeksBehind,
		CatchUpAmount:             roundTo(catchUpAmount, 2),
		IsBehindSchedule:          totalWeeksBehind > 0,
	}
}

// weeksElapsedForEmail floors full days to weeks but never reports less
// than one week, so a just-created plan still shows a week of
// expectation in reminder math. Schedule-status evaluation deliberately
// uses the unclamped floor instead.
func weeksElapsedForEmail(dateCreated, now time.Time) int {
	days := int(truncateToDay(now).Sub(truncateToDay(dateCreated)).Hours() / 24)
	weeks := days / 7
	if weeks < 1 {
		return 1
	}
	return weeks
}

// motivationMessage picks the weekly pep talk: tiered first by how far
// behind the user is, then by overall progress when on track.
func motivationMessage(progressPct float64, weeksBehind int) string {
	switch {
	case weeksBehind == 0:
		switch {
		case progressPct >= 80:
			return "🌟 Fantastic! You're on track and crushing your savings goals! You're in the final stretch!"
		case progressPct >= 50:
			return "💪 Great job staying on track! You're more than halfway to your goals!"
		case progressPct >= 25:
			return "🎯 You're doing great! Staying consistent with your savings is the key to success!"
		default:
			return "🚀 Perfect start! You're building excellent savings habits by staying on schedule!"
		}
	case weeksBehind == 1:
		return "⏰ You're just one week behind schedule - no worries! A small catch-up this week will get you right back on track!"
	case weeksBehind == 2:
		return "📈 You've missed a couple of weeks, but you can still achieve your goals! Consider increasing this week's savings to catch up!"
	default:
		return "💡 It's never too late to get back on track! Even small amounts saved consistently can make a big difference. Every step counts!"
	}
}

// catchUpSuggestion proposes this week's contribution. The further
// behind a user is, the smaller the share of the missed amount asked
// for; at three or more weeks the extra is capped at half the normal
// weekly target. Displayed amounts are whole pounds, the returned value
// keeps full precision.
func catchUpSuggestion(weeksBehind int, catchUpAmount, weeklyTarget float64) (string, float64) {
	switch {
	case weeksBehind == 0:
		return fmt.Sprintf("You're perfectly on track! Just save your regular £%.0f this week.", weeklyTarget), weeklyTarget
	case weeksBehind == 1:
		suggested := weeklyTarget + catchUpAmount*0.5
		return fmt.Sprintf("Try saving £%.0f this week (£%.0f extra) to get closer to your target!", suggested, catchUpAmount*0.5), suggested
	case weeksBehind == 2:
		suggested := weeklyTarget + catchUpAmount*0.3
		return fmt.Sprintf("Consider saving £%.0f this week to start catching up gradually!", suggested), suggested
	default:
		suggested := weeklyTarget + math.Min(weeklyTarget*0.5, catchUpAmount*0.2)
		return fmt.Sprintf("Don't worry about catching up all at once! Try saving £%.0f this week - small consistent steps work best!", suggested), suggested
	}
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
