package services

import (
	"fmt"
	"strings"
	"text/template"
)

// Plain-text weekly reminder. Sent as text/plain for consistent
// rendering across mail clients.
const weeklyReminderText = `Hi {{.UserName}},

{{.MotivationMessage}}

YOUR SAVINGS THIS WEEK
----------------------
Weekly target across {{.TotalPlans}} plan{{if ne .TotalPlans 1}}s{{end}}: £{{printf "%.2f" .TotalTargetThisWeek}}
Saved so far: £{{printf "%.2f" .TotalSavedAmount}} of £{{printf "%.2f" .TotalTargetAmount}} ({{printf "%.1f" .OverallProgressPercentage}}%)
{{if .IsBehindSchedule}}Weeks behind on your worst plan: {{.TotalWeeksBehind}}
Total catch-up amount: £{{printf "%.2f" .CatchUpAmount}}
{{end}}
{{.CatchUpSuggestion}}

YOUR PLANS
----------
{{range .PlanSummaries}}* {{.Name}}: £{{printf "%.2f" .SavedAmount}} / £{{printf "%.2f" .TargetAmount}} ({{printf "%.1f" .ProgressPercentage}}%){{if .OnTrack}} - on track{{else}} - {{.WeeksBehind}} week{{if ne .WeeksBehind 1}}s{{end}} behind (£{{printf "%.0f" .BehindAmount}} to catch up){{end}}
  Weekly target: £{{printf "%.2f" .WeeklyTarget}}, remaining: £{{printf "%.2f" .RemainingAmount}}
{{end}}
Keep going - every pound counts!

{{if .AppURL}}Open the app: {{.AppURL}}
{{end}}{{if .UnsubscribeURL}}Unsubscribe from these reminders: {{.UnsubscribeURL}}
{{end}}`

var weeklyReminderTmpl = template.Must(template.New("weekly_reminder").Parse(weeklyReminderText))

// RenderWeeklyReminder produces the subject and plain-text body for one
// user's weekly reminder email.
func RenderWeeklyReminder(ctx ReminderContext) (subject, body string, err error) {
	subject = fmt.Sprintf("Your weekly savings reminder - £%.2f to go! 💰", ctx.TotalTargetThisWeek)

	var buf strings.Builder
	if err := weeklyReminderTmpl.Execute(&buf, ctx); err != nil {
		return "", "", fmt.Errorf("render weekly reminder: %w", err)
	}
	return subject, buf.String(), nil
}
