package services

import (
	"errors"
	"testing"
	"time"
)

func TestEvaluateSchedule(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name          string
		createdDaysAgo int
		numberOfWeeks int
		weeksPaid     int
		wantStatus    string
		wantElapsed   int
		wantRequired  int
		wantBehind    int
		wantAhead     int
	}{
		{
			name: "behind by two weeks", createdDaysAgo: 21, numberOfWeeks: 20, weeksPaid: 1,
			wantStatus: StatusBehind, wantElapsed: 3, wantRequired: 3, wantBehind: 2,
		},
		{
			name: "brand new plan is on track", createdDaysAgo: 0, numberOfWeeks: 12, weeksPaid: 0,
			wantStatus: StatusOnTrack, wantElapsed: 0, wantRequired: 0,
		},
		{
			name: "first week still on track", createdDaysAgo: 6, numberOfWeeks: 12, weeksPaid: 0,
			wantStatus: StatusOnTrack, wantElapsed: 0, wantRequired: 0,
		},
		{
			name: "exactly on schedule", createdDaysAgo: 14, numberOfWeeks: 10, weeksPaid: 2,
			wantStatus: StatusOnTrack, wantElapsed: 2, wantRequired: 2,
		},
		{
			name: "ahead by two weeks", createdDaysAgo: 28, numberOfWeeks: 12, weeksPaid: 6,
			wantStatus: StatusAhead, wantElapsed: 4, wantRequired: 4, wantAhead: 2,
		},
		{
			name: "all weeks paid completes immediately", createdDaysAgo: 0, numberOfWeeks: 4, weeksPaid: 4,
			wantStatus: StatusCompleted, wantElapsed: 0, wantRequired: 0,
		},
		{
			name: "overpaying past the duration still completed", createdDaysAgo: 7, numberOfWeeks: 4, weeksPaid: 6,
			wantStatus: StatusCompleted, wantElapsed: 1, wantRequired: 1,
		},
		{
			name: "required weeks capped at duration", createdDaysAgo: 300, numberOfWeeks: 10, weeksPaid: 4,
			wantStatus: StatusBehind, wantElapsed: 42, wantRequired: 10, wantBehind: 6,
		},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			created := now.AddDate(0, 0, -testCase.createdDaysAgo)
			got, err := EvaluateSchedule(created, testCase.numberOfWeeks, testCase.weeksPaid, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.Status != testCase.wantStatus {
				t.Fatalf("expected status %q, got %q", testCase.wantStatus, got.Status)
			}
			if got.WeeksElapsed != testCase.wantElapsed {
				t.Fatalf("expected %d weeks elapsed, got %d", testCase.wantElapsed, got.WeeksElapsed)
			}
			if got.WeeksRequired != testCase.wantRequired {
				t.Fatalf("expected %d weeks required, got %d", testCase.wantRequired, got.WeeksRequired)
			}
			if got.WeeksBehind != testCase.wantBehind {
				t.Fatalf("expected %d weeks behind, got %d", testCase.wantBehind, got.WeeksBehind)
			}
			if got.WeeksAhead != testCase.wantAhead {
				t.Fatalf("expected %d weeks ahead, got %d", testCase.wantAhead, got.WeeksAhead)
			}

			if testCase.wantStatus == StatusCompleted {
				if got.NextDueDate != nil {
					t.Fatalf("completed plan must have no next due date, got %v", got.NextDueDate)
				}
			} else if got.NextDueDate == nil {
				t.Fatalf("expected a next due date for status %q", got.Status)
			}
		})
	}
}

func TestEvaluateSchedule_NextDueDate(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 1, 5, 15, 30, 0, 0, time.UTC)
	now := created.AddDate(0, 0, 21)

	got, err := EvaluateSchedule(created, 10, 2, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Creation day truncated to midnight, plus (paid+1)*7 days.
	want := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 21)
	if got.NextDueDate == nil || !got.NextDueDate.Equal(want) {
		t.Fatalf("expected next due date %s, got %v", want, got.NextDueDate)
	}
}

func TestEvaluateSchedule_Messages(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name          string
		createdDaysAgo int
		numberOfWeeks int
		weeksPaid     int
		wantMessage   string
	}{
		{"one week behind singular", 14, 10, 1, "You're 1 week behind schedule. Catch up when you can!"},
		{"two weeks behind plural", 21, 10, 1, "You're 2 weeks behind schedule. Catch up when you can!"},
		{"one week ahead singular", 7, 10, 2, "Great! You're 1 week ahead of schedule"},
		{"three weeks ahead plural", 7, 10, 4, "Great! You're 3 weeks ahead of schedule"},
		{"on track", 7, 10, 1, "Perfect! You're on track with your savings schedule"},
		{"completed", 7, 2, 2, "Savings plan completed!"},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			created := now.AddDate(0, 0, -testCase.createdDaysAgo)
			got, err := EvaluateSchedule(created, testCase.numberOfWeeks, testCase.weeksPaid, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Message != testCase.wantMessage {
				t.Fatalf("expected message %q, got %q", testCase.wantMessage, got.Message)
			}
		})
	}
}

func TestEvaluateSchedule_PureFunction(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)

	first, err := EvaluateSchedule(created, 8, 3, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := EvaluateSchedule(created, 8, 3, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Status != second.Status || first.WeeksBehind != second.WeeksBehind ||
		first.Message != second.Message {
		t.Fatalf("identical inputs produced different outputs: %+v vs %+v", first, second)
	}
	if (first.NextDueDate == nil) != (second.NextDueDate == nil) {
		t.Fatalf("identical inputs produced different due dates")
	}
	if first.NextDueDate != nil && !first.NextDueDate.Equal(*second.NextDueDate) {
		t.Fatalf("identical inputs produced different due dates: %v vs %v", first.NextDueDate, second.NextDueDate)
	}
}

func TestEvaluateSchedule_FutureCreationClampsToZero(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	created := now.AddDate(0, 0, 14) // clock skew: plan "created" in the future

	got, err := EvaluateSchedule(created, 10, 0, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.WeeksElapsed != 0 || got.Status != StatusOnTrack {
		t.Fatalf("expected elapsed clamped to 0 and on-track, got elapsed=%d status=%s", got.WeeksElapsed, got.Status)
	}
}

func TestEvaluateSchedule_InvalidInput(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	if _, err := EvaluateSchedule(now, 0, 0, now); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for zero duration, got %v", err)
	}
	if _, err := EvaluateSchedule(now, -5, 0, now); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for negative duration, got %v", err)
	}
	if _, err := EvaluateSchedule(now, 10, -1, now); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for negative weeks paid, got %v", err)
	}
}
