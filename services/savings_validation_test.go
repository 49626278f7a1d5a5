package services

import (
	"errors"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestValidatePlanInput(t *testing.T) {
	t.Parallel()

	valid := func(t *testing.T) SavingPlanInput {
		return SavingPlanInput{
			SavingsName:   "Holiday",
			Amount:        dec(t, "400.00"),
			NumberOfWeeks: 20,
			WeeklyAmounts: []WeeklyAmountInput{
				{Amount: dec(t, "20.00"), WeekIndex: intPtr(1)},
				{Amount: dec(t, "20.00")},
			},
		}
	}

	cases := []struct {
		name    string
		mutate  func(*testing.T, *SavingPlanInput)
		wantErr bool
	}{
		{"valid input", func(t *testing.T, in *SavingPlanInput) {}, false},
		{"empty name", func(t *testing.T, in *SavingPlanInput) { in.SavingsName = "" }, true},
		{"zero amount", func(t *testing.T, in *SavingPlanInput) { in.Amount = dec(t, "0") }, true},
		{"negative amount", func(t *testing.T, in *SavingPlanInput) { in.Amount = dec(t, "-10") }, true},
		{"zero weeks", func(t *testing.T, in *SavingPlanInput) { in.NumberOfWeeks = 0 }, true},
		{"over two years", func(t *testing.T, in *SavingPlanInput) { in.NumberOfWeeks = 105 }, true},
		{"max weeks allowed", func(t *testing.T, in *SavingPlanInput) { in.NumberOfWeeks = 104 }, false},
		{"weekly amount zero", func(t *testing.T, in *SavingPlanInput) { in.WeeklyAmounts[1].Amount = dec(t, "0") }, true},
		{"week index zero", func(t *testing.T, in *SavingPlanInput) { in.WeeklyAmounts[0].WeekIndex = intPtr(0) }, true},
		{"week index past duration", func(t *testing.T, in *SavingPlanInput) { in.WeeklyAmounts[0].WeekIndex = intPtr(21) }, true},
		{"week index at duration", func(t *testing.T, in *SavingPlanInput) { in.WeeklyAmounts[0].WeekIndex = intPtr(20) }, false},
		{"nil week index allowed", func(t *testing.T, in *SavingPlanInput) { in.WeeklyAmounts[0].WeekIndex = nil }, false},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			input := valid(t)
			testCase.mutate(t, &input)

			err := validatePlanInput(input)
			if testCase.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func boolPtr(v bool) *bool { return &v }

func TestApplyWeeklyAmountUpdate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("deselect of a selected row is a transition", func(t *testing.T) {
		t.Parallel()
		week := selectedAmount(t, 1, "20.00", "2026-02-01T10:00:00Z")

		selectionChanged, amountChanged := applyWeeklyAmountUpdate(&week, WeeklyAmountUpdateInput{Selected: boolPtr(false)}, now)

		if !selectionChanged || amountChanged {
			t.Fatalf("expected selection transition only, got selection=%v amount=%v", selectionChanged, amountChanged)
		}
		if week.Selected || week.DateSelected != nil {
			t.Fatalf("expected deselected row with cleared date, got selected=%v date=%v", week.Selected, week.DateSelected)
		}
	})

	t.Run("deselect of an unselected row is a no-op", func(t *testing.T) {
		t.Parallel()
		week := unselectedAmount(t, 1, "20.00")

		selectionChanged, amountChanged := applyWeeklyAmountUpdate(&week, WeeklyAmountUpdateInput{Selected: boolPtr(false)}, now)

		if selectionChanged || amountChanged {
			t.Fatalf("expected no change, got selection=%v amount=%v", selectionChanged, amountChanged)
		}
	})

	t.Run("re-select keeps the original selection date", func(t *testing.T) {
		t.Parallel()
		week := selectedAmount(t, 1, "20.00", "2026-02-01T10:00:00Z")
		original := *week.DateSelected

		selectionChanged, _ := applyWeeklyAmountUpdate(&week, WeeklyAmountUpdateInput{Selected: boolPtr(true)}, now)

		if selectionChanged {
			t.Fatalf("re-select should not count as a transition")
		}
		if week.DateSelected == nil || !week.DateSelected.Equal(original) {
			t.Fatalf("expected selection date %v preserved, got %v", original, week.DateSelected)
		}
	})

	t.Run("select stamps the selection date", func(t *testing.T) {
		t.Parallel()
		week := unselectedAmount(t, 1, "20.00")

		selectionChanged, _ := applyWeeklyAmountUpdate(&week, WeeklyAmountUpdateInput{Selected: boolPtr(true)}, now)

		if !selectionChanged {
			t.Fatalf("expected selection transition")
		}
		if week.DateSelected == nil || !week.DateSelected.Equal(now) {
			t.Fatalf("expected selection date %v, got %v", now, week.DateSelected)
		}
	})

	t.Run("unchanged amount is not a change", func(t *testing.T) {
		t.Parallel()
		week := unselectedAmount(t, 1, "20.00")
		amount := dec(t, "20.00")

		_, amountChanged := applyWeeklyAmountUpdate(&week, WeeklyAmountUpdateInput{Amount: &amount}, now)

		if amountChanged {
			t.Fatalf("equal amount should not count as a change")
		}
	})

	t.Run("new amount reported without touching selection", func(t *testing.T) {
		t.Parallel()
		week := selectedAmount(t, 1, "20.00", "2026-02-01T10:00:00Z")
		amount := dec(t, "25.00")

		selectionChanged, amountChanged := applyWeeklyAmountUpdate(&week, WeeklyAmountUpdateInput{Amount: &amount}, now)

		if selectionChanged || !amountChanged {
			t.Fatalf("expected amount change only, got selection=%v amount=%v", selectionChanged, amountChanged)
		}
		if !week.Amount.Equal(amount) {
			t.Fatalf("expected amount 25.00, got %s", week.Amount)
		}
	})
}
