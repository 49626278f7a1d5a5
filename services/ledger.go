package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/Chukwuemekamusic/money-saver-api/models"

	"github.com/shopspring/decimal"
)

// RecalculateWeekIndices re-derives week indices for a plan's weekly
// amounts from their selection order. Selected amounts are ranked by
// date_selected ascending (1-based); ties keep input order. Unselected
// amounts lose their index. Soft-deleted rows are ignored.
//
// Returns the full non-deleted set, selected entries first by index then
// unselected by amount ascending, plus the subset whose index actually
// changed (those are stamped with updatedAt and need persisting).
func RecalculateWeekIndices(amounts []models.WeeklyAmount, now time.Time) (ordered, changed []models.WeeklyAmount) {
	var selected, unselected []models.WeeklyAmount
	for _, wa := range amounts {
		if wa.DeletedAt.Valid {
			continue
		}
		if wa.Selected {
			selected = append(selected, wa)
		} else {
			unselected = append(unselected, wa)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		a, b := selected[i].DateSelected, selected[j].DateSelected
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.Before(*b)
	})

	for i := range selected {
		rank := i + 1
		if selected[i].WeekIndex == nil || *selected[i].WeekIndex != rank {
			selected[i].WeekIndex = &rank
			selected[i].UpdatedAt = now
			changed = append(changed, selected[i])
		}
	}

	for i := range unselected {
		if unselected[i].WeekIndex != nil {
			unselected[i].WeekIndex = nil
			unselected[i].UpdatedAt = now
			changed = append(changed, unselected[i])
		}
	}

	sort.SliceStable(unselected, func(i, j int) bool {
		return unselected[i].Amount.LessThan(unselected[j].Amount)
	})

	ordered = append(ordered, selected...)
	ordered = append(ordered, unselected...)
	return ordered, changed
}

// TotalSaved sums the amounts of selected, non-deleted weekly amounts.
func TotalSaved(amounts []models.WeeklyAmount) decimal.Decimal {
	total := decimal.Zero
	for _, wa := range amounts {
		if wa.Selected && !wa.DeletedAt.Valid {
			total = total.Add(wa.Amount)
		}
	}
	return total
}

// CheckSavedWithinTarget rejects a derived total that would push a plan
// past its target; the database enforces the same rule with a check
// constraint, this surfaces it as a validation error before the write.
func CheckSavedWithinTarget(total, target decimal.Decimal) error {
	if total.GreaterThan(target) {
		return fmt.Errorf("%w: selected amounts total %s exceeds plan target %s", ErrValidation, total, target)
	}
	return nil
}

// CountPaidWeeks counts selected, non-deleted weekly amounts.
func CountPaidWeeks(amounts []models.WeeklyAmount) int {
	count := 0
	for _, wa := range amounts {
		if wa.Selected && !wa.DeletedAt.Valid {
			count++
		}
	}
	return count
}
