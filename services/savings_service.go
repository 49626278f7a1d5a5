package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Chukwuemekamusic/money-saver-api/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SavingsService struct{ db *gorm.DB }

func NewSavingsService(db *gorm.DB) *SavingsService { return &SavingsService{db: db} }

type WeeklyAmountInput struct {
	Amount    decimal.Decimal `json:"amount"`
	WeekIndex *int            `json:"week_index"`
	Selected  bool            `json:"selected"`
}

type SavingPlanInput struct {
	SavingsName   string              `json:"savings_name" binding:"required"`
	Amount        decimal.Decimal     `json:"amount"`
	NumberOfWeeks int                 `json:"number_of_weeks"`
	WeeklyAmounts []WeeklyAmountInput `json:"weekly_amounts"`
}

type SavingPlanUpdateInput struct {
	SavingsName   *string          `json:"savings_name"`
	Amount        *decimal.Decimal `json:"amount"`
	NumberOfWeeks *int             `json:"number_of_weeks"`
}

type WeeklyAmountUpdateInput struct {
	Amount   *decimal.Decimal `json:"amount"`
	Selected *bool            `json:"selected"`
}

func validatePlanInput(input SavingPlanInput) error {
	if input.SavingsName == "" || len(input.SavingsName) > 200 {
		return fmt.Errorf("%w: savings name must be 1-200 characters", ErrValidation)
	}
	if !input.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if input.NumberOfWeeks < 1 || input.NumberOfWeeks > models.MaxPlanWeeks {
		return fmt.Errorf("%w: number of weeks must be between 1 and %d", ErrValidation, models.MaxPlanWeeks)
	}
	for _, wa := range input.WeeklyAmounts {
		if !wa.Amount.IsPositive() {
			return fmt.Errorf("%w: weekly amount must be positive", ErrValidation)
		}
		if wa.WeekIndex != nil {
			if *wa.WeekIndex < 1 {
				return fmt.Errorf("%w: week index must be positive", ErrValidation)
			}
			if *wa.WeekIndex > input.NumberOfWeeks {
				return fmt.Errorf("%w: week index %d exceeds plan duration of %d weeks", ErrValidation, *wa.WeekIndex, input.NumberOfWeeks)
			}
		}
	}
	return nil
}

// CreatePlan creates a saving plan with optional initial weekly amounts.
func (s *SavingsService) CreatePlan(userID string, input SavingPlanInput) (*models.SavingPlan, error) {
	if err := validatePlanInput(input); err != nil {
		return nil, err
	}

	plan := models.SavingPlan{
		UserID:           userID,
		SavingsName:      input.SavingsName,
		Amount:           input.Amount,
		NumberOfWeeks:    input.NumberOfWeeks,
		TotalSavedAmount: decimal.Zero,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}
		now := time.Now().UTC()
		anySelected := false
		for _, wa := range input.WeeklyAmounts {
			week := models.WeeklyAmount{
				SavingPlanID: plan.ID,
				Amount:       wa.Amount,
				WeekIndex:    wa.WeekIndex,
				Selected:     wa.Selected,
			}
			if wa.Selected {
				selectedAt := now
				week.DateSelected = &selectedAt
				anySelected = true
			}
			if err := tx.Create(&week).Error; err != nil {
				return err
			}
		}
		if anySelected {
			return s.reconcilePlanLedger(tx, &plan, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetPlan(plan.ID, userID)
}

// ListPlans returns a page of the user's plans, newest first, with
// weekly amounts attached (indexed entries first, then by amount).
func (s *SavingsService) ListPlans(userID string, skip, limit int, includeDeleted bool) ([]models.SavingPlan, int64, error) {
	base := func() *gorm.DB {
		query := s.db.Model(&models.SavingPlan{})
		if includeDeleted {
			query = query.Unscoped()
		}
		return query.Where("user_id = ?", userID)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var plans []models.SavingPlan
	err := base().
		Preload("WeeklyAmounts", weeklyAmountOrder).
		Order("date_created DESC").
		Offset(skip).Limit(limit).
		Find(&plans).Error
	if err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

func weeklyAmountOrder(db *gorm.DB) *gorm.DB {
	return db.Order("week_index ASC NULLS LAST, amount ASC")
}

func (s *SavingsService) GetPlan(planID uint, userID string) (*models.SavingPlan, error) {
	var plan models.SavingPlan
	err := s.db.
		Preload("WeeklyAmounts", weeklyAmountOrder).
		Where("id = ? AND user_id = ?", planID, userID).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// UpdatePlan applies the provided fields; missing fields are left as-is
// (last write wins).
func (s *SavingsService) UpdatePlan(planID uint, userID string, input SavingPlanUpdateInput) (*models.SavingPlan, error) {
	plan, err := s.GetPlan(planID, userID)
	if err != nil {
		return nil, err
	}

	if input.SavingsName != nil {
		if *input.SavingsName == "" || len(*input.SavingsName) > 200 {
			return nil, fmt.Errorf("%w: savings name must be 1-200 characters", ErrValidation)
		}
		plan.SavingsName = *input.SavingsName
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
		}
		plan.Amount = *input.Amount
	}
	if input.NumberOfWeeks != nil {
		if *input.NumberOfWeeks < 1 || *input.NumberOfWeeks > models.MaxPlanWeeks {
			return nil, fmt.Errorf("%w: number of weeks must be between 1 and %d", ErrValidation, models.MaxPlanWeeks)
		}
		plan.NumberOfWeeks = *input.NumberOfWeeks
	}

	if err := s.db.Save(plan).Error; err != nil {
		return nil, err
	}
	return s.GetPlan(planID, userID)
}

// DeletePlan soft-deletes a plan and cascades the soft delete to its
// weekly amounts.
func (s *SavingsService) DeletePlan(planID uint, userID string) error {
	plan, err := s.GetPlan(planID, userID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("saving_plan_id = ?", plan.ID).Delete(&models.WeeklyAmount{}).Error; err != nil {
			return err
		}
		return tx.Delete(plan).Error
	})
}

// UpdateWeeklyAmount updates one weekly amount. A change to the selected
// flag stamps or clears date_selected, then re-derives every week index
// in the plan and rewrites the plan's saved total. The whole sequence
// runs in one transaction holding a row lock on the plan, so concurrent
// toggles on the same plan cannot rank from a stale snapshot.
func (s *SavingsService) UpdateWeeklyAmount(weeklyAmountID uint, userID string, input WeeklyAmountUpdateInput) (*models.WeeklyAmount, error) {
	if input.Amount != nil && !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	var updated models.WeeklyAmount
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Ownership lookup only; the authoritative read happens under
		// the plan lock below.
		var week models.WeeklyAmount
		err := tx.
			Joins("JOIN saving_plans ON saving_plans.id = weekly_amounts.saving_plan_id").
			Where("weekly_amounts.id = ? AND saving_plans.user_id = ? AND saving_plans.deleted_at IS NULL", weeklyAmountID, userID).
			First(&week).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var plan models.SavingPlan
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&plan, week.SavingPlanID).Error; err != nil {
			return err
		}

		// Re-read the row now that the lock is held; a concurrent
		// toggle may have committed between the lookup and the lock,
		// and the transition must be computed from its result.
		if err := tx.First(&week, weeklyAmountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := time.Now().UTC()
		selectionChanged, amountChanged := applyWeeklyAmountUpdate(&week, input, now)

		week.UpdatedAt = now
		if err := tx.Save(&week).Error; err != nil {
			return err
		}

		if selectionChanged || amountChanged {
			if err := s.reconcilePlanLedger(tx, &plan, now); err != nil {
				return err
			}
		}

		updated = week
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// applyWeeklyAmountUpdate applies the input to the row as currently
// stored and reports what changed. Selection is transition-based:
// re-sending the stored flag is a no-op and keeps date_selected, so the
// ledger only reorders on a real toggle.
func applyWeeklyAmountUpdate(week *models.WeeklyAmount, input WeeklyAmountUpdateInput, now time.Time) (selectionChanged, amountChanged bool) {
	if input.Amount != nil && !week.Amount.Equal(*input.Amount) {
		week.Amount = *input.Amount
		amountChanged = true
	}
	if input.Selected != nil && *input.Selected != week.Selected {
		week.Selected = *input.Selected
		if week.Selected {
			selectedAt := now
			week.DateSelected = &selectedAt
		} else {
			week.DateSelected = nil
		}
		selectionChanged = true
	}
	return selectionChanged, amountChanged
}

// reconcilePlanLedger re-derives week indices and the plan's saved total
// from the current ledger state. Must run inside the caller's
// transaction with the plan row locked.
func (s *SavingsService) reconcilePlanLedger(tx *gorm.DB, plan *models.SavingPlan, now time.Time) error {
	var amounts []models.WeeklyAmount
	if err := tx.Where("saving_plan_id = ?", plan.ID).Find(&amounts).Error; err != nil {
		return err
	}

	total := TotalSaved(amounts)
	if err := CheckSavedWithinTarget(total, plan.Amount); err != nil {
		return err
	}

	_, changed := RecalculateWeekIndices(amounts, now)
	for _, wa := range changed {
		err := tx.Model(&models.WeeklyAmount{}).
			Where("id = ?", wa.ID).
			Updates(map[string]interface{}{
				"week_index": wa.WeekIndex,
				"updated_at": now,
			}).Error
		if err != nil {
			return err
		}
	}

	return tx.Model(plan).Updates(map[string]interface{}{
		"total_saved_amount": total,
		"updated_at":         now,
	}).Error
}

// GetStats rolls up the user's savings statistics.
func (s *SavingsService) GetStats(userID string) (SavingPlanStats, error) {
	var plans []models.SavingPlan
	if err := s.db.Where("user_id = ?", userID).Find(&plans).Error; err != nil {
		return SavingPlanStats{}, err
	}
	return ComputeStats(plans), nil
}

// GetScheduleStatus evaluates a plan's schedule status as of now.
func (s *SavingsService) GetScheduleStatus(planID uint, userID string) (*ScheduleStatus, error) {
	plan, err := s.GetPlan(planID, userID)
	if err != nil {
		return nil, err
	}

	status, err := EvaluateSchedule(plan.DateCreated, plan.NumberOfWeeks, CountPaidWeeks(plan.WeeklyAmounts), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return &status, nil
}
