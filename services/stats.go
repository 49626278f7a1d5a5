package services

import (
	"github.com/Chukwuemekamusic/money-saver-api/models"

	"github.com/shopspring/decimal"
)

// SavingPlanStats is a per-user rollup across all non-deleted plans.
type SavingPlanStats struct {
	TotalPlans           int             `json:"total_plans"`
	ActivePlans          int             `json:"active_plans"`
	CompletedPlans       int             `json:"completed_plans"`
	TotalTargetAmount    decimal.Decimal `json:"total_target_amount"`
	TotalSavedAmount     decimal.Decimal `json:"total_saved_amount"`
	CompletionPercentage float64         `json:"completion_percentage"`
}

// ComputeStats rolls up plan counts and totals. A plan counts as
// completed once its saved total reaches the target. The overall
// percentage is saved/target*100 rounded to two decimals, 0 when the
// target sum is 0.
func ComputeStats(plans []models.SavingPlan) SavingPlanStats {
	stats := SavingPlanStats{
		TotalTargetAmount: decimal.Zero,
		TotalSavedAmount:  decimal.Zero,
	}

	for _, plan := range plans {
		if plan.DeletedAt.Valid {
			continue
		}
		stats.TotalPlans++
		if plan.IsCompleted() {
			stats.CompletedPlans++
		}
		stats.TotalTargetAmount = stats.TotalTargetAmount.Add(plan.Amount)
		stats.TotalSavedAmount = stats.TotalSavedAmount.Add(plan.TotalSavedAmount)
	}

	stats.ActivePlans = stats.TotalPlans - stats.CompletedPlans

	if stats.TotalTargetAmount.IsPositive() {
		pct := stats.TotalSavedAmount.
			Div(stats.TotalTargetAmount).
			Mul(decimal.NewFromInt(100)).
			Round(2)
		stats.CompletionPercentage, _ = pct.Float64()
	}

	return stats
}
