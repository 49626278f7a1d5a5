package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SavingPlan is a savings goal broken into weekly contributions.
// TotalSavedAmount is derived from the selected weekly amounts and is
// rewritten by the service layer after every selection change.
type SavingPlan struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"type:varchar(36);index;not null" json:"user_id"`

	SavingsName      string          `gorm:"size:200;not null" json:"savings_name"`
	Amount           decimal.Decimal `gorm:"type:decimal(10,2);not null;check:chk_saving_plans_amount,amount > 0" json:"amount"`
	NumberOfWeeks    int             `gorm:"not null;check:chk_saving_plans_weeks,number_of_weeks >= 1 AND number_of_weeks <= 104" json:"number_of_weeks"`
	TotalSavedAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;check:chk_saving_plans_total,total_saved_amount >= 0 AND total_saved_amount <= amount" json:"total_saved_amount"`

	DateCreated time.Time      `gorm:"autoCreateTime" json:"date_created"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	WeeklyAmounts []WeeklyAmount `gorm:"foreignKey:SavingPlanID;constraint:OnDelete:CASCADE" json:"weekly_amounts"`
}

// MaxPlanWeeks caps plan duration at two years.
const MaxPlanWeeks = 104

func (p *SavingPlan) IsCompleted() bool {
	return p.TotalSavedAmount.GreaterThanOrEqual(p.Amount)
}

func (p *SavingPlan) CompletionPercentage() float64 {
	if !p.Amount.IsPositive() {
		return 0
	}
	pct, _ := p.TotalSavedAmount.Div(p.Amount).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

func (p *SavingPlan) RemainingAmount() decimal.Decimal {
	remaining := p.Amount.Sub(p.TotalSavedAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
