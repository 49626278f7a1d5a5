package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WeeklyAmount is one contribution slot in a saving plan. WeekIndex is
// derived from selection order and is nil while the amount is unselected.
type WeeklyAmount struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	SavingPlanID uint `gorm:"index;not null" json:"saving_plan_id"`

	Amount       decimal.Decimal `gorm:"type:decimal(10,2);not null;check:chk_weekly_amounts_amount,amount > 0" json:"amount"`
	Selected     bool            `gorm:"not null;default:false" json:"selected"`
	WeekIndex    *int            `gorm:"check:chk_weekly_amounts_week_index,week_index IS NULL OR week_index > 0" json:"week_index"`
	DateSelected *time.Time      `json:"date_selected"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
