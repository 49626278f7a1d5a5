package models

import (
	"time"

	"gorm.io/gorm"
)

// User rows are synced from the auth provider; ID is the provider's UUID.
type User struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email     string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
	Provider  string `gorm:"size:50;default:email" json:"provider"`

	EmailNotifications bool       `gorm:"default:true" json:"email_notifications"`
	LastReminderSent   *time.Time `json:"last_reminder_sent"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SavingPlans []SavingPlan `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
