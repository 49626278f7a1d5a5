package services

import (
	"errors"

	"github.com/Chukwuemekamusic/money-saver-api/models"

	"gorm.io/gorm"
)

type UserService struct{ db *gorm.DB }

func NewUserService(db *gorm.DB) *UserService { return &UserService{db: db} }

// AuthUserInfo is the verified identity returned by the auth provider.
type AuthUserInfo struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Provider  string `json:"provider"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SyncUser ensures the verified auth identity exists in the local
// database, creating or refreshing the row as needed.
func (s *UserService) SyncUser(info AuthUserInfo) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ?", info.UserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:                 info.UserID,
			Email:              info.Email,
			FirstName:          info.FirstName,
			LastName:           info.LastName,
			Provider:           info.Provider,
			IsActive:           true,
			EmailNotifications: true,
		}
		if user.Provider == "" {
			user.Provider = "email"
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	if info.Email != "" && info.Email != user.Email {
		user.Email = info.Email
	}
	if info.Provider != "" && info.Provider != user.Provider {
		user.Provider = info.Provider
	}
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByID(userID string) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateEmailPreferences flips the weekly reminder opt-in.
func (s *UserService) UpdateEmailPreferences(userID string, enabled bool) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.EmailNotifications = enabled
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
