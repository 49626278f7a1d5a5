package controllers

import (
	"errors"
	"net/http"

	"github.com/Chukwuemekamusic/money-saver-api/config"
	"github.com/Chukwuemekamusic/money-saver-api/services"

	"github.com/gin-gonic/gin"
)

func authInfoFromContext(c *gin.Context) services.AuthUserInfo {
	return services.AuthUserInfo{
		UserID:   c.MustGet("userID").(string),
		Email:    c.GetString("email"),
		Provider: c.GetString("provider"),
	}
}

// SyncUser mirrors the verified auth identity into the local database.
// The frontend calls this after sign-in.
func SyncUser(c *gin.Context) {
	var body struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	_ = c.ShouldBindJSON(&body) // optional profile fields

	info := authInfoFromContext(c)
	info.FirstName = body.FirstName
	info.LastName = body.LastName

	user, err := services.NewUserService(config.DB).SyncUser(info)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User synchronized successfully",
		"user":    user,
	})
}

// GetProfile returns the current user, syncing the row when it does not
// exist locally yet.
func GetProfile(c *gin.Context) {
	info := authInfoFromContext(c)
	svc := services.NewUserService(config.DB)

	user, err := svc.GetByID(info.UserID)
	if errors.Is(err, services.ErrNotFound) {
		user, err = svc.SyncUser(info)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// VerifyToken lets the frontend check a token without syncing the user.
func VerifyToken(c *gin.Context) {
	info := authInfoFromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"user_id":  info.UserID,
		"email":    info.Email,
		"provider": info.Provider,
	})
}

// Logout exists for client symmetry; tokens are discarded client-side.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful. Please clear the token on the client side.",
	})
}
