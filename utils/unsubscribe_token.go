package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Unsubscribe links in reminder emails stay usable for a year.
const unsubscribeTokenTTL = 365 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// GenerateUnsubscribeToken issues a signed token embedding the user id
// and the unsubscribe action.
func GenerateUnsubscribeToken(userID string) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"action":  "unsubscribe",
		"exp":     now.Add(unsubscribeTokenTTL).Unix(),
		"iat":     now.Unix(),
		"jti":     uuid.NewString(),
	})
	return token.SignedString([]byte(os.Getenv("SECRET_KEY")))
}

// ValidateUnsubscribeToken returns the embedded user id, or
// ErrInvalidToken when the token is malformed, expired, or issued for a
// different action.
func ValidateUnsubscribeToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("SECRET_KEY")), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if action, _ := claims["action"].(string); action != "unsubscribe" {
		return "", ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
