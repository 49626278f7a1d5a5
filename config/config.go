package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/Chukwuemekamusic/money-saver-api/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.SavingPlan{},
		&models.WeeklyAmount{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

// EmailEnabled gates both the mailer and the weekly reminder job.
func EmailEnabled() bool {
	v, err := strconv.ParseBool(os.Getenv("EMAIL_ENABLED"))
	if err != nil {
		return false
	}
	return v
}

// ReminderDay returns the configured weekday for reminder emails,
// defaulting to Monday.
func ReminderDay() string {
	day := strings.ToLower(os.Getenv("REMINDER_DAY"))
	switch day {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return day
	}
	return "monday"
}

func ReminderHour() int {
	return envInt("REMINDER_HOUR", 9, 0, 23)
}

func ReminderMinute() int {
	return envInt("REMINDER_MINUTE", 0, 0, 59)
}

func envInt(key string, fallback, min, max int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v < min || v > max {
		return fallback
	}
	return v
}
