package main

import (
	"context"
	"log"
	"os"

	"github.com/Chukwuemekamusic/money-saver-api/config"
	"github.com/Chukwuemekamusic/money-saver-api/controllers"
	"github.com/Chukwuemekamusic/money-saver-api/routes"
	"github.com/Chukwuemekamusic/money-saver-api/services"
	"github.com/Chukwuemekamusic/money-saver-api/utils"
)

func main() {
	config.InitDB()

	var mailer services.Mailer
	if config.EmailEnabled() {
		sesMailer, err := utils.NewSESMailer(context.Background())
		if err != nil {
			log.Fatalf("Mailer init failed: %v", err)
		}
		mailer = sesMailer
	}

	reminders := services.NewReminderService(
		config.DB,
		mailer,
		os.Getenv("FRONTEND_URL"),
		os.Getenv("API_BASE_URL"),
	)
	scheduler := services.NewSchedulerService(reminders)
	scheduler.Start()
	defer scheduler.Stop()

	controllers.InitEmailDeps(mailer, reminders, scheduler)

	r := routes.SetupRouter()
	r.Run(":8080")
}
