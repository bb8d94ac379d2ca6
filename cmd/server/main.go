package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/hussein34535/waledapi/internal/config"
	"github.com/hussein34535/waledapi/internal/database"
	"github.com/hussein34535/waledapi/internal/events"
	"github.com/hussein34535/waledapi/internal/server"
	"github.com/hussein34535/waledapi/internal/server/handlers"
	"github.com/hussein34535/waledapi/internal/services"
	"github.com/hussein34535/waledapi/internal/store"
)

func main() {
	// Load environment variables
	if err := config.Load(); err != nil {
		logrus.Fatalf("config load: %v", err)
	}

	// Init DB
	db, err := database.Connect(config.Current.DatabaseURL)
	if err != nil {
		logrus.Fatalf("database connect failed: %v", err)
	}

	// Auto-migrate models and seed admin
	if err := database.AutoMigrateAndSeed(db, config.Current.AdminEmail, config.Current.AdminPassword); err != nil {
		logrus.Fatalf("migration/seed failed: %v", err)
	}

	st := store.NewStore(db)
	fcm := services.NewFCMClient(config.Current.FCMEndpoint, config.Current.FCMServerKey, config.Current.FCMTopic)
	hub := events.NewHub()

	app := fiber.New(fiber.Config{
		ServerHeader: "Waledapi",
		AppName:      "Waledapi Admin",
	})

	server.RegisterRoutes(app, handlers.New(st, fcm, hub), st)

	logrus.Infof("Server listening on :%s", config.Current.AppPort)
	if err := app.Listen(":" + config.Current.AppPort); err != nil {
		logrus.Fatalf("server failed: %v", err)
	}
}
