// cmd/sweeper/main.go
//
// One-shot expiry sweep for part requests, meant to be run from cron
// when the in-process ticker is disabled.
package main

import (
	"log"

	"github.com/sirupsen/logrus"

	"github.com/purzasetu/sparehub-backend/internal/config"
	"github.com/purzasetu/sparehub-backend/internal/database"
	"github.com/purzasetu/sparehub-backend/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close(db)

	requestService := services.NewRequestService(db, services.CallerTargeting{}, cfg)

	expired, err := requestService.SweepExpired(requestService.Now())
	if err != nil {
		logrus.WithError(err).Fatal("Expiry sweep failed")
	}

	logrus.WithField("expired", expired).Info("Expiry sweep completed")
}
