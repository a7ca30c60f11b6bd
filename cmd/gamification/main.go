// Package main — entry point of the gamification ledger service.
// Loads configuration, wires the application and runs until SIGINT/SIGTERM.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"culturecraft.app/gamification/internal/app"
	"culturecraft.app/gamification/internal/config"
)

func main() {
	setupLogging()

	// .env is optional; real deployments pass the environment directly.
	_ = godotenv.Load()

	log.Info("=== Gamification core starting ===")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := log.ParseLevel(cfg.AppLogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize the application")
	}
	defer application.Close()

	if err := application.Scheduler.Start(ctx); err != nil {
		log.WithError(err).Fatal("Failed to start the scheduler")
	}
	defer application.Scheduler.Stop()

	log.WithFields(log.Fields{
		"balance": application.Points.GetCurrentPoints(),
		"storage": cfg.StorageDriver,
	}).Info("=== Gamification core ready ===")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Infof("Received %s, shutting down...", sig)
	cancel()

	log.Info("=== Gamification core stopped ===")
}

// setupLogging configures the log format.
func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}
